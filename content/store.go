package content

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"
)

// Store reads and writes posts in a directory of JSON files.
type Store struct {
	dir string
	// mu serializes Create and Delete so the slug check and the write
	// happen as one step within this process. Readers do not take it.
	mu sync.Mutex
}

// Open returns a Store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "create dir", Path: dir, Err: err}
	}
	return &Store{dir: dir}, nil
}

// Dir returns the content directory.
func (s *Store) Dir() string {
	return s.dir
}

// List returns every post in the directory, most recent first. Posts whose
// date cannot be parsed come after all dated posts.
//
// A file removed between the directory read and the file read is skipped.
// Any other unreadable directory or file fails the whole call; callers
// serving public pages are expected to log the error and show an empty list.
func (s *Store) List() ([]Post, error) {
	paths, err := s.filePaths()
	if err != nil {
		return nil, err
	}
	posts := []Post{}
	for _, path := range paths {
		f, err := readFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		posts = append(posts, f.posts...)
	}
	sortByDate(posts)
	return posts, nil
}

// Find returns the first post in List order with the given slug.
func (s *Store) Find(slug string) (Post, error) {
	posts, err := s.List()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Create writes p to a new file named after its slug. It fails with a
// *ValidationError when a field is empty or the slug is not URL-safe, and
// with a *CollisionError when any existing record already uses the slug.
// An orphaned file with the same name but a different slug inside is
// overwritten.
func (s *Store) Create(p Post) error {
	if err := Validate(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.List()
	if err != nil {
		return err
	}
	for _, existing := range posts {
		if existing.Slug == p.Slug {
			return &CollisionError{Slug: p.Slug}
		}
	}

	data, err := encodePosts([]Post{p})
	if err != nil {
		return &StorageError{Op: "encode", Path: p.Slug, Err: err}
	}
	path := s.pathFor(p.Slug)
	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Delete removes every record with the given slug from every file. A file
// left with no records is removed. Scanning continues past failures on
// individual files; those are returned joined, alongside whether at least
// one record was removed.
func (s *Store) Delete(slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := s.filePaths()
	if err != nil {
		return false, err
	}

	deleted := false
	var errs []error
	for _, path := range paths {
		f, err := readFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		removed, err := deleteFrom(f, slug)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if removed {
			deleted = true
		}
	}
	return deleted, errors.Join(errs...)
}

// Validate checks that every field is set and that the slug is URL-safe.
func Validate(p Post) error {
	fields := []struct {
		name  string
		value string
	}{
		{"title", p.Title},
		{"content", p.Content},
		{"date", p.Date},
		{"slug", p.Slug},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "is required"}
		}
	}
	if !slug.IsSlug(p.Slug) {
		return &ValidationError{Field: "slug", Reason: "must be lowercase letters and digits joined by hyphens or underscores"}
	}
	return nil
}

func (s *Store) pathFor(postSlug string) string {
	return filepath.Join(s.dir, postSlug+Ext)
}

func (s *Store) filePaths() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &StorageError{Op: "read dir", Path: s.dir, Err: err}
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, e.Name()))
	}
	return paths, nil
}

func readFile(path string) (storageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return storageFile{}, &StorageError{Op: "read", Path: path, Err: err}
	}
	f, err := decodeFile(path, data)
	if err != nil {
		return storageFile{}, &StorageError{Op: "decode", Path: path, Err: err}
	}
	return f, nil
}

func deleteFrom(f storageFile, postSlug string) (bool, error) {
	kept := make([]Post, 0, len(f.posts))
	for _, p := range f.posts {
		if p.Slug != postSlug {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(f.posts) {
		return false, nil
	}
	if len(kept) == 0 {
		if err := os.Remove(f.path); err != nil {
			return false, &StorageError{Op: "remove", Path: f.path, Err: err}
		}
		return true, nil
	}
	data, err := encodePosts(kept)
	if err != nil {
		return false, &StorageError{Op: "encode", Path: f.path, Err: err}
	}
	if err := atomicWriteFile(f.path, data, 0o644); err != nil {
		return false, &StorageError{Op: "write", Path: f.path, Err: err}
	}
	return true, nil
}

func sortByDate(posts []Post) {
	type keyed struct {
		post Post
		at   time.Time
		ok   bool
	}
	keys := make([]keyed, len(posts))
	for i, p := range posts {
		at, ok := ParseDate(p.Date)
		keys[i] = keyed{post: p, at: at, ok: ok}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.ok && b.ok {
			return a.at.After(b.at)
		}
		return a.ok && !b.ok
	})
	for i, k := range keys {
		posts[i] = k.post
	}
}
