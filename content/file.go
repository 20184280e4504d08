package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Ext is the extension of files the store recognizes.
const Ext = ".json"

type shape int

const (
	shapeSingle shape = iota
	shapeMany
)

// storageFile is one document on disk. A file written by hand may hold a
// bare object; everything the store writes is an array.
type storageFile struct {
	path  string
	shape shape
	posts []Post
}

var errEmptyDocument = errors.New("empty document")

func decodeFile(path string, data []byte) (storageFile, error) {
	f := storageFile{path: path}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return f, errEmptyDocument
	}
	if data[0] == '[' {
		f.shape = shapeMany
		if err := json.Unmarshal(data, &f.posts); err != nil {
			return f, err
		}
		return f, nil
	}
	var p Post
	if err := json.Unmarshal(data, &p); err != nil {
		return f, err
	}
	f.shape = shapeSingle
	f.posts = []Post{p}
	return f, nil
}

func encodePosts(posts []Post) ([]byte, error) {
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// atomicWriteFile writes data to a temporary file in the same directory and
// renames it over filename.
func atomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	closed = true

	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
