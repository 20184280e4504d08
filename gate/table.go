package gate

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownSession is returned by Destroy for ids the table does not hold.
var ErrUnknownSession = errors.New("gate: unknown session")

// Session is the server-side record behind a session cookie.
type Session struct {
	Authenticated bool
	Username      string
	ExpiresAt     time.Time
}

// Table holds live sessions keyed by id. Expired records are dropped when
// they are next looked up.
type Table struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	records map[string]Session
}

// NewTable creates a Table whose sessions live for ttl after creation.
func NewTable(ttl time.Duration) *Table {
	return &Table{
		ttl:     ttl,
		now:     time.Now,
		records: make(map[string]Session),
	}
}

// Create stores an authenticated session for username and returns its id.
func (t *Table) Create(username string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	t.mu.Lock()
	t.records[id.String()] = Session{
		Authenticated: true,
		Username:      username,
		ExpiresAt:     t.now().Add(t.ttl),
	}
	t.mu.Unlock()
	return id.String(), nil
}

// Lookup returns the session for id if it exists and has not expired.
func (t *Table) Lookup(id string) (Session, bool) {
	if id == "" {
		return Session{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.records[id]
	if !ok {
		return Session{}, false
	}
	if !t.now().Before(s.ExpiresAt) {
		delete(t.records, id)
		return Session{}, false
	}
	return s, true
}

// Destroy removes the session for id.
func (t *Table) Destroy(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.records[id]; !ok {
		return ErrUnknownSession
	}
	delete(t.records, id)
	return nil
}

// Len reports how many records are held, including expired ones not yet
// looked up.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}
