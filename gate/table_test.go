package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newClockedTable(ttl time.Duration) (*Table, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	table := NewTable(ttl)
	table.now = clock.now
	return table, clock
}

func TestTableCreateLookup(t *testing.T) {
	table, clock := newClockedTable(time.Hour)

	id, err := table.Create("admin")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s, ok := table.Lookup(id)
	require.True(t, ok)
	assert.True(t, s.Authenticated)
	assert.Equal(t, "admin", s.Username)
	assert.Equal(t, clock.t.Add(time.Hour), s.ExpiresAt)
}

func TestTableIDsAreUnique(t *testing.T) {
	table := NewTable(time.Hour)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := table.Create("admin")
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Equal(t, 100, table.Len())
}

func TestTableExpiryOnAccess(t *testing.T) {
	table, clock := newClockedTable(time.Hour)
	id, err := table.Create("admin")
	require.NoError(t, err)

	clock.advance(59 * time.Minute)
	_, ok := table.Lookup(id)
	assert.True(t, ok)
	assert.Equal(t, 1, table.Len())

	clock.advance(time.Minute)
	_, ok = table.Lookup(id)
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len(), "expired record is dropped on access")
}

func TestTableDestroy(t *testing.T) {
	table := NewTable(time.Hour)
	id, err := table.Create("admin")
	require.NoError(t, err)

	require.NoError(t, table.Destroy(id))
	_, ok := table.Lookup(id)
	assert.False(t, ok)

	assert.ErrorIs(t, table.Destroy(id), ErrUnknownSession)
}

func TestTableLookupEmptyID(t *testing.T) {
	table := NewTable(time.Hour)
	_, ok := table.Lookup("")
	assert.False(t, ok)
}
