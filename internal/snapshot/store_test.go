package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repodash/repodash/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, err)
	return store
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := testStore(t)

	snap := New("acme")
	snap.Add(model.Record{Name: "core-api", License: "MIT", Collaborators: 7})
	snap.Add(model.Record{Name: "widget", Forks: 3})

	require.NoError(t, store.Save(snap))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "acme", got.Org)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, 7, got.Repositories["core-api"].Collaborators)
}

func TestLoadMissingSnapshot(t *testing.T) {
	store := testStore(t)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadVersionMismatch(t *testing.T) {
	store := testStore(t)

	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"version":99,"org":"acme","repositories":{}}`), 0600))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrVersionMismatch)
}

func TestRecordsOrderIsDeterministic(t *testing.T) {
	snap := New("acme")
	snap.Add(model.Record{Name: "zeta"})
	snap.Add(model.Record{Name: "alpha"})
	snap.Add(model.Record{Name: "mid"})

	records := snap.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "alpha", records[0].Name)
	assert.Equal(t, "mid", records[1].Name)
	assert.Equal(t, "zeta", records[2].Name)

	// Repeated calls return the same sequence.
	assert.Equal(t, records, snap.Records())
}

func TestClear(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Save(New("acme")))
	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	// Clearing again is not an error.
	assert.NoError(t, store.Clear())
}

func TestStats(t *testing.T) {
	store := testStore(t)

	st, err := store.Stats()
	require.NoError(t, err)
	assert.False(t, st.Exists)

	snap := New("acme")
	snap.Add(model.Record{Name: "core-api"})
	require.NoError(t, store.Save(snap))

	st, err = store.Stats()
	require.NoError(t, err)
	assert.True(t, st.Exists)
	assert.Equal(t, "acme", st.Org)
	assert.Equal(t, 1, st.Repos)
	assert.False(t, st.Stale)
}

func TestIsStale(t *testing.T) {
	snap := New("acme")
	assert.False(t, snap.IsStale())

	snap.GeneratedAt = time.Now().Add(-2 * StaleAfter)
	assert.True(t, snap.IsStale())
}
