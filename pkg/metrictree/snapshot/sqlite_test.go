package snapshot

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSQLiteStore_FilePersistence verifies snapshots survive reopening
// the database file.
func TestSQLiteStore_FilePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save("root-1", []byte("persisted report")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load("root-1", 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted report"), loaded)
}

// TestSQLiteStore_InvalidPath verifies open failures surface.
func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := NewSQLiteStore(filepath.Join(t.TempDir(), "missing", "nested", "db.sqlite"))
	assert.Error(t, err)
}

// TestSQLiteStore_CloseIdempotent verifies double close is harmless.
func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)

	require.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

// TestSQLiteStore_ConcurrentSaves verifies sequence assignment holds up
// under concurrent writers.
func TestSQLiteStore_ConcurrentSaves(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "concurrent.db"))
	require.NoError(t, err)
	defer store.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				assert.NoError(t, store.Save("root-1", []byte("report")))
			}
		}()
	}
	wg.Wait()

	infos, err := store.List("root-1")
	require.NoError(t, err)
	require.Len(t, infos, 100)
	for i, info := range infos {
		assert.Equal(t, i+1, info.Sequence)
	}
}

// TestSQLiteStore_LargeReport verifies blob round-trips at a realistic
// report size.
func TestSQLiteStore_LargeReport(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	report := make([]byte, 1<<20)
	for i := range report {
		report[i] = byte('a' + i%26)
	}

	require.NoError(t, store.Save("root-1", report))

	loaded, err := store.Load("root-1", 1)
	require.NoError(t, err)
	assert.Equal(t, report, loaded)
}
