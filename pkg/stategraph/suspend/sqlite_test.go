package suspend

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "suspend.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_SaveLoad(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Save("w1", []byte("record-1")))

	data, err := store.Load("w1")
	require.NoError(t, err)
	assert.Equal(t, []byte("record-1"), data)
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Save("w1", []byte("first")))
	require.NoError(t, store.Save("w1", []byte("second")))

	data, err := store.Load("w1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	store := newTestSQLiteStore(t)
	_, err := store.Load("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newTestSQLiteStore(t)
	require.NoError(t, store.Save("w1", []byte("x")))

	require.NoError(t, store.Delete("w1"))

	_, err := store.Load("w1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, store.Delete("w1"))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suspend.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("w1", []byte("durable")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	data, err := reopened.Load("w1")
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), data)
}

func TestSQLiteStore_Closed(t *testing.T) {
	store := newTestSQLiteStore(t)
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Save("w1", []byte("x")), ErrStoreClosed)
	_, err := store.Load("w1")
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, store.Delete("w1"), ErrStoreClosed)

	// Close is idempotent.
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_IsolatesWorkflows(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Save("w1", []byte("one")))
	require.NoError(t, store.Save("w2", []byte("two")))
	require.NoError(t, store.Delete("w1"))

	data, err := store.Load("w2")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}
