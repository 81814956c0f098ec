package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), "taskdesk-test", "1")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetMissingCollection(t *testing.T) {
	store := openTestStore(t)

	value, err := store.Get(CollectionUsers)
	require.NoError(t, err)
	assert.Nil(t, value, "unwritten collection reads as no data")
}

func TestSetGetRoundTrip(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set(CollectionUsers, []byte(`[{"id":"u1"}]`)))

	value, err := store.Get(CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"u1"}]`, string(value))
}

func TestSetOverwrites(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set(CollectionTasks, []byte(`[1]`)))
	require.NoError(t, store.Set(CollectionTasks, []byte(`[1,2]`)))

	value, err := store.Get(CollectionTasks)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(value))
}

func TestNamespacesDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.db")

	v1, err := Open(path, "taskdesk-test", "1")
	require.NoError(t, err)
	require.NoError(t, v1.Set(CollectionUsers, []byte(`["v1"]`)))
	require.NoError(t, v1.Close())

	v2, err := Open(path, "taskdesk-test", "2")
	require.NoError(t, err)
	defer v2.Close()

	value, err := v2.Get(CollectionUsers)
	require.NoError(t, err)
	assert.Nil(t, value, "a new schema version starts empty")
}

func TestExportImportRoundTrip(t *testing.T) {
	src := openTestStore(t)
	require.NoError(t, src.Set(CollectionUsers, []byte(`[{"id":"u1","username":"demo"}]`)))
	require.NoError(t, src.Set(CollectionTasks, []byte(`[{"id":"t1","title":"a"}]`)))

	snap, err := src.ExportAll()
	require.NoError(t, err)
	assert.Equal(t, "1", snap.Version)
	assert.False(t, snap.ExportedAt.IsZero())

	dst := openTestStore(t)
	require.NoError(t, dst.ImportAll(snap))

	users, err := dst.Get(CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"u1","username":"demo"}]`, string(users))

	tasks, err := dst.Get(CollectionTasks)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"t1","title":"a"}]`, string(tasks))
}

func TestExportEmptyStore(t *testing.T) {
	store := openTestStore(t)

	snap, err := store.ExportAll()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(snap.Users))
	assert.JSONEq(t, `[]`, string(snap.Tasks))
}
