package kv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/snaplist/pkg/adapters/kv"
	"github.com/aretw0/snaplist/pkg/core"
)

func setupStore(t *testing.T, opts ...func(*kv.Config)) (*kv.FileStore, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "prefs")
	cfg := kv.Config{
		Dir:    dir,
		Bucket: "shared_prefs",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := kv.NewFileStore(cfg)
	require.NoError(t, store.Initialize(context.Background()))
	return store, dir
}

func TestFileStore_MissingBucketIsEmpty(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "task_list")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	for _, codec := range []kv.Codec{kv.JSONCodec{}, kv.YAMLCodec{}} {
		t.Run(codec.Ext(), func(t *testing.T) {
			store, dir := setupStore(t, func(c *kv.Config) { c.Codec = codec })
			ctx := context.Background()

			value := `[{"task":"Buy milk","imagePath":""}]`
			require.NoError(t, store.Put(ctx, "task_list", value))
			require.NoError(t, store.Put(ctx, "other", "x"))
			require.NoError(t, store.Delete(ctx, "other"))

			assert.FileExists(t, filepath.Join(dir, "shared_prefs"+codec.Ext()))

			reopened := kv.NewFileStore(kv.Config{Dir: dir, Bucket: "shared_prefs", Codec: codec})
			got, ok, err := reopened.Get(ctx, "task_list")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, value, got)

			keys, err := reopened.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"task_list"}, keys)
		})
	}
}

func TestFileStore_ReadOnly(t *testing.T) {
	store, dir := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "k", "v"))

	ro := kv.NewFileStore(kv.Config{Dir: dir, Bucket: "shared_prefs", ReadOnly: true})
	v, ok, err := ro.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	assert.ErrorIs(t, ro.Put(ctx, "k", "w"), core.ErrReadOnly)
	assert.ErrorIs(t, ro.Delete(ctx, "k"), core.ErrReadOnly)
}

func TestFileStore_InvalidateRereads(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "k", "old"))

	// Another process rewrites the bucket.
	require.NoError(t, os.WriteFile(store.Path, []byte(`{"k":"new"}`), 0644))

	v, _, _ := store.Get(ctx, "k")
	assert.Equal(t, "old", v, "cached value expected before Invalidate")

	store.Invalidate()
	v, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestFileStore_CorruptBucket(t *testing.T) {
	t.Run("Garbage Is Corrupt", func(t *testing.T) {
		store, _ := setupStore(t)
		require.NoError(t, os.WriteFile(store.Path, []byte("{not json"), 0644))

		_, _, err := store.Get(context.Background(), "k")
		assert.ErrorIs(t, err, core.ErrCorrupt)

		err = store.Put(context.Background(), "k", "v")
		assert.ErrorIs(t, err, core.ErrCorrupt)
	})

	t.Run("Null Is Empty", func(t *testing.T) {
		ctx := context.Background()
		store, _ := setupStore(t)
		require.NoError(t, os.WriteFile(store.Path, []byte("null"), 0644))

		_, ok, err := store.Get(ctx, "task_list")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NotPanics(t, func() {
			require.NoError(t, store.Put(ctx, "task_list", "[]"))
		})
		v, ok, err := store.Get(ctx, "task_list")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "[]", v)
	})
}

func TestFileStore_Recover(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)
	require.NoError(t, os.WriteFile(store.Path, []byte("{not json"), 0644))

	require.NoError(t, store.Recover(ctx))

	backup, err := os.ReadFile(store.Path + kv.CorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(backup))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, store.Put(ctx, "task_list", "[]"))
	reopened := kv.OpenFileStore(store.Path, false)
	v, ok, err := reopened.Get(ctx, "task_list")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestOpenFileStore_PicksCodecByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("task_list: '[]'\n"), 0644))

	store := kv.OpenFileStore(path, false)
	v, ok, err := store.Get(context.Background(), "task_list")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	state := store.State().(kv.StoreState)
	assert.Equal(t, ".yaml", state.Format)
	assert.Equal(t, 1, state.Keys)
}

func TestCodecFor(t *testing.T) {
	c, err := kv.CodecFor("yaml")
	require.NoError(t, err)
	assert.Equal(t, ".yaml", c.Ext())

	c, err = kv.CodecFor("")
	require.NoError(t, err)
	assert.Equal(t, ".json", c.Ext())

	_, err = kv.CodecFor("xml")
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	m := kv.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "b", "2"))
	require.NoError(t, m.Put(ctx, "a", "1"))
	keys, _ := m.Keys(ctx)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, m.Delete(ctx, "a"))
	_, ok, _ := m.Get(ctx, "a")
	assert.False(t, ok)
}
