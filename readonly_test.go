package snaplist_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/snaplist"
	"github.com/aretw0/snaplist/pkg/core"
)

// TestReadOnlyMode ensures read-only lists can be read but every mutation is
// refused and nothing is written to disk.
func TestReadOnlyMode(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writable, err := snaplist.New(ctx, dir)
	require.NoError(t, err)
	_, err = writable.Add(ctx, snaplist.NewTask("existing", ""))
	require.NoError(t, err)

	bucket := filepath.Join(dir, "shared_prefs.json")
	before, err := os.ReadFile(bucket)
	require.NoError(t, err)

	list, err := snaplist.New(ctx, dir, snaplist.WithReadOnly(true))
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())

	_, err = list.Add(ctx, snaplist.NewTask("forbidden", ""))
	assert.True(t, errors.Is(err, core.ErrReadOnly), "Expected ErrReadOnly, got: %v", err)

	err = list.Update(ctx, 0, snaplist.NewTask("changed", ""))
	assert.True(t, errors.Is(err, core.ErrReadOnly))

	err = list.Remove(ctx, 0)
	assert.True(t, errors.Is(err, core.ErrReadOnly))

	assert.Equal(t, []snaplist.Task{snaplist.NewTask("existing", "")}, list.Tasks())

	after, err := os.ReadFile(bucket)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestReadOnlyMode_MissingBucket(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "never-created")

	list, err := snaplist.New(ctx, dir, snaplist.WithReadOnly(true))
	require.NoError(t, err)
	assert.Equal(t, 0, list.Len())

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "read-only open must not create the data dir")
}
