package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/snaplist/pkg/core"
)

func waitEvent(t *testing.T, ch <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return core.Event{}
}

func TestWatcher_ReportsBucketChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	path := filepath.Join(dir, "shared_prefs.json")
	events := make(chan core.Event, 8)

	w := New(path, events, WithDelay(10*time.Millisecond))
	require.NoError(t, w.Start(ctx))
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer stopCancel()
		_ = w.Stop(stopCtx)
	}()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(path, []byte(`{"task_list":"[]"}`), 0644))

	e := waitEvent(t, events)
	assert.Equal(t, path, e.Path)
	assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)

	require.NoError(t, os.Remove(path))
	for e.Type != core.EventDelete {
		e = waitEvent(t, events)
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(filepath.Join(t.TempDir(), "b.json"), make(chan core.Event))
	require.NoError(t, w.Start(ctx))
	assert.Error(t, w.Start(ctx))

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	_ = w.Stop(stopCtx)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	var got []core.Event
	emit := func(e core.Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	}

	for _, typ := range []core.EventType{core.EventCreate, core.EventModify, core.EventDelete} {
		d.add(core.Event{Type: typ}, emit)
	}
	time.Sleep(100 * time.Millisecond)
	d.stopAndWait(time.Second)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, got)
	assert.Equal(t, core.EventDelete, got[len(got)-1].Type)

	// Nothing is accepted after stop.
	d.add(core.Event{Type: core.EventCreate}, emit)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, core.EventDelete, got[len(got)-1].Type)
}

type countingReloader struct{ n atomic.Int32 }

func (c *countingReloader) Reload(ctx context.Context) error {
	c.n.Add(1)
	return nil
}

type countingInvalidator struct{ n atomic.Int32 }

func (c *countingInvalidator) Invalidate() { c.n.Add(1) }

func TestFollow_ReloadsOnChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "shared_prefs.json")
	list := &countingReloader{}
	store := &countingInvalidator{}
	reloaded := make(chan core.Event, 4)

	w, err := Follow(ctx, path, store, list, nil, func(e core.Event, err error) {
		assert.NoError(t, err)
		reloaded <- e
	})
	require.NoError(t, err)
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer stopCancel()
		_ = w.Stop(stopCtx)
	}()

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	waitEvent(t, reloaded)

	assert.GreaterOrEqual(t, list.n.Load(), int32(1))
	assert.Equal(t, list.n.Load(), store.n.Load())
}

func TestSource_Bridges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 1)
	src := NewSource(in)
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventModify, Path: "/x"}
	select {
	case e := <-src.Events():
		assert.Equal(t, "MODIFY /x", e.String())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}

	close(in)
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("source did not close")
	}
}
