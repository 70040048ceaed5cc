// Package watch reports external changes to the bucket file so an open list
// can reload itself.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/snaplist/pkg/adapters/kv"
	"github.com/aretw0/snaplist/pkg/core"
)

// DefaultDelay is how long bursts of writes are coalesced.
const DefaultDelay = 50 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDelay sets the debounce window.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) { w.delay = d }
}

// Watcher is a worker that emits a core.Event whenever the bucket file is
// created, rewritten or removed by someone else.
type Watcher struct {
	*worker.BaseWorker
	path      string
	events    chan<- core.Event
	logger    *slog.Logger
	delay     time.Duration
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

// New creates a watcher for the file at path. Events are sent on events.
func New(path string, events chan<- core.Event, opts ...Option) *Watcher {
	w := &Watcher{
		BaseWorker: worker.NewBaseWorker("bucket-watcher"),
		path:       filepath.Clean(path),
		events:     events,
		logger:     slog.New(slog.DiscardHandler),
		delay:      DefaultDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. The directory holding the file is watched because
// atomic saves replace the file rather than writing to it.
func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create watch dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(w.delay)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

// Stop ends the watch loop.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"path":              w.path,
		}
	})
}

func (w *Watcher) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.logger.Enabled(ctx, slog.LevelDebug) {
				w.logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer w.watcher.Close()

	err = w.loop(ctx)
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *Watcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case werr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", werr)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if strings.HasPrefix(filepath.Base(event.Name), kv.TempFilePrefix) {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}
	w.logger.Debug("bucket changed", "op", event.Op.String(), "path", event.Name)

	w.debouncer.add(core.Event{
		Type:      eType,
		Path:      w.path,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		defer func() {
			// events may already be closed during shutdown
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}
