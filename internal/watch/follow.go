package watch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/snaplist/pkg/core"
)

// Reloader re-reads a list from storage.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Invalidator drops cached storage state.
type Invalidator interface {
	Invalidate()
}

// Follow starts watching path and reloads list on every change until ctx is
// done. store may be nil when nothing is cached. onReload, if set, is called
// after each attempt with the triggering event and the reload error.
func Follow(ctx context.Context, path string, store Invalidator, list Reloader, logger *slog.Logger, onReload func(core.Event, error)) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	events := make(chan core.Event)
	w := New(path, events, WithLogger(logger))
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e := <-events:
				if store != nil {
					store.Invalidate()
				}
				err := list.Reload(ctx)
				if err != nil {
					logger.Warn("reload after external change failed", "event", e.String(), "error", err)
				} else {
					logger.Debug("reloaded after external change", "event", e.String())
				}
				if onReload != nil {
					onReload(e, err)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		logger.Error("reload loop panic", "error", fmt.Errorf("follow %s: %w", path, err))
	}))

	return w, nil
}
