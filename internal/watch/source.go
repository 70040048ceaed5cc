package watch

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/snaplist/pkg/core"
)

type bucketSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource bridges a core.Event channel to a lifecycle.Source.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &bucketSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *bucketSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *bucketSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
