package watch

import (
	"sync"
	"time"

	"github.com/aretw0/snaplist/pkg/core"
)

// debouncer collapses a burst of events into the last one seen.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending = e
	if d.timer != nil && d.timer.Stop() {
		// the stopped timer's callback will never run
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		ev := d.pending
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			emit(ev)
		}
	})
}

// stopAndWait rejects new events and waits up to timeout for in-flight emits.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.timer = nil
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
