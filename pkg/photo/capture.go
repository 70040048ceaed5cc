package photo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/aretw0/snaplist/pkg/core"
)

// State is where a capture request stands.
type State string

const (
	StatePending   State = "pending"
	StateResolved  State = "resolved"
	StateFailed    State = "failed"
	StateCancelled State = "cancelled"
)

// Request is one capture in flight. It settles exactly once; later
// resolutions or cancellations are ignored.
type Request struct {
	Dest string

	mu      sync.Mutex
	state   State
	result  Result
	form    *core.Form
	settled chan struct{}
	logger  *slog.Logger
}

func newRequest(dest string, form *core.Form, logger *slog.Logger) *Request {
	return &Request{
		Dest:    dest,
		state:   StatePending,
		form:    form,
		settled: make(chan struct{}),
		logger:  logger,
	}
}

// State returns the current state.
func (r *Request) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Result returns the capture outcome once settled.
func (r *Request) Result() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.state != StatePending
}

// Done is closed when the request settles.
func (r *Request) Done() <-chan struct{} {
	return r.settled
}

// Cancel abandons a pending request, e.g. the user closed the form.
func (r *Request) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePending {
		return
	}
	r.state = StateCancelled
	r.result = Result{Path: r.Dest, Err: context.Canceled}
	r.discardLocked()
	close(r.settled)
}

// resolve settles the request with res. On success the form's pending photo is set.
func (r *Request) resolve(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePending {
		r.logger.Debug("ignoring late capture result", "dest", r.Dest, "state", r.state)
		return
	}

	r.result = res
	if res.OK() {
		r.state = StateResolved
		if r.form != nil {
			r.form.SetPhoto(r.Dest)
		}
		r.logger.Info("photo captured", "path", r.Dest)
	} else {
		r.state = StateFailed
		r.discardLocked()
		r.logger.Warn("photo capture failed", "dest", r.Dest, "error", res.Err)
	}
	close(r.settled)
}

func (r *Request) discardLocked() {
	if err := os.Remove(r.Dest); err != nil && !os.IsNotExist(err) {
		r.logger.Debug("failed to remove unused photo file", "path", r.Dest, "error", err)
	}
}

// Capturer runs the capture flow for a form.
type Capturer struct {
	Dir         *Dir
	Camera      Camera
	Permissions Permissions
	Logger      *slog.Logger
}

// CapturePhoto starts a capture whose photo will be attached to form.
//
// Without permission it asks for it and returns ErrPermissionDenied.
// If the destination file cannot be created it returns an error and the form
// is left without a photo. Otherwise the returned Request settles when the
// camera reports back.
func (c *Capturer) CapturePhoto(ctx context.Context, form *core.Form) (*Request, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if c.Permissions != nil && !c.Permissions.Granted() {
		c.Permissions.Request()
		return nil, ErrPermissionDenied
	}

	dest, err := c.Dir.Create()
	if err != nil {
		logger.Error("failed to create photo file", "dir", c.Dir.Path, "error", err)
		return nil, err
	}

	if c.Camera == nil {
		_ = os.Remove(dest)
		return nil, fmt.Errorf("%w: no camera available", ErrCaptureFailed)
	}

	req := newRequest(dest, form, logger)
	c.Camera.Capture(ctx, dest, req.resolve)
	return req, nil
}
