// Package display projects the task list onto a row-based view.
//
// The Adapter subscribes to a core.Service as an observer and forwards each
// positional change to a RowSink, so a view can redraw only the affected rows.
// It never holds the list itself: rows are rendered on demand from the Source.
package display

import (
	"context"
	"errors"
	"os"

	"github.com/aretw0/snaplist/pkg/core"
)

// Source is the read side of the task list.
type Source interface {
	Len() int
	At(i int) (core.Task, error)
}

// Remover deletes the task at a position and persists the list.
type Remover interface {
	Remove(ctx context.Context, i int) error
}

// Controller is what the adapter needs from the list owner.
type Controller interface {
	Source
	Remover
	Subscribe(obs core.Observer) (unsubscribe func())
}

// RowSink receives row-level notifications, e.g. a widget or a test recorder.
type RowSink interface {
	NotifyInserted(index int)
	NotifyChanged(index int)
	NotifyRemoved(index int)
	NotifyRangeChanged(start, count int)
	NotifyReset(count int)
}

// Row is a rendered task.
type Row struct {
	Position  int    `json:"position"`
	Text      string `json:"task"`
	ImagePath string `json:"imagePath,omitempty"`
	ShowImage bool   `json:"showImage"` // path set and file present at render time
}

// Adapter keeps a row view in positional sync with a task list.
type Adapter struct {
	ctrl   Controller
	sink   RowSink
	editor core.Editor
	rows   int
	stat   func(string) (os.FileInfo, error)
	unsub  func()
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithEditor sets the collaborator that presents the edit form.
func WithEditor(e core.Editor) Option {
	return func(a *Adapter) { a.editor = e }
}

// WithStat overrides how image existence is checked.
func WithStat(stat func(string) (os.FileInfo, error)) Option {
	return func(a *Adapter) { a.stat = stat }
}

// New creates an adapter over ctrl and subscribes it. sink may be nil.
func New(ctrl Controller, sink RowSink, opts ...Option) *Adapter {
	a := &Adapter{
		ctrl: ctrl,
		sink: sink,
		rows: ctrl.Len(),
		stat: os.Stat,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.unsub = ctrl.Subscribe(a)
	return a
}

// Close unsubscribes the adapter from its controller.
func (a *Adapter) Close() {
	if a.unsub != nil {
		a.unsub()
		a.unsub = nil
	}
}

// ItemCount is the number of rows the view should show.
func (a *Adapter) ItemCount() int {
	return a.rows
}

// Render builds the row at position i.
// The image is shown only if the path is set and the file exists right now.
func (a *Adapter) Render(i int) (Row, error) {
	t, err := a.ctrl.At(i)
	if err != nil {
		return Row{}, err
	}
	return Row{
		Position:  i,
		Text:      t.Description,
		ImagePath: t.ImagePath,
		ShowImage: a.imageExists(t.ImagePath),
	}, nil
}

// Rows renders every row in order.
func (a *Adapter) Rows() ([]Row, error) {
	rows := make([]Row, 0, a.rows)
	for i := 0; i < a.rows; i++ {
		r, err := a.Render(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// Edit hands the task at position i to the editor.
func (a *Adapter) Edit(i int) error {
	if a.editor == nil {
		return errors.New("no editor configured")
	}
	t, err := a.ctrl.At(i)
	if err != nil {
		return err
	}
	a.editor.Edit(t, i)
	return nil
}

// Delete removes the task at position i. The controller persists and notifies.
func (a *Adapter) Delete(ctx context.Context, i int) error {
	return a.ctrl.Remove(ctx, i)
}

func (a *Adapter) imageExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := a.stat(path)
	return err == nil && !info.IsDir()
}

// Inserted implements core.Observer.
func (a *Adapter) Inserted(index int) {
	a.rows++
	if a.sink != nil {
		a.sink.NotifyInserted(index)
	}
}

// Changed implements core.Observer.
func (a *Adapter) Changed(index int) {
	if a.sink != nil {
		a.sink.NotifyChanged(index)
	}
}

// Removed implements core.Observer.
func (a *Adapter) Removed(index int) {
	a.rows--
	if a.sink != nil {
		a.sink.NotifyRemoved(index)
	}
}

// RangeChanged implements core.Observer.
func (a *Adapter) RangeChanged(start, count int) {
	if a.sink != nil {
		a.sink.NotifyRangeChanged(start, count)
	}
}

// Reset implements core.Observer.
func (a *Adapter) Reset(count int) {
	a.rows = count
	if a.sink != nil {
		a.sink.NotifyReset(count)
	}
}

var _ core.Observer = (*Adapter)(nil)
