package snaplist

import (
	"context"
	"log/slog"

	"github.com/aretw0/snaplist/internal/platform"
	"github.com/aretw0/snaplist/pkg/adapters/kv"
	"github.com/aretw0/snaplist/pkg/core"
)

// --- Types ---

// Task is a public alias for the task record.
type Task = core.Task

// List is the task list controller.
type List = core.Service

// Observer receives change notifications from a List.
type Observer = core.Observer

// Form is the add/edit form state.
type Form = core.Form

// NewAddForm returns an empty form that appends a task when submitted.
func NewAddForm() *Form {
	return core.NewAddForm()
}

// NewTask creates a task. An empty imagePath means no photo.
func NewTask(description, imagePath string) Task {
	return core.NewTask(description, imagePath)
}

// --- Configuration ---

// Option defines a functional option for configuring snaplist.
type Option = platform.Option

// WithLogger sets the logger for the list and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithStore allows injecting the key-value bucket directly.
func WithStore(store kv.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the bucket implementation by name ("file", "sqlite" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithBucket sets the bucket name (default "shared_prefs").
func WithBucket(name string) Option {
	return platform.WithBucket(name)
}

// WithKey sets the key the list is stored under (default "task_list").
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithFormat sets the bucket file format ("json" or "yaml").
func WithFormat(format string) Option {
	return platform.WithFormat(format)
}

// WithReadOnly rejects every mutation with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithRecoverCorrupt treats an unreadable stored list as empty instead of failing.
func WithRecoverCorrupt(enabled bool) Option {
	return platform.WithRecoverCorrupt(enabled)
}

// --- Factory ---

// New opens the list persisted under dataDir.
func New(ctx context.Context, dataDir string, opts ...Option) (*List, error) {
	return platform.New(ctx, dataDir, opts...)
}

// Init builds the repository without loading it.
func Init(dataDir string, opts ...Option) (core.Repository, error) {
	return platform.Init(dataDir, opts...)
}

// FindRoot looks upwards for a directory holding .snaplist or snaplist.toml.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
