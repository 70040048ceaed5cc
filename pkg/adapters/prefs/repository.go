// Package prefs persists the task list as a single JSON document stored under a
// fixed key in a key-value preference bucket.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/snaplist/pkg/adapters/kv"
	"github.com/aretw0/snaplist/pkg/core"
)

const (
	// DefaultBucket is the preference bucket holding the list.
	DefaultBucket = "shared_prefs"
	// DefaultKey is the key the list is stored under.
	DefaultKey = "task_list"
	// CorruptSuffix is appended to the key when a malformed value is set aside.
	CorruptSuffix = ".corrupt"
)

// Repository implements core.Repository on top of a kv.Store.
//
// The whole list is encoded as a JSON array of {"task", "imagePath"} objects.
// Every Save rewrites it; there are no partial updates.
type Repository struct {
	store          kv.Store
	key            string
	recoverCorrupt bool
	logger         *slog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithKey overrides the key the list is stored under.
func WithKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.key = key
		}
	}
}

// WithRecoverCorrupt selects the policy for malformed stored data.
// When false (the default) Load fails with core.ErrCorrupt.
// When true Load logs a warning, moves the bad value to <key>.corrupt and
// returns an empty list.
func WithRecoverCorrupt(enabled bool) Option {
	return func(r *Repository) {
		r.recoverCorrupt = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRepository creates a gateway over store.
func NewRepository(store kv.Store, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		key:    DefaultKey,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the key the list is stored under.
func (r *Repository) Key() string {
	return r.key
}

// Initialize prepares the underlying store if it needs it.
func (r *Repository) Initialize(ctx context.Context) error {
	if init, ok := r.store.(interface{ Initialize(context.Context) error }); ok {
		return init.Initialize(ctx)
	}
	return nil
}

// Load reads the list. A missing value is an empty list.
func (r *Repository) Load(ctx context.Context) ([]core.Task, error) {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		if !r.recoverCorrupt || !errors.Is(err, core.ErrCorrupt) {
			return nil, err
		}
		rec, canRecover := r.store.(kv.Recoverer)
		if !canRecover {
			return nil, err
		}
		r.logger.Warn("bucket is malformed, starting empty", "key", r.key, "error", err)
		if rerr := rec.Recover(ctx); rerr != nil {
			return nil, rerr
		}
		return []core.Task{}, nil
	}
	if !ok {
		return []core.Task{}, nil
	}

	tasks, err := Decode([]byte(raw))
	if err == nil {
		return tasks, nil
	}

	if !r.recoverCorrupt {
		return nil, err
	}

	r.logger.Warn("stored task list is malformed, starting empty",
		"key", r.key,
		"backup_key", r.key+CorruptSuffix,
		"error", err,
	)
	if perr := r.store.Put(ctx, r.key+CorruptSuffix, raw); perr != nil && !errors.Is(perr, core.ErrReadOnly) {
		return nil, fmt.Errorf("failed to back up malformed task list: %w", perr)
	}
	return []core.Task{}, nil
}

// Save encodes tasks and replaces the stored value.
func (r *Repository) Save(ctx context.Context, tasks []core.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.key, string(data)); err != nil {
		return err
	}
	r.logger.Debug("task list saved", "key", r.key, "count", len(tasks))
	return nil
}

// Encode renders tasks as the stored JSON document. A nil list encodes as [].
func Encode(tasks []core.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []core.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task list: %w", err)
	}
	return data, nil
}

// Decode parses a stored JSON document. Malformed input wraps core.ErrCorrupt.
// A JSON null decodes to an empty list and a missing imagePath to "".
func Decode(data []byte) ([]core.Task, error) {
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrCorrupt, err)
	}

	var tasks []core.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrCorrupt, err)
	}
	if tasks == nil {
		tasks = []core.Task{}
	}
	return tasks, nil
}

var _ core.Repository = (*Repository)(nil)
