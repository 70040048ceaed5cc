package platform

import (
	"log/slog"

	"github.com/aretw0/snaplist/pkg/adapters/kv"
	"github.com/aretw0/snaplist/pkg/core"
)

// options holds the internal configuration for the snaplist service.
type options struct {
	repository     core.Repository
	store          kv.Store
	logger         *slog.Logger
	adapter        string
	bucket         string
	key            string
	format         string
	readOnly       bool
	recoverCorrupt bool
}

// Option defines a functional option for configuring snaplist.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "file",
		bucket:  "shared_prefs",
		key:     "task_list",
		format:  "json",
	}
}

func (o *options) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a ready-made repository (e.g. a mock).
// If provided, the store options are ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithStore injects the key-value bucket the list is persisted in.
func WithStore(store kv.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name ("file", "sqlite" or "memory").
// Defaults to "file".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithBucket sets the preference bucket name. Defaults to "shared_prefs".
func WithBucket(name string) Option {
	return func(o *options) {
		if name != "" {
			o.bucket = name
		}
	}
}

// WithKey sets the key the list is stored under. Defaults to "task_list".
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithFormat sets the bucket file format ("json" or "yaml").
func WithFormat(format string) Option {
	return func(o *options) {
		if format != "" {
			o.format = format
		}
	}
}

// WithReadOnly enables read-only mode: every mutation returns core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithRecoverCorrupt treats a malformed stored list as empty instead of failing.
func WithRecoverCorrupt(enabled bool) Option {
	return func(o *options) {
		o.recoverCorrupt = enabled
	}
}
