// Package kv implements a flat key-value "preference bucket": a named set of
// string values, persisted as one small file.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/aretw0/snaplist/pkg/core"
)

// Store is a flat string key-value bucket.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put stores value under key, replacing any prior value.
	Put(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists the stored keys in sorted order.
	Keys(ctx context.Context) ([]string, error)
}

// CorruptSuffix is appended to a bucket file that could not be decoded
// when it is set aside.
const CorruptSuffix = ".corrupt"

// Recoverer is implemented by stores that can drop undecodable contents
// and start over empty.
type Recoverer interface {
	Recover(ctx context.Context) error
}

// Config holds the configuration for a file-backed bucket.
type Config struct {
	Dir      string // Directory holding bucket files.
	Bucket   string // Bucket name, e.g. "shared_prefs".
	Codec    Codec  // Defaults to JSONCodec.
	ReadOnly bool
	Logger   *slog.Logger
}

// FileStore is a bucket persisted to <Dir>/<Bucket><ext>.
// The file is read once on first access; every write rewrites it atomically.
type FileStore struct {
	Path   string
	config Config
	codec  Codec

	mu     sync.RWMutex
	values map[string]string
	loaded bool
}

// NewFileStore creates a file-backed bucket. Nothing is read until first use.
func NewFileStore(config Config) *FileStore {
	codec := config.Codec
	if codec == nil {
		codec = JSONCodec{}
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &FileStore{
		Path:   filepath.Join(config.Dir, config.Bucket+codec.Ext()),
		config: config,
		codec:  codec,
	}
}

// OpenFileStore creates a bucket for an existing file path, picking the codec from its extension.
func OpenFileStore(path string, readOnly bool) *FileStore {
	codec := codecForPath(path)
	return &FileStore{
		Path:   path,
		config: Config{Dir: filepath.Dir(path), ReadOnly: readOnly, Logger: slog.New(slog.DiscardHandler)},
		codec:  codec,
	}
}

// Initialize ensures the bucket directory exists.
func (s *FileStore) Initialize(ctx context.Context) error {
	if s.config.ReadOnly {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create bucket directory: %w", err)
	}
	return nil
}

// Invalidate drops the in-memory copy so the next access re-reads the file.
func (s *FileStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.values = nil
}

func (s *FileStore) loadLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.values = make(map[string]string)
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read bucket %s: %w", s.Path, err)
	}

	values, err := s.codec.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: failed to decode bucket %s: %v", core.ErrCorrupt, s.Path, err)
	}

	s.values = values
	s.loaded = true
	s.config.Logger.Debug("bucket loaded", "path", s.Path, "keys", len(values))
	return nil
}

func (s *FileStore) persistLocked(next map[string]string) error {
	data, err := s.codec.Encode(next)
	if err != nil {
		return fmt.Errorf("failed to encode bucket: %w", err)
	}
	if err := writeFileAtomic(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bucket: %w", err)
	}
	s.values = next
	return nil
}

// Recover sets an undecodable bucket file aside as <path>.corrupt and
// continues with an empty bucket. Read-only stores only reset the cache.
func (s *FileStore) Recover(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.ReadOnly {
		if err := os.Rename(s.Path, s.Path+CorruptSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to back up bucket %s: %w", s.Path, err)
		}
	}
	s.values = make(map[string]string)
	s.loaded = true
	s.config.Logger.Warn("bucket file set aside", "path", s.Path, "backup", s.Path+CorruptSuffix)
	return nil
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return "", false, err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Put implements Store.
func (s *FileStore) Put(ctx context.Context, key, value string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}
	next := maps.Clone(s.values)
	next[key] = value
	return s.persistLocked(next)
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}
	if _, ok := s.values[key]; !ok {
		return nil
	}
	next := maps.Clone(s.values)
	delete(next, key)
	return s.persistLocked(next)
}

// Keys implements Store.
func (s *FileStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(s.values)), nil
}

// MemoryStore is a Store kept entirely in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory bucket.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Put(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.values)), nil
}

var _ Store = (*FileStore)(nil)
var _ Recoverer = (*FileStore)(nil)
var _ Store = (*MemoryStore)(nil)
