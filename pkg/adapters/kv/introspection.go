package kv

import (
	"context"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path     string `json:"path"`
	Format   string `json:"format"`
	Loaded   bool   `json:"loaded"`
	Keys     int    `json:"keys"`
	ReadOnly bool   `json:"read_only"`
}

// State implements introspection.Introspectable.
func (s *FileStore) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Path:     s.Path,
		Format:   s.codec.Ext(),
		Loaded:   s.loaded,
		Keys:     len(s.values),
		ReadOnly: s.config.ReadOnly,
	}
}

// ComponentType implements introspection.Component.
func (s *FileStore) ComponentType() string {
	return "kv-file"
}

// State implements introspection.Introspectable.
func (s *SQLiteStore) State() any {
	keys, err := s.Keys(context.Background())
	return StoreState{
		Path:     s.Path,
		Format:   "sqlite",
		Loaded:   err == nil,
		Keys:     len(keys),
		ReadOnly: s.ReadOnly,
	}
}

// ComponentType implements introspection.Component.
func (s *SQLiteStore) ComponentType() string {
	return "kv-sqlite"
}

var _ introspection.Introspectable = (*FileStore)(nil)
var _ introspection.Component = (*FileStore)(nil)
var _ introspection.Introspectable = (*SQLiteStore)(nil)
var _ introspection.Component = (*SQLiteStore)(nil)
