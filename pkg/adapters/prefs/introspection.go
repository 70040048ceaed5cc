package prefs

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Key            string `json:"key"`
	RecoverCorrupt bool   `json:"recover_corrupt"`
	Store          any    `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	state := RepositoryState{
		Key:            r.key,
		RecoverCorrupt: r.recoverCorrupt,
	}
	if in, ok := r.store.(introspection.Introspectable); ok {
		state.Store = in.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "prefs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
