package core

import "context"

// Repository defines the contract for persisting the task list.
// The list is always stored and retrieved as a whole; there are no partial updates.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (preference bucket, memory, anything else).
type Repository interface {
	// Load returns the persisted list in order. An absent list is an empty one.
	Load(ctx context.Context) ([]Task, error)

	// Save replaces the persisted list with tasks.
	Save(ctx context.Context, tasks []Task) error

	// Initialize ensures the underlying storage is ready (e.g., create directories).
	Initialize(ctx context.Context) error
}

// Observer receives positional change notifications from the Service.
// Callbacks run synchronously after the change has been persisted.
type Observer interface {
	// Inserted reports a new task at index.
	Inserted(index int)
	// Changed reports that the task at index was replaced.
	Changed(index int)
	// Removed reports that the task formerly at index is gone.
	Removed(index int)
	// RangeChanged reports that count tasks starting at start moved or changed.
	RangeChanged(start, count int)
	// Reset reports that the whole list was replaced and now holds count tasks.
	Reset(count int)
}

// Editor presents an edit form for the task at a position.
type Editor interface {
	Edit(t Task, position int)
}
