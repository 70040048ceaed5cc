package core

import "errors"

// Common errors.
var (
	ErrReadOnly         = errors.New("repository is in read-only mode")
	ErrEmptyDescription = errors.New("task description cannot be empty")
	ErrOutOfRange       = errors.New("task position out of range")
	ErrCorrupt          = errors.New("stored task list is malformed")
)
