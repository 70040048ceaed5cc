// Package core holds the task list domain: the Task record, the Repository port
// it is persisted through, and the Service that owns the ordered list.
package core

import (
	"fmt"
	"strings"
)

// Task is the central entity of the domain.
// Its identity is its position in the list; duplicates are allowed.
type Task struct {
	Description string `json:"task" yaml:"task"`
	ImagePath   string `json:"imagePath" yaml:"imagePath"` // Empty means no photo.
}

// NewTask creates a task with the given description and optional photo path.
func NewTask(description, imagePath string) Task {
	return Task{Description: description, ImagePath: imagePath}
}

// HasImage reports whether a photo path is attached.
func (t Task) HasImage() bool {
	return t.ImagePath != ""
}

func (t Task) String() string {
	if t.HasImage() {
		return fmt.Sprintf("%s [%s]", t.Description, t.ImagePath)
	}
	return t.Description
}

// validDescription trims user input and rejects blank descriptions.
func validDescription(raw string) (string, error) {
	d := strings.TrimSpace(raw)
	if d == "" {
		return "", ErrEmptyDescription
	}
	return d, nil
}

// EventType represents the type of change observed on the persisted list.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an external change to the store backing the list.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}
