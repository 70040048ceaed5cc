package core

// Form is the state of an in-progress add or edit.
// The pending photo is set by a completed capture and read on submit.
type Form struct {
	Description string
	Position    int // -1 when adding

	pendingPhoto *string
}

// NewAddForm returns an empty form that appends on submit.
func NewAddForm() *Form {
	return &Form{Position: -1}
}

// NewEditForm returns a form pre-filled with t that replaces position on submit.
// The task's current photo stays attached unless a new one is captured or it is cleared.
func NewEditForm(t Task, position int) *Form {
	f := &Form{Description: t.Description, Position: position}
	if t.HasImage() {
		f.SetPhoto(t.ImagePath)
	}
	return f
}

// IsEdit reports whether submitting the form updates an existing task.
func (f *Form) IsEdit() bool {
	return f.Position >= 0
}

// SetPhoto records path as the photo to attach on submit.
func (f *Form) SetPhoto(path string) {
	f.pendingPhoto = &path
}

// ClearPhoto drops any pending photo.
func (f *Form) ClearPhoto() {
	f.pendingPhoto = nil
}

// HasPhoto reports whether a photo is pending.
func (f *Form) HasPhoto() bool {
	return f.pendingPhoto != nil && *f.pendingPhoto != ""
}

// Photo returns the pending photo path, or "" if none.
func (f *Form) Photo() string {
	if f.pendingPhoto == nil {
		return ""
	}
	return *f.pendingPhoto
}

// Task builds the record to store. Blank descriptions are rejected.
func (f *Form) Task() (Task, error) {
	d, err := validDescription(f.Description)
	if err != nil {
		return Task{}, err
	}
	return NewTask(d, f.Photo()), nil
}
