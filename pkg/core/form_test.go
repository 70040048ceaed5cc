package core

import (
	"errors"
	"testing"
)

func TestForm(t *testing.T) {
	t.Run("Add Form Has No Photo", func(t *testing.T) {
		f := NewAddForm()
		if f.IsEdit() || f.HasPhoto() || f.Photo() != "" {
			t.Errorf("unexpected add form state: %+v", f)
		}
	})

	t.Run("Edit Form Carries Existing Photo", func(t *testing.T) {
		f := NewEditForm(NewTask("a", "/a.jpg"), 3)
		if !f.IsEdit() || f.Position != 3 {
			t.Errorf("expected edit form at 3, got %+v", f)
		}
		if f.Photo() != "/a.jpg" {
			t.Errorf("expected pending photo /a.jpg, got %q", f.Photo())
		}

		f.ClearPhoto()
		if f.HasPhoto() {
			t.Error("photo should be cleared")
		}
	})

	t.Run("Task Trims Description", func(t *testing.T) {
		f := NewAddForm()
		f.Description = "  hello \n"
		task, err := f.Task()
		if err != nil {
			t.Fatal(err)
		}
		if task.Description != "hello" || task.ImagePath != "" {
			t.Errorf("unexpected task %+v", task)
		}
	})

	t.Run("Task Rejects Blank", func(t *testing.T) {
		f := NewAddForm()
		f.Description = "   "
		f.SetPhoto("/x.jpg")
		if _, err := f.Task(); !errors.Is(err, ErrEmptyDescription) {
			t.Errorf("expected ErrEmptyDescription, got %v", err)
		}
	})
}
