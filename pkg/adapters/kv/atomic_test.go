package kv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New Bucket File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "shared_prefs.json")
		content := []byte(`{"task_list":"[]"}`)

		if err := writeFileAtomic(filename, content, 0644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("Expected %s, got %s", content, got)
		}
	})

	t.Run("Replaces Existing Bucket", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "shared_prefs.json")
		if err := os.WriteFile(filename, []byte("{}"), 0644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}

		next := []byte(`{"k":"v"}`)
		if err := writeFileAtomic(filename, next, 0644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		got, _ := os.ReadFile(filename)
		if string(got) != string(next) {
			t.Errorf("Expected %s, got %s", next, got)
		}
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 3; i++ {
			if err := writeFileAtomic(filepath.Join(dir, "b.json"), []byte("{}"), 0644); err != nil {
				t.Fatal(err)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), TempFilePrefix) {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing", "b.json")
		if err := writeFileAtomic(filename, []byte("{}"), 0644); err == nil {
			t.Error("Expected error when directory is missing, got nil")
		}
	})
}
