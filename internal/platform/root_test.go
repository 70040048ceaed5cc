package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   project/ (.snaplist)
	//     subdir/nested/
	//   configured/ (snaplist.toml)
	//   empty/
	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	nestedDir := filepath.Join(projectDir, "subdir", "nested")
	configuredDir := filepath.Join(baseDir, "configured")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, d := range []string{nestedDir, configuredDir, emptyDir, filepath.Join(projectDir, DataDirName)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(configuredDir, ConfigFileName), nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: projectDir, wantRoot: projectDir},
		{name: "Start Nested Deeply", startPath: nestedDir, wantRoot: projectDir},
		{name: "Config File Marker", startPath: configuredDir, wantRoot: configuredDir},
		{name: "No Root Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != "" && filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}

	t.Run("Default Data Dir Inside Project", func(t *testing.T) {
		want := filepath.Join(projectDir, DataDirName)
		if got := DefaultDataDir(nestedDir); filepath.Clean(got) != filepath.Clean(want) {
			t.Errorf("DefaultDataDir() = %v, want %v", got, want)
		}
	})
}
