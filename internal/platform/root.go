package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDirName is the directory holding the bucket inside a project.
const DataDirName = ".snaplist"

// ConfigFileName marks a project root as well.
const ConfigFileName = "snaplist.toml"

// FindRoot looks upwards from startDir for a project root.
// Indicators are: a .snaplist directory or a snaplist.toml file.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, DataDirName) || hasFile(dir, ConfigFileName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// DefaultDataDir picks where the list lives when nothing is configured:
// <root>/.snaplist inside a project, otherwise the user config directory.
func DefaultDataDir(startDir string) string {
	if root, err := FindRoot(startDir); err == nil {
		return filepath.Join(root, DataDirName)
	}
	if cfg, err := os.UserConfigDir(); err == nil {
		return filepath.Join(cfg, "snaplist")
	}
	return filepath.Join(startDir, DataDirName)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
