package photo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ImagePattern matches the photo files considered by Orphans.
const ImagePattern = "**/*.{jpg,jpeg,png,JPG,JPEG,PNG}"

// Orphans lists image files under dir that no referenced path points to.
// Returned paths are absolute and sorted.
func Orphans(dir string, referenced []string) ([]string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(root), ImagePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan photos: %w", err)
	}

	inUse := make(map[string]bool, len(referenced))
	for _, p := range referenced {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			inUse[abs] = true
		}
	}

	var orphans []string
	for _, m := range matches {
		full := filepath.Join(root, filepath.FromSlash(m))
		if !inUse[full] {
			orphans = append(orphans, full)
		}
	}
	sort.Strings(orphans)
	return orphans, nil
}

// Prune deletes the orphans under dir and returns what was (or would be) removed.
func Prune(dir string, referenced []string, dryRun bool) ([]string, error) {
	orphans, err := Orphans(dir, referenced)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return orphans, nil
	}

	removed := make([]string, 0, len(orphans))
	for _, p := range orphans {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove %s: %w", p, err)
		}
		removed = append(removed, p)
	}
	return removed, nil
}
