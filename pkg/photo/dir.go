// Package photo handles task photos: where they are stored, how a capture is
// requested and resolved, and which stored photos no task refers to anymore.
package photo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// FilePrefix starts every photo file name.
	FilePrefix = "JPEG_"
	// FileExt is the extension of captured photos.
	FileExt = ".jpg"
	// timestampLayout renders as yyyyMMdd_HHmmss.
	timestampLayout = "20060102_150405"
)

// Dir is the directory photos are captured into.
type Dir struct {
	Path string
	now  func() time.Time
}

// NewDir returns a photo directory rooted at path.
func NewDir(path string) *Dir {
	return &Dir{Path: path, now: time.Now}
}

// Create makes a new empty destination file and returns its absolute path.
// Names follow JPEG_<yyyyMMdd_HHmmss>_<random>.jpg.
func (d *Dir) Create() (string, error) {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return "", fmt.Errorf("failed to create photo directory: %w", err)
	}

	pattern := FilePrefix + d.now().Format(timestampLayout) + "_*" + FileExt
	f, err := os.CreateTemp(d.Path, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create photo file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return name, nil
	}
	return abs, nil
}
