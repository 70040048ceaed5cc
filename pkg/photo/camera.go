package photo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrPermissionDenied is returned when camera or storage access is not granted.
	ErrPermissionDenied = errors.New("camera and storage permissions are required")
	// ErrCaptureFailed is reported when the camera finishes without a photo.
	ErrCaptureFailed = errors.New("photo capture failed")
)

// Result is the outcome of one capture.
type Result struct {
	Path string
	Err  error
}

// OK reports whether the capture produced a photo.
func (r Result) OK() bool {
	return r.Err == nil
}

// Camera captures a photo into dest and reports exactly once through done.
// done may run before Capture returns or later from another goroutine.
type Camera interface {
	Capture(ctx context.Context, dest string, done func(Result))
}

// FileCamera "captures" by copying an existing image into the destination.
// It stands in for a device camera on the command line.
type FileCamera struct {
	Source string
}

// Capture implements Camera.
func (c FileCamera) Capture(ctx context.Context, dest string, done func(Result)) {
	if err := ctx.Err(); err != nil {
		done(Result{Path: dest, Err: err})
		return
	}
	if err := copyFile(c.Source, dest); err != nil {
		done(Result{Path: dest, Err: fmt.Errorf("%w: %v", ErrCaptureFailed, err)})
		return
	}
	done(Result{Path: dest})
}

// CameraFunc adapts a function to the Camera interface.
type CameraFunc func(ctx context.Context, dest string, done func(Result))

// Capture implements Camera.
func (f CameraFunc) Capture(ctx context.Context, dest string, done func(Result)) {
	f(ctx, dest, done)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Permissions reports and requests camera/storage access.
type Permissions interface {
	Granted() bool
	Request()
}

// StaticPermissions is a fixed grant, e.g. from a flag. It counts requests.
type StaticPermissions struct {
	Allowed  bool
	Requests int
}

func (p *StaticPermissions) Granted() bool { return p.Allowed }

func (p *StaticPermissions) Request() { p.Requests++ }
