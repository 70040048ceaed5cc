package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/snaplist/internal/platform"
	"github.com/aretw0/snaplist/internal/watch"
	"github.com/aretw0/snaplist/pkg/adapters/kv"
	"github.com/aretw0/snaplist/pkg/adapters/prefs"
	"github.com/aretw0/snaplist/pkg/core"
	"github.com/aretw0/snaplist/pkg/photo"
)

// app bundles what the commands share once the config is loaded.
type app struct {
	store kv.Store
	list  *core.Service
}

func openApp(ctx context.Context) (*app, error) {
	opts := []platform.Option{
		platform.WithLogger(logger.Logger),
		platform.WithAdapter(cfg.Adapter),
		platform.WithBucket(cfg.Bucket),
		platform.WithKey(cfg.Key),
		platform.WithFormat(cfg.Format),
		platform.WithReadOnly(cfg.ReadOnly),
		platform.WithRecoverCorrupt(cfg.RecoverCorrupt),
	}

	store, err := platform.NewStore(cfg.DataDir, opts...)
	if err != nil {
		return nil, err
	}
	list, err := platform.New(ctx, cfg.DataDir, append(opts, platform.WithStore(store))...)
	if err != nil {
		return nil, err
	}
	return &app{store: store, list: list}, nil
}

func mustOpen(ctx context.Context) *app {
	a, err := openApp(ctx)
	if err != nil {
		if errors.Is(err, core.ErrCorrupt) {
			fatal("Stored list is unreadable (set recover_corrupt = true to start over)", err)
		}
		fatal("Failed to open task list", err)
	}
	return a
}

// watchTarget returns the file backing the bucket and the store to
// invalidate when it changes. Memory buckets cannot be watched.
func (a *app) watchTarget() (string, watch.Invalidator, bool) {
	switch s := a.store.(type) {
	case *kv.FileStore:
		return s.Path, s, true
	case *kv.SQLiteStore:
		return s.Path, s, true
	default:
		return "", nil, false
	}
}

// corruptBackups lists the data set aside by a recover-as-empty load.
// Photos those backups refer to are not visible in the live list.
func (a *app) corruptBackups(ctx context.Context) []string {
	var found []string
	backupKey := cfg.Key + prefs.CorruptSuffix
	if _, ok, err := a.store.Get(ctx, backupKey); err == nil && ok {
		found = append(found, "key "+backupKey)
	}
	if fs, ok := a.store.(*kv.FileStore); ok {
		if _, err := os.Stat(fs.Path + kv.CorruptSuffix); err == nil {
			found = append(found, fs.Path+kv.CorruptSuffix)
		}
	}
	return found
}

// capturer builds the photo flow for a source image on disk.
func (a *app) capturer(src string) *photo.Capturer {
	return &photo.Capturer{
		Dir:         photo.NewDir(cfg.PhotoDir),
		Camera:      photo.FileCamera{Source: src},
		Permissions: &photo.StaticPermissions{Allowed: cfg.AllowCamera},
		Logger:      logger.Logger,
	}
}

// attachPhoto captures src into the photo dir and sets it on form.
// Failures are reported and the form keeps going without a new photo.
func (a *app) attachPhoto(ctx context.Context, form *core.Form, src string) {
	req, err := a.capturer(src).CapturePhoto(ctx, form)
	if err != nil {
		logger.Warn("photo not attached", "source", src, "error", err)
		return
	}
	select {
	case <-req.Done():
	case <-ctx.Done():
		req.Cancel()
	}
	if res, _ := req.Result(); !res.OK() {
		logger.Warn("photo not attached", "source", src, "error", res.Err)
	}
}

func parsePosition(s string) (int, error) {
	pos, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	return pos, nil
}
