package platform

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aretw0/snaplist/pkg/adapters/kv"
	"github.com/aretw0/snaplist/pkg/core"
)

func TestNew_FileAdapter(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	svc, err := New(ctx, dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := svc.Add(ctx, core.NewTask("Buy milk", "")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	path, err := BucketPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "shared_prefs.json") {
		t.Errorf("unexpected bucket path %s", path)
	}

	reopened, err := New(ctx, dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Len() != 1 {
		t.Errorf("expected 1 task after reopen, got %d", reopened.Len())
	}
}

func TestNew_YAMLAndCustomKey(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	opts := []Option{WithFormat("yaml"), WithBucket("prefs"), WithKey("todo")}

	svc, err := New(ctx, dir, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := svc.Add(ctx, core.NewTask("a", "")); err != nil {
		t.Fatal(err)
	}

	path, _ := BucketPath(dir, opts...)
	store := kv.OpenFileStore(path, true)
	if _, ok, err := store.Get(ctx, "todo"); err != nil || !ok {
		t.Errorf("expected key 'todo' in %s (ok=%v, err=%v)", path, ok, err)
	}
}

func TestNew_ReadOnly(t *testing.T) {
	ctx := context.Background()
	svc, err := New(ctx, t.TempDir(), WithReadOnly(true))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = svc.Add(ctx, core.NewTask("a", ""))
	if !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if svc.Len() != 0 {
		t.Errorf("read-only add must not change the list")
	}
}

func TestNew_CorruptPolicy(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_ = store.Put(ctx, "task_list", "{broken")

	if _, err := New(ctx, "", WithStore(store)); !errors.Is(err, core.ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}

	svc, err := New(ctx, "", WithStore(store), WithRecoverCorrupt(true))
	if err != nil {
		t.Fatalf("recover mode failed: %v", err)
	}
	if svc.Len() != 0 {
		t.Errorf("expected empty list, got %d", svc.Len())
	}
}

func TestInit_UnknownAdapter(t *testing.T) {
	if _, err := Init(t.TempDir(), WithAdapter("s3")); err == nil {
		t.Error("expected error for unknown adapter")
	}
	if _, err := Init(t.TempDir(), WithFormat("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestInit_InjectedRepository(t *testing.T) {
	mem, err := Init("", WithAdapter("memory"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Init("ignored", WithRepository(mem))
	if err != nil {
		t.Fatal(err)
	}
	if got != mem {
		t.Error("expected injected repository to be returned as is")
	}
}

func TestNewStore_SharedWithService(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	fs, ok := store.(*kv.FileStore)
	if !ok {
		t.Fatalf("expected *kv.FileStore, got %T", store)
	}

	svc, err := New(ctx, dir, WithStore(store))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, core.NewTask("a", "")); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := fs.Get(ctx, "task_list"); !ok {
		t.Error("expected the service to write through the shared store")
	}
}

func TestNew_SQLiteAdapter(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	svc, err := New(ctx, dir, WithAdapter("sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, core.NewTask("from sqlite", "")); err != nil {
		t.Fatal(err)
	}

	path, err := BucketPath(dir, WithAdapter("sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != kv.SQLiteFile {
		t.Errorf("expected %s, got %s", kv.SQLiteFile, path)
	}

	reopened, err := New(ctx, dir, WithAdapter("sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Len() != 1 || reopened.Tasks()[0].Description != "from sqlite" {
		t.Errorf("unexpected tasks after reopen: %+v", reopened.Tasks())
	}
}
