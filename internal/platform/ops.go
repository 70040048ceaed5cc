package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/snaplist/pkg/adapters/kv"
	"github.com/aretw0/snaplist/pkg/adapters/prefs"
	"github.com/aretw0/snaplist/pkg/core"
)

// Init builds and initializes the repository for the data directory.
//
// It returns the configured core.Repository.
func Init(dataDir string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Pick the bucket
	store, err := buildStore(dataDir, o)
	if err != nil {
		return nil, err
	}

	repo := prefs.NewRepository(store,
		prefs.WithKey(o.key),
		prefs.WithRecoverCorrupt(o.recoverCorrupt),
		prefs.WithLogger(o.log()),
	)

	// 3. Run Initialization
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// New creates a Service over the data directory and loads the persisted list.
func New(ctx context.Context, dataDir string, opts ...Option) (*core.Service, error) {
	repo, err := Init(dataDir, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	service := core.NewService(repo, o.log())
	if err := service.Open(ctx); err != nil {
		return nil, err
	}
	return service, nil
}

// BucketPath returns the file the list is persisted in. For the sqlite
// adapter this is the shared database file.
func BucketPath(dataDir string, opts ...Option) (string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.adapter == "sqlite" {
		return filepath.Join(dataDir, kv.SQLiteFile), nil
	}
	codec, err := kv.CodecFor(o.format)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, o.bucket+codec.Ext()), nil
}

// NewStore builds the bucket the options describe without wrapping it in a
// repository. Callers that need the store itself (for example to invalidate
// it when the file changes) pass it back in with WithStore.
func NewStore(dataDir string, opts ...Option) (kv.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return buildStore(dataDir, o)
}

func buildStore(dataDir string, o *options) (kv.Store, error) {
	if o.store != nil {
		return o.store, nil
	}

	switch o.adapter {
	case "file":
		codec, err := kv.CodecFor(o.format)
		if err != nil {
			return nil, err
		}
		o.log().Debug("using file bucket", "dir", dataDir, "bucket", o.bucket, "format", codec.Ext())
		return kv.NewFileStore(kv.Config{
			Dir:      dataDir,
			Bucket:   o.bucket,
			Codec:    codec,
			ReadOnly: o.readOnly,
			Logger:   o.log(),
		}), nil
	case "sqlite":
		path := filepath.Join(dataDir, kv.SQLiteFile)
		o.log().Debug("using sqlite bucket", "path", path, "bucket", o.bucket)
		return kv.OpenSQLiteStore(path, o.bucket, o.readOnly)
	case "memory":
		return kv.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}
