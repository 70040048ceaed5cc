package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aretw0/snaplist/pkg/core"
)

// SQLiteFile is the database file buckets share under a data directory.
const SQLiteFile = "snaplist.db"

// SQLiteStore keeps buckets as rows of a single table in a SQLite database.
// Several buckets can share one database file.
type SQLiteStore struct {
	Path     string
	Bucket   string
	ReadOnly bool

	db *sql.DB
}

// OpenSQLiteStore opens (and, unless read-only, creates) the database at path.
func OpenSQLiteStore(path, bucket string, readOnly bool) (*SQLiteStore, error) {
	if !readOnly {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create bucket directory: %w", err)
		}
	}

	dsn := "file:" + path
	if readOnly {
		dsn += "?mode=ro"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{Path: path, Bucket: bucket, ReadOnly: readOnly, db: db}
	if !readOnly {
		if err := s.migrate(); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS prefs (
			bucket TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (bucket, key)
		);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", s.Path, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get implements Store. A read-only store over a missing database reads as empty.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.missing() {
		return "", false, nil
	}
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM prefs WHERE bucket = ? AND key = ?`, s.Bucket, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, key, value string) error {
	if s.ReadOnly {
		return core.ErrReadOnly
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prefs (bucket, key, value) VALUES (?, ?, ?)
		ON CONFLICT (bucket, key) DO UPDATE SET value = excluded.value`,
		s.Bucket, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if s.ReadOnly {
		return core.ErrReadOnly
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM prefs WHERE bucket = ? AND key = ?`, s.Bucket, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys implements Store.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	if s.missing() {
		return []string{}, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM prefs WHERE bucket = ? ORDER BY key`, s.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Invalidate is a no-op: every read goes to the database.
func (s *SQLiteStore) Invalidate() {}

// missing reports a read-only store whose database was never created.
func (s *SQLiteStore) missing() bool {
	if !s.ReadOnly {
		return false
	}
	_, err := os.Stat(s.Path)
	return errors.Is(err, os.ErrNotExist)
}

var _ Store = (*SQLiteStore)(nil)
