// Package sqlite implements a core.Store as rows of a single SQLite table.
package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/gogpu/gg-collage/internal/store/core"
)

const schema = `CREATE TABLE IF NOT EXISTS documents (
	key          TEXT PRIMARY KEY,
	content_type TEXT NOT NULL DEFAULT '',
	etag         TEXT NOT NULL,
	payload      BLOB NOT NULL,
	updated_at   INTEGER NOT NULL
)`

// Store implements core.Store on a SQLite database file.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (creating if needed) the database at path.
func New(path string) (*Store, error) {
	if path == "" {
		path = "collage.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("sqlite: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create documents table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Driver returns core.DriverSQLite.
func (s *Store) Driver() core.Driver { return core.DriverSQLite }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Put inserts or replaces the document.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	key, err := core.CleanKey(key)
	if err != nil {
		return core.Info{}, err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return core.Info{}, fmt.Errorf("sqlite: read %s: %w", key, err)
	}
	info := core.Info{
		Key:          key,
		Size:         int64(len(body)),
		ContentType:  opts.ContentType,
		ETag:         core.ETag(body),
		LastModified: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO documents (key, content_type, etag, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			content_type = excluded.content_type,
			etag = excluded.etag,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		key, info.ContentType, info.ETag, body, info.LastModified.UnixNano())
	if err != nil {
		return core.Info{}, fmt.Errorf("sqlite: put %s: %w", key, err)
	}
	return info, nil
}

// Get loads the document.
func (s *Store) Get(ctx context.Context, key string) (core.Info, io.ReadCloser, error) {
	key, err := core.CleanKey(key)
	if err != nil {
		return core.Info{}, nil, err
	}
	var (
		info    = core.Info{Key: key}
		payload []byte
		updated int64
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT content_type, etag, payload, updated_at FROM documents WHERE key = ?`, key,
	).Scan(&info.ContentType, &info.ETag, &payload, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Info{}, nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	if err != nil {
		return core.Info{}, nil, fmt.Errorf("sqlite: get %s: %w", key, err)
	}
	info.Size = int64(len(payload))
	info.LastModified = time.Unix(0, updated).UTC()
	return info, io.NopCloser(bytes.NewReader(payload)), nil
}

// Delete removes the document, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	key, err := core.CleanKey(key)
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("sqlite: delete %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: delete %s: %w", key, err)
	}
	return n > 0, nil
}

// List returns the documents whose key starts with prefix, sorted by key.
func (s *Store) List(ctx context.Context, prefix string) ([]core.Info, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, content_type, etag, length(payload), updated_at
		FROM documents WHERE substr(key, 1, ?) = ? ORDER BY key`, utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list %q: %w", prefix, err)
	}
	defer func() { _ = rows.Close() }()

	var infos []core.Info
	for rows.Next() {
		var (
			info    core.Info
			updated int64
		)
		if err := rows.Scan(&info.Key, &info.ContentType, &info.ETag, &info.Size, &updated); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		info.LastModified = time.Unix(0, updated).UTC()
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list %q: %w", prefix, err)
	}
	return infos, nil
}
