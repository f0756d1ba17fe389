// Package core defines the document store abstraction shared by the
// storage drivers.
package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// Driver identifies a concrete store implementation.
type Driver string

const (
	// DriverFilesystem stores documents as files under a root directory.
	DriverFilesystem Driver = "fs" // default
	// DriverMemory keeps documents in process memory.
	DriverMemory Driver = "memory" // tests, scratch sessions
	// DriverS3 stores documents as objects in an S3-compatible bucket.
	DriverS3 Driver = "s3"
	// DriverSQLite stores documents as rows of a single SQLite table.
	DriverSQLite Driver = "sqlite"
)

// Store errors.
var (
	// ErrNotFound is returned by Get when no document has the key.
	ErrNotFound = errors.New("store: not found")

	// ErrInvalidKey is returned for empty, absolute or escaping keys.
	ErrInvalidKey = errors.New("store: invalid key")
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string // MIME type, optional
}

// Info describes a stored document.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Store is a flat key -> document store. Put replaces any existing
// document with the same key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// CleanKey validates key and returns it in canonical slash-separated form.
// Keys must be relative and must not climb out of the store with "..".
func CleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	key = strings.ReplaceAll(key, "\\", "/")
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: absolute key %q", ErrInvalidKey, key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: key %q contains '..'", ErrInvalidKey, key)
		}
	}
	clean := path.Clean(key)
	if clean == "." {
		return "", fmt.Errorf("%w: key %q names no document", ErrInvalidKey, key)
	}
	return clean, nil
}

// ETag returns the content hash drivers report for data.
func ETag(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
