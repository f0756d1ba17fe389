// Package store selects and opens a document store driver.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/gogpu/gg-collage/internal/store/core"
	"github.com/gogpu/gg-collage/internal/store/fs"
	"github.com/gogpu/gg-collage/internal/store/memory"
	"github.com/gogpu/gg-collage/internal/store/s3"
	"github.com/gogpu/gg-collage/internal/store/sqlite"
)

// Store re-exports the driver interface.
type Store = core.Store

// Config selects a driver and carries its settings.
type Config struct {
	Driver     core.Driver // default fs
	Root       string      // fs root directory
	S3         s3.Config
	SQLitePath string
}

// ConfigFromEnv builds a Config from environment variables:
//
//	COLLAGE_STORE_DRIVER: fs|memory|s3|sqlite (default fs)
//	COLLAGE_STORE_ROOT: directory root when driver=fs
//	COLLAGE_S3_BUCKET, COLLAGE_S3_REGION, COLLAGE_S3_ENDPOINT,
//	COLLAGE_S3_PATH_STYLE=true|false: s3 settings
//	COLLAGE_SQLITE_PATH: database file when driver=sqlite
//
// S3 credentials come from the standard AWS variables.
func ConfigFromEnv(getenv func(string) string) Config {
	return Config{
		Driver: core.Driver(strings.ToLower(getenv("COLLAGE_STORE_DRIVER"))),
		Root:   getenv("COLLAGE_STORE_ROOT"),
		S3: s3.Config{
			Bucket:    getenv("COLLAGE_S3_BUCKET"),
			Region:    getenv("COLLAGE_S3_REGION"),
			Endpoint:  getenv("COLLAGE_S3_ENDPOINT"),
			PathStyle: strings.EqualFold(getenv("COLLAGE_S3_PATH_STYLE"), "true"),
		},
		SQLitePath: getenv("COLLAGE_SQLITE_PATH"),
	}
}

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", core.DriverFilesystem:
		return fs.New(cfg.Root)
	case core.DriverMemory:
		return memory.New(), nil
	case core.DriverS3:
		return s3.New(ctx, cfg.S3)
	case core.DriverSQLite:
		return sqlite.New(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
