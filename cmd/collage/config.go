package main

import (
	"flag"
	"io"
	"strings"

	collage "github.com/gogpu/gg-collage"
	"github.com/gogpu/gg-collage/internal/store"
	"github.com/gogpu/gg-collage/internal/store/core"
)

// config is the command-line configuration. Store settings start from the
// COLLAGE_* environment and flags override them.
type config struct {
	script      string
	verbose     bool
	legacy      bool
	renderCache int
	metrics     string
	store       store.Config
}

func parseConfig(args []string, getenv func(string) string, stderr io.Writer) (config, error) {
	cfg := config{store: store.ConfigFromEnv(getenv)}

	fs := flag.NewFlagSet("collage", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.script, "file", "", "read commands from `path` instead of stdin")
	fs.BoolVar(&cfg.verbose, "v", false, "log render steps to stderr")
	fs.BoolVar(&cfg.legacy, "legacy-blend", false, "reproduce red-only writes of the blending filters")
	fs.IntVar(&cfg.renderCache, "render-cache", collage.DefaultRenderCache, "intermediate composites kept between renders, 0 to disable")
	fs.StringVar(&cfg.metrics, "metrics", "", "write render metrics in Prometheus text format to `path` on exit")
	driver := fs.String("store", string(cfg.store.Driver), "project store `driver`: fs, memory, s3 or sqlite")
	fs.StringVar(&cfg.store.Root, "root", cfg.store.Root, "project `directory` for the fs store")
	fs.StringVar(&cfg.store.SQLitePath, "db", cfg.store.SQLitePath, "database `path` for the sqlite store")
	fs.StringVar(&cfg.store.S3.Bucket, "bucket", cfg.store.S3.Bucket, "`bucket` for the s3 store")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	cfg.store.Driver = core.Driver(strings.ToLower(*driver))
	return cfg, nil
}
