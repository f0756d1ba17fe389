// Command collage builds layered image collages from a command script.
//
// Commands are read as whitespace-separated tokens from stdin, or from the
// file given with -file:
//
//	new-project <height> <width>
//	load-project <key>
//	save-project <key>
//	add-layer <name>
//	add-image-to-layer <layer> <image-path> <x> <y> <format>
//	set-filter <layer> <filter>
//	save-image <path>
//	list-projects
//	help
//	quit
//
// Projects are kept in the store selected by -store or COLLAGE_STORE_DRIVER.
// Images are read from and written to the local filesystem. With -metrics,
// render counters are written in the Prometheus text format when the session
// ends.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	collage "github.com/gogpu/gg-collage"
	"github.com/gogpu/gg-collage/internal/store"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "collage:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, getenv, stderr)
	if err != nil {
		return err
	}
	if cfg.verbose {
		collage.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	st, err := store.Open(ctx, cfg.store)
	if err != nil {
		return err
	}
	if c, ok := st.(io.Closer); ok {
		defer c.Close()
	}

	in := stdin
	if cfg.script != "" {
		f, err := os.Open(cfg.script)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	opts := []collage.Option{collage.WithRenderCache(cfg.renderCache)}
	if cfg.legacy {
		opts = append(opts, collage.WithLegacyChannelWrites())
	}
	var reg *prometheus.Registry
	if cfg.metrics != "" {
		reg = prometheus.NewRegistry()
		m, err := collage.NewMetrics(reg)
		if err != nil {
			return err
		}
		opts = append(opts, collage.WithMetrics(m))
	}

	err = newRunner(st, stdout, opts...).run(ctx, in)
	if reg != nil {
		if werr := writeMetrics(cfg.metrics, reg); err == nil {
			err = werr
		}
	}
	return err
}
