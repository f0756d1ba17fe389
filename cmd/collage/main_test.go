package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	collage "github.com/gogpu/gg-collage"
	"github.com/gogpu/gg-collage/internal/store/core"
)

func TestParseConfig(t *testing.T) {
	env := map[string]string{"COLLAGE_STORE_DRIVER": "sqlite", "COLLAGE_SQLITE_PATH": "env.db"}
	getenv := func(k string) string { return env[k] }

	cfg, err := parseConfig(nil, getenv, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.store.Driver != core.DriverSQLite || cfg.store.SQLitePath != "env.db" {
		t.Errorf("env config = %+v", cfg.store)
	}

	if cfg.renderCache != collage.DefaultRenderCache || cfg.metrics != "" {
		t.Errorf("default config = %+v", cfg)
	}

	cfg, err = parseConfig([]string{"-store", "FS", "-root", "/tmp/x", "-v", "-legacy-blend", "-file", "s.txt",
		"-render-cache", "0", "-metrics", "m.prom"}, getenv, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.store.Driver != core.DriverFilesystem || cfg.store.Root != "/tmp/x" || !cfg.verbose || !cfg.legacy || cfg.script != "s.txt" {
		t.Errorf("flag config = %+v", cfg)
	}
	if cfg.renderCache != 0 || cfg.metrics != "m.prom" {
		t.Errorf("render flags = %d, %q", cfg.renderCache, cfg.metrics)
	}

	if _, err := parseConfig([]string{"-nope"}, getenv, &bytes.Buffer{}); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestRunScriptFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(script, []byte("new-project 1 1\nsave-project a.c1\nquit\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(dir, "projects")
	t.Cleanup(func() { collage.SetLogger(nil) })

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-file", script, "-root", root, "-v"},
		func(string) string { return "" }, strings.NewReader(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() = %v", err)
	}
	if !strings.Contains(stdout.String(), "project saved: a.c1") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "project created") {
		t.Errorf("verbose log missing: %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(root, "a.c1")); err != nil {
		t.Errorf("project file missing: %v", err)
	}
}

func TestRunBadStore(t *testing.T) {
	err := run(context.Background(), []string{"-store", "tape"},
		func(string) string { return "" }, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Error("run() with unknown store succeeded")
	}
}

func TestRunWritesMetrics(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "metrics.prom")
	script := "new-project 1 1 add-layer a set-filter a red-component save-image " +
		filepath.Join(dir, "out.ppm") + " quit"

	err := run(context.Background(), []string{"-store", "memory", "-metrics", out},
		func(string) string { return "" }, strings.NewReader(script), &bytes.Buffer{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run() = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"collage_renders_total 1",
		`collage_filter_applications_total{filter="red-component"} 1`,
		"collage_layers 2",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q:\n%s", want, data)
		}
	}
}

func TestWriteMetricsBadPath(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := writeMetrics(filepath.Join(t.TempDir(), "missing", "m.prom"), reg); err == nil {
		t.Error("writeMetrics() into a missing directory succeeded")
	}
}
