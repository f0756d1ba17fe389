package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	collage "github.com/gogpu/gg-collage"
	"github.com/gogpu/gg-collage/internal/store"
	"github.com/gogpu/gg-collage/internal/store/core"
)

const projectContentType = "text/plain; charset=utf-8"

var errMissingArgument = errors.New("missing argument")

// runner executes collage commands against one project session.
type runner struct {
	project *collage.Project
	store   store.Store
	out     io.Writer
}

func newRunner(st store.Store, out io.Writer, opts ...collage.Option) *runner {
	return &runner{project: collage.New(opts...), store: st, out: out}
}

// run executes commands until quit or end of input. Command failures are
// reported on the output and do not stop the session; only read errors do.
func (r *runner) run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	next := func() (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errMissingArgument
	}

	for sc.Scan() {
		cmd := sc.Text()
		if cmd == "quit" {
			r.say("bye")
			return nil
		}
		msg, err := r.exec(ctx, cmd, next)
		switch {
		case errors.Is(err, errMissingArgument):
			r.say("error: %s: %v", cmd, err)
			return nil
		case err != nil:
			r.say("error: %v", err)
		default:
			r.say("%s", msg)
		}
	}
	return sc.Err()
}

func (r *runner) exec(ctx context.Context, cmd string, next func() (string, error)) (string, error) {
	switch cmd {
	case "new-project":
		h, w, err := intPair(next, "canvas height", "canvas width")
		if err != nil {
			return "", err
		}
		if err := r.project.NewProject(h, w); err != nil {
			return "", err
		}
		return fmt.Sprintf("project created: %dx%d", h, w), nil

	case "load-project":
		key, err := next()
		if err != nil {
			return "", err
		}
		return r.loadProject(ctx, key)

	case "save-project":
		key, err := next()
		if err != nil {
			return "", err
		}
		return r.saveProject(ctx, key)

	case "add-layer":
		name, err := next()
		if err != nil {
			return "", err
		}
		if err := r.project.AddLayer(name); err != nil {
			return "", err
		}
		return "layer added: " + name, nil

	case "add-image-to-layer":
		args, err := take(next, 5)
		if err != nil {
			return "", err
		}
		return r.addImage(args[0], args[1], args[2], args[3], args[4])

	case "set-filter":
		args, err := take(next, 2)
		if err != nil {
			return "", err
		}
		if err := r.project.SetFilter(args[0], args[1]); err != nil {
			return "", err
		}
		return fmt.Sprintf("filter set: %s %s", args[0], args[1]), nil

	case "save-image":
		path, err := next()
		if err != nil {
			return "", err
		}
		return r.saveImage(path)

	case "list-projects":
		return r.listProjects(ctx)

	case "help":
		return usage(), nil
	}
	return "", fmt.Errorf("unknown command %q", cmd)
}

func (r *runner) loadProject(ctx context.Context, key string) (string, error) {
	_, rc, err := r.store.Get(ctx, key)
	if errors.Is(err, core.ErrNotFound) {
		return "", fmt.Errorf("project %s does not exist", key)
	}
	if err != nil {
		return "", err
	}
	defer rc.Close()
	if err := r.project.LoadProject(rc); err != nil {
		return "", err
	}
	return fmt.Sprintf("project loaded: %s (%d layers)", key, len(r.project.LayerNames())), nil
}

func (r *runner) saveProject(ctx context.Context, key string) (string, error) {
	text, err := r.project.ProjectText()
	if err != nil {
		return "", err
	}
	info, err := r.store.Put(ctx, key, strings.NewReader(text), core.PutOptions{ContentType: projectContentType})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("project saved: %s (%d bytes)", info.Key, info.Size), nil
}

func (r *runner) addImage(layer, path, xs, ys, format string) (string, error) {
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		return "", fmt.Errorf("invalid offset %s %s: x and y must be non-negative integers", xs, ys)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := r.project.AddImage(layer, f, x, y, format); err != nil {
		return "", err
	}
	return fmt.Sprintf("image added: %s -> %s at (%d,%d)", path, layer, x, y), nil
}

func (r *runner) saveImage(path string) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := r.project.SaveImage(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("image saved: %s (%s)", path, r.project.FileExtension()), nil
}

func (r *runner) listProjects(ctx context.Context) (string, error) {
	infos, err := r.store.List(ctx, "")
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "no projects", nil
	}
	keys := make([]string, len(infos))
	for i, in := range infos {
		keys[i] = in.Key
	}
	return strings.Join(keys, "\n"), nil
}

func (r *runner) say(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func take(next func() (string, error), n int) ([]string, error) {
	out := make([]string, n)
	for i := range out {
		s, err := next()
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func intPair(next func() (string, error), a, b string) (int, int, error) {
	args, err := take(next, 2)
	if err != nil {
		return 0, 0, err
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%s %q is not an integer", a, args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%s %q is not an integer", b, args[1])
	}
	return x, y, nil
}

func usage() string {
	return `commands:
  new-project <height> <width>
  load-project <key>
  save-project <key>
  add-layer <name>
  add-image-to-layer <layer> <image-path> <x> <y> <format>
  set-filter <layer> <filter>    filters: ` + strings.Join(collage.Filters(), ", ") + `
  save-image <path>
  list-projects
  quit`
}
