// Package storetest provides a conformance suite for core.Store drivers.
package storetest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gogpu/gg-collage/internal/store/core"
)

// Run exercises the behavior every driver must share. newStore must return
// an empty store.
func Run(t *testing.T, newStore func(t *testing.T) core.Store) {
	t.Helper()

	t.Run("PutGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		const doc = "C1\n1 1 255\ndefault-background normal\n255 255 255 255\n"

		info, err := s.Put(ctx, "projects/a.c1", strings.NewReader(doc), core.PutOptions{ContentType: "text/plain"})
		if err != nil {
			t.Fatalf("Put() = %v", err)
		}
		if info.Key != "projects/a.c1" || info.Size != int64(len(doc)) {
			t.Errorf("Put() info = %+v", info)
		}

		got, rc, err := s.Get(ctx, "projects/a.c1")
		if err != nil {
			t.Fatalf("Get() = %v", err)
		}
		defer rc.Close()
		body, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if string(body) != doc {
			t.Errorf("Get() body = %q, want %q", body, doc)
		}
		if got.Key != "projects/a.c1" || got.Size != int64(len(doc)) {
			t.Errorf("Get() info = %+v", got)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		put(t, s, "k", "first")
		put(t, s, "k", "second, longer")

		if body := get(t, s, "k"); body != "second, longer" {
			t.Errorf("Get() after overwrite = %q", body)
		}
		infos, err := s.List(ctx, "")
		if err != nil {
			t.Fatalf("List() = %v", err)
		}
		if len(infos) != 1 {
			t.Errorf("List() after overwrite = %d entries", len(infos))
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		s := newStore(t)
		if _, _, err := s.Get(context.Background(), "missing.c1"); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("Get(missing) = %v, want ErrNotFound", err)
		}
	})

	t.Run("InvalidKey", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, key := range []string{"", "../escape", "/abs"} {
			if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrInvalidKey) {
				t.Errorf("Put(%q) = %v, want ErrInvalidKey", key, err)
			}
			if _, _, err := s.Get(ctx, key); !errors.Is(err, core.ErrInvalidKey) {
				t.Errorf("Get(%q) = %v, want ErrInvalidKey", key, err)
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		put(t, s, "gone.ppm", "P3\n0 0\n255\n")

		existed, err := s.Delete(ctx, "gone.ppm")
		if err != nil || !existed {
			t.Fatalf("Delete() = %v, %v; want true, nil", existed, err)
		}
		existed, err = s.Delete(ctx, "gone.ppm")
		if err != nil || existed {
			t.Errorf("second Delete() = %v, %v; want false, nil", existed, err)
		}
		if _, _, err := s.Get(ctx, "gone.ppm"); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("Get(deleted) = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListPrefix", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, k := range []string{"projects/b.c1", "images/x.ppm", "projects/a.c1"} {
			put(t, s, k, k)
		}

		infos, err := s.List(ctx, "projects/")
		if err != nil {
			t.Fatalf("List() = %v", err)
		}
		var keys []string
		for _, in := range infos {
			keys = append(keys, in.Key)
		}
		if strings.Join(keys, ",") != "projects/a.c1,projects/b.c1" {
			t.Errorf("List(projects/) = %v", keys)
		}

		all, err := s.List(ctx, "")
		if err != nil {
			t.Fatalf("List(\"\") = %v", err)
		}
		if len(all) != 3 || all[0].Key != "images/x.ppm" {
			t.Errorf("List(\"\") = %+v", all)
		}
	})
}

func put(t *testing.T, s core.Store, key, body string) {
	t.Helper()
	if _, err := s.Put(context.Background(), key, strings.NewReader(body), core.PutOptions{}); err != nil {
		t.Fatalf("Put(%q) = %v", key, err)
	}
}

func get(t *testing.T, s core.Store, key string) string {
	t.Helper()
	_, rc, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get(%q) = %v", key, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %q: %v", key, err)
	}
	return string(b)
}
