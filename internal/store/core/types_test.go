package core

import (
	"errors"
	"testing"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"poster.c1", "poster.c1", true},
		{"projects/poster.c1", "projects/poster.c1", true},
		{"projects//a/./b.c1", "projects/a/b.c1", true},
		{`win\style.c1`, "win/style.c1", true},
		{"a..b.c1", "a..b.c1", true},
		{"", "", false},
		{"   ", "", false},
		{"/etc/passwd", "", false},
		{"../up.c1", "", false},
		{"a/../../up.c1", "", false},
		{".", "", false},
	}
	for _, tt := range tests {
		got, err := CleanKey(tt.key)
		if tt.ok {
			if err != nil || got != tt.want {
				t.Errorf("CleanKey(%q) = %q, %v; want %q", tt.key, got, err, tt.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidKey) {
			t.Errorf("CleanKey(%q) error = %v, want ErrInvalidKey", tt.key, err)
		}
	}
}

func TestETag(t *testing.T) {
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := ETag(nil); got != empty {
		t.Errorf("ETag(nil) = %s", got)
	}
	if ETag([]byte("a")) == ETag([]byte("b")) {
		t.Error("ETag collides on different content")
	}
}
