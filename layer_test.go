package collage

import (
	"errors"
	"slices"
	"testing"
)

func TestLayerStackBackgroundFirst(t *testing.T) {
	s := newLayerStack()
	if s.background() != nil || s.len() != 0 {
		t.Fatal("empty stack has layers")
	}

	if err := s.push(&Layer{name: "a"}); !errors.Is(err, errBackgroundSlot) {
		t.Fatalf("push(a) on empty stack = %v, want errBackgroundSlot", err)
	}
	if err := s.push(&Layer{name: DefaultBackground}); err != nil {
		t.Fatalf("push(background) = %v", err)
	}
	if err := s.push(&Layer{name: DefaultBackground}); !errors.Is(err, errDuplicateLayer) {
		t.Fatalf("second push(background) = %v, want errDuplicateLayer", err)
	}
	for _, name := range []string{"a", "b", "c"} {
		if err := s.push(&Layer{name: name}); err != nil {
			t.Fatalf("push(%s) = %v", name, err)
		}
	}
	if err := s.push(&Layer{name: "b"}); !errors.Is(err, errDuplicateLayer) {
		t.Fatalf("push(b) again = %v, want errDuplicateLayer", err)
	}

	if got := s.names(); !slices.Equal(got, []string{DefaultBackground, "a", "b", "c"}) {
		t.Errorf("names() = %v", got)
	}
	if s.background().name != DefaultBackground {
		t.Errorf("background() = %s", s.background().name)
	}
	if s.len() != 4 {
		t.Errorf("len() = %d, want 4", s.len())
	}
	l, err := s.get("c")
	if err != nil || l.name != "c" {
		t.Errorf("get(c) = %v, %v", l, err)
	}
	if _, err := s.get("z"); !errors.Is(err, errUnknownLayer) {
		t.Errorf("get(z) = %v, want errUnknownLayer", err)
	}
}

func TestValidLayerName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"a", true},
		{"layer-1", true},
		{"überschrift", true},
		{"", false},
		{"a b", false},
		{"a\nb", false},
		{" lead", false},
		{"trail\t", false},
		{"nb\u00a0sp", false},
	}
	for _, tt := range tests {
		if err := validLayerName(tt.name); (err == nil) != tt.ok {
			t.Errorf("validLayerName(%q) = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestLayerStackRenderKeys(t *testing.T) {
	s := newLayerStack()
	bg, a := &Layer{name: DefaultBackground}, &Layer{name: "a"}
	mustDo(t, s.push(bg))
	mustDo(t, s.push(a))

	before := s.renderKeys()
	if len(before) != 2 || before[0] != "1" || before[1] != "1.2" {
		t.Fatalf("renderKeys() = %q", before)
	}

	s.touch(a)
	after := s.renderKeys()
	if after[0] != before[0] {
		t.Errorf("touching the top layer changed the background key: %q", after[0])
	}
	if after[1] == before[1] {
		t.Errorf("touching layer a kept key %q", after[1])
	}
}
