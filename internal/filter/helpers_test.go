package filter

import (
	"testing"

	"github.com/gogpu/gg-collage/internal/color"
	"github.com/gogpu/gg-collage/internal/image"
)

// Test helper functions shared across filter tests.

// gridOf creates a 1 x len(pix) grid holding the given pixels.
func gridOf(t *testing.T, maxValue int, pix ...color.Pixel) *image.Grid {
	t.Helper()
	g, err := image.NewGrid(1, len(pix), maxValue)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	for i, p := range pix {
		g.Set(0, i, p.R, p.G, p.B, p.A)
	}
	return g
}

// rgba builds an untagged pixel.
func rgba(r, g, b, a int) color.Pixel {
	return color.Pixel{R: r, G: g, B: b, A: a}
}

// apply runs Apply and fails the test on error.
func apply(t *testing.T, f Filter, cur, bg *image.Grid, opts Options) *image.Grid {
	t.Helper()
	out, err := Apply(f, cur, bg, opts)
	if err != nil {
		t.Fatalf("Apply(%v) error = %v", f, err)
	}
	return out
}

// assertPixels compares a 1-row grid with the expected pixels.
func assertPixels(t *testing.T, got *image.Grid, want ...color.Pixel) {
	t.Helper()
	if got.Len() != len(want) {
		t.Fatalf("grid has %d pixels, want %d", got.Len(), len(want))
	}
	for i, w := range want {
		if p := got.At(0, i); !p.SameColor(w) {
			t.Errorf("pixel %d = %v, want %v", i, p, w)
		}
	}
}
