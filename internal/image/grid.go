// Package image provides the canvas grid shared by every collage layer and
// the boundary to compressed raster codecs.
package image

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg-collage/internal/color"
)

// Common errors for grid operations.
var (
	// ErrInvalidDimensions is returned when height or width is negative.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidMaxValue is returned when the channel scale is not positive.
	ErrInvalidMaxValue = errors.New("image: invalid max value")

	// ErrSizeMismatch is returned when two grids do not share a canvas.
	ErrSizeMismatch = errors.New("image: grid size mismatch")
)

// MaxPixels is the largest canvas, in pixels, a Grid may hold.
const MaxPixels = 1 << 26

// Grid is a fully populated height x width canvas of pixels with a fixed
// channel scale (maxValue). Pixels are stored row-major.
//
// Operations that transform a grid return a new Grid; a Grid handed to a
// compositor or filter is never retained. Grid is not safe for concurrent
// mutation.
type Grid struct {
	height   int
	width    int
	maxValue int
	pix      []color.Pixel
}

// NewGrid creates a grid whose pixels are all (0,0,0,0).
// Zero-sized grids are valid.
func NewGrid(height, width, maxValue int) (*Grid, error) {
	return NewFilledGrid(height, width, maxValue, 0, 0, 0, 0)
}

// NewFilledGrid creates a grid whose pixels all have the given components.
func NewFilledGrid(height, width, maxValue, r, g, b, a int) (*Grid, error) {
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, height, width)
	}
	if maxValue <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxValue, maxValue)
	}
	if !FitsCanvas(height, width) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimensions, height, width, MaxPixels)
	}

	pix := make([]color.Pixel, height*width)
	for i := range pix {
		pix[i] = color.NewPixel(i/width, i%width, r, g, b, a)
	}

	return &Grid{height: height, width: width, maxValue: maxValue, pix: pix}, nil
}

// FitsCanvas reports whether a height x width canvas is non-negative, has
// no side longer than MaxPixels and holds at most MaxPixels pixels. The
// product is never computed when it could overflow.
func FitsCanvas(height, width int) bool {
	if height < 0 || width < 0 || height > MaxPixels || width > MaxPixels {
		return false
	}
	return width == 0 || height <= MaxPixels/width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// MaxValue returns the channel scale.
func (g *Grid) MaxValue() int {
	return g.maxValue
}

// Len returns the number of pixels.
func (g *Grid) Len() int {
	return len(g.pix)
}

// At returns a copy of the pixel at (row, col).
// It panics if the position is outside the grid, like slice indexing.
func (g *Grid) At(row, col int) color.Pixel {
	return g.pix[g.index(row, col)]
}

// Ref returns a pointer to the pixel at (row, col) for in-place mutation.
func (g *Grid) Ref(row, col int) *color.Pixel {
	return &g.pix[g.index(row, col)]
}

// Set replaces the components of the pixel at (row, col). The coordinate tag
// is preserved.
func (g *Grid) Set(row, col, r, gr, b, a int) {
	p := g.Ref(row, col)
	p.R, p.G, p.B, p.A = r, gr, b, a
}

// Pixels returns the row-major pixel slice. Callers must not retain it
// across operations that replace the grid.
func (g *Grid) Pixels() []color.Pixel {
	return g.pix
}

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	pix := make([]color.Pixel, len(g.pix))
	copy(pix, g.pix)
	return &Grid{height: g.height, width: g.width, maxValue: g.maxValue, pix: pix}
}

// SameSize reports whether o has the same height, width and max value.
func (g *Grid) SameSize(o *Grid) bool {
	return g.height == o.height && g.width == o.width && g.maxValue == o.maxValue
}

// CheckSameSize returns ErrSizeMismatch if o does not share g's canvas.
func (g *Grid) CheckSameSize(o *Grid) error {
	if !g.SameSize(o) {
		return fmt.Errorf("%w: %dx%d/%d vs %dx%d/%d", ErrSizeMismatch,
			g.height, g.width, g.maxValue, o.height, o.width, o.maxValue)
	}
	return nil
}

// Equal reports whether o has the same size and identical pixel components.
func (g *Grid) Equal(o *Grid) bool {
	if !g.SameSize(o) {
		return false
	}
	for i := range g.pix {
		if !g.pix[i].SameColor(o.pix[i]) {
			return false
		}
	}
	return true
}

// Flatten returns a copy with each color channel scaled by the pixel's
// alpha (c*a/maxValue, integer division) and alpha set to maxValue. This is
// how a grid is prepared for formats without an alpha channel.
func (g *Grid) Flatten() *Grid {
	out := g.Clone()
	m := g.maxValue
	for i := range out.pix {
		p := &out.pix[i]
		p.R = p.R * p.A / m
		p.G = p.G * p.A / m
		p.B = p.B * p.A / m
		p.A = m
	}
	return out
}

func (g *Grid) index(row, col int) int {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("image: position (%d,%d) outside %dx%d grid", row, col, g.height, g.width))
	}
	return row*g.width + col
}
