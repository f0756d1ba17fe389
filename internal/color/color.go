// Package color provides the pixel representations used by collage canvases.
package color

import "fmt"

// Coord is an immutable canvas position. Row grows downward, Col grows rightward.
// It tags pixels for diagnostics only; grids are addressed by index.
type Coord struct {
	Row, Col int
}

// String renders the coordinate as (r<row>,c<col>).
func (c Coord) String() string {
	return fmt.Sprintf("(r%d,c%d)", c.Row, c.Col)
}

// Pixel is an RGBA sample at a canvas coordinate.
// Components are conceptually in [0, maxValue] where maxValue is a per-canvas
// constant. Setters store values as given; callers clamp first.
type Pixel struct {
	Coord      Coord
	R, G, B, A int
}

// NewPixel creates a pixel at (row, col) with the given components.
func NewPixel(row, col, r, g, b, a int) Pixel {
	return Pixel{Coord: Coord{Row: row, Col: col}, R: r, G: g, B: b, A: a}
}

// SetRed sets the red component.
func (p *Pixel) SetRed(v int) { p.R = v }

// SetGreen sets the green component.
func (p *Pixel) SetGreen(v int) { p.G = v }

// SetBlue sets the blue component.
func (p *Pixel) SetBlue(v int) { p.B = v }

// SetAlpha sets the alpha component.
func (p *Pixel) SetAlpha(v int) { p.A = v }

// SameColor reports whether two pixels have identical RGBA components.
// Coordinates are ignored.
func (p Pixel) SameColor(q Pixel) bool {
	return p.R == q.R && p.G == q.G && p.B == q.B && p.A == q.A
}

// String renders the components as "r g b a".
func (p Pixel) String() string {
	return fmt.Sprintf("%d %d %d %d", p.R, p.G, p.B, p.A)
}

// HSL is a hue/saturation/lightness color.
// Hue is in degrees [0, 360); saturation and lightness are in [0, 1].
type HSL struct {
	H, S, L float64
}
