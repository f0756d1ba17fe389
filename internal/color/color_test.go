package color

import (
	"math"
	"testing"
)

func TestCoordString(t *testing.T) {
	if got := (Coord{Row: 3, Col: 7}).String(); got != "(r3,c7)" {
		t.Errorf("Coord.String() = %q, want %q", got, "(r3,c7)")
	}
}

func TestPixelSettersDoNotClamp(t *testing.T) {
	p := NewPixel(0, 0, 1, 2, 3, 4)
	p.SetRed(500)
	p.SetGreen(-5)
	p.SetBlue(256)
	p.SetAlpha(0)

	want := Pixel{R: 500, G: -5, B: 256, A: 0}
	if !p.SameColor(want) {
		t.Errorf("pixel = %v, want %v", p, want)
	}
	if p.Coord != (Coord{}) {
		t.Errorf("setters changed coord to %v", p.Coord)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, maxValue, want int
	}{
		{-1, 255, 0},
		{0, 255, 0},
		{128, 255, 128},
		{255, 255, 255},
		{500, 255, 255},
		{20, 15, 15},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.maxValue); got != tt.want {
			t.Errorf("Clamp(%d, %d) = %d, want %d", tt.v, tt.maxValue, got, tt.want)
		}
	}
}

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		want    HSL
	}{
		{"black", 0, 0, 0, HSL{0, 0, 0}},
		{"white", 1, 1, 1, HSL{0, 0, 1}},
		{"gray", 0.5, 0.5, 0.5, HSL{0, 0, 0.5}},
		{"red", 1, 0, 0, HSL{0, 1, 0.5}},
		{"green", 0, 1, 0, HSL{120, 1, 0.5}},
		{"blue", 0, 0, 1, HSL{240, 1, 0.5}},
		{"magenta wraps", 1, 0, 1, HSL{300, 1, 0.5}},
		{"dark cyan", 0, 0.5, 0.5, HSL{180, 1, 0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSL(tt.r, tt.g, tt.b)
			if !near(got.H, tt.want.H, 1e-9) || !near(got.S, tt.want.S, 1e-9) || !near(got.L, tt.want.L, 1e-9) {
				t.Errorf("RGBToHSL(%v, %v, %v) = %+v, want %+v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name    string
		in      HSL
		r, g, b float64
	}{
		{"red", HSL{0, 1, 0.5}, 1, 0, 0},
		{"green", HSL{120, 1, 0.5}, 0, 1, 0},
		{"blue", HSL{240, 1, 0.5}, 0, 0, 1},
		{"yellow", HSL{60, 1, 0.5}, 1, 1, 0},
		{"gray", HSL{0, 0, 0.25}, 0.25, 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := HSLToRGB(tt.in)
			if !near(r, tt.r, 1e-9) || !near(g, tt.g, 1e-9) || !near(b, tt.b, 1e-9) {
				t.Errorf("HSLToRGB(%+v) = (%v, %v, %v), want (%v, %v, %v)", tt.in, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

// TestHSLRoundTrip converts every combination of a channel level set through
// HSL and back. Truncation may lose at most one step per channel.
func TestHSLRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		levels []int
		want   int
	}{
		{"quarter steps", []int{0, 85, 170, 255}, 64},
		{"web safe", []int{0, 51, 102, 153, 204, 255}, 216},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := 0
			for _, r := range tt.levels {
				for _, g := range tt.levels {
					for _, b := range tt.levels {
						count++
						p := Pixel{R: r, G: g, B: b, A: 255}
						gr, gg, gb := HSLToComponents(PixelToHSL(p, 255), 255)
						if absInt(gr-r) > 1 || absInt(gg-g) > 1 || absInt(gb-b) > 1 {
							t.Errorf("round trip (%d,%d,%d) -> (%d,%d,%d)", r, g, b, gr, gg, gb)
						}
					}
				}
			}
			if count != tt.want {
				t.Fatalf("visited %d combinations, want %d", count, tt.want)
			}
		})
	}
}

func TestHSLToComponentsClamps(t *testing.T) {
	// Lightness above 1 is not produced by the converters but must still stay in range.
	r, g, b := HSLToComponents(HSL{H: 0, S: 0, L: 1.5}, 255)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("HSLToComponents(L=1.5) = (%d,%d,%d), want (255,255,255)", r, g, b)
	}
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
