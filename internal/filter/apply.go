package filter

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg-collage/internal/color"
	"github.com/gogpu/gg-collage/internal/image"
)

// ErrNoBackground is returned when a blending filter is applied without a
// background grid.
var ErrNoBackground = errors.New("filter: blending filter needs a background")

// Options tunes filter evaluation.
type Options struct {
	// LegacyChannelWrites makes the blending filters store all three computed
	// channels through the red setter, in red, green, blue order. Red ends up
	// holding the blue result and green and blue keep their composited values.
	// This reproduces project files rendered by the first collage tool.
	LegacyChannelWrites bool
}

// Rec. 709 luma weights.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Apply evaluates f over cur and returns the result as a new grid.
// bg is the grid beneath the layer; it is only read by blending filters and
// may be nil for the others.
func Apply(f Filter, cur, bg *image.Grid, opts Options) (*image.Grid, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, f)
	}
	if f.NeedsBackground() {
		if bg == nil {
			return nil, fmt.Errorf("%w: %v", ErrNoBackground, f)
		}
		if err := cur.CheckSameSize(bg); err != nil {
			return nil, err
		}
	}

	out := cur.Clone()
	pix := out.Pixels()
	m := out.MaxValue()

	switch f {
	case Normal:
	case Red:
		for i := range pix {
			pix[i].SetGreen(0)
			pix[i].SetBlue(0)
		}
	case Green:
		for i := range pix {
			pix[i].SetRed(0)
			pix[i].SetBlue(0)
		}
	case Blue:
		for i := range pix {
			pix[i].SetRed(0)
			pix[i].SetGreen(0)
		}
	case BrightenValue:
		shift(pix, m, value, 1)
	case DarkenValue:
		shift(pix, m, value, -1)
	case BrightenIntensity:
		shift(pix, m, intensity, 1)
	case DarkenIntensity:
		shift(pix, m, intensity, -1)
	case BrightenLuma:
		shift(pix, m, luma, 1)
	case DarkenLuma:
		shift(pix, m, luma, -1)
	case Difference, Multiply, Screen:
		blendWith(pix, bg.Pixels(), m, f, opts)
	}

	return out, nil
}

// value is the largest of the three color channels.
func value(p color.Pixel) int {
	return max(p.R, p.G, p.B)
}

// intensity is the integer mean of the three color channels.
func intensity(p color.Pixel) int {
	return (p.R + p.G + p.B) / 3
}

// luma is the truncated Rec. 709 weighted sum of the color channels.
func luma(p color.Pixel) int {
	return int(lumaR*float64(p.R) + lumaG*float64(p.G) + lumaB*float64(p.B))
}

// shift adds sign*delta(p) to every color channel of every pixel, clamping
// each channel to [0, maxValue] on its own. Alpha is untouched.
func shift(pix []color.Pixel, maxValue int, delta func(color.Pixel) int, sign int) {
	for i := range pix {
		p := &pix[i]
		d := sign * delta(*p)
		p.SetRed(color.Clamp(p.R+d, maxValue))
		p.SetGreen(color.Clamp(p.G+d, maxValue))
		p.SetBlue(color.Clamp(p.B+d, maxValue))
	}
}

func blendWith(pix, bg []color.Pixel, maxValue int, f Filter, opts Options) {
	for i := range pix {
		p := &pix[i]
		r, g, b := blendPixel(*p, bg[i], maxValue, f)
		if opts.LegacyChannelWrites {
			p.SetRed(r)
			p.SetRed(g)
			p.SetRed(b)
			continue
		}
		p.SetRed(r)
		p.SetGreen(g)
		p.SetBlue(b)
	}
}

func blendPixel(cur, bg color.Pixel, maxValue int, f Filter) (r, g, b int) {
	if f == Difference {
		return abs(cur.R - bg.R), abs(cur.G - bg.G), abs(cur.B - bg.B)
	}

	c := color.PixelToHSL(cur, maxValue)
	l := color.PixelToHSL(bg, maxValue).L
	if f == Multiply {
		c.L *= l
	} else {
		c.L = 1 - (1-c.L)*(1-l)
	}
	return color.HSLToComponents(c, maxValue)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
