package color

import "math"

// Clamp limits v to [0, maxValue].
func Clamp(v, maxValue int) int {
	if v < 0 {
		return 0
	}
	if v > maxValue {
		return maxValue
	}
	return v
}

// RGBToHSL converts normalized RGB components in [0,1] to HSL.
//
// Lightness is the midpoint of the largest and smallest component. Achromatic
// input (all components equal) yields hue 0 and saturation 0.
func RGBToHSL(r, g, b float64) HSL {
	cMax := max3(r, g, b)
	cMin := min3(r, g, b)
	delta := cMax - cMin

	l := (cMax + cMin) / 2
	if delta == 0 {
		return HSL{H: 0, S: 0, L: l}
	}

	s := delta / (1 - math.Abs(2*l-1))

	var h float64
	switch cMax {
	case r:
		h = math.Mod((g-b)/delta, 6)
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	return HSL{H: h * 60, S: s, L: l}
}

// HSLToRGB converts an HSL color to normalized RGB components in [0,1].
//
// Each channel n in {0, 8, 4} (red, green, blue) is computed as
// L - a*clamp(min(k-3, 9-k), -1, 1) with k = (n + H/30) mod 12 and
// a = S*min(L, 1-L).
func HSLToRGB(c HSL) (r, g, b float64) {
	return hslChannel(c, 0), hslChannel(c, 8), hslChannel(c, 4)
}

func hslChannel(c HSL, n float64) float64 {
	k := math.Mod(n+c.H/30, 12)
	a := c.S * math.Min(c.L, 1-c.L)
	return c.L - a*math.Max(-1, math.Min(math.Min(k-3, 9-k), 1))
}

// PixelToHSL converts the RGB components of p, scaled by maxValue, to HSL.
func PixelToHSL(p Pixel, maxValue int) HSL {
	m := float64(maxValue)
	return RGBToHSL(float64(p.R)/m, float64(p.G)/m, float64(p.B)/m)
}

// HSLToComponents converts c back to integer components in [0, maxValue].
// Scaled values are truncated toward zero before clamping.
func HSLToComponents(c HSL, maxValue int) (r, g, b int) {
	m := float64(maxValue)
	fr, fg, fb := HSLToRGB(c)
	return Clamp(int(fr*m), maxValue), Clamp(int(fg*m), maxValue), Clamp(int(fb*m), maxValue)
}

func min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func max3(a, b, c float64) float64 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}
