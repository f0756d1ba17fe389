package filter

import (
	"errors"
	"fmt"
)

// ErrUnknown is returned when a tag names no filter in the catalog.
var ErrUnknown = errors.New("filter: unknown filter")

// Filter identifies a catalog entry.
type Filter uint8

const (
	// Normal leaves the grid unchanged.
	Normal Filter = iota
	// Red keeps only the red channel.
	Red
	// Green keeps only the green channel.
	Green
	// Blue keeps only the blue channel.
	Blue
	// BrightenValue adds max(R,G,B) to each channel.
	BrightenValue
	// DarkenValue subtracts max(R,G,B) from each channel.
	DarkenValue
	// BrightenIntensity adds (R+G+B)/3 to each channel.
	BrightenIntensity
	// DarkenIntensity subtracts (R+G+B)/3 from each channel.
	DarkenIntensity
	// BrightenLuma adds the Rec. 709 luma to each channel.
	BrightenLuma
	// DarkenLuma subtracts the Rec. 709 luma from each channel.
	DarkenLuma
	// Difference takes the absolute per-channel difference with the background.
	Difference
	// Multiply multiplies HSL lightness with the background's.
	Multiply
	// Screen screens HSL lightness with the background's.
	Screen

	filterCount
)

var tags = [filterCount]string{
	Normal:            "normal",
	Red:               "red-component",
	Green:             "green-component",
	Blue:              "blue-component",
	BrightenValue:     "brighten-value",
	DarkenValue:       "darken-value",
	BrightenIntensity: "brighten-intensity",
	DarkenIntensity:   "darken-intensity",
	BrightenLuma:      "brighten-luma",
	DarkenLuma:        "darken-luma",
	Difference:        "blending-difference",
	Multiply:          "blending-multiply",
	Screen:            "blending-screen",
}

var byTag = func() map[string]Filter {
	m := make(map[string]Filter, filterCount)
	for f, tag := range tags {
		m[tag] = Filter(f)
	}
	return m
}()

// String returns the filter's catalog tag.
func (f Filter) String() string {
	if f < filterCount {
		return tags[f]
	}
	return fmt.Sprintf("Filter(%d)", uint8(f))
}

// IsValid reports whether f is a catalog entry.
func (f Filter) IsValid() bool {
	return f < filterCount
}

// NeedsBackground reports whether the filter reads the grid beneath the layer.
func (f Filter) NeedsBackground() bool {
	switch f {
	case Difference, Multiply, Screen:
		return true
	default:
		return false
	}
}

// Parse returns the filter named by tag.
func Parse(tag string) (Filter, error) {
	f, ok := byTag[tag]
	if !ok {
		return Normal, fmt.Errorf("%w: %q", ErrUnknown, tag)
	}
	return f, nil
}

// All returns every filter in catalog order.
func All() []Filter {
	out := make([]Filter, filterCount)
	for i := range out {
		out[i] = Filter(i)
	}
	return out
}
