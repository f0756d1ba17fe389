package collage

import (
	"github.com/gogpu/gg-collage/internal/color"
	"github.com/gogpu/gg-collage/internal/filter"
	"github.com/gogpu/gg-collage/internal/image"
)

// Grid is a height x width canvas of RGBA pixels with a fixed channel scale.
type Grid = image.Grid

// Pixel is one RGBA sample tagged with its canvas position.
type Pixel = color.Pixel

// Coord is a pixel's (row, column) position.
type Coord = color.Coord

// Filter identifies one entry of the filter catalog.
type Filter = filter.Filter

const (
	// DefaultBackground is the name of the opaque white layer every project
	// starts with. It is always first and cannot be replaced.
	DefaultBackground = "default-background"

	// DefaultMaxValue is the channel scale of projects created by NewProject.
	DefaultMaxValue = 255

	// DefaultFileExtension is the raster format SaveImage uses until an
	// image of another format is added.
	DefaultFileExtension = "ppm"

	// DefaultRenderCache is the number of intermediate composites Render
	// keeps unless WithRenderCache says otherwise.
	DefaultRenderCache = 16
)

// NewGrid creates a transparent black grid, e.g. to paint an image for
// AddImageToLayer.
func NewGrid(height, width, maxValue int) (*Grid, error) {
	g, err := image.NewGrid(height, width, maxValue)
	if err != nil {
		return nil, classify("new-grid", err)
	}
	return g, nil
}

// Filters returns the tags of the filter catalog in catalog order.
func Filters() []string {
	all := filter.All()
	tags := make([]string, len(all))
	for i, f := range all {
		tags[i] = f.String()
	}
	return tags
}

// ParseFilter returns the filter with the given tag.
func ParseFilter(tag string) (Filter, error) {
	f, err := filter.Parse(tag)
	if err != nil {
		return 0, classify("parse-filter", err)
	}
	return f, nil
}
