package codec

import (
	"testing"

	"github.com/gogpu/gg-collage/internal/image"
)

// filled returns a grid with every pixel set to (r,g,b,a).
func filled(t *testing.T, height, width, maxValue, r, g, b, a int) *image.Grid {
	t.Helper()
	grid, err := image.NewFilledGrid(height, width, maxValue, r, g, b, a)
	if err != nil {
		t.Fatalf("NewFilledGrid() error = %v", err)
	}
	return grid
}
