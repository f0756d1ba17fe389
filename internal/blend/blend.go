// Package blend provides the alpha compositing operator used to paint images
// into layers and to flatten layers at render time.
package blend

import (
	"github.com/gogpu/gg-collage/internal/color"
	"github.com/gogpu/gg-collage/internal/image"
)

// Composite paints src over base and returns a new grid of base's size.
//
// The (x, y) offset gates the whole grid rather than individual pixels: src
// is expected to be pre-expanded to the canvas size, so when the offset lies
// inside the canvas (width >= x and height > y) every pixel is blended with
// SourceOver, otherwise base is copied unchanged. src and base are not
// modified. src must have the same size as base.
func Composite(src, base *image.Grid, x, y int) (*image.Grid, error) {
	if err := base.CheckSameSize(src); err != nil {
		return nil, err
	}

	out := base.Clone()
	if base.Width() < x || base.Height() <= y {
		return out, nil
	}

	m := base.MaxValue()
	sp := src.Pixels()
	op := out.Pixels()
	for i := range op {
		op[i] = SourceOver(sp[i], op[i], m)
	}
	return out, nil
}

// SourceOver composites src over dst with the Porter-Duff "over" operator in
// normalized [0,1] space and truncates the result back to [0, maxValue].
// The result keeps dst's coordinate tag.
//
// When both pixels are fully transparent the result is transparent black.
// A fully transparent src over any other dst returns dst unchanged, so the
// division by outA never loses a step to truncation.
func SourceOver(src, dst color.Pixel, maxValue int) color.Pixel {
	if src.A == 0 && dst.A != 0 {
		return dst
	}

	m := float64(maxValue)
	srcA := float64(src.A) / m
	dstA := float64(dst.A) / m
	invSrcA := 1.0 - srcA

	outA := srcA + dstA*invSrcA
	out := color.Pixel{Coord: dst.Coord}
	if outA == 0 {
		return out
	}

	out.R = int((srcA*float64(src.R) + float64(dst.R)*dstA*invSrcA) / outA)
	out.G = int((srcA*float64(src.G) + float64(dst.G)*dstA*invSrcA) / outA)
	out.B = int((srcA*float64(src.B) + float64(dst.B)*dstA*invSrcA) / outA)
	out.A = int(outA * m)
	return out
}
