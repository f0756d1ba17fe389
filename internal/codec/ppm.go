package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gogpu/gg-collage/internal/image"
)

// RasterMagic is the first token of every plain PPM document.
const RasterMagic = "P3"

// WritePPM writes g's color channels as a plain PPM, one row per line.
// Alpha is dropped; callers flatten first if it matters.
func WritePPM(w io.Writer, g *image.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", RasterMagic, g.Width(), g.Height(), g.MaxValue())
	for h := range g.Height() {
		for c := range g.Width() {
			if c > 0 {
				bw.WriteByte(' ')
			}
			p := g.At(h, c)
			fmt.Fprintf(bw, "%d %d %d", p.R, p.G, p.B)
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("codec: write ppm: %w", err)
	}
	return nil
}

// ReadPPM decodes a plain PPM onto a height x width canvas with the given
// channel scale. Canvas positions the source does not cover are opaque
// white; source pixels beyond the canvas are dropped. Every decoded pixel
// is fully opaque. When the file's max value differs from maxValue the
// channels are rescaled, truncating.
func ReadPPM(r io.Reader, height, width, maxValue int) (*image.Grid, error) {
	t := newTokenizer(r, true)

	magic, err := t.next("magic")
	if err != nil {
		return nil, err
	}
	if magic != RasterMagic {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrBadMagic, magic, RasterMagic)
	}

	srcW, srcH, srcMax, err := t.header()
	if err != nil {
		return nil, err
	}

	g, err := image.NewFilledGrid(height, width, maxValue, maxValue, maxValue, maxValue, maxValue)
	if err != nil {
		return nil, err
	}

	for h := range min(srcH, height) {
		for w := range srcW {
			var c [3]int
			for i := range c {
				if c[i], err = t.channel("pixel channel", srcMax); err != nil {
					return nil, fmt.Errorf("pixel (%d,%d): %w", h, w, err)
				}
				if srcMax != maxValue {
					c[i] = c[i] * maxValue / srcMax
				}
			}
			if w < width {
				g.Set(h, w, c[0], c[1], c[2], maxValue)
			}
		}
	}
	return g, nil
}
