package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gogpu/gg-collage/internal/filter"
	"github.com/gogpu/gg-collage/internal/image"
)

// ProjectMagic is the first token of every project document.
const ProjectMagic = "C1"

// readChunk bounds the up-front allocation for a layer block.
const readChunk = 4096

// Layer is one decoded layer block.
type Layer struct {
	Name   string
	Filter filter.Filter
	Grid   *image.Grid
}

// Project is a decoded project document. Layers keep file order.
type Project struct {
	Height   int
	Width    int
	MaxValue int
	Layers   []Layer
}

// WriteProject writes p in the project format.
func WriteProject(w io.Writer, p *Project) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d %d\n", ProjectMagic, p.Width, p.Height, p.MaxValue)
	for _, l := range p.Layers {
		fmt.Fprintf(bw, "%s %s\n", l.Name, l.Filter)
		for _, px := range l.Grid.Pixels() {
			fmt.Fprintf(bw, "%d %d %d %d\n", px.R, px.G, px.B, px.A)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("codec: write project: %w", err)
	}
	return nil
}

// ReadProject decodes a project document. Layer blocks are read until the
// end of input; every block must hold exactly width*height pixels.
func ReadProject(r io.Reader) (*Project, error) {
	t := newTokenizer(r, false)

	magic, err := t.next("magic")
	if err != nil {
		return nil, err
	}
	if magic != ProjectMagic {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrBadMagic, magic, ProjectMagic)
	}

	width, height, maxValue, err := t.header()
	if err != nil {
		return nil, err
	}

	p := &Project{Height: height, Width: width, MaxValue: maxValue}
	seen := make(map[string]struct{})
	for t.more() {
		name := t.text()
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLayer, name)
		}
		seen[name] = struct{}{}

		l, err := readLayer(t, name, height, width, maxValue)
		if err != nil {
			return nil, err
		}
		p.Layers = append(p.Layers, l)
	}
	if err := t.err(); err != nil {
		return nil, err
	}
	return p, nil
}

func readLayer(t *tokenizer, name string, height, width, maxValue int) (Layer, error) {
	tag, err := t.next("filter of layer " + name)
	if err != nil {
		return Layer{}, err
	}
	f, err := filter.Parse(tag)
	if err != nil {
		return Layer{}, fmt.Errorf("layer %q: %w", name, err)
	}

	// A short block fails before the declared canvas is allocated.
	n := height * width
	pix := make([][4]int, 0, min(n, readChunk))
	for i := range n {
		var c [4]int
		for j := range c {
			if c[j], err = t.channel("pixel channel", maxValue); err != nil {
				return Layer{}, fmt.Errorf("layer %q pixel (%d,%d): %w", name, i/width, i%width, err)
			}
		}
		pix = append(pix, c)
	}

	g, err := image.NewGrid(height, width, maxValue)
	if err != nil {
		return Layer{}, err
	}
	for i, c := range pix {
		g.Set(i/width, i%width, c[0], c[1], c[2], c[3])
	}
	return Layer{Name: name, Filter: f, Grid: g}, nil
}
