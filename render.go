package collage

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gogpu/gg-collage/internal/blend"
	"github.com/gogpu/gg-collage/internal/codec"
	"github.com/gogpu/gg-collage/internal/filter"
	"github.com/gogpu/gg-collage/internal/image"
)

// Render flattens the layer stack into a new grid. Starting from the
// background, each layer above it is composited over the running image and
// the layer's filter is applied to the result, with the running image
// passed as the background of the blend filters. The background's own
// filter is not applied. Layers are never modified.
//
// Composites of unchanged bottom layers are reused from earlier renders, so
// editing the top of a tall stack only recomputes the layers above the edit.
func (p *Project) Render() (*Grid, error) {
	const op = "render"
	if !p.loaded {
		return nil, p.reject(op, ErrInvalidState, errors.New("no project loaded"))
	}

	start := time.Now()
	stack := p.layers.layers
	keys := p.layers.renderKeys()

	// Resume from the deepest composite that is still cached.
	first := 1
	running := stack[0].grid
	if p.renders != nil {
		for i := len(stack) - 1; i > 0; i-- {
			if g, ok := p.renders.Get(keys[i]); ok {
				first, running = i+1, g
				p.opts.metrics.observeCacheHit()
				break
			}
		}
	}

	fopts := filter.Options{LegacyChannelWrites: p.opts.legacyChannelWrites}
	for i := first; i < len(stack); i++ {
		l := stack[i]
		comp, err := blend.Composite(l.grid, running, 0, 0)
		if err != nil {
			return nil, p.fail(classify(op, err))
		}
		if running, err = filter.Apply(l.filter, comp, running, fopts); err != nil {
			return nil, p.fail(classify(op, err))
		}
		if p.renders != nil {
			p.renders.Set(keys[i], running)
		}
		p.opts.metrics.observeFilter(l.filter)
		Logger().Debug("collage: layer rendered", "layer", l.name, "filter", l.filter.String())
	}
	p.opts.metrics.observeRender(time.Since(start), len(stack))
	return running.Clone(), nil
}

// SaveImage renders the project, flattens alpha into the color channels
// and writes the result in the format given by FileExtension.
func (p *Project) SaveImage(w io.Writer) error {
	return p.SaveImageAs(w, p.fileExtension)
}

// SaveImageAs is like SaveImage but writes the given format: "ppm" for a
// plain P3 document, or any format the image codecs can encode.
func (p *Project) SaveImageAs(w io.Writer, format string) error {
	const op = "save-image"
	if !p.loaded {
		return p.reject(op, ErrInvalidState, errors.New("no project loaded"))
	}
	format = image.NormalizeFormat(format)
	if format != DefaultFileExtension && !image.CanEncode(format) {
		return p.reject(op, ErrInvalidArgument, fmt.Errorf("%w: %q", image.ErrUnsupportedFormat, format))
	}

	g, err := p.Render()
	if err != nil {
		return err
	}
	flat := g.Flatten()

	if format == DefaultFileExtension {
		err = codec.WritePPM(w, flat)
	} else {
		err = image.Encode(w, flat, format)
	}
	if err != nil {
		return p.fail(newError(op, ErrIOFailure, err))
	}
	Logger().Info("collage: image saved", "format", format, "height", flat.Height(), "width", flat.Width())
	return nil
}
