package collage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/gg-collage/internal/blend"
	"github.com/gogpu/gg-collage/internal/cache"
	"github.com/gogpu/gg-collage/internal/codec"
	"github.com/gogpu/gg-collage/internal/filter"
	"github.com/gogpu/gg-collage/internal/image"
)

// Project is a layered collage session. A Project starts unloaded; NewProject
// or LoadProject load it, and it stays loaded for the rest of its life.
//
// A Project is not safe for concurrent use.
type Project struct {
	loaded        bool
	height        int
	width         int
	maxValue      int
	fileExtension string
	layers        *layerStack
	renders       *cache.Cache[string, *image.Grid]
	opts          options
}

// New returns an unloaded project.
func New(opts ...Option) *Project {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Project{
		fileExtension: DefaultFileExtension,
		layers:        newLayerStack(),
		opts:          o,
	}
}

// NewProject loads a blank height x width canvas holding only the opaque
// white background layer. The channel scale comes from WithMaxValue.
func (p *Project) NewProject(height, width int) error {
	const op = "new-project"
	if p.loaded {
		return p.reject(op, ErrInvalidState, errors.New("project already loaded"))
	}
	if height < 0 || width < 0 {
		return p.reject(op, ErrInvalidArgument, fmt.Errorf("negative canvas %dx%d", height, width))
	}

	m := p.opts.maxValue
	bg, err := image.NewFilledGrid(height, width, m, m, m, m, m)
	if err != nil {
		return p.fail(classify(op, err))
	}
	stack := newLayerStack()
	if err := stack.push(&Layer{name: DefaultBackground, filter: filter.Normal, grid: bg}); err != nil {
		return p.fail(newError(op, ErrInvalidState, err))
	}

	p.adopt(height, width, m, stack)
	Logger().Info("collage: project created", "height", height, "width", width, "max", m)
	return nil
}

// LoadProject loads a project document. The document is parsed completely
// before anything is adopted, so a failed load leaves the project unloaded.
func (p *Project) LoadProject(r io.Reader) error {
	const op = "load-project"
	if p.loaded {
		return p.reject(op, ErrInvalidState, errors.New("project already loaded"))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return p.fail(newError(op, ErrIOFailure, err))
	}
	doc, err := codec.ReadProject(bytes.NewReader(data))
	if err != nil {
		return p.fail(classify(op, err))
	}

	stack := newLayerStack()
	for _, l := range doc.Layers {
		if err := stack.push(&Layer{name: l.Name, filter: l.Filter, grid: l.Grid}); err != nil {
			return p.fail(newError(op, ErrInvalidFormat, err))
		}
	}
	if stack.len() == 0 {
		return p.fail(newError(op, ErrInvalidFormat, errors.New("document has no background layer")))
	}
	for _, px := range stack.background().grid.Pixels() {
		if px.A != doc.MaxValue {
			return p.fail(errorf(op, ErrInvalidFormat, "background pixel %v is not opaque", px.Coord))
		}
	}

	p.adopt(doc.Height, doc.Width, doc.MaxValue, stack)
	Logger().Info("collage: project loaded",
		"height", doc.Height, "width", doc.Width, "max", doc.MaxValue, "layers", stack.len())
	return nil
}

// SaveProject writes the project as a C1 document.
func (p *Project) SaveProject(w io.Writer) error {
	const op = "save-project"
	if !p.loaded {
		return p.reject(op, ErrInvalidState, errors.New("no project loaded"))
	}
	if bg := p.layers.background(); bg == nil || bg.name != DefaultBackground {
		return p.fail(newError(op, ErrInvalidFormat, errors.New("background layer missing")))
	}

	doc := &codec.Project{
		Height:   p.height,
		Width:    p.width,
		MaxValue: p.maxValue,
		Layers:   make([]codec.Layer, 0, p.layers.len()),
	}
	for _, l := range p.layers.layers {
		doc.Layers = append(doc.Layers, codec.Layer{Name: l.name, Filter: l.filter, Grid: l.grid})
	}
	if err := codec.WriteProject(w, doc); err != nil {
		return p.fail(newError(op, ErrIOFailure, err))
	}
	Logger().Info("collage: project saved", "layers", p.layers.len())
	return nil
}

// ProjectText returns the project as a C1 document.
func (p *Project) ProjectText() (string, error) {
	var sb strings.Builder
	if err := p.SaveProject(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// AddLayer pushes a fully transparent white layer named name with the
// normal filter on top of the stack.
func (p *Project) AddLayer(name string) error {
	const op = "add-layer"
	if !p.loaded {
		return p.reject(op, ErrInvalidState, errors.New("no project loaded"))
	}
	if err := validLayerName(name); err != nil {
		return p.reject(op, ErrInvalidArgument, err)
	}

	m := p.maxValue
	g, err := image.NewFilledGrid(p.height, p.width, m, m, m, m, 0)
	if err != nil {
		return p.fail(classify(op, err))
	}
	if err := p.layers.push(&Layer{name: name, filter: filter.Normal, grid: g}); err != nil {
		return p.reject(op, ErrInvalidArgument, err)
	}
	Logger().Info("collage: layer added", "layer", name, "layers", p.layers.len())
	return nil
}

// AddImageToLayer composites img over the named layer at offset (x, y) and
// records format as the raster format for SaveImage. img must be a
// canvas-sized grid, as produced by AddImage's decoders. The offset gate is
// applied to the whole grid: an offset past the layer leaves it unchanged.
func (p *Project) AddImageToLayer(name string, img *Grid, x, y int, format string) error {
	const op = "add-image-to-layer"
	if !p.loaded {
		return p.reject(op, ErrInvalidState, errors.New("no project loaded"))
	}
	l, err := p.layers.get(name)
	if err != nil {
		return p.reject(op, ErrInvalidArgument, err)
	}
	if x < 0 || y < 0 {
		return p.reject(op, ErrInvalidArgument, fmt.Errorf("negative offset (%d,%d)", x, y))
	}
	if img == nil {
		return p.reject(op, ErrInvalidArgument, errors.New("nil image"))
	}
	format, err = rasterFormat(format)
	if err != nil {
		return p.reject(op, ErrInvalidArgument, err)
	}

	out, err := blend.Composite(img, l.grid, x, y)
	if err != nil {
		return p.fail(classify(op, err))
	}
	l.grid = out
	p.layers.touch(l)
	p.fileExtension = format
	Logger().Info("collage: image added", "layer", name, "x", x, "y", y, "format", format)
	return nil
}

// AddImage decodes an image in the given format and composites it over the
// named layer like AddImageToLayer. "ppm" is read as a plain P3 document;
// other formats go through the image codecs. The decoded image is fitted to
// the canvas: uncovered positions are opaque white and overflow is dropped.
func (p *Project) AddImage(name string, r io.Reader, x, y int, format string) error {
	const op = "add-image-to-layer"
	if !p.loaded {
		return p.reject(op, ErrInvalidState, errors.New("no project loaded"))
	}
	if _, err := p.layers.get(name); err != nil {
		return p.reject(op, ErrInvalidArgument, err)
	}
	format, err := rasterFormat(format)
	if err != nil {
		return p.reject(op, ErrInvalidArgument, err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return p.fail(newError(op, ErrIOFailure, err))
	}

	var img *Grid
	if format == DefaultFileExtension {
		img, err = codec.ReadPPM(bytes.NewReader(data), p.height, p.width, p.maxValue)
		if err != nil {
			return p.fail(classify(op, err))
		}
	} else {
		src, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return p.fail(newError(op, ErrInvalidFormat, err))
		}
		if img, err = image.FromStdImage(src, p.height, p.width, p.maxValue); err != nil {
			return p.fail(classify(op, err))
		}
	}
	return p.AddImageToLayer(name, img, x, y, format)
}

// SetFilter replaces the named layer's filter.
func (p *Project) SetFilter(name, tag string) error {
	const op = "set-filter"
	if !p.loaded {
		return p.reject(op, ErrInvalidState, errors.New("no project loaded"))
	}
	l, err := p.layers.get(name)
	if err != nil {
		return p.reject(op, ErrInvalidArgument, err)
	}
	f, err := filter.Parse(tag)
	if err != nil {
		return p.reject(op, ErrInvalidArgument, err)
	}
	l.filter = f
	p.layers.touch(l)
	Logger().Info("collage: filter set", "layer", name, "filter", f.String())
	return nil
}

// Loaded reports whether a project has been created or loaded.
func (p *Project) Loaded() bool {
	return p.loaded
}

// Height returns the canvas height, or 0 before a project is loaded.
func (p *Project) Height() int {
	return p.height
}

// Width returns the canvas width, or 0 before a project is loaded.
func (p *Project) Width() int {
	return p.width
}

// MaxValue returns the channel scale, or 0 before a project is loaded.
func (p *Project) MaxValue() int {
	return p.maxValue
}

// FileExtension returns the raster format SaveImage writes.
func (p *Project) FileExtension() string {
	return p.fileExtension
}

// LayerNames returns the layer names bottom first, background included.
func (p *Project) LayerNames() []string {
	return p.layers.names()
}

// Layer returns the named layer.
func (p *Project) Layer(name string) (*Layer, bool) {
	l, err := p.layers.get(name)
	return l, err == nil
}

func (p *Project) adopt(height, width, maxValue int, stack *layerStack) {
	p.height = height
	p.width = width
	p.maxValue = maxValue
	p.layers = stack
	if p.opts.renderCache > 0 {
		p.renders = cache.New[string, *image.Grid](p.opts.renderCache)
	}
	p.loaded = true
}

// reject logs and returns a caller error.
func (p *Project) reject(op string, kind, err error) error {
	return p.fail(newError(op, kind, err))
}

func (p *Project) fail(e *Error) error {
	Logger().Warn("collage: operation rejected", "op", e.Op, "err", e.Err)
	return e
}

// rasterFormat normalizes a raster format name and checks that it can be
// decoded.
func rasterFormat(format string) (string, error) {
	f := image.NormalizeFormat(format)
	if f == DefaultFileExtension || image.CanDecode(f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", image.ErrUnsupportedFormat, format)
}
