package collage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gogpu/gg-collage/internal/filter"
	"github.com/gogpu/gg-collage/internal/image"
)

// Layer is a named canvas-sized grid with a filter tag.
// Layers are owned by their Project; the accessors return copies.
type Layer struct {
	name   string
	filter filter.Filter
	grid   *image.Grid

	// version changes whenever the grid or filter does.
	version uint64
}

// Name returns the layer's unique name.
func (l *Layer) Name() string {
	return l.name
}

// Filter returns the layer's filter.
func (l *Layer) Filter() Filter {
	return l.filter
}

// Pixels returns a copy of the layer's grid.
func (l *Layer) Pixels() *Grid {
	return l.grid.Clone()
}

var (
	errDuplicateLayer = errors.New("duplicate layer name")
	errBackgroundSlot = errors.New("background layer must come first")
	errUnknownLayer   = errors.New("unknown layer")
)

// layerStack is the ordered layer collection of a project with O(1) lookup
// by name. The first layer is always DefaultBackground.
type layerStack struct {
	layers []*Layer
	index  map[string]int
	seq    uint64
}

func newLayerStack() *layerStack {
	return &layerStack{
		layers: make([]*Layer, 0, 4),
		index:  make(map[string]int),
	}
}

// push appends l on top of the stack.
func (s *layerStack) push(l *Layer) error {
	if _, ok := s.index[l.name]; ok {
		return fmt.Errorf("%w: %q", errDuplicateLayer, l.name)
	}
	if (len(s.layers) == 0) != (l.name == DefaultBackground) {
		return fmt.Errorf("%w: got %q at position %d", errBackgroundSlot, l.name, len(s.layers))
	}
	s.touch(l)
	s.index[l.name] = len(s.layers)
	s.layers = append(s.layers, l)
	return nil
}

// touch gives l a version no other layer state of this stack has had.
func (s *layerStack) touch(l *Layer) {
	s.seq++
	l.version = s.seq
}

// renderKeys returns one cache key per layer: keys[i] identifies the
// composite of layers 0 through i in their current state.
func (s *layerStack) renderKeys() []string {
	keys := make([]string, len(s.layers))
	buf := make([]byte, 0, 8*len(s.layers))
	for i, l := range s.layers {
		buf = strconv.AppendUint(buf, l.version, 36)
		keys[i] = string(buf)
		buf = append(buf, '.')
	}
	return keys
}

func (s *layerStack) get(name string) (*Layer, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownLayer, name)
	}
	return s.layers[i], nil
}

// background returns the sentinel layer, or nil for an empty stack.
func (s *layerStack) background() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0]
}

func (s *layerStack) len() int {
	return len(s.layers)
}

func (s *layerStack) names() []string {
	out := make([]string, len(s.layers))
	for i, l := range s.layers {
		out[i] = l.name
	}
	return out
}

// validLayerName reports whether name can be written as a single token of a
// project document.
func validLayerName(name string) error {
	if name == "" {
		return errors.New("empty layer name")
	}
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return fmt.Errorf("layer name %q contains whitespace", name)
	}
	return nil
}
