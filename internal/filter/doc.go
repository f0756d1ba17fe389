// Package filter provides the collage filter catalog.
//
// A filter is a stateless per-pixel transform of a full canvas grid. The
// blending filters additionally read the grid beneath the layer (the running
// background at render time). Every filter returns a freshly allocated grid;
// inputs are never modified.
//
// The catalog owns the only mapping between filter tags ("red-component",
// "blending-screen", ...) and Filter values. Project files and command
// dispatch both go through Parse and Filter.String.
package filter
