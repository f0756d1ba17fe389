// Package codec reads and writes the two plain-text collage formats.
//
// The project format stores the canvas and every layer:
//
//	C1
//	<width> <height> <maxValue>
//	<layerName> <filterTag>
//	<r> <g> <b> <a>        (width*height lines, row-major)
//	...                    (one block per layer)
//
// The raster format is the plain PPM variant:
//
//	P3
//	<width> <height>
//	<maxValue>
//	<r> <g> <b> ...        (width*height triples, row-major)
//
// Both readers are whitespace-token based, so line breaks are not
// significant, and both tolerate a leading UTF-8 byte order mark.
// Declared canvases are limited to image.MaxPixels pixels.
package codec
