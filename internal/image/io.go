package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // registers the WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// jpegQuality is used for every JPEG encode.
const jpegQuality = 95

// NormalizeFormat maps a file extension or format name to its canonical
// form: lower case, no leading dot, "jpg" -> "jpeg", "tif" -> "tiff".
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch f {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	default:
		return f
	}
}

// CanDecode reports whether the codec can read the format.
func CanDecode(format string) bool {
	switch NormalizeFormat(format) {
	case "png", "jpeg", "gif", "bmp", "tiff", "webp":
		return true
	default:
		return false
	}
}

// CanEncode reports whether the codec can write the format.
// WebP is decode-only.
func CanEncode(format string) bool {
	switch NormalizeFormat(format) {
	case "png", "jpeg", "gif", "bmp", "tiff":
		return true
	default:
		return false
	}
}

// Decode decodes an image from the given reader, auto-detecting the format.
// It returns the detected format name.
func Decode(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("image: read: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("image: decode: %w", err)
	}
	return img, format, nil
}

// FromStdImage copies img into a new height x width grid with the given
// channel scale. Canvas positions outside the source are opaque white; the
// source's own alpha is ignored and every copied pixel is fully opaque.
func FromStdImage(img image.Image, height, width, maxValue int) (*Grid, error) {
	g, err := NewFilledGrid(height, width, maxValue, maxValue, maxValue, maxValue, maxValue)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	for h := range min(height, srcH) {
		for w := range min(width, srcW) {
			r, gr, b, _ := img.At(bounds.Min.X+w, bounds.Min.Y+h).RGBA()
			g.Set(h, w, scale16(r, maxValue), scale16(gr, maxValue), scale16(b, maxValue), maxValue)
		}
	}
	return g, nil
}

// ToStdImage converts the grid to a non-premultiplied 8-bit image.
func ToStdImage(g *Grid) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	m := g.MaxValue()
	for h := range g.Height() {
		for w := range g.Width() {
			p := g.At(h, w)
			out.SetNRGBA(w, h, stdcolor.NRGBA{
				R: to8(p.R, m),
				G: to8(p.G, m),
				B: to8(p.B, m),
				A: to8(p.A, m),
			})
		}
	}
	return out
}

// Encode writes the grid to w in the given format.
func Encode(w io.Writer, g *Grid, format string) error {
	img := ToStdImage(g)

	var err error
	switch f := NormalizeFormat(format); f {
	case "png":
		err = png.Encode(w, img)
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		err = gif.Encode(w, img, nil)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", NormalizeFormat(format), err)
	}
	return nil
}

// scale16 maps a 16-bit channel to [0, maxValue], truncating.
func scale16(v uint32, maxValue int) int {
	return int(uint64(v) * uint64(maxValue) / 0xffff)
}

// to8 maps a channel in [0, maxValue] to 8 bits, clamping out-of-range input.
func to8(v, maxValue int) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= maxValue {
		return 0xff
	}
	return uint8(v * 0xff / maxValue)
}
