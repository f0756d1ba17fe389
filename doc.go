// Package collage composes layered raster collages.
//
// # Overview
//
// A Project is a fixed-size canvas holding an ordered stack of named layers.
// Each layer is a full canvas of RGBA pixels plus a filter tag. The first
// layer is always the opaque white "default-background". Rendering walks the
// remaining layers bottom to top: each one is composited over the running
// image with Porter-Duff source-over and then filtered, using the running
// image as the background for the blend filters.
//
// # Quick Start
//
//	import "github.com/gogpu/gg-collage"
//
//	p := collage.New()
//	if err := p.NewProject(600, 800); err != nil {
//	    return err
//	}
//	p.AddLayer("photo")
//	f, _ := os.Open("photo.png")
//	p.AddImage("photo", f, 0, 0, "png")
//	p.SetFilter("photo", "darken-luma")
//
//	out, _ := os.Create("collage.ppm")
//	p.SaveImage(out)
//
// # Documents
//
// Projects round-trip through the plain-text C1 format (SaveProject and
// LoadProject). Rendered images are written as plain PPM (P3) or, through
// the image codec boundary, as PNG, JPEG, GIF, BMP or TIFF.
//
// # Filters
//
// The filter catalog is fixed: normal, red-component, green-component,
// blue-component, brighten-value, darken-value, brighten-intensity,
// darken-intensity, brighten-luma, darken-luma, blending-difference,
// blending-multiply and blending-screen. See Filters.
//
// # Errors
//
// Every failure is an *Error whose kind matches one of ErrInvalidArgument,
// ErrInvalidState, ErrInvalidFormat or ErrIOFailure with errors.Is. A failed
// operation leaves the project unchanged.
//
// # Concurrency
//
// A Project is not safe for concurrent use. SetLogger, Logger and Metrics
// are.
package collage

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
