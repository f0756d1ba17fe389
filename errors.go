package collage

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg-collage/internal/codec"
	"github.com/gogpu/gg-collage/internal/filter"
	"github.com/gogpu/gg-collage/internal/image"
)

// Error kinds. Every error returned by a Project method matches exactly one
// of these with errors.Is.
var (
	// ErrInvalidArgument reports a bad caller-supplied value: negative
	// dimensions or offsets, unknown layer or filter names, duplicate layer
	// names, malformed numeric tokens, or an image of the wrong size.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState reports an operation attempted in the wrong project
	// state, such as adding a layer before a project exists.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidFormat reports a malformed document: bad magic token,
	// truncated data, misplaced background layer, or undecodable image data.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrIOFailure reports a failure of the underlying reader or writer.
	ErrIOFailure = errors.New("i/o failure")
)

// Error is the error type returned by Project methods.
type Error struct {
	// Op is the operation that failed, e.g. "add-layer".
	Op string
	// Kind is one of ErrInvalidArgument, ErrInvalidState, ErrInvalidFormat
	// or ErrIOFailure.
	Kind error
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	return "collage: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func newError(op string, kind, err error) *Error {
	if err == nil {
		err = kind
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

func errorf(op string, kind error, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// classify maps an error from the internal packages to its kind.
// Unrecognized errors are treated as I/O failures.
func classify(op string, err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}

	var kind error
	switch {
	case errors.Is(err, codec.ErrBadMagic),
		errors.Is(err, codec.ErrTruncated),
		errors.Is(err, codec.ErrDuplicateLayer),
		errors.Is(err, image.ErrEmptyData):
		kind = ErrInvalidFormat
	case errors.Is(err, codec.ErrBadToken),
		errors.Is(err, codec.ErrOutOfRange),
		errors.Is(err, filter.ErrUnknown),
		errors.Is(err, image.ErrUnsupportedFormat),
		errors.Is(err, image.ErrInvalidDimensions),
		errors.Is(err, image.ErrInvalidMaxValue),
		errors.Is(err, image.ErrSizeMismatch):
		kind = ErrInvalidArgument
	default:
		kind = ErrIOFailure
	}
	return newError(op, kind, err)
}
