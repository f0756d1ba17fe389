package collage

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/gogpu/gg-collage/internal/codec"
	"github.com/gogpu/gg-collage/internal/filter"
	"github.com/gogpu/gg-collage/internal/image"
)

func TestErrorIsKind(t *testing.T) {
	cause := errors.New("boom")
	err := error(newError("add-layer", ErrInvalidArgument, cause))

	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("errors.Is(err, ErrInvalidArgument) = false")
	}
	if errors.Is(err, ErrInvalidState) {
		t.Error("errors.Is(err, ErrInvalidState) = true")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if got, want := err.Error(), "collage: add-layer: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewErrorWithoutCause(t *testing.T) {
	err := newError("render", ErrInvalidState, nil)
	if err.Err != ErrInvalidState {
		t.Errorf("Err = %v, want the kind", err.Err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{fmt.Errorf("x: %w", codec.ErrBadMagic), ErrInvalidFormat},
		{fmt.Errorf("x: %w", codec.ErrTruncated), ErrInvalidFormat},
		{fmt.Errorf("x: %w", codec.ErrDuplicateLayer), ErrInvalidFormat},
		{image.ErrEmptyData, ErrInvalidFormat},
		{fmt.Errorf("x: %w", codec.ErrBadToken), ErrInvalidArgument},
		{fmt.Errorf("x: %w", codec.ErrOutOfRange), ErrInvalidArgument},
		{fmt.Errorf("layer: %w", filter.ErrUnknown), ErrInvalidArgument},
		{image.ErrUnsupportedFormat, ErrInvalidArgument},
		{image.ErrInvalidDimensions, ErrInvalidArgument},
		{image.ErrInvalidMaxValue, ErrInvalidArgument},
		{image.ErrSizeMismatch, ErrInvalidArgument},
		{io.ErrUnexpectedEOF, ErrIOFailure},
		{newError("inner", ErrInvalidState, nil), ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := classify("op", tt.err)
			if got.Kind != tt.kind {
				t.Errorf("classify(%v).Kind = %v, want %v", tt.err, got.Kind, tt.kind)
			}
		})
	}
}
