package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gogpu/gg-collage/internal/image"
)

// Decoding errors.
var (
	// ErrBadMagic is returned when a document does not start with its format tag.
	ErrBadMagic = errors.New("codec: bad magic")

	// ErrTruncated is returned when a document ends before its declared content.
	ErrTruncated = errors.New("codec: truncated document")

	// ErrBadToken is returned when a numeric field does not parse as an integer.
	ErrBadToken = errors.New("codec: malformed number")

	// ErrOutOfRange is returned for negative dimensions, a non-positive max
	// value, or a channel outside [0, maxValue].
	ErrOutOfRange = errors.New("codec: value out of range")

	// ErrDuplicateLayer is returned when a project names the same layer twice.
	ErrDuplicateLayer = errors.New("codec: duplicate layer")
)

// tokenizer yields whitespace-separated tokens. With comments enabled a
// token starting with '#' discards the rest of its line, as in PPM headers.
type tokenizer struct {
	sc *bufio.Scanner
}

func newTokenizer(r io.Reader, comments bool) *tokenizer {
	// BOMOverride strips a UTF-8 BOM and passes everything else through.
	r = transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	sc := bufio.NewScanner(r)
	if comments {
		sc.Split(scanTokensSkippingComments)
	} else {
		sc.Split(bufio.ScanWords)
	}
	return &tokenizer{sc: sc}
}

// more reports whether another token is available.
func (t *tokenizer) more() bool {
	return t.sc.Scan()
}

// text returns the token read by the last successful more.
func (t *tokenizer) text() string {
	return t.sc.Text()
}

// err returns the underlying read error, if any.
func (t *tokenizer) err() error {
	return t.sc.Err()
}

// next returns the next token. what names the field for error messages.
func (t *tokenizer) next(what string) (string, error) {
	if t.sc.Scan() {
		return t.sc.Text(), nil
	}
	if err := t.sc.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: missing %s", ErrTruncated, what)
}

// int returns the next token parsed as a decimal integer.
func (t *tokenizer) int(what string) (int, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrBadToken, what, tok)
	}
	return v, nil
}

// channel returns the next token as a channel value in [0, maxValue].
func (t *tokenizer) channel(what string, maxValue int) (int, error) {
	v, err := t.int(what)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > maxValue {
		return 0, fmt.Errorf("%w: %s %d not in [0, %d]", ErrOutOfRange, what, v, maxValue)
	}
	return v, nil
}

// header reads the width, height and max value shared by both formats.
func (t *tokenizer) header() (width, height, maxValue int, err error) {
	if width, err = t.int("width"); err != nil {
		return 0, 0, 0, err
	}
	if height, err = t.int("height"); err != nil {
		return 0, 0, 0, err
	}
	if maxValue, err = t.int("max value"); err != nil {
		return 0, 0, 0, err
	}
	if !image.FitsCanvas(height, width) {
		return 0, 0, 0, fmt.Errorf("%w: canvas %dx%d", ErrOutOfRange, width, height)
	}
	if maxValue <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: max value %d", ErrOutOfRange, maxValue)
	}
	return width, height, maxValue, nil
}

// scanTokensSkippingComments is a bufio.SplitFunc like bufio.ScanWords that
// also drops '#' comments running to the end of a line.
func scanTokensSkippingComments(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for {
		for start < len(data) && isSpace(data[start]) {
			start++
		}
		if start >= len(data) || data[start] != '#' {
			break
		}
		nl := bytes.IndexByte(data[start:], '\n')
		if nl < 0 {
			if atEOF {
				return len(data), nil, nil
			}
			return start, nil, nil
		}
		start += nl + 1
	}

	for i := start; i < len(data); i++ {
		if isSpace(data[i]) {
			return i + 1, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
