package img2ascii

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRamp is returned when a glyph ramp has no characters.
	ErrEmptyRamp = errors.New("empty glyph ramp")
	// ErrDuplicateGlyph is returned when a ramp repeats a character.
	ErrDuplicateGlyph = errors.New("duplicate glyph in ramp")
	// ErrInvalidBlockSize is returned for blocks with a non-positive side.
	ErrInvalidBlockSize = errors.New("invalid block size")
	// ErrInvalidConfig is returned for any other rejected configuration value.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrTemplateMismatch is returned when glyph templates were generated
	// for a different block size or ramp than the one in use.
	ErrTemplateMismatch = errors.New("glyph templates do not match block size")
	// ErrNoFace is returned when a rendered canvas is requested from a
	// renderer without a font face.
	ErrNoFace = errors.New("no font face configured")
	// ErrEndOfStream is returned by a FrameSource with no more frames, and
	// by a Stream that has terminated.
	ErrEndOfStream = errors.New("end of stream")
	// ErrDecode matches every *DecodeError through errors.Is.
	ErrDecode = errors.New("decode failed")
)

// DecodeError reports an unreadable source image or an unavailable
// capture device. It is fatal and never retried.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports ErrDecode as a match so callers need not type-assert.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
