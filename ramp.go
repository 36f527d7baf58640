package img2ascii

import (
	"fmt"
	"math"
)

const (
	// DefaultRamp is the 67 character ramp ordered from the sparsest glyph
	// (a space) to the densest.
	DefaultRamp = " .`^\",:;Il!i~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$"

	// ShortRamp is a ten step ramp for coarse output.
	ShortRamp = " .:-=+*#%@"

	// BlockRamp uses the Unicode shade characters.
	BlockRamp = " ░▒▓█"
)

// epsilon absorbs floating-point rounding when an intensity lands on a
// ramp boundary, so that 1.0 computed as 0.9999999999 still selects the
// densest glyph.
const epsilon = 0.000001

// GlyphRamp is an ordered sequence of distinct characters from visually
// sparsest (index 0) to densest (index Len()-1). A GlyphRamp is immutable
// and safe for concurrent use.
type GlyphRamp struct {
	chars []rune
	index map[rune]int
}

// NewGlyphRamp builds a ramp from chars, sparsest first. It fails with
// ErrEmptyRamp for an empty string and ErrDuplicateGlyph when a
// character appears twice.
func NewGlyphRamp(chars string) (*GlyphRamp, error) {
	runes := []rune(chars)
	if len(runes) == 0 {
		return nil, ErrEmptyRamp
	}
	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if first, ok := index[r]; ok {
			return nil, fmt.Errorf("%w: %q at %d and %d", ErrDuplicateGlyph, r, first, i)
		}
		index[r] = i
	}
	return &GlyphRamp{chars: runes, index: index}, nil
}

// MustGlyphRamp is like NewGlyphRamp but panics on error. It is meant for
// package-level ramps built from constants.
func MustGlyphRamp(chars string) *GlyphRamp {
	r, err := NewGlyphRamp(chars)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of glyphs.
func (g *GlyphRamp) Len() int {
	return len(g.chars)
}

// At returns the glyph at index i.
func (g *GlyphRamp) At(i int) rune {
	return g.chars[i]
}

// Position returns the index of r in the ramp.
func (g *GlyphRamp) Position(r rune) (int, bool) {
	i, ok := g.index[r]
	return i, ok
}

// Runes returns a copy of the ramp characters.
func (g *GlyphRamp) Runes() []rune {
	out := make([]rune, len(g.chars))
	copy(out, g.chars)
	return out
}

func (g *GlyphRamp) String() string {
	return string(g.chars)
}

// Index maps a normalized intensity to a ramp position:
// floor(intensity * (Len()-1)), clamped to [0, Len()-1]. Intensities
// below 0 select the first glyph and above 1 the last. Index is
// monotonic in intensity.
func (g *GlyphRamp) Index(intensity float64) int {
	last := len(g.chars) - 1
	if math.IsNaN(intensity) || intensity <= 0 || last == 0 {
		return 0
	}
	i := int(math.Floor(intensity*float64(last) + epsilon))
	if i > last {
		return last
	}
	return i
}

// Glyph returns the character selected by intensity.
func (g *GlyphRamp) Glyph(intensity float64) rune {
	return g.chars[g.Index(intensity)]
}
