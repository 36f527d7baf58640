package img2ascii

import (
	"fmt"
	"image"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// Strategy selects how a block is mapped to a glyph.
type Strategy int

const (
	// RampStrategy indexes the ramp by the block's intensity.
	RampStrategy Strategy = iota
	// TemplateStrategy picks the glyph whose rendered template is closest
	// to the block's grayscale pixels.
	TemplateStrategy
)

var strategyNames = map[Strategy]string{
	RampStrategy:     "ramp",
	TemplateStrategy: "template",
}

// ParseStrategy maps "ramp" or "template" to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if strings.EqualFold(name, n) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown glyph strategy %q", ErrInvalidConfig, name)
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Block is one source block handed to a Selector.
type Block struct {
	// Bounds is the block's rectangle in the prepared frame.
	Bounds image.Rectangle
	// Reduced is the block's average color and intensity.
	Reduced ReducedBlock
	// Gray is the grayscale frame. It is nil unless the selector is a
	// PixelSelector asking for pixels.
	Gray *imageutil.GrayImage
}

// Selector maps a block to a glyph. Implementations are pure and safe
// for concurrent use.
type Selector interface {
	Select(b Block) rune
}

// PixelSelector is a Selector that reads Block.Gray. The renderer builds
// the grayscale frame only when NeedsPixels reports true.
type PixelSelector interface {
	Selector
	NeedsPixels() bool
}

// RampSelector selects ramp[floor(intensity*(len-1))].
type RampSelector struct {
	Ramp *GlyphRamp
}

// Select implements Selector.
func (s RampSelector) Select(b Block) rune {
	return s.Ramp.Glyph(b.Reduced.Intensity)
}

// TemplateSelector selects the ramp character whose template has the
// minimum mean squared error against the block's grayscale pixels.
type TemplateSelector struct {
	set *TemplateSet
}

// NewTemplateSelector checks that set was rendered at block size and
// returns a selector for it.
func NewTemplateSelector(set *TemplateSet, block BlockSize) (*TemplateSelector, error) {
	if set.Size() != block {
		return nil, fmt.Errorf("%w: templates are %s, blocks are %s",
			ErrTemplateMismatch, set.Size(), block)
	}
	return &TemplateSelector{set: set}, nil
}

// Templates returns the underlying template set.
func (s *TemplateSelector) Templates() *TemplateSet {
	return s.set
}

// Select implements Selector. A block that does not have the template
// size, or has no pixels attached, maps to the sparsest glyph.
func (s *TemplateSelector) Select(b Block) rune {
	size := s.set.Size()
	if b.Gray == nil || b.Bounds.Dx() != size.Width || b.Bounds.Dy() != size.Height ||
		!b.Bounds.In(b.Gray.Bounds()) {
		return s.set.Ramp().At(0)
	}
	return s.set.MatchGray(b.Gray.Gray, b.Bounds.Min)
}

// NeedsPixels implements PixelSelector.
func (s *TemplateSelector) NeedsPixels() bool { return true }
