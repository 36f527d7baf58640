package img2ascii

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/img2ascii/imageutil"
)

// FitMode controls how an image whose size is not a multiple of the
// block size is brought onto the block grid.
type FitMode int

const (
	// FitCrop drops the trailing partial blocks on the right and bottom.
	FitCrop FitMode = iota
	// FitResize rescales the image to the truncated size so the whole
	// picture is kept, slightly squeezed.
	FitResize
)

// ParseFitMode maps "crop" or "resize" to a FitMode.
func ParseFitMode(name string) (FitMode, error) {
	switch strings.ToLower(name) {
	case "crop":
		return FitCrop, nil
	case "resize":
		return FitResize, nil
	}
	return 0, fmt.Errorf("%w: unknown fit mode %q", ErrInvalidConfig, name)
}

func (f FitMode) String() string {
	if f == FitResize {
		return "resize"
	}
	return "crop"
}

// Config enumerates everything that varies between conversions. Script
// style variants of the pipeline are expressed as Config values, see
// Presets.
type Config struct {
	// Block is the source pixel size reduced to one glyph.
	Block BlockSize
	// FontSize is the font size in points used for templates and canvas
	// rendering. Zero disables the default font face.
	FontSize float64
	// Ramp lists glyphs from sparsest to densest.
	Ramp string
	// Model is the intensity reduction model.
	Model Model
	// Strategy selects ramp indexing or template matching.
	Strategy Strategy
	// BrightnessGain multiplies brightness under BrightnessModel. Zero
	// means the default gain of 1; a gain that blanks every block is not
	// expressible.
	BrightnessGain float64
	// Contrast is the per-image contrast factor; 1 leaves pixels unchanged.
	// Zero means the default of 1, not a flat gray image.
	Contrast float64
	// Blur smooths the image with a small Gaussian before reduction.
	Blur bool
	// Sharpen applies a mild sharpening filter after any blur.
	Sharpen bool
	// Fit handles sizes that are not a multiple of Block.
	Fit FitMode
	// Interpolation is used whenever the image is rescaled.
	Interpolation imageutil.Interpolation
	// Columns, when positive, rescales the image so that the output has
	// this many glyphs per row, keeping the aspect ratio.
	Columns int
	// Background fills the rendered canvas.
	Background RGB
	// Workers is the number of goroutines reducing rows of a frame.
	Workers int
}

// DefaultConfig returns the configuration used when nothing else is
// specified: 8x16 blocks, the full ramp, brightness model, 12pt font.
func DefaultConfig() Config {
	return Config{
		Block:          BlockSize{Width: 8, Height: 16},
		FontSize:       12,
		Ramp:           DefaultRamp,
		Model:          BrightnessModel,
		Strategy:       RampStrategy,
		BrightnessGain: 1,
		Contrast:       1,
		Fit:            FitCrop,
		Interpolation:  imageutil.InterpolationArea,
		Workers:        1,
	}
}

// PresetStructural matches 7x14 blocks against glyph templates rendered
// at 10pt.
func PresetStructural() Config {
	c := DefaultConfig()
	c.Block = BlockSize{Width: 7, Height: 14}
	c.FontSize = 10
	c.Strategy = TemplateStrategy
	c.Fit = FitResize
	return c
}

// PresetColor renders 24x24 blocks as 12pt glyphs in their average color,
// with brightness boosted by 1.5.
func PresetColor() Config {
	c := DefaultConfig()
	c.Block = BlockSize{Width: 24, Height: 24}
	c.FontSize = 12
	c.BrightnessGain = 1.5
	return c
}

// PresetCamera suits dim, noisy webcam frames: 12x12 blocks, brightness
// x3, blurred.
func PresetCamera() Config {
	c := DefaultConfig()
	c.Block = BlockSize{Width: 12, Height: 12}
	c.FontSize = 12
	c.BrightnessGain = 3
	c.Blur = true
	return c
}

// PresetDensity uses the density model on 12x12 blocks.
func PresetDensity() Config {
	c := DefaultConfig()
	c.Block = BlockSize{Width: 12, Height: 12}
	c.FontSize = 12
	c.Model = DensityModel
	return c
}

var presets = map[string]func() Config{
	"default":    DefaultConfig,
	"structural": PresetStructural,
	"color":      PresetColor,
	"camera":     PresetCamera,
	"density":    PresetDensity,
}

// Preset returns the named preset configuration.
func Preset(name string) (Config, error) {
	if p, ok := presets[strings.ToLower(name)]; ok {
		return p(), nil
	}
	return Config{}, fmt.Errorf("%w: unknown preset %q (have %s)",
		ErrInvalidConfig, name, strings.Join(PresetNames(), ", "))
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalized fills unset numeric fields with their neutral values.
// normalized replaces zero values with their defaults.
func (c Config) normalized() Config {
	if c.BrightnessGain == 0 {
		c.BrightnessGain = 1
	}
	if c.Contrast == 0 {
		c.Contrast = 1
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := c.Block.Validate(); err != nil {
		return err
	}
	if c.Ramp == "" {
		return ErrEmptyRamp
	}
	if c.FontSize < 0 {
		return fmt.Errorf("%w: font size %v", ErrInvalidConfig, c.FontSize)
	}
	if c.BrightnessGain < 0 {
		return fmt.Errorf("%w: brightness gain %v", ErrInvalidConfig, c.BrightnessGain)
	}
	if c.Contrast < 0 {
		return fmt.Errorf("%w: contrast %v", ErrInvalidConfig, c.Contrast)
	}
	if c.Columns < 0 {
		return fmt.Errorf("%w: columns %d", ErrInvalidConfig, c.Columns)
	}
	if _, ok := modelNames[c.Model]; !ok {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Model)
	}
	if _, ok := strategyNames[c.Strategy]; !ok {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Strategy)
	}
	return nil
}

// ParseColor parses a hex color such as "#1e1e1e".
func ParseColor(s string) (RGB, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: color %q: %v", ErrInvalidConfig, s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
