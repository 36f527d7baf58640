package img2ascii

import (
	"fmt"
	"image"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// RGB is an 8-bit per channel color.
type RGB = imageutil.RGB

// White is the neutral color of a degenerate block.
var White = RGB{R: 255, G: 255, B: 255}

// Model selects the formula that turns a block's average color into an
// intensity.
type Model int

const (
	// BrightnessModel uses BT.601 brightness scaled by a gain and clamped
	// to [0, 255]; intensity is brightness/255 and lies in [0, 1].
	BrightnessModel Model = iota
	// DensityModel combines inverted BT.709 luma with saturation; the
	// result is clamped above at 1 but may be negative for bright,
	// unsaturated blocks.
	DensityModel
)

var modelNames = map[Model]string{
	BrightnessModel: "brightness",
	DensityModel:    "density",
}

// ParseModel maps "brightness" or "density" to a Model.
func ParseModel(name string) (Model, error) {
	for m, n := range modelNames {
		if strings.EqualFold(name, n) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown reduction model %q", ErrInvalidConfig, name)
}

func (m Model) String() string {
	if n, ok := modelNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Model(%d)", int(m))
}

// ReducedBlock is the result of reducing a block: its average color and
// the intensity derived from it under the active model.
type ReducedBlock struct {
	Color     RGB
	Intensity float64
}

// Brightness returns 0.299r + 0.587g + 0.114b in [0, 255].
func Brightness(c RGB) float64 {
	// Scaled integer sum keeps white at exactly 255.
	return float64(299*int(c.R)+587*int(c.G)+114*int(c.B)) / 1000
}

// Luma returns the perceptual luma 0.2126r + 0.7152g + 0.0722b in [0, 255].
func Luma(c RGB) float64 {
	return float64(2126*int(c.R)+7152*int(c.G)+722*int(c.B)) / 10000
}

// Saturation returns max(r,g,b) - min(r,g,b).
func Saturation(c RGB) float64 {
	hi := max(c.R, c.G, c.B)
	lo := min(c.R, c.G, c.B)
	return float64(hi - lo)
}

// Reducer reduces pixel blocks to a ReducedBlock. The zero value uses
// the brightness model with a gain of 1.
type Reducer struct {
	Model Model
	// Gain multiplies brightness before clamping. Zero means 1.
	// Only the brightness model uses it.
	Gain float64
}

// Intensity computes the intensity of an average color.
func (r Reducer) Intensity(c RGB) float64 {
	switch r.Model {
	case DensityModel:
		v := (1-Luma(c)/255)*1.1 + (Saturation(c)/255)*0.7
		return min(v, 1.0)
	default:
		gain := r.Gain
		if gain == 0 {
			gain = 1
		}
		b := Brightness(c) * gain
		b = max(0, min(b, 255))
		return b / 255
	}
}

// Reduce averages the pixels of img inside rect and computes the
// block's intensity. A block with no pixels inside img reduces to
// intensity 0 and color white.
func (r Reducer) Reduce(img *imageutil.RGBAImage, rect image.Rectangle) ReducedBlock {
	c, ok := AverageColor(img, rect)
	if !ok {
		return ReducedBlock{Color: White, Intensity: 0}
	}
	return ReducedBlock{Color: c, Intensity: r.Intensity(c)}
}

// AverageColor returns the integer-truncated per-channel mean of the
// pixels of img inside rect. It reports false when rect covers no
// pixels of img.
func AverageColor(img *imageutil.RGBAImage, rect image.Rectangle) (RGB, bool) {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return RGB{}, false
	}

	var sr, sg, sb uint64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		off := img.PixOffset(rect.Min.X, y)
		row := img.Pix[off : off+rect.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			sr += uint64(row[x])
			sg += uint64(row[x+1])
			sb += uint64(row[x+2])
		}
	}
	n := uint64(rect.Dx() * rect.Dy())
	return RGB{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n)}, true
}
