package imageutil

import (
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
)

// AdjustContrast scales every channel around the image's mean gray value:
//
//	v' = mid + factor*(v - mid)
//
// A factor above 1 increases contrast, below 1 flattens it toward the
// midpoint and exactly 1 returns an unmodified copy. The midpoint is
// computed once per image, never per block.
func AdjustContrast(img *RGBAImage, factor float64) *RGBAImage {
	if factor == 1 {
		return img.Clone()
	}
	mid := float64(MeanGray(img))

	// Every channel value maps through the same curve, so build it once.
	var lut [256]uint8
	for v := range lut {
		lut[v] = clampUint8(mid + factor*(float64(v)-mid))
	}

	out := adjust.Apply(img.RGBA, func(c color.RGBA) color.RGBA {
		return color.RGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
	})
	return &RGBAImage{RGBA: out}
}

// clampUint8 rounds v and clamps it to [0, 255].
func clampUint8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
