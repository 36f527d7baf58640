package imageutil

// ToGrayscale converts an RGBA image to grayscale using the standard
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B, rounded.
// This is the same conversion the template matcher expects its blocks in.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+width*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := range dst {
			p := src[x*4 : x*4+3]
			// Integer math, scaled by 1000
			lum := (299*int(p[0]) + 587*int(p[1]) + 114*int(p[2]) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			dst[x] = uint8(lum)
		}
	}

	return gray
}

// MeanGray returns the mean grayscale value of img, rounded to the
// nearest integer. An empty image has mean 0.
func MeanGray(img *RGBAImage) uint8 {
	gray := ToGrayscale(img)
	width, height := gray.Width(), gray.Height()
	if width == 0 || height == 0 {
		return 0
	}
	var sum uint64
	for y := 0; y < height; y++ {
		for _, v := range gray.Pix[y*gray.Stride : y*gray.Stride+width] {
			sum += uint64(v)
		}
	}
	n := uint64(width * height)
	return uint8((sum + n/2) / n)
}
