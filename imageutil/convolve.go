package imageutil

// Kernel is a square-or-rectangular convolution kernel, row-major.
type Kernel struct {
	Values []float64
	Width  int
	Height int
}

// NewKernel creates a kernel from rows of equal length.
func NewKernel(rows [][]float64) *Kernel {
	k := &Kernel{Height: len(rows)}
	if k.Height > 0 {
		k.Width = len(rows[0])
	}
	for _, row := range rows {
		k.Values = append(k.Values, row...)
	}
	return k
}

// SharpeningKernel returns a mild sharpening kernel. Its weights sum to 1,
// so flat regions keep their color.
func SharpeningKernel() *Kernel {
	return NewKernel([][]float64{
		{0, -0.5, 0},
		{-0.5, 3, -0.5},
		{0, -0.5, 0},
	})
}

// GaussianKernel3x3 returns a 3x3 Gaussian blur kernel.
func GaussianKernel3x3() *Kernel {
	return NewKernel([][]float64{
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
		{2.0 / 16, 4.0 / 16, 2.0 / 16},
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
	})
}

// Convolve applies kernel to the color channels of img. Border pixels are
// handled by replicating edge values; alpha is set opaque.
func Convolve(img *RGBAImage, kernel *Kernel) *RGBAImage {
	width, height := img.Width(), img.Height()
	dst := NewRGBAImage(width, height)
	halfKW, halfKH := kernel.Width/2, kernel.Height/2

	for y := 0; y < height; y++ {
		out := dst.Pix[y*dst.Stride : y*dst.Stride+width*4]
		for x := 0; x < width; x++ {
			var sumR, sumG, sumB float64
			for ky := 0; ky < kernel.Height; ky++ {
				sy := clampInt(y+ky-halfKH, 0, height-1)
				row := img.Pix[sy*img.Stride:]
				for kx := 0; kx < kernel.Width; kx++ {
					k := kernel.Values[ky*kernel.Width+kx]
					if k == 0 {
						continue
					}
					p := row[clampInt(x+kx-halfKW, 0, width-1)*4:]
					sumR += float64(p[0]) * k
					sumG += float64(p[1]) * k
					sumB += float64(p[2]) * k
				}
			}
			o := out[x*4 : x*4+4]
			o[0], o[1], o[2], o[3] = clampUint8(sumR), clampUint8(sumG), clampUint8(sumB), 255
		}
	}
	return dst
}

// Sharpen applies SharpeningKernel.
func Sharpen(img *RGBAImage) *RGBAImage {
	return Convolve(img, SharpeningKernel())
}

// GaussianBlur applies a 3x3 Gaussian blur, which suppresses sensor noise
// before block reduction.
func GaussianBlur(img *RGBAImage) *RGBAImage {
	return Convolve(img, GaussianKernel3x3())
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
