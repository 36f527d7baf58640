// Package img2ascii converts images and video frames into character art.
//
// An image is cut into fixed-size blocks; each block is reduced to its
// average color and an intensity, and the intensity (or, for structural
// matching, the block's pixel pattern) selects a glyph from a ramp of
// characters ordered from sparse to dense. The result is plain text,
// ANSI-colored text, or a canvas with each glyph painted in its block's
// color.
package img2ascii

import (
	"context"
	"errors"
	"image"
	"iter"

	"github.com/wbrown/img2ascii/imageutil"
)

// Decode loads the image at path. Unreadable or corrupt input is
// reported as a *DecodeError.
func Decode(path string) (*imageutil.RGBAImage, error) {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	return img, nil
}

// RenderTextASCII converts img to text using ramp indexing under the
// brightness model.
func RenderTextASCII(img image.Image, block BlockSize, ramp string) (string, error) {
	cfg := DefaultConfig()
	cfg.Block = block
	cfg.Ramp = ramp
	cfg.FontSize = 0
	r, err := NewRenderer(cfg)
	if err != nil {
		return "", err
	}
	return r.RenderText(img), nil
}

// RenderColorASCIIImage converts img and paints each glyph in its block's
// average color with the default font at fontSize points.
func RenderColorASCIIImage(img image.Image, block BlockSize, fontSize float64, ramp string, model Model) (*image.RGBA, error) {
	r, err := NewRenderer(colorConfig(block, fontSize, ramp, model))
	if err != nil {
		return nil, err
	}
	return r.RenderImage(img)
}

// StreamASCII returns the rendered canvases of the frames of src, one per
// captured frame, until the source ends or ctx is cancelled. Cancellation
// is observed between frames. The sequence can be ranged over only once;
// later iterations yield nothing. Configuration errors and source
// failures are yielded as the final element.
func StreamASCII(ctx context.Context, src FrameSource, block BlockSize, fontSize float64, ramp string, model Model) iter.Seq2[*image.RGBA, error] {
	r, err := NewRenderer(colorConfig(block, fontSize, ramp, model))
	if err != nil {
		return func(yield func(*image.RGBA, error) bool) {
			yield(nil, err)
		}
	}
	return r.Stream(src).Canvases(ctx)
}

func colorConfig(block BlockSize, fontSize float64, ramp string, model Model) Config {
	cfg := DefaultConfig()
	cfg.Block = block
	cfg.FontSize = fontSize
	cfg.Ramp = ramp
	cfg.Model = model
	return cfg
}

// isCleanEnd reports whether err is the bare end of a stream or a
// cancellation, as opposed to a source failure.
func isCleanEnd(err error) bool {
	return err == ErrEndOfStream ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
