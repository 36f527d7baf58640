package capture

import (
	"errors"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"time"

	"github.com/wbrown/img2ascii"
)

// GIF yields the composited frames of an animated GIF. Each frame is drawn
// over the previous canvas and the frame disposal method is applied
// afterwards, so every returned image is the full picture as a viewer
// would show it.
type GIF struct {
	g      *gif.GIF
	canvas *image.RGBA
	prev   *image.RGBA
	next   int
	loop   bool
	delay  time.Duration
}

// NewGIF decodes an animated GIF from r. When loop is set the animation
// repeats forever.
func NewGIF(r io.Reader, loop bool) (*GIF, error) {
	return decodeGIF(r, "gif", loop)
}

// OpenGIF decodes the animated GIF at path.
func OpenGIF(path string, loop bool) (*GIF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &img2ascii.DecodeError{Source: path, Err: err}
	}
	defer f.Close()
	return decodeGIF(f, path, loop)
}

func decodeGIF(r io.Reader, source string, loop bool) (*GIF, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, &img2ascii.DecodeError{Source: source, Err: err}
	}
	if len(g.Image) == 0 {
		return nil, &img2ascii.DecodeError{Source: source, Err: errors.New("no frames")}
	}
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}
	return &GIF{
		g:      g,
		canvas: image.NewRGBA(image.Rect(0, 0, w, h)),
		loop:   loop,
	}, nil
}

// Len returns the number of frames in one pass of the animation.
func (g *GIF) Len() int {
	return len(g.g.Image)
}

// Delay returns the display time of the most recently returned frame.
func (g *GIF) Delay() time.Duration {
	return g.delay
}

// NextFrame composites and returns the next frame. The returned image is
// a copy the caller may keep.
func (g *GIF) NextFrame() (image.Image, error) {
	if g.next >= len(g.g.Image) {
		if !g.loop {
			return nil, img2ascii.ErrEndOfStream
		}
		g.next = 0
		draw.Draw(g.canvas, g.canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)
	}
	i := g.next
	g.next++

	frame := g.g.Image[i]
	disposal := byte(gif.DisposalNone)
	if i < len(g.g.Disposal) {
		disposal = g.g.Disposal[i]
	}
	if disposal == gif.DisposalPrevious {
		g.prev = cloneRGBA(g.canvas)
	}

	draw.Draw(g.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	out := cloneRGBA(g.canvas)

	switch disposal {
	case gif.DisposalBackground:
		draw.Draw(g.canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		g.canvas = g.prev
	}

	g.delay = 0
	if i < len(g.g.Delay) {
		g.delay = time.Duration(g.g.Delay[i]) * 10 * time.Millisecond
	}
	return out, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
