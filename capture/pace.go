package capture

import (
	"image"
	"io"
	"time"

	"github.com/wbrown/img2ascii"
)

// Paced wraps a source so that frames are returned no faster than one per
// interval. Sources that block on real hardware need no pacing; files and
// GIFs do when shown live.
type Paced struct {
	src      img2ascii.FrameSource
	interval time.Duration
	last     time.Time
}

// NewPaced returns src limited to one frame per interval.
func NewPaced(src img2ascii.FrameSource, interval time.Duration) *Paced {
	return &Paced{src: src, interval: interval}
}

// NextFrame waits out the remainder of the interval, then reads src. A
// *GIF source paces by its own frame delays when interval is zero.
func (p *Paced) NextFrame() (image.Image, error) {
	wait := p.interval
	if g, ok := p.src.(*GIF); ok && wait == 0 {
		wait = g.Delay()
	}
	if !p.last.IsZero() {
		if d := wait - time.Since(p.last); d > 0 {
			time.Sleep(d)
		}
	}
	img, err := p.src.NextFrame()
	p.last = time.Now()
	return img, err
}

// Close closes the wrapped source if it is an io.Closer.
func (p *Paced) Close() error {
	if c, ok := p.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
