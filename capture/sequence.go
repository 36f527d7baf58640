// Package capture provides frame sources for img2ascii streams: in-memory
// image sequences, image files, and animated GIFs. Camera and video file
// capture, which need OpenCV, live in the video subpackage.
package capture

import (
	"image"

	"github.com/wbrown/img2ascii"
)

// Sequence yields a fixed list of images in order.
type Sequence struct {
	frames []image.Image
	next   int
	loop   bool
}

// NewSequence returns a source yielding frames once, in order.
func NewSequence(frames ...image.Image) *Sequence {
	return &Sequence{frames: frames}
}

// Loop makes the sequence restart from the first frame instead of ending.
// An empty sequence still ends immediately.
func (s *Sequence) Loop() *Sequence {
	s.loop = true
	return s
}

// NextFrame returns the next image, or img2ascii.ErrEndOfStream.
func (s *Sequence) NextFrame() (image.Image, error) {
	if s.next >= len(s.frames) {
		if !s.loop || len(s.frames) == 0 {
			return nil, img2ascii.ErrEndOfStream
		}
		s.next = 0
	}
	img := s.frames[s.next]
	s.next++
	return img, nil
}

// Files decodes image files lazily, one per frame.
type Files struct {
	paths []string
	next  int
}

// NewFiles returns a source decoding paths in order.
func NewFiles(paths ...string) *Files {
	return &Files{paths: paths}
}

// NextFrame decodes the next file. A file that cannot be decoded fails
// with an *img2ascii.DecodeError.
func (f *Files) NextFrame() (image.Image, error) {
	if f.next >= len(f.paths) {
		return nil, img2ascii.ErrEndOfStream
	}
	path := f.paths[f.next]
	f.next++
	img, err := img2ascii.Decode(path)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Current returns the path of the most recently returned frame.
func (f *Files) Current() string {
	if f.next == 0 {
		return ""
	}
	return f.paths[f.next-1]
}
