package img2ascii

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"iter"
	"sync"

	log "github.com/sirupsen/logrus"
)

// FrameSource is the capture collaborator of a stream. NextFrame blocks
// until a frame is available and returns ErrEndOfStream when the source
// is exhausted. A source that also implements io.Closer is closed by
// Stream.Close.
type FrameSource interface {
	NextFrame() (image.Image, error)
}

// Stream converts the frames of a FrameSource one at a time. Nothing
// carries from one frame to the next except the renderer's immutable
// context. A Stream cannot be restarted: once it has ended every call to
// Next returns ErrEndOfStream.
type Stream struct {
	r   *Renderer
	src FrameSource
	log *log.Entry

	read sync.Mutex // serializes Next, held while the source blocks

	mu        sync.Mutex // guards the fields below, never held across NextFrame
	done      bool
	reading   bool
	closing   bool
	srcClosed bool
	frames    int
}

// Stream returns a stream converting the frames of src.
func (r *Renderer) Stream(src FrameSource) *Stream {
	return &Stream{r: r, src: src, log: r.log.WithField("stream", fmt.Sprintf("%T", src))}
}

// Next acquires and converts the next frame. The context is checked once,
// before acquiring the frame; a frame in progress always completes.
//
// When the source is exhausted Next returns ErrEndOfStream. When the
// source fails the stream ends too, and the error wraps both
// ErrEndOfStream and the source error. Cancellation returns ctx.Err().
func (s *Stream) Next(ctx context.Context) (*Frame, error) {
	s.read.Lock()
	defer s.read.Unlock()

	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return nil, ErrEndOfStream
	}
	if err := ctx.Err(); err != nil {
		s.finish("cancelled")
		s.mu.Unlock()
		return nil, err
	}
	s.reading = true
	s.mu.Unlock()

	img, err := s.src.NextFrame()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reading = false
	if s.closing {
		// Closed while the source was blocked: drop whatever it returned.
		if err := s.closeSource(); err != nil {
			s.log.WithError(err).Warn("failed to close frame source")
		}
		return nil, ErrEndOfStream
	}
	if err != nil {
		if errors.Is(err, ErrEndOfStream) {
			s.finish("end of input")
			return nil, ErrEndOfStream
		}
		s.finish("capture failed")
		return nil, fmt.Errorf("%w: %w", ErrEndOfStream, err)
	}

	s.frames++
	return s.r.Convert(img), nil
}

func (s *Stream) finish(reason string) {
	s.done = true
	s.log.WithField("frames", s.frames).Debugf("stream ended: %s", reason)
}

// Frames returns the number of frames converted so far.
func (s *Stream) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Run calls fn with every frame until the stream ends, ctx is cancelled
// or fn returns an error. A clean end of input or a cancellation
// returns nil.
func (s *Stream) Run(ctx context.Context, fn func(*Frame) error) error {
	for {
		frame, err := s.Next(ctx)
		if err != nil {
			if isCleanEnd(err) {
				return nil
			}
			return err
		}
		if err := fn(frame); err != nil {
			return err
		}
	}
}

// Canvases returns the painted frames as a single-use sequence. Source
// failures and paint errors are yielded once and end the sequence.
func (s *Stream) Canvases(ctx context.Context) iter.Seq2[*image.RGBA, error] {
	return func(yield func(*image.RGBA, error) bool) {
		for {
			frame, err := s.Next(ctx)
			if err != nil {
				if !isCleanEnd(err) {
					yield(nil, err)
				}
				return
			}
			canvas, err := s.r.Paint(frame)
			if !yield(canvas, err) || err != nil {
				return
			}
		}
	}
}

// Close ends the stream and closes the source if it is an io.Closer. It
// may be called from any goroutine and does not wait for a blocked
// NextFrame: the stream ends at once and the source is closed as soon as
// that read returns.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.finish("closed")
	}
	if s.reading {
		s.closing = true
		return nil
	}
	return s.closeSource()
}

func (s *Stream) closeSource() error {
	s.closing = false
	if s.srcClosed {
		return nil
	}
	s.srcClosed = true
	if c, ok := s.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
