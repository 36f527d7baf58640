// Package video reads frames from cameras and video files through OpenCV.
// It requires OpenCV to be installed; the rest of img2ascii does not.
package video

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/wbrown/img2ascii"
	"gocv.io/x/gocv"
)

// ErrReadFailed is returned when an open camera stops delivering frames.
var ErrReadFailed = errors.New("camera read failed")

// Capture is an OpenCV capture handle used as a frame source. A camera
// that stops delivering frames fails with ErrReadFailed; a video file that
// runs out ends with img2ascii.ErrEndOfStream.
type Capture struct {
	mu     sync.Mutex
	vc     *gocv.VideoCapture
	mat    gocv.Mat
	source string
	live   bool
	closed bool
}

// OpenCamera opens the camera with the given device index.
func OpenCamera(device int) (*Capture, error) {
	vc, err := gocv.OpenVideoCapture(device)
	source := fmt.Sprintf("camera %d", device)
	if err != nil {
		return nil, &img2ascii.DecodeError{Source: source, Err: err}
	}
	return newCapture(vc, source, true)
}

// OpenFile opens a video file, or any URL OpenCV understands.
func OpenFile(path string) (*Capture, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, &img2ascii.DecodeError{Source: path, Err: err}
	}
	return newCapture(vc, path, false)
}

func newCapture(vc *gocv.VideoCapture, source string, live bool) (*Capture, error) {
	if !vc.IsOpened() {
		vc.Close()
		return nil, &img2ascii.DecodeError{Source: source, Err: errors.New("capture not opened")}
	}
	return &Capture{vc: vc, mat: gocv.NewMat(), source: source, live: live}, nil
}

// Source names the device or file being read.
func (c *Capture) Source() string {
	return c.source
}

// FrameSize returns the frame size reported by the device.
func (c *Capture) FrameSize() image.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return image.Pt(
		int(c.vc.Get(gocv.VideoCaptureFrameWidth)),
		int(c.vc.Get(gocv.VideoCaptureFrameHeight)),
	)
}

// FPS returns the frame rate reported by the device, or zero if unknown.
func (c *Capture) FPS() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vc.Get(gocv.VideoCaptureFPS)
}

// NextFrame blocks until the next frame is read.
func (c *Capture) NextFrame() (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, img2ascii.ErrEndOfStream
	}
	if ok := c.vc.Read(&c.mat); !ok || c.mat.Empty() {
		if c.live {
			return nil, fmt.Errorf("%s: %w", c.source, ErrReadFailed)
		}
		return nil, img2ascii.ErrEndOfStream
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, &img2ascii.DecodeError{Source: c.source, Err: err}
	}
	return img, nil
}

// Close releases the device. It is safe to call more than once.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.mat.Close()
	return c.vc.Close()
}
