package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/capture"
	"github.com/wbrown/img2ascii/capture/video"
	"github.com/wbrown/img2ascii/display"
	"github.com/wbrown/img2ascii/imageutil"
)

// errFrameLimit stops a stream after -frames frames.
var errFrameLimit = errors.New("frame limit reached")

// openSource opens the stream selected by -camera, -video or -gif.
func openSource() (img2ascii.FrameSource, error) {
	switch {
	case *camera >= 0:
		cam, err := video.OpenCamera(*camera)
		if err != nil {
			return nil, err
		}
		return cam, nil
	case *videoFile != "":
		v, err := video.OpenFile(*videoFile)
		if err != nil {
			return nil, err
		}
		interval := time.Duration(0)
		if fps := v.FPS(); fps > 0 {
			interval = time.Duration(float64(time.Second) / fps)
		}
		return capture.NewPaced(v, interval), nil
	default:
		g, err := capture.OpenGIF(*gifFile, *loop)
		if err != nil {
			return nil, err
		}
		return capture.NewPaced(g, 0), nil
	}
}

// runStream converts a stream until it ends, the frame limit is reached,
// or the user interrupts it. Frames are shown live in the terminal unless
// -output names a directory for saved frames.
func runStream(cfg img2ascii.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	src, err := openSource()
	if err != nil {
		return err
	}

	var term *display.Terminal
	if *output == "" {
		if term, err = display.NewTerminal(); err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		defer term.Close()
		if cfg.Columns == 0 {
			cfg.Columns, _ = term.Size()
		}
		term.SetBackground(cfg.Background)
		term.Watch(cancel)
	} else if err := os.MkdirAll(*output, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	stream := r.Stream(src)
	defer stream.Close()

	start := time.Now()
	err = stream.Run(ctx, func(frame *img2ascii.Frame) error {
		n := stream.Frames()
		if term != nil {
			term.Show(frame)
		} else if err := saveFrame(r, frame, n); err != nil {
			return err
		}
		if *maxFrames > 0 && n >= *maxFrames {
			return errFrameLimit
		}
		return nil
	})
	if errors.Is(err, errFrameLimit) {
		err = nil
	}

	elapsed := time.Since(start)
	fields := log.Fields{"frames": stream.Frames(), "elapsed": elapsed}
	if secs := elapsed.Seconds(); secs > 0 {
		fields["fps"] = fmt.Sprintf("%.1f", float64(stream.Frames())/secs)
	}
	if term != nil {
		// Log after the terminal is restored.
		term.Close()
	}
	log.WithFields(fields).Info("stream finished")
	return err
}

// saveFrame writes frame n in the -mode format under the -output directory.
func saveFrame(r *img2ascii.Renderer, frame *img2ascii.Frame, n int) error {
	name := filepath.Join(*output, fmt.Sprintf("frame_%05d", n))
	switch *mode {
	case "png":
		canvas, err := r.Paint(frame)
		if err != nil {
			return err
		}
		return imageutil.SaveImage(canvas, name+".png")
	case "ansi":
		return os.WriteFile(name+".ans", []byte(frame.ANSI()), 0644)
	}
	return os.WriteFile(name+".txt", []byte(frame.Text()), 0644)
}
