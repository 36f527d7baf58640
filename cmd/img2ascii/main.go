// Command img2ascii converts images, GIFs, video files and camera streams
// into character art.
//
// Single images print text or ANSI to stdout, or write a PNG canvas:
//
//	img2ascii -preset color -mode png -output out.png photo.jpg
//	img2ascii -mode ansi -cols 100 *.png -output ansi/
//
// Streams are shown live in the terminal, or saved frame by frame:
//
//	img2ascii -preset camera -camera 0
//	img2ascii -gif dance.gif -loop
//	img2ascii -video clip.mp4 -mode png -output frames/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] image...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(flag.Args()); err != nil {
		log.Errorf("img2ascii: %v", err)
		os.Exit(1)
	}
}

func run(inputs []string) error {
	switch *mode {
	case "text", "ansi", "png":
	default:
		return fmt.Errorf("%w: unknown mode %q, options are text, ansi or png",
			img2ascii.ErrInvalidConfig, *mode)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if *camera >= 0 || *videoFile != "" || *gifFile != "" {
		return runStream(cfg)
	}
	if len(inputs) == 0 {
		flag.Usage()
		return fmt.Errorf("no input images")
	}
	return runBatch(cfg, inputs)
}

func newRenderer(cfg img2ascii.Config) (*img2ascii.Renderer, error) {
	if *mode != "png" && *fontPath == "" && !*pixFont && cfg.Strategy == img2ascii.RampStrategy {
		// Text output without templates never touches a font.
		cfg.FontSize = 0
	}
	opts, err := rendererOptions(cfg)
	if err != nil {
		return nil, err
	}
	return img2ascii.NewRenderer(cfg, opts...)
}

// runBatch converts each input image. With one input the result goes to
// stdout or to -output; with several, -output names a directory.
func runBatch(cfg img2ascii.Config, inputs []string) error {
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	if len(inputs) == 1 {
		if err := convertOne(r, inputs[0], *output); err != nil {
			return err
		}
		log.Debugf("converted %s in %v", inputs[0], time.Since(start))
		return nil
	}

	if *output == "" && *mode == "png" {
		return fmt.Errorf("%w: png output of several images needs -output", img2ascii.ErrInvalidConfig)
	}
	if *output != "" {
		if err := os.MkdirAll(*output, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var bar *pb.ProgressBar
	if *output != "" {
		bar = pb.StartNew(len(inputs))
	}
	failed := 0
	for _, in := range inputs {
		dst := ""
		if *output != "" {
			dst = filepath.Join(*output, outputName(in))
		}
		if err := convertOne(r, in, dst); err != nil {
			log.WithField("input", in).Error(err)
			failed++
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	log.Infof("converted %d of %d images in %v", len(inputs)-failed, len(inputs), time.Since(start))
	if failed > 0 {
		return fmt.Errorf("%d images failed", failed)
	}
	return nil
}

// convertOne renders in according to -mode and writes it to dst, or to
// stdout when dst is empty.
func convertOne(r *img2ascii.Renderer, in, dst string) error {
	img, err := img2ascii.Decode(in)
	if err != nil {
		return err
	}

	if *mode == "png" {
		canvas, err := r.RenderImage(img)
		if err != nil {
			return err
		}
		if dst == "" {
			return imageutil.EncodeImage(os.Stdout, canvas, ".png")
		}
		if err := imageutil.SaveImage(canvas, dst); err != nil {
			return err
		}
		log.WithField("output", dst).Debug("wrote canvas")
		return nil
	}

	var text string
	if *mode == "ansi" {
		text = r.RenderANSI(img)
	} else {
		text = r.RenderText(img)
	}
	if dst == "" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	if err := os.WriteFile(dst, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// outputName maps an input path to its file name under the batch output
// directory.
func outputName(in string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	switch *mode {
	case "png":
		return base + ".png"
	case "ansi":
		return base + ".ans"
	}
	return base + ".txt"
}
