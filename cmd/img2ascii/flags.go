package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

var (
	presetName = flag.String("preset", "default",
		"Base configuration: "+strings.Join(img2ascii.PresetNames(), ", "))
	blockSize = flag.String("block", "",
		"Block size as WxH or N (overrides the preset)")
	fontSize = flag.Float64("fontsize", 0,
		"Font size in points for templates and PNG output (overrides the preset)")
	fontPath = flag.String("font", "",
		"Path to a TTF font (default: embedded Go Mono)")
	pixFont = flag.Bool("pixfont", false,
		"Use the built-in 8px bitmap font instead of a TrueType font")
	rampChars = flag.String("ramp", "",
		"Glyph ramp from sparse to dense, or one of: default, short, blocks")
	modelName = flag.String("model", "",
		"Intensity model: brightness or density")
	strategyName = flag.String("strategy", "",
		"Glyph selection: ramp or template")
	gain = flag.Float64("gain", 0,
		"Brightness gain for the brightness model, 0 for the default of 1")
	contrast = flag.Float64("contrast", 0,
		"Contrast factor applied before conversion (1 or 0 = unchanged)")
	blur = flag.Bool("blur", false,
		"Blur the image before conversion to suppress noise")
	sharpen = flag.Bool("sharpen", false,
		"Sharpen the image before conversion")
	fitName = flag.String("fit", "",
		"Partial blocks at the edges: crop or resize")
	interpName = flag.String("interp", "",
		"Interpolation for resizing: area, linear, nearest, lanczos")
	columns = flag.Int("cols", 0,
		"Output width in glyphs, 0 to keep the image size")
	background = flag.String("bg", "",
		"Canvas background color as hex, e.g. #000000")
	workers = flag.Int("workers", 0,
		"Number of goroutines converting rows of a frame")
	cachePath = flag.String("cache", "",
		"Glyph template cache file for the template strategy")

	mode = flag.String("mode", "text",
		"Output mode: text, ansi or png")
	output = flag.String("output", "",
		"Output file, or directory when converting several images or a stream")

	camera = flag.Int("camera", -1,
		"Stream from the camera with this device index")
	videoFile = flag.String("video", "",
		"Stream from a video file")
	gifFile = flag.String("gif", "",
		"Stream the frames of an animated GIF")
	loop = flag.Bool("loop", false,
		"Repeat GIF animations")
	maxFrames = flag.Int("frames", 0,
		"Stop a stream after this many frames, 0 for no limit")

	verbose = flag.Bool("v", false, "Verbose logging")
)

var namedRamps = map[string]string{
	"default": img2ascii.DefaultRamp,
	"short":   img2ascii.ShortRamp,
	"blocks":  img2ascii.BlockRamp,
}

// buildConfig starts from the selected preset and applies every flag the
// user set explicitly.
func buildConfig() (img2ascii.Config, error) {
	cfg, err := img2ascii.Preset(*presetName)
	if err != nil {
		return cfg, err
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if set["block"] {
		if cfg.Block, err = img2ascii.ParseBlockSize(*blockSize); err != nil {
			return cfg, err
		}
	}
	if set["fontsize"] {
		cfg.FontSize = *fontSize
	}
	if set["ramp"] {
		cfg.Ramp = *rampChars
		if named, ok := namedRamps[strings.ToLower(*rampChars)]; ok {
			cfg.Ramp = named
		}
	}
	if set["model"] {
		if cfg.Model, err = img2ascii.ParseModel(*modelName); err != nil {
			return cfg, err
		}
	}
	if set["strategy"] {
		if cfg.Strategy, err = img2ascii.ParseStrategy(*strategyName); err != nil {
			return cfg, err
		}
	}
	if set["gain"] {
		cfg.BrightnessGain = *gain
	}
	if set["contrast"] {
		cfg.Contrast = *contrast
	}
	if set["blur"] {
		cfg.Blur = *blur
	}
	if set["sharpen"] {
		cfg.Sharpen = *sharpen
	}
	if set["fit"] {
		if cfg.Fit, err = img2ascii.ParseFitMode(*fitName); err != nil {
			return cfg, err
		}
	}
	if set["interp"] {
		if cfg.Interpolation, err = imageutil.ParseInterpolation(*interpName); err != nil {
			return cfg, fmt.Errorf("%w: %v", img2ascii.ErrInvalidConfig, err)
		}
	}
	if set["cols"] {
		cfg.Columns = *columns
	}
	if set["bg"] {
		if cfg.Background, err = img2ascii.ParseColor(*background); err != nil {
			return cfg, err
		}
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	return cfg, cfg.Validate()
}

// rendererOptions translates the font and cache flags.
func rendererOptions(cfg img2ascii.Config) ([]img2ascii.RendererOption, error) {
	var opts []img2ascii.RendererOption
	switch {
	case *pixFont:
		opts = append(opts, img2ascii.WithFace(img2ascii.PixFace{}))
	case *fontPath != "":
		size := cfg.FontSize
		if size <= 0 {
			return nil, fmt.Errorf("%w: -font needs a positive font size", img2ascii.ErrInvalidConfig)
		}
		face, err := img2ascii.LoadTrueTypeFace(*fontPath, size)
		if err != nil {
			return nil, err
		}
		opts = append(opts, img2ascii.WithFace(face))
	}
	if *cachePath != "" {
		opts = append(opts, img2ascii.WithTemplateCache(*cachePath))
	}
	return opts, nil
}
