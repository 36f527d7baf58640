// Command compute_templates pre-renders the glyph templates used by the
// template strategy and saves them as a cache file, so conversions can
// skip font rasterization:
//
//	compute_templates -block 7x14 -fontsize 10 -output structural.tmpl
//	img2ascii -preset structural -cache structural.tmpl photo.jpg
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii"
)

// computeTemplates renders one template per ramp glyph.
func computeTemplates(fontPath string, size float64, ramp *img2ascii.GlyphRamp, block img2ascii.BlockSize) (*img2ascii.TemplateSet, error) {
	var (
		face img2ascii.Face
		err  error
	)
	if fontPath == "" {
		face, err = img2ascii.DefaultFace(size)
	} else {
		face, err = img2ascii.LoadTrueTypeFace(fontPath, size)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return img2ascii.NewTemplateSet(face, ramp, block)
}

func main() {
	inputFont := flag.String("font", "", "Path to a TTF font (default: embedded Go Mono)")
	fontSize := flag.Float64("fontsize", 10, "Font size in points")
	blockSize := flag.String("block", "7x14", "Block size as WxH or N")
	rampChars := flag.String("ramp", img2ascii.DefaultRamp, "Glyph ramp from sparse to dense")
	outputFile := flag.String("output", "", "Path to save the template cache (required)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *outputFile == "" {
		fmt.Println("The -output flag is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	block, err := img2ascii.ParseBlockSize(*blockSize)
	if err != nil {
		log.Fatalf("Invalid block size: %v", err)
	}
	ramp, err := img2ascii.NewGlyphRamp(*rampChars)
	if err != nil {
		log.Fatalf("Invalid ramp: %v", err)
	}

	fontName := "Go Mono"
	if *inputFont != "" {
		fontName = filepath.Base(*inputFont)
	}
	log.Infof("Computing %d templates at %s for %s %vpt", ramp.Len(), block, fontName, *fontSize)

	set, err := computeTemplates(*inputFont, *fontSize, ramp, block)
	if err != nil {
		log.Fatalf("Failed to compute templates: %v", err)
	}
	if err := set.SaveFile(*outputFile); err != nil {
		log.Fatalf("Failed to save templates: %v", err)
	}
	log.Debugf("Templates keyed on face %q", set.Face())

	fileInfo, err := os.Stat(*outputFile)
	if err == nil {
		log.Infof("Saved templates to %s (%.2f KB)", *outputFile, float64(fileInfo.Size())/1024)
	}

	// The cache only matches the exact font and size it was built with.
	flags := []string{"-block " + block.String(), fmt.Sprintf("-fontsize %v", *fontSize)}
	if *inputFont != "" {
		flags = append(flags, "-font "+*inputFont)
	}
	if *rampChars != img2ascii.DefaultRamp {
		flags = append(flags, fmt.Sprintf("-ramp %q", *rampChars))
	}
	flags = append(flags, "-cache "+*outputFile)
	log.Infof("Use with: img2ascii -strategy template %s", strings.Join(flags, " "))
}
