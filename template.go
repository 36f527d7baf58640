package img2ascii

import (
	"encoding/gob"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// GlyphTemplate is the grayscale raster of one ramp character at block
// size, row-major, 0 = black ink and 255 = white paper.
type GlyphTemplate struct {
	Char rune
	Pix  []uint8
}

// TemplateSet holds one template per ramp character, in ramp order, all
// of the same size. It is immutable after construction and safe for
// concurrent use.
type TemplateSet struct {
	face      string
	size      BlockSize
	ramp      *GlyphRamp
	templates []GlyphTemplate
}

// NewTemplateSet renders a template for every character of ramp with face.
func NewTemplateSet(face Face, ramp *GlyphRamp, size BlockSize) (*TemplateSet, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	set := &TemplateSet{
		face:      face.Name(),
		size:      size,
		ramp:      ramp,
		templates: make([]GlyphTemplate, ramp.Len()),
	}
	for i := 0; i < ramp.Len(); i++ {
		r := ramp.At(i)
		img := face.RenderTemplate(r, size)
		b := img.Bounds()
		if b.Dx() != size.Width || b.Dy() != size.Height {
			return nil, fmt.Errorf("%w: template for %q is %dx%d, want %s",
				ErrTemplateMismatch, r, b.Dx(), b.Dy(), size)
		}
		pix := make([]uint8, size.Width*size.Height)
		for y := 0; y < size.Height; y++ {
			off := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pix[y*size.Width:(y+1)*size.Width], img.Pix[off:off+size.Width])
		}
		set.templates[i] = GlyphTemplate{Char: r, Pix: pix}
	}
	return set, nil
}

// Face returns the name of the face the templates were rendered with.
func (s *TemplateSet) Face() string {
	return s.face
}

// Size returns the block size the templates were rendered at.
func (s *TemplateSet) Size() BlockSize {
	return s.size
}

// Ramp returns the ramp the set was built for.
func (s *TemplateSet) Ramp() *GlyphRamp {
	return s.ramp
}

// Len returns the number of templates.
func (s *TemplateSet) Len() int {
	return len(s.templates)
}

// Lookup returns the template for r.
func (s *TemplateSet) Lookup(r rune) (GlyphTemplate, bool) {
	i, ok := s.ramp.Position(r)
	if !ok {
		return GlyphTemplate{}, false
	}
	return s.templates[i], true
}

// Match returns the character whose template has the smallest mean
// squared error against block, a row-major grayscale raster of the set's
// size. Ties go to the earliest character in ramp order.
func (s *TemplateSet) Match(block []uint8) rune {
	if len(block) != s.size.Width*s.size.Height {
		panic(fmt.Sprintf("img2ascii: block of %d pixels matched against %s templates", len(block), s.size))
	}
	return s.match(block, 0, s.size.Width)
}

// MatchGray is Match over the block of img whose top-left corner is at.
// The block must lie inside img.
func (s *TemplateSet) MatchGray(img *image.Gray, at image.Point) rune {
	return s.match(img.Pix, img.PixOffset(at.X, at.Y), img.Stride)
}

// match scans the templates in ramp order against the block starting at
// pix[off] with the given row stride. Errors are summed exactly in
// integers and a template is abandoned as soon as its partial sum reaches
// the best so far: it could then at most tie, and a tie never replaces an
// earlier match.
func (s *TemplateSet) match(pix []uint8, off, stride int) rune {
	w, h := s.size.Width, s.size.Height
	best := 0
	bestErr := int64(-1)
	for i := range s.templates {
		tmpl := s.templates[i].Pix
		var sum int64
	rows:
		for y := 0; y < h; y++ {
			row := pix[off+y*stride : off+y*stride+w]
			trow := tmpl[y*w : (y+1)*w]
			for x, v := range row {
				d := int64(v) - int64(trow[x])
				sum += d * d
			}
			if bestErr >= 0 && sum >= bestErr {
				break rows
			}
		}
		if bestErr < 0 || sum < bestErr {
			best, bestErr = i, sum
		}
	}
	return s.templates[best].Char
}

// templateCache is the on-disk form of a TemplateSet.
type templateCache struct {
	Version int
	Face    string
	Ramp    string
	Width   int
	Height  int
	Glyphs  []GlyphTemplate
}

const templateCacheVersion = 2

// Save writes the set as a zstd-compressed gob stream.
func (s *TemplateSet) Save(w io.Writer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	data := templateCache{
		Version: templateCacheVersion,
		Face:    s.face,
		Ramp:    s.ramp.String(),
		Width:   s.size.Width,
		Height:  s.size.Height,
		Glyphs:  s.templates,
	}
	if err := gob.NewEncoder(enc).Encode(&data); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode templates: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the set to path.
func (s *TemplateSet) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create template cache: %w", err)
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadTemplateSet reads a set written by Save. The cached set must have
// been built for exactly ramp and size and, unless face is empty, with the
// face of that name; otherwise ErrTemplateMismatch is returned.
func LoadTemplateSet(r io.Reader, face string, ramp *GlyphRamp, size BlockSize) (*TemplateSet, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	var data templateCache
	if err := gob.NewDecoder(dec).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}
	if data.Version != templateCacheVersion {
		return nil, fmt.Errorf("unsupported template cache version %d", data.Version)
	}
	if face != "" && data.Face != face {
		return nil, fmt.Errorf("%w: cache was built with face %q", ErrTemplateMismatch, data.Face)
	}
	if data.Width != size.Width || data.Height != size.Height {
		return nil, fmt.Errorf("%w: cache is %dx%d, blocks are %s",
			ErrTemplateMismatch, data.Width, data.Height, size)
	}
	if data.Ramp != ramp.String() || len(data.Glyphs) != ramp.Len() {
		return nil, fmt.Errorf("%w: cache was built for ramp %q", ErrTemplateMismatch, data.Ramp)
	}
	for i, g := range data.Glyphs {
		if g.Char != ramp.At(i) || len(g.Pix) != size.Width*size.Height {
			return nil, fmt.Errorf("%w: corrupt template %d", ErrTemplateMismatch, i)
		}
	}
	return &TemplateSet{face: data.Face, size: size, ramp: ramp, templates: data.Glyphs}, nil
}

// LoadTemplateFile reads a template cache from path.
func LoadTemplateFile(path, face string, ramp *GlyphRamp, size BlockSize) (*TemplateSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template cache: %w", err)
	}
	defer f.Close()
	return LoadTemplateSet(f, face, ramp, size)
}
