package img2ascii

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io/fs"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii/imageutil"
)

// Renderer is the immutable conversion context: configuration, ramp,
// reducer, glyph selector, glyph templates and font face are fixed at
// construction. A Renderer is safe for concurrent use; each call owns
// the frame and canvas it builds.
type Renderer struct {
	cfg       Config
	ramp      *GlyphRamp
	reducer   Reducer
	selector  Selector
	pixels    bool
	face      Face
	templates *TemplateSet
	cachePath string
	log       *log.Entry
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// WithFace sets the font face used for templates and canvas rendering,
// instead of the default Go Mono face at Config.FontSize.
func WithFace(face Face) RendererOption {
	return func(r *Renderer) {
		r.face = face
	}
}

// WithTemplates supplies prebuilt glyph templates for TemplateStrategy.
func WithTemplates(set *TemplateSet) RendererOption {
	return func(r *Renderer) {
		r.templates = set
	}
}

// WithTemplateCache loads glyph templates from path when it exists and
// matches the configuration; otherwise the templates are rendered and
// written to path.
func WithTemplateCache(path string) RendererOption {
	return func(r *Renderer) {
		r.cachePath = path
	}
}

// WithSelector replaces the selector implied by Config.Strategy.
func WithSelector(s Selector) RendererOption {
	return func(r *Renderer) {
		r.selector = s
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(entry *log.Entry) RendererOption {
	return func(r *Renderer) {
		r.log = entry
	}
}

// NewRenderer validates cfg and builds the conversion context. Ramp,
// block size and template problems are reported here, never during
// conversion.
func NewRenderer(cfg Config, opts ...RendererOption) (*Renderer, error) {
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ramp, err := NewGlyphRamp(cfg.Ramp)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		cfg:     cfg,
		ramp:    ramp,
		reducer: Reducer{Model: cfg.Model, Gain: cfg.BrightnessGain},
		log:     log.WithField("pkg", "img2ascii"),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.face == nil && cfg.FontSize > 0 {
		face, err := DefaultFace(cfg.FontSize)
		if err != nil {
			return nil, err
		}
		r.face = face
	}

	if r.selector == nil {
		if err := r.initSelector(); err != nil {
			return nil, err
		}
	}
	if ps, ok := r.selector.(PixelSelector); ok {
		r.pixels = ps.NeedsPixels()
	}

	r.log.WithFields(log.Fields{
		"block":    cfg.Block,
		"model":    cfg.Model,
		"strategy": cfg.Strategy,
		"ramp":     ramp.Len(),
	}).Debug("renderer ready")
	return r, nil
}

func (r *Renderer) initSelector() error {
	if r.cfg.Strategy == RampStrategy {
		r.selector = RampSelector{Ramp: r.ramp}
		return nil
	}

	if r.templates == nil {
		set, err := r.loadTemplates()
		if err != nil {
			return err
		}
		r.templates = set
	}
	sel, err := NewTemplateSelector(r.templates, r.cfg.Block)
	if err != nil {
		return err
	}
	if r.templates.Ramp().String() != r.ramp.String() {
		return fmt.Errorf("%w: templates built for ramp %q", ErrTemplateMismatch, r.templates.Ramp())
	}
	r.selector = sel
	return nil
}

// loadTemplates reads the template cache if one is configured and
// usable, and renders the templates otherwise. Without a face any cached
// set of the right ramp and size is accepted.
func (r *Renderer) loadTemplates() (*TemplateSet, error) {
	if r.cachePath != "" {
		var faceName string
		if r.face != nil {
			faceName = r.face.Name()
		}
		set, err := LoadTemplateFile(r.cachePath, faceName, r.ramp, r.cfg.Block)
		if err == nil {
			r.log.WithField("path", r.cachePath).Debug("loaded glyph templates")
			return set, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			r.log.WithError(err).Warn("ignoring unusable template cache")
		}
	}

	if r.face == nil {
		return nil, fmt.Errorf("%w: template matching needs a font", ErrNoFace)
	}
	set, err := NewTemplateSet(r.face, r.ramp, r.cfg.Block)
	if err != nil {
		return nil, err
	}
	r.log.WithField("templates", set.Len()).Debug("rendered glyph templates")

	if r.cachePath != "" {
		if err := set.SaveFile(r.cachePath); err != nil {
			r.log.WithError(err).Warn("failed to write template cache")
		}
	}
	return set, nil
}

// Config returns the normalized configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Ramp returns the glyph ramp.
func (r *Renderer) Ramp() *GlyphRamp {
	return r.ramp
}

// Face returns the font face, or nil when the renderer has none.
func (r *Renderer) Face() Face {
	return r.face
}

// Templates returns the glyph templates, or nil for ramp indexing.
func (r *Renderer) Templates() *TemplateSet {
	return r.templates
}

// Prepare applies the per-image stages that run before decomposition:
// rescaling to Config.Columns, the contrast pre-pass, the optional blur
// and sharpen filters and, under FitResize, rescaling to a whole number
// of blocks. The input image is never modified.
func (r *Renderer) Prepare(img image.Image) *imageutil.RGBAImage {
	rgba := imageutil.RGBAImageFromImage(img)
	block := r.cfg.Block

	if r.cfg.Columns > 0 && rgba.Width() > 0 && rgba.Height() > 0 {
		rgba = imageutil.ResizeToWidth(rgba, r.cfg.Columns*block.Width, r.cfg.Interpolation)
	}
	if r.cfg.Contrast != 1 {
		rgba = imageutil.AdjustContrast(rgba, r.cfg.Contrast)
	}
	if r.cfg.Blur {
		rgba = imageutil.GaussianBlur(rgba)
	}
	if r.cfg.Sharpen {
		rgba = imageutil.Sharpen(rgba)
	}
	if r.cfg.Fit == FitResize {
		w := rgba.Width() - rgba.Width()%block.Width
		h := rgba.Height() - rgba.Height()%block.Height
		if w > 0 && h > 0 && (w != rgba.Width() || h != rgba.Height()) {
			rgba = imageutil.Resize(rgba, w, h, r.cfg.Interpolation)
		}
	}
	return rgba
}

// Convert runs the pipeline over one image and returns its frame.
func (r *Renderer) Convert(img image.Image) *Frame {
	prepared := r.Prepare(img)
	grid := Decompose(prepared.Width(), prepared.Height(), r.cfg.Block)
	frame := &Frame{Grid: grid, Cells: make([]Cell, grid.Len())}
	if grid.Empty() {
		return frame
	}

	var gray *imageutil.GrayImage
	if r.pixels {
		gray = imageutil.ToGrayscale(prepared)
	}

	workers := min(r.cfg.Workers, grid.Rows)
	if workers <= 1 {
		for row := 0; row < grid.Rows; row++ {
			r.convertRow(frame, prepared, gray, row)
		}
		return frame
	}

	// Rows write disjoint cells, so the result does not depend on
	// scheduling.
	rows := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rows {
				r.convertRow(frame, prepared, gray, row)
			}
		}()
	}
	for row := 0; row < grid.Rows; row++ {
		rows <- row
	}
	close(rows)
	wg.Wait()
	return frame
}

func (r *Renderer) convertRow(frame *Frame, img *imageutil.RGBAImage, gray *imageutil.GrayImage, row int) {
	grid := frame.Grid
	for col := 0; col < grid.Cols; col++ {
		rect := grid.Cell(col, row)
		reduced := r.reducer.Reduce(img, rect)
		glyph := r.selector.Select(Block{Bounds: rect, Reduced: reduced, Gray: gray})
		frame.Cells[row*grid.Cols+col] = Cell{Glyph: glyph, Color: reduced.Color}
	}
}

// Paint renders a frame onto a new canvas of Cols*cellWidth by
// Rows*cellHeight pixels, filled with Config.Background, each glyph drawn
// in its block's average color. Cell size comes from the font face.
func (r *Renderer) Paint(frame *Frame) (*image.RGBA, error) {
	if r.face == nil {
		return nil, ErrNoFace
	}
	cell := r.face.CellSize()
	canvas := image.NewRGBA(image.Rect(0, 0, frame.Cols()*cell.X, frame.Rows()*cell.Y))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(r.cfg.Background.ToColor()), image.Point{}, draw.Src)

	drawer := r.face.Drawer(canvas)
	for row := 0; row < frame.Rows(); row++ {
		for col, c := range frame.Row(row) {
			if c.Glyph == ' ' {
				continue
			}
			drawer.DrawGlyph(col*cell.X, row*cell.Y, c.Glyph, c.Color.ToColor())
		}
	}
	return canvas, nil
}

// RenderText converts img to plain text, one line per block row.
func (r *Renderer) RenderText(img image.Image) string {
	return r.Convert(img).Text()
}

// RenderANSI converts img to text colored with 24-bit ANSI escapes.
func (r *Renderer) RenderANSI(img image.Image) string {
	return r.Convert(img).ANSI()
}

// RenderImage converts img and paints the result onto a canvas.
func (r *Renderer) RenderImage(img image.Image) (*image.RGBA, error) {
	return r.Paint(r.Convert(img))
}
