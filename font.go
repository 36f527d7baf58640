package img2ascii

import (
	"crypto/sha256"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/submersibletoaster/pixfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Face is the text-rendering collaborator. It rasterizes glyph templates
// for structural matching and draws glyphs onto output canvases.
type Face interface {
	// Name identifies the font and its size. Template caches built with
	// one face are rejected for a face with another name.
	Name() string
	// CellSize is the pixel size of one output glyph cell.
	CellSize() image.Point
	// RenderTemplate rasterizes r dark on a white background, with its
	// ink centered in a size.Width x size.Height grayscale image.
	RenderTemplate(r rune, size BlockSize) *image.Gray
	// Drawer returns a GlyphDrawer painting onto dst. A drawer belongs to
	// a single canvas and must not be shared between goroutines.
	Drawer(dst draw.Image) GlyphDrawer
}

// GlyphDrawer paints glyphs onto one canvas.
type GlyphDrawer interface {
	// DrawGlyph draws r in color c with its cell's top-left corner at (x, y).
	DrawGlyph(x, y int, r rune, c color.Color)
}

// TrueTypeFace renders glyphs from a TrueType font with freetype.
type TrueTypeFace struct {
	font   *truetype.Font
	name   string
	size   float64
	cell   image.Point
	ascent int

	mu   sync.Mutex // guards face, whose glyph cache is not goroutine safe
	face font.Face
}

// NewTrueTypeFace parses TrueType font data and prepares it at size points
// (72 DPI, so one point is one pixel).
func NewTrueTypeFace(ttf []byte, size float64) (*TrueTypeFace, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: font size %v", ErrInvalidConfig, size)
	}
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	// Cell metrics come from the font, not from the block size. The
	// advance of 'M' is the widest in practice, and exact for monospace.
	metrics := face.Metrics()
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		advance = metrics.Height / 2
	}
	ascent := metrics.Ascent.Ceil()
	cell := image.Pt(advance.Ceil(), ascent+metrics.Descent.Ceil())
	if cell.X <= 0 || cell.Y <= 0 {
		return nil, fmt.Errorf("%w: font has empty cell at size %v", ErrInvalidConfig, size)
	}

	sum := sha256.Sum256(ttf)
	name := fmt.Sprintf("%s %x %gpt", f.Name(truetype.NameIDFontFullName), sum[:6], size)

	return &TrueTypeFace{
		font:   f,
		name:   name,
		size:   size,
		cell:   cell,
		ascent: ascent,
		face:   face,
	}, nil
}

// LoadTrueTypeFace loads a TrueType font file at size points.
func LoadTrueTypeFace(path string, size float64) (*TrueTypeFace, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return NewTrueTypeFace(fontBytes, size)
}

// DefaultFace returns the Go Mono font at size points.
func DefaultFace(size float64) (*TrueTypeFace, error) {
	return NewTrueTypeFace(gomono.TTF, size)
}

// Name implements Face. It combines the font's full name, a digest of the
// font data and the size.
func (t *TrueTypeFace) Name() string {
	return t.name
}

// Size returns the font size in points.
func (t *TrueTypeFace) Size() float64 {
	return t.size
}

// CellSize implements Face.
func (t *TrueTypeFace) CellSize() image.Point {
	return t.cell
}

func (t *TrueTypeFace) context(dst draw.Image) *freetype.Context {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(t.font)
	ctx.SetFontSize(t.size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetHinting(font.HintingFull)
	return ctx
}

// RenderTemplate implements Face. The glyph's ink bounding box is centered
// in the image; glyphs larger than the image are clipped symmetrically.
func (t *TrueTypeFace) RenderTemplate(r rune, size BlockSize) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	t.mu.Lock()
	bounds, _, ok := t.face.GlyphBounds(r)
	t.mu.Unlock()
	if !ok || bounds.Empty() {
		return img
	}

	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	inkW := bounds.Max.X.Ceil() - minX
	inkH := bounds.Max.Y.Ceil() - minY
	dotX := floorDiv(size.Width-inkW, 2) - minX
	dotY := floorDiv(size.Height-inkH, 2) - minY

	ctx := t.context(img)
	ctx.SetSrc(image.Black)
	// GlyphBounds succeeded, so the glyph exists and drawing cannot fail.
	_, _ = ctx.DrawString(string(r), freetype.Pt(dotX, dotY))
	return img
}

// Drawer implements Face.
func (t *TrueTypeFace) Drawer(dst draw.Image) GlyphDrawer {
	return &trueTypeDrawer{ctx: t.context(dst), ascent: t.ascent}
}

type trueTypeDrawer struct {
	ctx    *freetype.Context
	ascent int
}

func (d *trueTypeDrawer) DrawGlyph(x, y int, r rune, c color.Color) {
	d.ctx.SetSrc(image.NewUniform(c))
	// Missing glyphs are skipped; the cell keeps its background.
	_, _ = d.ctx.DrawString(string(r), freetype.Pt(x, y+d.ascent))
}

// pixFaceHeight is the height of pixfont's built-in face.
const pixFaceHeight = 8

// PixFace is the 8 pixel bitmap font built into pixfont. It needs no font
// file, which makes it the fallback face.
type PixFace struct{}

// Name implements Face.
func (PixFace) Name() string {
	return "pixfont 8px"
}

// CellSize implements Face. The measured width includes pixfont's one
// pixel of spacing.
func (PixFace) CellSize() image.Point {
	return image.Pt(pixfont.MeasureString("M"), pixFaceHeight)
}

// RenderTemplate implements Face.
func (PixFace) RenderTemplate(r rune, size BlockSize) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	if r == ' ' {
		return img
	}
	inkW := pixfont.MeasureString(string(r)) - 1
	x := floorDiv(size.Width-inkW, 2)
	y := floorDiv(size.Height-pixFaceHeight, 2)
	pixfont.DrawString(img, x, y, string(r), color.Black)
	return img
}

// Drawer implements Face.
func (PixFace) Drawer(dst draw.Image) GlyphDrawer {
	return pixDrawer{dst: dst}
}

type pixDrawer struct {
	dst draw.Image
}

func (d pixDrawer) DrawGlyph(x, y int, r rune, c color.Color) {
	pixfont.DrawString(d.dst, x, y, string(r), c)
}

// floorDiv divides rounding toward negative infinity, so that glyphs
// larger than their cell are offset the same way on both sides.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
