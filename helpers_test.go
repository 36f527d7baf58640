package img2ascii

import (
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"
)

// patternFace renders templates from fixed per-glyph patterns. Each
// pattern is called with the template coordinates and returns the gray
// value there; unknown glyphs render white.
type patternFace struct {
	name     string
	patterns map[rune]func(x, y int) uint8
	renders  atomic.Int64
}

func (f *patternFace) Name() string {
	return f.name
}

func (f *patternFace) CellSize() image.Point {
	return image.Pt(4, 6)
}

func (f *patternFace) RenderTemplate(r rune, size BlockSize) *image.Gray {
	f.renders.Add(1)
	img := image.NewGray(image.Rect(0, 0, size.Width, size.Height))
	p := f.patterns[r]
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			v := uint8(255)
			if p != nil {
				v = p(x, y)
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func (f *patternFace) Drawer(dst draw.Image) GlyphDrawer {
	return boxDrawer{dst: dst, cell: f.CellSize()}
}

// boxDrawer paints every glyph as a solid box filling its cell.
type boxDrawer struct {
	dst  draw.Image
	cell image.Point
}

func (d boxDrawer) DrawGlyph(x, y int, r rune, c color.Color) {
	rect := image.Rect(x, y, x+d.cell.X, y+d.cell.Y)
	draw.Draw(d.dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func solid(v uint8) func(x, y int) uint8 {
	return func(x, y int) uint8 { return v }
}

// stripeFace knows a blank space, a vertical bar, a horizontal dash and a
// full block, all on 3x3 templates.
func stripeFace() *patternFace {
	return &patternFace{name: "stripes", patterns: map[rune]func(x, y int) uint8{
		' ': solid(255),
		'|': func(x, y int) uint8 {
			if x == 1 {
				return 0
			}
			return 255
		},
		'-': func(x, y int) uint8 {
			if y == 1 {
				return 0
			}
			return 255
		},
		'#': solid(0),
	}}
}

// frameSource yields its frames, then fails with err or ends.
type frameSource struct {
	frames []image.Image
	err    error
	reads  int
	closed bool
}

func (s *frameSource) NextFrame() (image.Image, error) {
	s.reads++
	if len(s.frames) == 0 {
		if s.err != nil {
			return nil, s.err
		}
		return nil, ErrEndOfStream
	}
	img := s.frames[0]
	s.frames = s.frames[1:]
	return img, nil
}

func (s *frameSource) Close() error {
	s.closed = true
	return nil
}
