package img2ascii

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// BlockSize is the pixel size of the source region reduced to one glyph.
type BlockSize struct {
	Width, Height int
}

// Validate returns ErrInvalidBlockSize unless both sides are positive.
func (b BlockSize) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBlockSize, b.Width, b.Height)
	}
	return nil
}

func (b BlockSize) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// ParseBlockSize parses "WxH" (or a single "N" for a square block).
func ParseBlockSize(s string) (BlockSize, error) {
	w, h, found := strings.Cut(strings.ToLower(s), "x")
	if !found {
		h = w
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return BlockSize{}, fmt.Errorf("%w: %q", ErrInvalidBlockSize, s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return BlockSize{}, fmt.Errorf("%w: %q", ErrInvalidBlockSize, s)
	}
	bs := BlockSize{Width: width, Height: height}
	return bs, bs.Validate()
}

// Grid is the block decomposition of an image. Trailing pixels that do
// not fill a whole block are dropped: an image of width W yields
// (W - W mod bw) / bw columns.
type Grid struct {
	Cols, Rows int
	Block      BlockSize
}

// Decompose computes the grid of whole blocks that fit in a width x
// height image. A block larger than the image yields an empty grid.
// The block size must be valid.
func Decompose(width, height int, block BlockSize) Grid {
	g := Grid{Block: block}
	if block.Width <= 0 || block.Height <= 0 || width <= 0 || height <= 0 {
		return g
	}
	g.Cols = (width - width%block.Width) / block.Width
	g.Rows = (height - height%block.Height) / block.Height
	return g
}

// Len returns the number of blocks.
func (g Grid) Len() int {
	return g.Cols * g.Rows
}

// Empty reports whether the grid has no blocks.
func (g Grid) Empty() bool {
	return g.Len() == 0
}

// Bounds returns the truncated image area covered by the grid.
func (g Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Cols*g.Block.Width, g.Rows*g.Block.Height)
}

// Cell returns the pixel rectangle of the block at (col, row).
func (g Grid) Cell(col, row int) image.Rectangle {
	x, y := col*g.Block.Width, row*g.Block.Height
	return image.Rect(x, y, x+g.Block.Width, y+g.Block.Height)
}

// Origins returns the top-left corner of every block in row-major order.
func (g Grid) Origins() []image.Point {
	out := make([]image.Point, 0, g.Len())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			out = append(out, image.Pt(col*g.Block.Width, row*g.Block.Height))
		}
	}
	return out
}
