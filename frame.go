package img2ascii

import (
	"io"
	"strings"

	"github.com/gookit/color"
)

const (
	ESC = "\u001b"

	ansiReset = ESC + "[0m"
)

// Cell is one output glyph and the average color of its source block.
type Cell struct {
	Glyph rune
	Color RGB
}

// Frame is the converted form of one image: a grid of cells, row-major.
// A Frame is built once and then only read.
type Frame struct {
	Grid  Grid
	Cells []Cell
}

// Cols returns the number of glyphs per row.
func (f *Frame) Cols() int {
	return f.Grid.Cols
}

// Rows returns the number of rows.
func (f *Frame) Rows() int {
	return f.Grid.Rows
}

// At returns the cell at (col, row).
func (f *Frame) At(col, row int) Cell {
	return f.Cells[row*f.Grid.Cols+col]
}

// Row returns the cells of one row.
func (f *Frame) Row(row int) []Cell {
	return f.Cells[row*f.Grid.Cols : (row+1)*f.Grid.Cols]
}

// Lines returns one string per row, without terminators.
func (f *Frame) Lines() []string {
	lines := make([]string, f.Rows())
	var sb strings.Builder
	for row := range lines {
		sb.Reset()
		for _, c := range f.Row(row) {
			sb.WriteRune(c.Glyph)
		}
		lines[row] = sb.String()
	}
	return lines
}

// Text returns the glyphs row-major with a newline after every row. An
// empty frame yields the empty string.
func (f *Frame) Text() string {
	var sb strings.Builder
	sb.Grow(f.Grid.Len() + f.Rows())
	for row := 0; row < f.Rows(); row++ {
		for _, c := range f.Row(row) {
			sb.WriteRune(c.Glyph)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteText writes Text to w.
func (f *Frame) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, f.Text())
	return err
}

// ANSI returns the frame as text colored with 24-bit foreground escapes.
// A new escape is only emitted when the color changes; spaces carry no
// color and never force a change. Every row ends with a reset.
func (f *Frame) ANSI() string {
	var sb strings.Builder
	for row := 0; row < f.Rows(); row++ {
		current := ""
		for _, c := range f.Row(row) {
			if c.Glyph != ' ' {
				code := ansiForeground(c.Color)
				if code != current {
					sb.WriteString(code)
					current = code
				}
			}
			sb.WriteRune(c.Glyph)
		}
		sb.WriteString(ansiReset)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ansiForeground returns the escape sequence selecting c as the 24-bit
// foreground color.
func ansiForeground(c RGB) string {
	return ESC + "[" + color.RGB(c.R, c.G, c.B).String() + "m"
}
