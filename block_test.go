package img2ascii

import (
	"errors"
	"image"
	"testing"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		w, h       int
		block      BlockSize
		cols, rows int
	}{
		{640, 480, BlockSize{8, 16}, 80, 30},
		{100, 50, BlockSize{7, 14}, 14, 3},
		{1, 1, BlockSize{2, 2}, 0, 0},
		{7, 100, BlockSize{8, 8}, 0, 12},
		{24, 24, BlockSize{24, 24}, 1, 1},
		{0, 10, BlockSize{2, 2}, 0, 0},
	}
	for _, tt := range tests {
		g := Decompose(tt.w, tt.h, tt.block)
		if g.Cols != tt.cols || g.Rows != tt.rows {
			t.Errorf("Decompose(%d, %d, %s): expected %dx%d, got %dx%d",
				tt.w, tt.h, tt.block, tt.cols, tt.rows, g.Cols, g.Rows)
		}
	}
}

func TestDecomposeIsExact(t *testing.T) {
	for w := 1; w <= 40; w++ {
		for bw := 1; bw <= 9; bw++ {
			g := Decompose(w, w, BlockSize{bw, bw})
			if g.Cols*bw > w || (g.Cols+1)*bw <= w {
				t.Fatalf("width %d, block %d: %d columns do not truncate exactly", w, bw, g.Cols)
			}
		}
	}
}

func TestGridCells(t *testing.T) {
	g := Decompose(10, 9, BlockSize{3, 4})
	if g.Len() != 6 {
		t.Fatalf("Expected 6 blocks, got %d", g.Len())
	}
	if got := g.Cell(2, 1); got != image.Rect(6, 4, 9, 8) {
		t.Errorf("Expected cell (2,1) at (6,4)-(9,8), got %v", got)
	}
	if got := g.Bounds(); got != image.Rect(0, 0, 9, 8) {
		t.Errorf("Expected bounds (0,0)-(9,8), got %v", got)
	}
	origins := g.Origins()
	if len(origins) != 6 || origins[4] != image.Pt(3, 4) {
		t.Errorf("Expected row-major origins, got %v", origins)
	}
}

func TestParseBlockSize(t *testing.T) {
	tests := []struct {
		in   string
		want BlockSize
		ok   bool
	}{
		{"8x16", BlockSize{8, 16}, true},
		{"7X14", BlockSize{7, 14}, true},
		{"12", BlockSize{12, 12}, true},
		{" 3 x 5 ", BlockSize{3, 5}, true},
		{"0x4", BlockSize{}, false},
		{"-2", BlockSize{}, false},
		{"axb", BlockSize{}, false},
	}
	for _, tt := range tests {
		got, err := ParseBlockSize(tt.in)
		if tt.ok {
			if err != nil || got != tt.want {
				t.Errorf("ParseBlockSize(%q): expected %v, got %v (%v)", tt.in, tt.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidBlockSize) {
			t.Errorf("ParseBlockSize(%q): expected ErrInvalidBlockSize, got %v", tt.in, err)
		}
	}
}
