package img2ascii

import (
	"image"
	"image/color"
	"testing"
)

func darkPixels(img *image.Gray) int {
	n := 0
	for _, v := range img.Pix {
		if v < 128 {
			n++
		}
	}
	return n
}

func TestDefaultFaceTemplates(t *testing.T) {
	face, err := DefaultFace(10)
	if err != nil {
		t.Fatalf("DefaultFace: %v", err)
	}
	size := BlockSize{7, 14}

	blank := face.RenderTemplate(' ', size)
	if blank.Bounds() != image.Rect(0, 0, 7, 14) {
		t.Fatalf("Expected 7x14 template, got %v", blank.Bounds())
	}
	for i, v := range blank.Pix {
		if v != 255 {
			t.Fatalf("Expected a white space template, pixel %d is %d", i, v)
		}
	}

	hash := face.RenderTemplate('#', size)
	dot := face.RenderTemplate('.', size)
	if darkPixels(hash) == 0 {
		t.Error("Expected dark pixels in the '#' template")
	}
	if darkPixels(hash) <= darkPixels(dot) {
		t.Errorf("Expected '#' (%d dark pixels) to be denser than '.' (%d)",
			darkPixels(hash), darkPixels(dot))
	}
}

func TestTemplateInkIsCentered(t *testing.T) {
	face, err := DefaultFace(10)
	if err != nil {
		t.Fatal(err)
	}
	img := face.RenderTemplate('|', BlockSize{9, 16})

	// Thin strokes are antialiased well above mid-gray, so any
	// non-white pixel counts as ink.
	minX, maxX := 9, -1
	for y := 0; y < 16; y++ {
		for x := 0; x < 9; x++ {
			if img.GrayAt(x, y).Y < 255 {
				minX, maxX = min(minX, x), max(maxX, x)
			}
		}
	}
	if maxX < 0 {
		t.Fatal("Expected ink in the '|' template")
	}
	left, right := minX, 8-maxX
	if d := left - right; d < -2 || d > 2 {
		t.Errorf("Expected horizontally centered ink, margins %d and %d", left, right)
	}
}

func TestTrueTypeFaceCell(t *testing.T) {
	small, err := DefaultFace(8)
	if err != nil {
		t.Fatal(err)
	}
	large, err := DefaultFace(24)
	if err != nil {
		t.Fatal(err)
	}
	s, l := small.CellSize(), large.CellSize()
	if s.X <= 0 || s.Y <= 0 {
		t.Fatalf("Expected a positive cell, got %v", s)
	}
	if l.X <= s.X || l.Y <= s.Y {
		t.Errorf("Expected a larger cell at 24pt (%v) than at 8pt (%v)", l, s)
	}
	if _, err := DefaultFace(0); err == nil {
		t.Error("Expected error for a zero font size")
	}
}

func TestTrueTypeDrawer(t *testing.T) {
	face, err := DefaultFace(12)
	if err != nil {
		t.Fatal(err)
	}
	cell := face.CellSize()
	canvas := image.NewRGBA(image.Rect(0, 0, cell.X*2, cell.Y))
	face.Drawer(canvas).DrawGlyph(cell.X, 0, '@', color.RGBA{255, 0, 0, 255})

	inLeft, inRight := 0, 0
	for y := 0; y < cell.Y; y++ {
		for x := 0; x < cell.X*2; x++ {
			if canvas.RGBAAt(x, y).R > 0 {
				if x < cell.X {
					inLeft++
				} else {
					inRight++
				}
			}
		}
	}
	if inRight == 0 {
		t.Error("Expected the glyph to be drawn in the second cell")
	}
	if inLeft != 0 {
		t.Errorf("Expected nothing in the first cell, got %d pixels", inLeft)
	}
}

func TestPixFace(t *testing.T) {
	face := PixFace{}
	cell := face.CellSize()
	if cell.Y != 8 || cell.X <= 0 {
		t.Errorf("Expected an 8 pixel high cell, got %v", cell)
	}
	img := face.RenderTemplate('#', BlockSize{8, 8})
	if darkPixels(img) == 0 {
		t.Error("Expected dark pixels in the '#' template")
	}
	if darkPixels(face.RenderTemplate(' ', BlockSize{8, 8})) != 0 {
		t.Error("Expected a blank space template")
	}
}
