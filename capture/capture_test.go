package capture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"path/filepath"
	"testing"
	"time"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

func TestSequence(t *testing.T) {
	a := imageutil.CreateSolidImage(4, 4, imageutil.RGB{R: 255})
	b := imageutil.CreateSolidImage(4, 4, imageutil.RGB{G: 255})
	seq := NewSequence(a, b)

	for i, want := range []image.Image{a, b} {
		got, err := seq.NextFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if got != want {
			t.Errorf("frame %d: wrong image", i)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := seq.NextFrame(); !errors.Is(err, img2ascii.ErrEndOfStream) {
			t.Errorf("after end: got %v, want ErrEndOfStream", err)
		}
	}
}

func TestSequenceLoop(t *testing.T) {
	a := imageutil.CreateSolidImage(2, 2, imageutil.RGB{})
	seq := NewSequence(a).Loop()
	for i := 0; i < 5; i++ {
		if _, err := seq.NextFrame(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}

	empty := NewSequence().Loop()
	if _, err := empty.NextFrame(); !errors.Is(err, img2ascii.ErrEndOfStream) {
		t.Errorf("empty looping sequence: got %v, want ErrEndOfStream", err)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	if err := imageutil.SaveImage(imageutil.CreateGradientImage(8, 8), good); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.png")

	files := NewFiles(good, missing)
	img, err := files.NextFrame()
	if err != nil {
		t.Fatalf("good file: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("width = %d, want 8", img.Bounds().Dx())
	}
	if files.Current() != good {
		t.Errorf("Current = %q, want %q", files.Current(), good)
	}

	_, err = files.NextFrame()
	var de *img2ascii.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("missing file: got %v, want *DecodeError", err)
	}
	if de.Source != missing {
		t.Errorf("Source = %q, want %q", de.Source, missing)
	}

	if _, err := files.NextFrame(); !errors.Is(err, img2ascii.ErrEndOfStream) {
		t.Errorf("after end: got %v, want ErrEndOfStream", err)
	}
}

// encodeGIF builds a two-frame 4x4 animation: a full red frame, then a
// 2x2 blue patch in the top-left corner with the given disposal.
func encodeGIF(t *testing.T, disposal byte) []byte {
	t.Helper()
	pal := color.Palette{color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}}
	red := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
	blue := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	for i := range blue.Pix {
		blue.Pix[i] = 1
	}

	var buf bytes.Buffer
	err := gif.EncodeAll(&buf, &gif.GIF{
		Image:    []*image.Paletted{red, blue},
		Delay:    []int{5, 7},
		Disposal: []byte{gif.DisposalNone, disposal},
		Config:   image.Config{Width: 4, Height: 4, ColorModel: pal},
	})
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func rgbAt(img image.Image, x, y int) imageutil.RGB {
	return imageutil.RGBFromColor(img.At(x, y))
}

func TestGIFCompositing(t *testing.T) {
	g, err := NewGIF(bytes.NewReader(encodeGIF(t, gif.DisposalNone)), false)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}

	first, err := g.NextFrame()
	if err != nil {
		t.Fatal(err)
	}
	if g.Delay() != 50*time.Millisecond {
		t.Errorf("Delay = %v, want 50ms", g.Delay())
	}
	if got := rgbAt(first, 3, 3); got != (imageutil.RGB{R: 255}) {
		t.Errorf("first frame pixel = %v, want red", got)
	}

	second, err := g.NextFrame()
	if err != nil {
		t.Fatal(err)
	}
	if second.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("second frame bounds = %v, want full canvas", second.Bounds())
	}
	if got := rgbAt(second, 0, 0); got != (imageutil.RGB{B: 255}) {
		t.Errorf("patched pixel = %v, want blue", got)
	}
	if got := rgbAt(second, 3, 3); got != (imageutil.RGB{R: 255}) {
		t.Errorf("untouched pixel = %v, want red from the first frame", got)
	}
	// Returned frames are copies.
	if got := rgbAt(first, 0, 0); got != (imageutil.RGB{R: 255}) {
		t.Errorf("first frame changed after compositing: %v", got)
	}

	if _, err := g.NextFrame(); !errors.Is(err, img2ascii.ErrEndOfStream) {
		t.Errorf("after last frame: got %v, want ErrEndOfStream", err)
	}
}

func TestGIFLoopAndDisposal(t *testing.T) {
	g, err := NewGIF(bytes.NewReader(encodeGIF(t, gif.DisposalBackground)), true)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := g.NextFrame(); err != nil {
			t.Fatal(err)
		}
	}
	// The loop restarts from a cleared canvas with the red frame.
	again, err := g.NextFrame()
	if err != nil {
		t.Fatalf("looped frame: %v", err)
	}
	if got := rgbAt(again, 0, 0); got != (imageutil.RGB{R: 255}) {
		t.Errorf("looped first frame pixel = %v, want red", got)
	}
}

func TestGIFDecodeError(t *testing.T) {
	_, err := NewGIF(bytes.NewReader([]byte("not a gif")), false)
	if !errors.Is(err, img2ascii.ErrDecode) {
		t.Errorf("got %v, want a decode error", err)
	}
}

func TestPaced(t *testing.T) {
	a := imageutil.CreateSolidImage(1, 1, imageutil.RGB{})
	p := NewPaced(NewSequence(a, a, a), 20*time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := p.NextFrame(); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("three paced frames took %v, want at least 40ms", elapsed)
	}
	if _, err := p.NextFrame(); !errors.Is(err, img2ascii.ErrEndOfStream) {
		t.Errorf("got %v, want ErrEndOfStream", err)
	}
}
