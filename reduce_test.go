package img2ascii

import (
	"image"
	"math"
	"testing"

	"github.com/wbrown/img2ascii/imageutil"
)

func TestBrightness(t *testing.T) {
	tests := []struct {
		c    RGB
		want float64
	}{
		{RGB{0, 0, 0}, 0},
		{RGB{255, 255, 255}, 255},
		{RGB{255, 0, 0}, 76.245},
		{RGB{0, 255, 0}, 149.685},
		{RGB{0, 0, 255}, 29.07},
		{RGB{128, 128, 128}, 128},
	}
	for _, tt := range tests {
		if got := Brightness(tt.c); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Brightness(%v): expected %v, got %v", tt.c, tt.want, got)
		}
	}
}

func TestReducerIntensity(t *testing.T) {
	tests := []struct {
		name    string
		reducer Reducer
		c       RGB
		want    float64
	}{
		{"black brightness", Reducer{}, RGB{0, 0, 0}, 0},
		{"white brightness", Reducer{}, RGB{255, 255, 255}, 1},
		{"gain clamps", Reducer{Gain: 3}, RGB{128, 128, 128}, 1},
		{"gain scales", Reducer{Gain: 2}, RGB{51, 51, 51}, 0.4},
		{"red density", Reducer{Model: DensityModel}, RGB{255, 0, 0}, 1},
		{"black density", Reducer{Model: DensityModel}, RGB{0, 0, 0}, 1},
		{"white density", Reducer{Model: DensityModel}, RGB{255, 255, 255}, 0},
		{"gray density", Reducer{Model: DensityModel}, RGB{153, 153, 153}, 0.44},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reducer.Intensity(tt.c); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWhiteSelectsDensestGlyph(t *testing.T) {
	r := MustGlyphRamp(DefaultRamp)
	white := Reducer{}.Intensity(RGB{255, 255, 255})
	if g := r.Glyph(white); g != '$' {
		t.Errorf("Expected '$' for white, got %q", g)
	}
	red := Reducer{Model: DensityModel}.Intensity(RGB{255, 0, 0})
	if g := r.Glyph(red); g != '$' {
		t.Errorf("Expected '$' for red under density, got %q", g)
	}
}

func TestReduce(t *testing.T) {
	img := imageutil.NewRGBAImage(4, 2)
	img.SetRGB(0, 0, RGB{R: 10, G: 20, B: 30})
	img.SetRGB(1, 0, RGB{R: 11, G: 21, B: 31})
	img.SetRGB(0, 1, RGB{R: 12, G: 22, B: 32})
	img.SetRGB(1, 1, RGB{R: 12, G: 22, B: 32})

	got := Reducer{}.Reduce(img, image.Rect(0, 0, 2, 2))
	// Means are 11.25, 21.25, 31.25, truncated.
	want := RGB{R: 11, G: 21, B: 31}
	if got.Color != want {
		t.Errorf("Expected color %v, got %v", want, got.Color)
	}
	if math.Abs(got.Intensity-Brightness(want)/255) > 1e-9 {
		t.Errorf("Expected intensity %v, got %v", Brightness(want)/255, got.Intensity)
	}
}

func TestReduceDegenerateBlock(t *testing.T) {
	img := imageutil.CreateSolidImage(4, 4, RGB{})
	for _, rect := range []image.Rectangle{
		image.Rect(2, 2, 2, 2),
		image.Rect(10, 10, 12, 12),
	} {
		got := Reducer{}.Reduce(img, rect)
		if got.Color != White || got.Intensity != 0 {
			t.Errorf("Reduce(%v): expected white with intensity 0, got %+v", rect, got)
		}
	}
}

func TestAverageColorClipsToImage(t *testing.T) {
	img := imageutil.CreateSolidImage(2, 2, RGB{R: 200, G: 100, B: 50})
	c, ok := AverageColor(img, image.Rect(1, 1, 5, 5))
	if !ok {
		t.Fatal("Expected the overlapping pixel to be averaged")
	}
	if c != (RGB{R: 200, G: 100, B: 50}) {
		t.Errorf("Expected the single overlapping pixel, got %v", c)
	}
}

func TestParseModel(t *testing.T) {
	for _, m := range []Model{BrightnessModel, DensityModel} {
		got, err := ParseModel(m.String())
		if err != nil || got != m {
			t.Errorf("ParseModel(%q): expected %v, got %v (%v)", m.String(), m, got, err)
		}
	}
	if _, err := ParseModel("luma"); err == nil {
		t.Error("Expected error for unknown model")
	}
}
