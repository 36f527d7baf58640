package img2ascii

import (
	"errors"
	"math"
	"testing"
)

func TestNewGlyphRamp(t *testing.T) {
	tests := []struct {
		name  string
		chars string
		err   error
	}{
		{"default", DefaultRamp, nil},
		{"short", ShortRamp, nil},
		{"blocks", BlockRamp, nil},
		{"single", "@", nil},
		{"empty", "", ErrEmptyRamp},
		{"duplicate", " .:.", ErrDuplicateGlyph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewGlyphRamp(tt.chars)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Expected error %v, got %v", tt.err, err)
			}
			if err == nil && r.String() != tt.chars {
				t.Errorf("Expected ramp %q, got %q", tt.chars, r.String())
			}
		})
	}
}

func TestDefaultRampLength(t *testing.T) {
	r := MustGlyphRamp(DefaultRamp)
	if r.Len() != 67 {
		t.Errorf("Expected 67 glyphs, got %d", r.Len())
	}
	if r.At(0) != ' ' || r.At(r.Len()-1) != '$' {
		t.Errorf("Expected ramp from ' ' to '$', got %q to %q", r.At(0), r.At(r.Len()-1))
	}
	if i, ok := r.Position('@'); !ok || i != 65 {
		t.Errorf("Expected '@' at 65, got %d (%v)", i, ok)
	}
}

func TestRampIndexBoundaries(t *testing.T) {
	r := MustGlyphRamp(ShortRamp)
	tests := []struct {
		intensity float64
		want      int
	}{
		{0, 0},
		{-0.5, 0},
		{math.NaN(), 0},
		{1, 9},
		{1.7, 9},
		{0.5, 4},
		{1.0 / 9, 1},
		{0.9999999999, 9},
		{8.0 / 9, 8},
	}
	for _, tt := range tests {
		if got := r.Index(tt.intensity); got != tt.want {
			t.Errorf("Index(%v): expected %d, got %d", tt.intensity, tt.want, got)
		}
	}
}

func TestRampIndexMonotonic(t *testing.T) {
	r := MustGlyphRamp(DefaultRamp)
	prev := 0
	for i := 0; i <= 10000; i++ {
		idx := r.Index(float64(i) / 10000)
		if idx < prev {
			t.Fatalf("Index decreased at intensity %v: %d < %d", float64(i)/10000, idx, prev)
		}
		prev = idx
	}
	if prev != r.Len()-1 {
		t.Errorf("Expected intensity 1 to reach the last glyph, got %d", prev)
	}
}

func TestSingleGlyphRamp(t *testing.T) {
	r := MustGlyphRamp("#")
	for _, v := range []float64{0, 0.3, 1, 5} {
		if g := r.Glyph(v); g != '#' {
			t.Errorf("Glyph(%v): expected '#', got %q", v, g)
		}
	}
}

func TestRampRunesIsCopy(t *testing.T) {
	r := MustGlyphRamp("abc")
	runes := r.Runes()
	runes[0] = 'z'
	if r.At(0) != 'a' {
		t.Error("Modifying Runes() should not affect the ramp")
	}
}
