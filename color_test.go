package sketch

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#000", Black},
		{"fff", White},
		{"#ff0000", Red},
		{"00ff00", Green},
		{"#0000ffff", Blue},
		{"#f008", RGBA{R: 1, A: 136.0 / 255}},
		{"bogus", Black},
		{"", Black},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in); got != tt.want {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRGBAColor(t *testing.T) {
	got := RGBA{R: 1, G: 0.5, B: 0, A: 1}.Color()
	want := color.NRGBA{R: 255, G: 127, B: 0, A: 255}
	if got != want {
		t.Errorf("Color() = %v, want %v", got, want)
	}
	if got := (RGBA{R: 2, G: -1, A: 1}).Color(); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("Color() did not clamp: %v", got)
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want RGBA
	}{
		{"nrgba", color.NRGBA{R: 255, G: 0, B: 0, A: 255}, Red},
		{"opaque rgba", color.RGBA{R: 0, G: 0, B: 255, A: 255}, Blue},
		{"transparent", color.RGBA{}, RGBA{}},
		{"gray", color.Gray{Y: 255}, White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromColor(tt.in); got != tt.want {
				t.Errorf("FromColor(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOptionalColor(t *testing.T) {
	var none OptionalColor
	if _, ok := none.Get(); ok {
		t.Error("zero OptionalColor should be absent")
	}

	transparent := Some(Transparent)
	if c, ok := transparent.Get(); !ok || c != Transparent {
		t.Errorf("Some(Transparent).Get() = %v, %v", c, ok)
	}
	if transparent == none {
		t.Error("a transparent color must differ from no color")
	}
}

func TestRGBAFloat32(t *testing.T) {
	if got := (RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1}).Float32(); got != [4]float32{0.25, 0.5, 0.75, 1} {
		t.Errorf("Float32() = %v", got)
	}
}
