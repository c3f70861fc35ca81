package layout

import (
	"image"
	"testing"
)

func TestNormalize(t *testing.T) {
	got := Normalize(image.Rectangle{Min: image.Pt(10, 20), Max: image.Pt(0, 5)})
	if want := image.Rect(0, 5, 10, 20); got != want {
		t.Errorf("Normalize = %v; want %v", got, want)
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		name string
		rect image.Rectangle
		w, h int
		want image.Rectangle
	}{
		{"fits", image.Rect(0, 0, 140, 54), 5, 1, image.Rect(67, 26, 72, 27)},
		{"offset", image.Rect(10, 10, 20, 20), 4, 4, image.Rect(13, 13, 17, 17)},
		{"larger", image.Rect(0, 0, 4, 1), 6, 1, image.Rect(-1, 0, 5, 1)},
		{"negative size", image.Rect(0, 0, 10, 10), -3, -3, image.Rect(5, 5, 5, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Center(tt.rect, tt.w, tt.h); got != tt.want {
				t.Errorf("Center = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestPlace(t *testing.T) {
	screen := image.Rect(0, 0, 1024, 768)
	tests := []struct {
		name   string
		origin image.Point
		want   image.Rectangle
	}{
		{"inside", image.Pt(800, 0), image.Rect(800, 0, 940, 54)},
		{"past right edge", image.Pt(1000, 0), image.Rect(884, 0, 1024, 54)},
		{"negative", image.Pt(-5, -5), image.Rect(0, 0, 140, 54)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(screen, tt.origin, 140, 54)
			if got != tt.want {
				t.Errorf("Place = %v; want %v", got, tt.want)
			}
		})
	}
}
