package overlay

import (
	"image"
	"image/color"
	"testing"
)

func TestTransform_ScaleOnly(t *testing.T) {
	src := solidNRGBA(100, 50, red)

	tests := []struct {
		name           string
		width          int
		expectedWidth  int
		expectedHeight int
	}{
		{"same width", 100, 100, 50},
		{"downscale", 50, 50, 25},
		{"upscale", 150, 150, 75},
		{"rounding", 33, 33, 17}, // 50*33/100 = 16.5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Transform(src, 0, tt.width)
			b := out.Bounds()
			if b.Dx() != tt.expectedWidth || b.Dy() != tt.expectedHeight {
				t.Errorf("Transform size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.expectedWidth, tt.expectedHeight)
			}
		})
	}
}

func TestTransform_KeepsSolidColor(t *testing.T) {
	out := Transform(solidNRGBA(40, 40, red), 0, 80)

	got := out.NRGBAAt(40, 40)
	if got.R < 250 || got.G > 5 || got.B > 5 || got.A < 250 {
		t.Errorf("expected opaque red in the middle, got %v", got)
	}
}

func TestTransform_RotatesClockwise(t *testing.T) {
	src := solidNRGBA(4, 2, color.NRGBA{B: 255, A: 255})
	src.SetNRGBA(0, 0, red)

	out := Transform(src, 90, 2)

	b := out.Bounds()
	if b.Dx() != 2 || b.Dy() != 4 {
		t.Fatalf("expected 2x4 after quarter turn, got %dx%d", b.Dx(), b.Dy())
	}
	if got := out.NRGBAAt(1, 0); got != red {
		t.Errorf("expected top-left pixel to move to top-right, got %v", got)
	}
}

func TestTransform_ExpandsCanvas(t *testing.T) {
	src := solidNRGBA(100, 20, red)

	// Rotated by 30 degrees the content needs roughly
	// 100*cos30 + 20*sin30 = 96.6 wide and 100*sin30 + 20*cos30 = 67.3 tall.
	rotated := Transform(src, 30, 0)
	if !rotated.Bounds().Empty() {
		t.Fatalf("expected empty image for zero width")
	}

	out := Transform(src, 30, 97)
	b := out.Bounds()
	if b.Dx() != 97 {
		t.Errorf("expected width 97, got %d", b.Dx())
	}
	if b.Dy() < 60 || b.Dy() > 75 {
		t.Errorf("expected expanded height around 67, got %d", b.Dy())
	}

	// Corners of the expanded canvas are transparent fill.
	if got := out.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("expected transparent corner, got %v", got)
	}
}

func TestTransform_Empty(t *testing.T) {
	out := Transform(image.NewNRGBA(image.Rectangle{}), 10, 50)
	if !out.Bounds().Empty() {
		t.Errorf("expected empty output for empty source, got %v", out.Bounds())
	}

	out = Transform(solidNRGBA(10, 10, red), 0, -5)
	if !out.Bounds().Empty() {
		t.Errorf("expected empty output for negative width, got %v", out.Bounds())
	}
}
