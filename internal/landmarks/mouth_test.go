package landmarks

import (
	"errors"
	"testing"

	"github.com/kozaktomas/face-stickers/internal/geometry"
)

// lips builds a top and bottom lip whose inner points are gap pixels apart
// and whose bottom lip is lipHeight pixels tall.
func lips(gap, lipHeight int) Set {
	const y = 100
	top := []geometry.Point{
		{X: 0, Y: y}, {X: 5, Y: y - 5}, {X: 10, Y: y - 6}, {X: 15, Y: y - 5},
		{X: 20, Y: y - 6}, {X: 25, Y: y - 5}, {X: 30, Y: y},
		{X: 25, Y: y}, {X: 20, Y: y}, {X: 15, Y: y}, {X: 10, Y: y}, {X: 5, Y: y},
	}
	bottom := []geometry.Point{
		{X: 30, Y: y}, {X: 25, Y: y + lipHeight - 2}, {X: 20, Y: y + lipHeight},
		{X: 15, Y: y + lipHeight}, {X: 10, Y: y + lipHeight}, {X: 5, Y: y + lipHeight - 2},
		{X: 0, Y: y}, {X: 5, Y: y},
		{X: 10, Y: y + gap}, {X: 15, Y: y + gap}, {X: 20, Y: y + gap}, {X: 25, Y: y},
	}
	return Set{TopLip: top, BottomLip: bottom}
}

func TestIsMouthOpen(t *testing.T) {
	tests := []struct {
		name      string
		gap       int
		lipHeight int
		expected  bool
	}{
		{"closed one pixel gap", 1, 20, false},
		{"gap exactly half", 10, 20, false},
		{"gap just above half", 11, 20, true},
		{"wide open", 30, 40, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, err := IsMouthOpen(lips(tt.gap, tt.lipHeight))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if open != tt.expected {
				t.Errorf("IsMouthOpen(gap=%d, lip=%d) = %v, want %v", tt.gap, tt.lipHeight, open, tt.expected)
			}
		})
	}
}

func TestIsMouthOpen_FromPoints68(t *testing.T) {
	// Inner upper lip (61-63) at y=95, inner lower lip (65-67) at y=112,
	// outer lower lip at y=120, mouth corners at y=100.
	pts := make([]geometry.Point, NumPoints)
	for i := range pts {
		pts[i] = geometry.Pt(i, 0)
	}
	for _, i := range []int{48, 54, 60, 64} {
		pts[i] = geometry.Pt(i, 100)
	}
	for _, i := range []int{49, 50, 51, 52, 53} {
		pts[i] = geometry.Pt(i, 92)
	}
	for _, i := range []int{55, 56, 57, 58, 59} {
		pts[i] = geometry.Pt(i, 120)
	}
	for _, i := range []int{61, 62, 63} {
		pts[i] = geometry.Pt(i, 95)
	}
	for _, i := range []int{65, 66, 67} {
		pts[i] = geometry.Pt(i, 112)
	}

	set, err := FromPoints68(pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// gap = 112-95 = 17, bottom lip height = 120-100 = 20, 17 > 10
	open, err := IsMouthOpen(set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !open {
		t.Error("expected mouth to be open")
	}
}

func TestIsMouthOpen_Malformed(t *testing.T) {
	_, err := IsMouthOpen(Set{TopLip: make([]geometry.Point, 3), BottomLip: make([]geometry.Point, 12)})
	if !errors.Is(err, ErrMalformedLandmarks) {
		t.Errorf("expected ErrMalformedLandmarks, got %v", err)
	}
}
