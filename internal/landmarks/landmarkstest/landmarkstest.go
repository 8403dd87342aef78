// Package landmarkstest builds synthetic 68-point faces for tests.
package landmarkstest

import (
	"github.com/kozaktomas/face-stickers/internal/geometry"
	"github.com/kozaktomas/face-stickers/internal/landmarks"
)

// Mouth controls the inner-lip geometry of a synthetic face.
type Mouth struct {
	UpperGap int // inner upper lip distance above the mouth line
	LowerGap int // inner lower lip distance below the mouth line
	LowerLip int // outer lower lip distance below the mouth line
}

var (
	// Closed has a one pixel inner gap and a 20 pixel tall bottom lip.
	Closed = Mouth{UpperGap: 0, LowerGap: 1, LowerLip: 20}

	// Open has a 20 pixel inner gap and a 28 pixel tall bottom lip.
	Open = Mouth{UpperGap: 8, LowerGap: 12, LowerLip: 28}
)

// Points68 returns a frontal, level, left/right symmetric face inside rect.
// Both eyebrows share the same height so the roll angle is zero.
func Points68(rect geometry.Rect, m Mouth) []geometry.Point {
	fx, fy, w, h := rect.X, rect.Y, rect.W, rect.H
	px := func(pct int) int { return fx + w*pct/100 }
	py := func(pct int) int { return fy + h*pct/100 }

	pts := make([]geometry.Point, 0, landmarks.NumPoints)

	// chin 0-16
	for i := range 17 {
		d := i - 8
		if d < 0 {
			d = -d
		}
		pts = append(pts, geometry.Pt(fx+w*i/16, fy+h/2+(h/2)*(8-d)/8))
	}

	// eyebrows 17-26
	for k := range 5 {
		pts = append(pts, geometry.Pt(px(15+k*6), py(25)))
	}
	for k := range 5 {
		pts = append(pts, geometry.Pt(px(60+k*6), py(25)))
	}

	// nose bridge 27-30, a vertical line
	for k := range 4 {
		pts = append(pts, geometry.Pt(px(50), py(35+k*5)))
	}

	// nose tip 31-35
	for k := range 5 {
		y := py(60)
		if k == 2 {
			y += 2
		}
		pts = append(pts, geometry.Pt(px(40+k*5), y))
	}

	// eyes 36-47
	ex, ey := w/16, h/32
	for _, cx := range []int{px(30), px(70)} {
		cy := py(40)
		pts = append(pts,
			geometry.Pt(cx-ex, cy),
			geometry.Pt(cx-ex/2, cy-ey),
			geometry.Pt(cx+ex/2, cy-ey),
			geometry.Pt(cx+ex, cy),
			geometry.Pt(cx+ex/2, cy+ey),
			geometry.Pt(cx-ex/2, cy+ey),
		)
	}

	// mouth 48-67
	my := py(75)
	pts = append(pts,
		geometry.Pt(px(30), my),              // 48 left corner
		geometry.Pt(px(37), my-6),            // 49
		geometry.Pt(px(45), my-8),            // 50
		geometry.Pt(px(50), my-7),            // 51
		geometry.Pt(px(55), my-8),            // 52
		geometry.Pt(px(63), my-6),            // 53
		geometry.Pt(px(70), my),              // 54 right corner
		geometry.Pt(px(63), my+m.LowerLip-2), // 55
		geometry.Pt(px(55), my+m.LowerLip),   // 56
		geometry.Pt(px(50), my+m.LowerLip),   // 57
		geometry.Pt(px(45), my+m.LowerLip),   // 58
		geometry.Pt(px(37), my+m.LowerLip-2), // 59
		geometry.Pt(px(35), my),              // 60 inner left corner
		geometry.Pt(px(45), my-m.UpperGap),   // 61
		geometry.Pt(px(50), my-m.UpperGap),   // 62
		geometry.Pt(px(55), my-m.UpperGap),   // 63
		geometry.Pt(px(65), my),              // 64 inner right corner
		geometry.Pt(px(55), my+m.LowerGap),   // 65
		geometry.Pt(px(50), my+m.LowerGap),   // 66
		geometry.Pt(px(45), my+m.LowerGap),   // 67
	)

	return pts
}

// Face returns a synthetic face for rect with the given mouth.
func Face(rect geometry.Rect, m Mouth) landmarks.Face {
	set, err := landmarks.FromPoints68(Points68(rect, m))
	if err != nil {
		panic(err)
	}
	return landmarks.Face{Rect: rect, Landmarks: set}
}
