// Package geometry provides the integer pixel primitives shared by landmark
// resolution, sticker placement and alignment scoring.
package geometry

import (
	"errors"
	"image"
	"math"
)

// ErrInvalidInput is returned when a computation receives an empty point set.
var ErrInvalidInput = errors.New("invalid input")

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle in pixel space given by its top-left
// corner and size. Zero width or height is valid.
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Area returns W*H.
func (r Rect) Area() int {
	return r.W * r.H
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// Corners returns r as [x1, y1, x2, y2].
func (r Rect) Corners() [4]float64 {
	return [4]float64{
		float64(r.X),
		float64(r.Y),
		float64(r.Right()),
		float64(r.Bottom()),
	}
}

// AngleBetween returns the slope angle of the line from p1 to p2 in degrees,
// computed as atan(dy/dx). The result lies in [-90, 90]; a vertical line
// resolves to 90 with the sign of dy.
func AngleBetween(p1, p2 Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	if dx == 0 {
		switch {
		case dy > 0:
			return 90
		case dy < 0:
			return -90
		default:
			return 0
		}
	}
	return 180 / math.Pi * math.Atan(float64(dy)/float64(dx))
}

// BoundingBox returns the tightest rectangle around points. The width and
// height are max-min, so a single point yields a zero-sized rectangle.
func BoundingBox(points []Point) (Rect, error) {
	if len(points) == 0 {
		return Rect{}, ErrInvalidInput
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, nil
}
