package overlay

import (
	"image"

	"github.com/kozaktomas/face-stickers/internal/geometry"
)

// Placement is where a sticker ended up on the frame after clipping.
type Placement struct {
	Anchor geometry.Point
	Width  int
	Height int
}

// Rect returns the footprint of the placed sticker.
func (p Placement) Rect() geometry.Rect {
	return geometry.Rect{X: p.Anchor.X, Y: p.Anchor.Y, W: p.Width, H: p.Height}
}

// Empty reports whether nothing of the sticker is visible.
func (p Placement) Empty() bool {
	return p.Width <= 0 || p.Height <= 0
}

// Composite alpha-blends sticker onto frame with its top-left corner at
// (x, y) and returns the clipped footprint. Parts of the sticker that fall
// past the right or bottom frame edge are cut off, a negative x cuts the
// overflowing columns from the sticker's left side, and the anchor is
// clamped to the frame's top-left. Only the RGB channels of frame pixels
// inside the footprint are written.
func Composite(frame *image.RGBA, sticker *image.NRGBA, x, y int) Placement {
	fb := frame.Bounds()
	fw, fh := fb.Dx(), fb.Dy()
	sb := sticker.Bounds()

	left, top := 0, 0
	right, bottom := sb.Dx(), sb.Dy()

	if y+bottom >= fh {
		bottom = max(fh-y, 0)
	}
	if x+right >= fw {
		right = max(fw-x, 0)
	}
	if x < 0 {
		left = min(-x, right)
		x = 0
	}
	x = max(x, 0)
	y = max(y, 0)

	// The anchor clamp may have moved the sticker back inside, keep the
	// footprint within the frame.
	right = min(right, left+max(fw-x, 0))
	bottom = min(bottom, top+max(fh-y, 0))

	p := Placement{
		Anchor: geometry.Pt(x, y),
		Width:  right - left,
		Height: bottom - top,
	}
	if p.Empty() {
		return p
	}

	for j := range p.Height {
		for i := range p.Width {
			s := sticker.PixOffset(sb.Min.X+left+i, sb.Min.Y+top+j)
			d := frame.PixOffset(fb.Min.X+x+i, fb.Min.Y+y+j)

			alpha := float64(sticker.Pix[s+3]) / 255.0
			for c := range 3 {
				v := float64(sticker.Pix[s+c])*alpha + float64(frame.Pix[d+c])*(1.0-alpha)
				frame.Pix[d+c] = uint8(v)
			}
		}
	}

	return p
}
