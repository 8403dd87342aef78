package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Transform rotates src clockwise by angle degrees around its centre,
// growing the canvas so no content is cropped, and then scales the result
// uniformly so that its width equals width. A non-positive width yields an
// empty image.
func Transform(src *image.NRGBA, angle float64, width int) *image.NRGBA {
	if width <= 0 || src.Bounds().Empty() {
		return image.NewNRGBA(image.Rectangle{})
	}

	// imaging rotates counter-clockwise.
	rotated := imaging.Rotate(src, -angle, color.Transparent)

	return scaleToWidth(rotated, width)
}

func scaleToWidth(src *image.NRGBA, width int) *image.NRGBA {
	b := src.Bounds()
	if b.Dx() == width {
		return src
	}

	factor := float64(width) / float64(b.Dx())
	height := int(math.Round(float64(b.Dy()) * factor))
	if height <= 0 {
		return image.NewNRGBA(image.Rectangle{})
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
