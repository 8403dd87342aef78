package pipeline

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/kozaktomas/face-stickers/internal/landmarks"
)

// Annotate draws a blue rectangle around every face and marks each landmark
// point with a red pixel. Points outside the frame are ignored.
func Annotate(frame *image.RGBA, faces []landmarks.Face) {
	dc := gg.NewContextForRGBA(frame)

	dc.SetRGB(0, 0, 1)
	dc.SetLineWidth(2)
	for _, f := range faces {
		dc.DrawRectangle(float64(f.Rect.X), float64(f.Rect.Y), float64(f.Rect.W), float64(f.Rect.H))
		dc.Stroke()
	}

	dc.SetRGB(1, 0, 0)
	for _, f := range faces {
		for _, pts := range f.Landmarks {
			for _, pt := range pts {
				dc.SetPixel(pt.X, pt.Y)
			}
		}
	}
}
