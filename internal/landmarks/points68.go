package landmarks

import (
	"fmt"

	"github.com/kozaktomas/face-stickers/internal/geometry"
)

// NumPoints is the size of the landmark scheme produced by the detector.
const NumPoints = 68

// Lip contours are stitched from outer and inner mouth points so that each
// lip forms a closed outline. The order matters for the inner-lip lookups in
// IsMouthOpen, not only for membership.
var (
	topLipOrder    = []int{48, 49, 50, 51, 52, 53, 54, 64, 63, 62, 61, 60}
	bottomLipOrder = []int{54, 55, 56, 57, 58, 59, 48, 60, 67, 66, 65, 64}
)

// FromPoints68 redistributes the 68 detector points into a Set.
func FromPoints68(points []geometry.Point) (Set, error) {
	if len(points) != NumPoints {
		return nil, fmt.Errorf("%w: expected %d points, got %d", ErrMalformedLandmarks, NumPoints, len(points))
	}

	span := func(from, to int) []geometry.Point {
		out := make([]geometry.Point, to-from)
		copy(out, points[from:to])
		return out
	}
	pick := func(indices []int) []geometry.Point {
		out := make([]geometry.Point, len(indices))
		for i, idx := range indices {
			out[i] = points[idx]
		}
		return out
	}

	return Set{
		Chin:         span(0, 17),
		LeftEyebrow:  span(17, 22),
		RightEyebrow: span(22, 27),
		NoseBridge:   span(27, 31),
		NoseTip:      span(31, 36),
		LeftEye:      span(36, 42),
		RightEye:     span(42, 48),
		TopLip:       pick(topLipOrder),
		BottomLip:    pick(bottomLipOrder),
	}, nil
}
