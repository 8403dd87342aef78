package landmarks

import (
	"fmt"

	"github.com/kozaktomas/face-stickers/internal/geometry"
)

// IsMouthOpen reports whether the gap between the inner lips is taller than
// half of the bottom lip's bounding height.
//
// The inner points are top_lip[6..8] and the three bottom_lip points before
// the closing corner, i.e. indices n-2, n-3 and n-4.
func IsMouthOpen(s Set) (bool, error) {
	top := s[TopLip]
	bottom := s[BottomLip]
	if len(top) < 9 || len(bottom) < 4 {
		return false, fmt.Errorf("%w: lips need at least 9 top and 4 bottom points, got %d and %d",
			ErrMalformedLandmarks, len(top), len(bottom))
	}

	n := len(bottom)
	inner := []geometry.Point{
		top[6], top[7], top[8],
		bottom[n-2], bottom[n-3], bottom[n-4],
	}

	gap, err := geometry.BoundingBox(inner)
	if err != nil {
		return false, err
	}
	lip, err := RegionFor(s, BottomLip)
	if err != nil {
		return false, err
	}

	return float64(gap.H) > float64(lip.H)/2, nil
}
