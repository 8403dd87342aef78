// Package landmarks groups 68-point facial landmarks into named features and
// resolves the bounding region of each feature.
package landmarks

import (
	"errors"
	"fmt"

	"github.com/kozaktomas/face-stickers/internal/geometry"
)

var (
	// ErrUnknownFeature means a feature name outside the fixed set was used.
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrMalformedLandmarks means a landmark set does not have the expected shape.
	ErrMalformedLandmarks = errors.New("malformed landmarks")
)

// Feature names one group of landmark points.
type Feature string

const (
	Chin         Feature = "chin"
	LeftEyebrow  Feature = "left_eyebrow"
	RightEyebrow Feature = "right_eyebrow"
	NoseBridge   Feature = "nose_bridge"
	NoseTip      Feature = "nose_tip"
	LeftEye      Feature = "left_eye"
	RightEye     Feature = "right_eye"
	TopLip       Feature = "top_lip"
	BottomLip    Feature = "bottom_lip"
)

// Features lists every known feature in landmark order.
var Features = []Feature{
	Chin,
	LeftEyebrow,
	RightEyebrow,
	NoseBridge,
	NoseTip,
	LeftEye,
	RightEye,
	TopLip,
	BottomLip,
}

// Valid reports whether f is one of the known features.
func (f Feature) Valid() bool {
	for _, known := range Features {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFeature converts a feature name to a Feature.
func ParseFeature(name string) (Feature, error) {
	f := Feature(name)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
	return f, nil
}

// Set maps each feature to its ordered points. A Set is read-only once built.
type Set map[Feature][]geometry.Point

// Validate checks that every feature is present with at least one point.
func (s Set) Validate() error {
	for _, f := range Features {
		if len(s[f]) == 0 {
			return fmt.Errorf("%w: feature %s has no points", ErrMalformedLandmarks, f)
		}
	}
	return nil
}

// RegionFor returns the bounding box of the points of feature f.
func RegionFor(s Set, f Feature) (geometry.Rect, error) {
	if !f.Valid() {
		return geometry.Rect{}, fmt.Errorf("%w: %q", ErrUnknownFeature, f)
	}
	r, err := geometry.BoundingBox(s[f])
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("region for %s: %w", f, err)
	}
	return r, nil
}

// Face is one detected face in one frame.
type Face struct {
	Rect      geometry.Rect
	Landmarks Set
}
