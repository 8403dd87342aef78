package placement

import (
	"github.com/kozaktomas/face-stickers/internal/geometry"
	"github.com/kozaktomas/face-stickers/internal/landmarks"
	"github.com/kozaktomas/face-stickers/internal/overlay"
)

// anchor is where a sticker goes before transformation: its top-left corner
// and the width it is scaled to.
type anchor struct {
	X, Y  int
	Width int
}

// anchorFunc derives the anchor from the face rectangle and the reference
// feature region. ref is the zero Rect for policies without a reference.
type anchorFunc func(face, ref geometry.Rect) anchor

// policy is the placement rule for one sticker kind.
type policy struct {
	// ref is the feature the anchor is measured from, empty for none.
	ref landmarks.Feature

	// gate decides whether the sticker is placed at all.
	gate func(landmarks.Set) (bool, error)

	anchor anchorFunc

	// centerOnAnchor shifts the scaled sticker left by half its width so it
	// is horizontally centred on the anchor.
	centerOnAnchor bool
}

// dims converts face and reference rectangles for float arithmetic.
func dims(face, ref geometry.Rect) (x, y, w, h, x1, y1 float64) {
	return float64(face.X), float64(face.Y), float64(face.W), float64(face.H),
		float64(ref.X), float64(ref.Y)
}

var policies = map[overlay.Kind]policy{
	overlay.Cat: {
		ref: landmarks.LeftEyebrow,
		anchor: func(face, ref geometry.Rect) anchor {
			x, y, w, h, x1, y1 := dims(face, ref)
			return anchor{
				X:     int(max(min(x, x1), 0)),
				Y:     int(max(min(y-h/2, y1-h/2), 0)),
				Width: int(w),
			}
		},
	},
	overlay.Ears: {
		ref: landmarks.LeftEyebrow,
		anchor: func(face, ref geometry.Rect) anchor {
			x, y, w, h, x1, y1 := dims(face, ref)
			return anchor{
				X:     int(max(min(x, x1)-w/8, 0)),
				Y:     int(max(min(y-h/2, y1-h/2-h/8), 0)),
				Width: int(w + w/4),
			}
		},
	},
	overlay.Flowers: {
		anchor: func(face, ref geometry.Rect) anchor {
			x, y, w, h, _, _ := dims(face, ref)
			return anchor{
				X:     int(x - w/8),
				Y:     int(max(y-h/2-h/8, 0)),
				Width: int(w + w/4),
			}
		},
	},
	overlay.Glasses: {
		ref:    landmarks.LeftEyebrow,
		anchor: overEyes,
	},
	overlay.Mask: {
		ref:    landmarks.LeftEyebrow,
		anchor: overEyes,
	},
	overlay.Mustache: {
		ref: landmarks.NoseTip,
		anchor: func(face, ref geometry.Rect) anchor {
			return anchor{
				X:     int(float64(ref.X) + float64(ref.W)/2),
				Y:     ref.Y,
				Width: face.W,
			}
		},
		centerOnAnchor: true,
	},
	overlay.Mouse: {
		ref: landmarks.LeftEyebrow,
		anchor: func(face, ref geometry.Rect) anchor {
			x, y, w, h, x1, y1 := dims(face, ref)
			return anchor{
				X:     max(int(min(x, x1)-w/8), 0),
				Y:     int(max(min(y-h/4, y1-h/4)-h/6, 0)),
				Width: int(w + w/4),
			}
		},
	},
	overlay.Pirate: {
		anchor: func(face, ref geometry.Rect) anchor {
			x, y, w, h, _, _ := dims(face, ref)
			return anchor{
				X:     max(int(x-w/16), 0),
				Y:     int(max(y-h/2, 0)),
				Width: int(w + w/8),
			}
		},
	},
	overlay.Rainbow: {
		ref:  landmarks.TopLip,
		gate: landmarks.IsMouthOpen,
		anchor: func(face, ref geometry.Rect) anchor {
			x, _, w, h, x1, y1 := dims(face, ref)
			return anchor{
				X:     max(int(min(x, x1)-w/8), 0),
				Y:     max(0, int(y1-h/8)),
				Width: int(w + w/4),
			}
		},
	},
}

func overEyes(face, ref geometry.Rect) anchor {
	return anchor{
		X:     max(min(face.X, ref.X), 0),
		Y:     max(min(face.Y, ref.Y), 0),
		Width: face.W,
	}
}
