// Package placement positions stickers on faces using a per-kind policy
// table and scores the result.
package placement

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/kozaktomas/face-stickers/internal/alignment"
	"github.com/kozaktomas/face-stickers/internal/geometry"
	"github.com/kozaktomas/face-stickers/internal/landmarks"
	"github.com/kozaktomas/face-stickers/internal/logging"
	"github.com/kozaktomas/face-stickers/internal/overlay"
)

// AssetSource provides decoded sticker images.
type AssetSource interface {
	Load(kind overlay.Kind) (*overlay.Asset, error)
}

// Result describes one placement attempt.
type Result struct {
	Kind        overlay.Kind
	Angle       float64
	TargetWidth int
	Placement   overlay.Placement
	Score       float64

	// Placed is true when the sticker was composited and scored.
	Placed bool

	// Gated is true when the kind's gate rejected the face.
	Gated bool
}

// Placer composites stickers onto faces and scores their alignment.
type Placer struct {
	assets AssetSource
	scorer *alignment.Scorer
	log    logrus.FieldLogger
}

// NewPlacer creates a placer. A nil logger discards log output.
func NewPlacer(assets AssetSource, scorer *alignment.Scorer, log logrus.FieldLogger) *Placer {
	if log == nil {
		log = logging.Discard()
	}
	return &Placer{assets: assets, scorer: scorer, log: log}
}

// Supported reports whether kind has a placement policy.
func Supported(kind overlay.Kind) bool {
	_, ok := policies[kind]
	return ok
}

// Place draws the sticker of the given kind onto frame for face and returns
// the placement and its alignment score. Kind None places nothing. Errors
// are returned before the frame is modified.
func (p *Placer) Place(frame *image.RGBA, face landmarks.Face, kind overlay.Kind) (Result, error) {
	res := Result{Kind: kind}
	if kind == overlay.None {
		return res, nil
	}

	pol, ok := policies[kind]
	if !ok {
		return res, fmt.Errorf("%w: %q", overlay.ErrUnknownKind, kind)
	}

	if pol.gate != nil {
		pass, err := pol.gate(face.Landmarks)
		if err != nil {
			return res, fmt.Errorf("gate for %s: %w", kind, err)
		}
		if !pass {
			res.Gated = true
			p.log.WithField("sticker", kind).Debug("placement gated")
			return res, nil
		}
	}

	angle, err := rollAngle(face.Landmarks)
	if err != nil {
		return res, err
	}
	res.Angle = angle

	var ref geometry.Rect
	if pol.ref != "" {
		ref, err = landmarks.RegionFor(face.Landmarks, pol.ref)
		if err != nil {
			return res, err
		}
	}

	regions, err := p.scorer.Regions(kind, face)
	if err != nil {
		return res, err
	}

	a := pol.anchor(face.Rect, ref)
	res.TargetWidth = a.Width

	asset, err := p.assets.Load(kind)
	if err != nil {
		return res, err
	}

	sticker := overlay.Transform(asset.Image, angle, a.Width)
	x := a.X
	if pol.centerOnAnchor {
		x = int(float64(x) - float64(sticker.Bounds().Dx())/2)
	}

	res.Placement = overlay.Composite(frame, sticker, x, a.Y)
	res.Score = p.scorer.Mean(regions, res.Placement.Rect())
	res.Placed = true

	p.log.WithFields(logrus.Fields{
		"sticker": kind,
		"angle":   angle,
		"x":       res.Placement.Anchor.X,
		"y":       res.Placement.Anchor.Y,
		"width":   res.Placement.Width,
		"height":  res.Placement.Height,
		"score":   res.Score,
	}).Debug("sticker placed")

	return res, nil
}

// rollAngle is the head roll measured from the outer end of the left
// eyebrow to the outer end of the right eyebrow.
func rollAngle(s landmarks.Set) (float64, error) {
	left := s[landmarks.LeftEyebrow]
	right := s[landmarks.RightEyebrow]
	if len(left) == 0 || len(right) == 0 {
		return 0, fmt.Errorf("roll angle: eyebrow points: %w", geometry.ErrInvalidInput)
	}
	return geometry.AngleBetween(left[0], right[len(right)-1]), nil
}
