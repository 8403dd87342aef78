package alignment

import (
	"fmt"

	"github.com/kozaktomas/face-stickers/internal/constants"
	"github.com/kozaktomas/face-stickers/internal/geometry"
	"github.com/kozaktomas/face-stickers/internal/landmarks"
	"github.com/kozaktomas/face-stickers/internal/overlay"
)

// target describes what a sticker kind is supposed to cover.
type target struct {
	features  []landmarks.Feature
	upperFace bool
}

var targets = map[overlay.Kind]target{
	overlay.Glasses:  {features: []landmarks.Feature{landmarks.LeftEye, landmarks.RightEye}},
	overlay.Mask:     {features: []landmarks.Feature{landmarks.LeftEye, landmarks.RightEye}},
	overlay.Mustache: {features: []landmarks.Feature{landmarks.TopLip}},
	overlay.Rainbow:  {features: []landmarks.Feature{landmarks.TopLip, landmarks.BottomLip}},
	overlay.Mouse: {features: []landmarks.Feature{
		landmarks.NoseBridge, landmarks.LeftEye, landmarks.RightEye,
	}},
	overlay.Cat: {features: []landmarks.Feature{
		landmarks.NoseBridge, landmarks.NoseTip, landmarks.LeftEye, landmarks.RightEye,
	}},
	overlay.Flowers: {upperFace: true},
	overlay.Pirate:  {upperFace: true},
	overlay.Ears:    {upperFace: true},
}

// Scorer computes alignment scores with a fixed IoU metric.
type Scorer struct {
	metric Metric
	iou    func(region, sticker geometry.Rect) float64
}

// NewScorer creates a scorer using metric m.
func NewScorer(m Metric) *Scorer {
	return &Scorer{metric: m, iou: m.Func()}
}

// Metric returns the IoU metric the scorer uses.
func (s *Scorer) Metric() Metric {
	return s.metric
}

// Score returns the mean IoU between the placed sticker footprint and the
// regions targeted by kind.
func (s *Scorer) Score(kind overlay.Kind, placed geometry.Rect, face landmarks.Face) (float64, error) {
	regions, err := s.Regions(kind, face)
	if err != nil {
		return 0, err
	}
	return s.Mean(regions, placed), nil
}

// Regions resolves the regions a sticker of the given kind is scored against.
func (s *Scorer) Regions(kind overlay.Kind, face landmarks.Face) ([]geometry.Rect, error) {
	t, ok := targets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no scoring rule for %s", overlay.ErrUnknownKind, kind)
	}

	if t.upperFace {
		return []geometry.Rect{UpperFace(face.Rect)}, nil
	}

	regions := make([]geometry.Rect, 0, len(t.features))
	for _, f := range t.features {
		region, err := landmarks.RegionFor(face.Landmarks, f)
		if err != nil {
			return nil, err
		}
		// The nose bridge is a near-vertical line whose box is often zero wide.
		if f == landmarks.NoseBridge && region.W == 0 {
			region.W = 1
		}
		regions = append(regions, region)
	}
	return regions, nil
}

// Mean averages the IoU of placed against each region.
func (s *Scorer) Mean(regions []geometry.Rect, placed geometry.Rect) float64 {
	if len(regions) == 0 {
		return 0
	}
	var sum float64
	for _, r := range regions {
		sum += s.iou(r, placed)
	}
	return sum / float64(len(regions))
}

// UpperFace returns the band directly above the face box, 1/3.5 of the face
// height tall and clamped at the top of the frame.
func UpperFace(face geometry.Rect) geometry.Rect {
	top := max(0, int(float64(face.Y)-float64(face.H)/constants.UpperFaceRatio))
	return geometry.Rect{X: face.X, Y: top, W: face.W, H: face.Y - top}
}
