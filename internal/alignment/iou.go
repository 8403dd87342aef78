// Package alignment scores how well a placed sticker covers the facial
// features it targets.
package alignment

import (
	"fmt"
	"strings"

	"github.com/kozaktomas/face-stickers/internal/geometry"
)

// unionEpsilon keeps the ratio defined when both boxes have zero area.
const unionEpsilon = 1e-5

// Metric selects the IoU formulation used for scoring.
type Metric string

const (
	// MetricSnapped snaps the sticker box onto the region before measuring.
	MetricSnapped Metric = "snapped"

	// MetricStandard is plain intersection over union.
	MetricStandard Metric = "standard"
)

// ParseMetric converts a metric name, defaulting to MetricSnapped when empty.
func ParseMetric(name string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(name))) {
	case "", MetricSnapped:
		return MetricSnapped, nil
	case MetricStandard:
		return MetricStandard, nil
	default:
		return "", fmt.Errorf("unknown IoU metric %q (expected %s or %s)", name, MetricSnapped, MetricStandard)
	}
}

// Func returns the IoU function for m.
func (m Metric) Func() func(region, sticker geometry.Rect) float64 {
	if m == MetricStandard {
		return IoU
	}
	return SnappedIoU
}

// IoU calculates Intersection over Union between two rectangles.
// It is symmetric in its arguments.
func IoU(a, b geometry.Rect) float64 {
	return ratio(a.Corners(), b.Corners())
}

// SnappedIoU calculates Intersection over Union between a feature region and
// a sticker footprint after snapping every sticker edge that straddles a
// region edge onto that region edge. Snapping shrinks the sticker box, so a
// sticker that fully covers the region on both axes scores 1. The result
// depends on which box is the region.
func SnappedIoU(region, sticker geometry.Rect) float64 {
	r := region.Corners()
	s := sticker.Corners()

	if s[0] < r[0] && s[2] > r[0] {
		s[0] = r[0]
	}
	if s[2] > r[2] && s[0] < r[2] {
		s[2] = r[2]
	}
	if s[1] < r[1] && s[3] > r[1] {
		s[1] = r[1]
	}
	if s[3] > r[3] && s[1] < r[3] {
		s[3] = r[3]
	}

	return ratio(r, s)
}

// ratio computes intersection over union of two [x1, y1, x2, y2] boxes.
func ratio(a, b [4]float64) float64 {
	x1 := max(a[0], b[0])
	y1 := max(a[1], b[1])
	x2 := min(a[2], b[2])
	y2 := min(a[3], b[3])

	width := x2 - x1
	height := y2 - y1
	if width <= 0 || height <= 0 {
		return 0 // No intersection
	}
	overlap := width * height

	areaA := (a[2] - a[0]) * (a[3] - a[1])
	areaB := (b[2] - b[0]) * (b[3] - b[1])
	union := areaA + areaB - overlap

	if union == 0 {
		return overlap / (union + unionEpsilon)
	}
	return overlap / union
}
