// Package pipeline runs sticker placement over every face of a frame and
// aggregates alignment scores across a run.
package pipeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/kozaktomas/face-stickers/internal/alignment"
	"github.com/kozaktomas/face-stickers/internal/geometry"
	"github.com/kozaktomas/face-stickers/internal/landmarks"
	"github.com/kozaktomas/face-stickers/internal/logging"
	"github.com/kozaktomas/face-stickers/internal/overlay"
	"github.com/kozaktomas/face-stickers/internal/placement"
)

// Placer places one sticker on one face.
type Placer interface {
	Place(frame *image.RGBA, face landmarks.Face, kind overlay.Kind) (placement.Result, error)
}

// Options configures frame processing.
type Options struct {
	Kind overlay.Kind

	// Annotate draws face rectangles and landmark points before placing stickers.
	Annotate bool

	// ExpectFaces is the number of faces every frame should contain.
	// A negative value disables the check.
	ExpectFaces int
}

// FaceFailure records a face that was skipped.
type FaceFailure struct {
	Face int
	Err  error
}

// FrameResult describes the processing of one frame.
type FrameResult struct {
	Faces      int
	Placements []placement.Result
	Failures   []FaceFailure

	// CountOK is true when the frame has the expected number of faces or
	// the check is disabled.
	CountOK bool
}

// Processor applies stickers to the faces of a frame.
type Processor struct {
	placer Placer
	opts   Options
	log    logrus.FieldLogger
}

// New creates a processor. A nil logger discards log output.
func New(placer Placer, opts Options, log logrus.FieldLogger) *Processor {
	if log == nil {
		log = logging.Discard()
	}
	return &Processor{placer: placer, opts: opts, log: log}
}

// Options returns the processor options.
func (p *Processor) Options() Options {
	return p.opts
}

// ProcessFrame places the configured sticker on each face in order and
// appends one score per placed sticker to acc. Faces with unusable
// landmarks or a missing asset are skipped and reported in Failures.
// An unknown feature aborts the frame.
func (p *Processor) ProcessFrame(frame *image.RGBA, faces []landmarks.Face, acc *alignment.Accumulator) (FrameResult, error) {
	res := FrameResult{
		Faces:   len(faces),
		CountOK: p.opts.ExpectFaces < 0 || len(faces) == p.opts.ExpectFaces,
	}

	if p.opts.Annotate {
		Annotate(frame, faces)
	}

	if p.opts.Kind == overlay.None {
		return res, nil
	}

	for i, face := range faces {
		placed, err := p.placer.Place(frame, face, p.opts.Kind)
		if err != nil {
			if !skippable(err) {
				return res, fmt.Errorf("face %d: %w", i, err)
			}
			p.log.WithError(err).WithFields(logrus.Fields{
				"face":    i,
				"sticker": p.opts.Kind,
			}).Warn("skipping face")
			res.Failures = append(res.Failures, FaceFailure{Face: i, Err: err})
			continue
		}

		res.Placements = append(res.Placements, placed)
		if placed.Placed {
			acc.Add(placed.Score)
		}
	}

	return res, nil
}

// skippable reports whether err only affects a single face.
func skippable(err error) bool {
	return errors.Is(err, geometry.ErrInvalidInput) ||
		errors.Is(err, landmarks.ErrMalformedLandmarks) ||
		errors.Is(err, overlay.ErrAssetLoad)
}
