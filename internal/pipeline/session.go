package pipeline

import (
	"image"
	"time"

	"github.com/kozaktomas/face-stickers/internal/alignment"
	"github.com/kozaktomas/face-stickers/internal/landmarks"
)

// Session processes the frames of one run in order and keeps the run
// statistics.
type Session struct {
	proc    *Processor
	acc     alignment.Accumulator
	tally   alignment.Tally
	started time.Time

	frames   int
	faces    int
	countOK  int
	failures int
}

// Summary is the outcome of a run.
type Summary struct {
	Frames       int
	ScoredFrames int
	Faces        int
	Failures     int

	// DetectionChecked is false when no face count was expected.
	DetectionChecked bool
	DetectionPercent float64

	AlignmentPercent float64
	Elapsed          time.Duration
}

// NewSession starts a run.
func NewSession(proc *Processor) *Session {
	return &Session{proc: proc, started: time.Now()}
}

// Frame processes the next frame. The frame's scores are drained into the
// run tally, so a frame with no placed stickers leaves the tally unchanged.
// The returned mean is only valid when ok is true.
func (s *Session) Frame(frame *image.RGBA, faces []landmarks.Face) (res FrameResult, mean float64, ok bool, err error) {
	res, err = s.proc.ProcessFrame(frame, faces, &s.acc)
	s.frames++
	s.faces += res.Faces
	s.failures += len(res.Failures)
	if res.CountOK {
		s.countOK++
	}

	if err != nil {
		s.acc.Reset()
		return res, 0, false, err
	}

	mean, ok = s.acc.Mean()
	s.tally.AddFrame(s.acc.Drain())
	return res, mean, ok, nil
}

// Summary returns the statistics of the frames processed so far.
func (s *Session) Summary() Summary {
	sum := Summary{
		Frames:           s.frames,
		ScoredFrames:     s.tally.Frames(),
		Faces:            s.faces,
		Failures:         s.failures,
		AlignmentPercent: s.tally.Percent(),
		Elapsed:          time.Since(s.started),
	}
	if s.proc.opts.ExpectFaces >= 0 && s.frames > 0 {
		sum.DetectionChecked = true
		sum.DetectionPercent = float64(s.countOK) / float64(s.frames) * 100
	}
	return sum
}
