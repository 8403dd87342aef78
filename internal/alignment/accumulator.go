package alignment

// Accumulator collects the scores of one frame. It is owned by the frame
// loop and must be drained once per frame.
type Accumulator struct {
	scores []float64
}

// Add appends a score.
func (a *Accumulator) Add(score float64) {
	a.scores = append(a.scores, score)
}

// Len returns the number of collected scores.
func (a *Accumulator) Len() int {
	return len(a.scores)
}

// Mean returns the average score and false when nothing was collected.
func (a *Accumulator) Mean() (float64, bool) {
	return mean(a.scores)
}

// Drain returns the collected scores and resets the accumulator.
func (a *Accumulator) Drain() []float64 {
	out := a.scores
	a.scores = nil
	return out
}

// Reset discards all collected scores.
func (a *Accumulator) Reset() {
	a.scores = nil
}

// Tally aggregates per-frame mean scores over a run.
type Tally struct {
	frameMeans []float64
}

// AddFrame records one frame's scores. Frames without scores are ignored.
func (t *Tally) AddFrame(scores []float64) {
	if m, ok := mean(scores); ok {
		t.frameMeans = append(t.frameMeans, m)
	}
}

// Frames returns the number of frames that contributed a score.
func (t *Tally) Frames() int {
	return len(t.frameMeans)
}

// Mean returns the average of the per-frame means.
func (t *Tally) Mean() (float64, bool) {
	return mean(t.frameMeans)
}

// Percent returns the mean as a percentage, 0 when no frame was scored.
func (t *Tally) Percent() float64 {
	m, _ := t.Mean()
	return m * 100
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
