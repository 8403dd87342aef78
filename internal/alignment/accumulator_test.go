package alignment

import (
	"math"
	"testing"
)

func TestAccumulator(t *testing.T) {
	var acc Accumulator

	if _, ok := acc.Mean(); ok {
		t.Error("Mean() of empty accumulator should report no value")
	}

	acc.Add(0.5)
	acc.Add(1.0)
	acc.Add(0.0)

	if acc.Len() != 3 {
		t.Errorf("Len() = %d, want 3", acc.Len())
	}
	if m, ok := acc.Mean(); !ok || math.Abs(m-0.5) > 1e-9 {
		t.Errorf("Mean() = %v, %v; want 0.5, true", m, ok)
	}

	scores := acc.Drain()
	if len(scores) != 3 {
		t.Errorf("Drain() returned %d scores, want 3", len(scores))
	}
	if acc.Len() != 0 {
		t.Errorf("Len() after Drain = %d, want 0", acc.Len())
	}

	acc.Add(0.2)
	acc.Reset()
	if acc.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", acc.Len())
	}
	if scores[0] != 0.5 {
		t.Errorf("drained scores changed after Reset: %v", scores)
	}
}

func TestTally(t *testing.T) {
	var tally Tally

	if tally.Percent() != 0 {
		t.Errorf("Percent() of empty tally = %v, want 0", tally.Percent())
	}

	tally.AddFrame([]float64{1.0, 0.5}) // 0.75
	tally.AddFrame(nil)                 // ignored
	tally.AddFrame([]float64{0.25})     // 0.25

	if tally.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", tally.Frames())
	}
	if m, ok := tally.Mean(); !ok || math.Abs(m-0.5) > 1e-9 {
		t.Errorf("Mean() = %v, %v; want 0.5, true", m, ok)
	}
	if math.Abs(tally.Percent()-50) > 1e-9 {
		t.Errorf("Percent() = %v, want 50", tally.Percent())
	}
}
