package pitchtrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoother_MeanAndMedian(t *testing.T) {
	s := NewSmoother(5)
	pitches := []float64{440, 442, 438, 441, 439}
	cents := []float64{0, 50, -50, 5, 3}

	var got TunerResult
	for i := range pitches {
		got = s.Add(TunerResult{PitchHz: pitches[i], NoteName: "A4", CentsOff: cents[i]})
	}
	assert.InDelta(t, 440.0, got.PitchHz, 1e-9)
	assert.Equal(t, 3.0, got.CentsOff)
	assert.Equal(t, 5, s.Len())
}

func TestSmoother_ColdStart(t *testing.T) {
	s := NewSmoother(5)
	got := s.Add(TunerResult{PitchHz: 440, NoteName: "A4", CentsOff: 0.2})
	assert.Equal(t, TunerResult{PitchHz: 440, NoteName: "A4", CentsOff: 0.2}, got)
}

func TestSmoother_LatestNoteName(t *testing.T) {
	s := NewSmoother(3)
	s.Add(TunerResult{PitchHz: 440, NoteName: "A4"})
	s.Add(TunerResult{PitchHz: 440, NoteName: "A4"})
	got := s.Add(TunerResult{PitchHz: 466, NoteName: "A#4"})
	assert.Equal(t, "A#4", got.NoteName)
}

func TestSmoother_EvictsOldest(t *testing.T) {
	s := NewSmoother(2)
	s.Add(TunerResult{PitchHz: 100, CentsOff: -40})
	s.Add(TunerResult{PitchHz: 200, CentsOff: 10})
	got := s.Add(TunerResult{PitchHz: 300, CentsOff: 20})

	assert.Equal(t, 2, s.Len())
	assert.InDelta(t, 250.0, got.PitchHz, 1e-9)
	// Even-sized history takes the upper middle.
	assert.Equal(t, 20.0, got.CentsOff)
}

func TestSmoother_WindowOfOne(t *testing.T) {
	s := NewSmoother(0)
	s.Add(TunerResult{PitchHz: 100})
	got := s.Add(TunerResult{PitchHz: 300})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 300.0, got.PitchHz)
}
