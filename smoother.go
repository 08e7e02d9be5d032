package pitchtrack

import "slices"

// TunerResult is one emitted pitch reading.
type TunerResult struct {
	PitchHz  float64
	NoteName string
	// CentsOff is the signed deviation from NoteName; negative is flat.
	CentsOff float64
}

// Smoother damps frame-to-frame jitter over the last few results.
// It belongs to the engine worker and is not safe for concurrent use.
type Smoother struct {
	history []TunerResult
	head    int
	size    int

	scratch []float64
}

// NewSmoother returns a Smoother averaging over window results.
func NewSmoother(window int) *Smoother {
	if window <= 0 {
		window = 1
	}
	return &Smoother{
		history: make([]TunerResult, window),
		scratch: make([]float64, 0, window),
	}
}

// Add records raw, evicting the oldest result once the window is full, and
// returns the smoothed result: mean pitch, median cents and the latest note
// name.
func (s *Smoother) Add(raw TunerResult) TunerResult {
	s.history[s.head] = raw
	s.head = (s.head + 1) % len(s.history)
	if s.size < len(s.history) {
		s.size++
	}

	var sum float64
	s.scratch = s.scratch[:0]
	for i := 0; i < s.size; i++ {
		sum += s.history[i].PitchHz
		s.scratch = append(s.scratch, s.history[i].CentsOff)
	}
	slices.Sort(s.scratch)

	return TunerResult{
		PitchHz:  sum / float64(s.size),
		NoteName: raw.NoteName,
		CentsOff: s.scratch[s.size/2],
	}
}

// Len reports how many results are in the window.
func (s *Smoother) Len() int {
	return s.size
}

