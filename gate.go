package pitchtrack

import "math"

// SignalGate classifies frames as silent or active and tracks how long the
// input has been at hardware zero.
type SignalGate struct {
	levelThreshold float64
	zeroEpsilon    float64

	zeroRun int
}

// NewSignalGate returns a gate for the given thresholds.
func NewSignalGate(levelThreshold, zeroEpsilon float64) *SignalGate {
	return &SignalGate{levelThreshold: levelThreshold, zeroEpsilon: zeroEpsilon}
}

// Observe classifies frame. It returns the frame peak and whether the frame
// is loud enough to estimate. A peak at or below the zero epsilon extends
// the zero run; anything above it resets the run.
func (g *SignalGate) Observe(frame []float32) (peak float64, active bool) {
	peak = Peak(frame)
	if peak <= g.zeroEpsilon {
		g.zeroRun++
	} else {
		g.zeroRun = 0
	}
	return peak, peak >= g.levelThreshold
}

// ZeroRun is the number of consecutive frames at hardware zero.
func (g *SignalGate) ZeroRun() int {
	return g.zeroRun
}

// ClampZeroRun caps the run at limit so it cannot grow without bound once
// restarts are no longer requested.
func (g *SignalGate) ClampZeroRun(limit int) {
	if g.zeroRun > limit {
		g.zeroRun = limit
	}
}

// Peak returns the largest absolute sample value in frame.
func Peak(frame []float32) float64 {
	var peak float64
	for _, v := range frame {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	return peak
}
