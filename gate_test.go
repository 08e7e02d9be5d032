package pitchtrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalGate_Observe(t *testing.T) {
	tests := []struct {
		name       string
		frame      []float32
		wantPeak   float64
		wantActive bool
	}{
		{"hardware zero", []float32{0, 0, 0, 0}, 0, false},
		{"quiet room", []float32{0.001, -0.004, 0.002, 0}, 0.004, false},
		{"just above threshold", []float32{0, 0.0051, 0, 0}, 0.0051, true},
		{"negative peak", []float32{0.1, -0.7, 0.3, 0}, 0.7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewSignalGate(DefaultLevelThreshold, DefaultZeroPeakEpsilon)
			peak, active := g.Observe(tt.frame)
			assert.InDelta(t, tt.wantPeak, peak, 1e-7)
			assert.Equal(t, tt.wantActive, active)
		})
	}
}

func TestSignalGate_ZeroRun(t *testing.T) {
	g := NewSignalGate(DefaultLevelThreshold, DefaultZeroPeakEpsilon)
	zero := make([]float32, 8)
	quiet := []float32{0, 0.001, 0, 0, 0, 0, 0, 0}

	for range 3 {
		g.Observe(zero)
	}
	assert.Equal(t, 3, g.ZeroRun())

	// Quiet but not hardware zero resets the run.
	g.Observe(quiet)
	assert.Equal(t, 0, g.ZeroRun())

	// A peak exactly at epsilon still counts as zero.
	g.Observe([]float32{1e-6})
	assert.Equal(t, 1, g.ZeroRun())

	for range 10 {
		g.Observe(zero)
	}
	g.ClampZeroRun(5)
	assert.Equal(t, 5, g.ZeroRun())
}
