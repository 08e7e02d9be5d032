// Package estimator defines the contract between the pitch engine and a
// fundamental-frequency detector.
package estimator

import "math"

// Estimator detects the fundamental frequency of one audio frame.
type Estimator interface {
	// Estimate returns the detected frequency in Hz, or a non-positive value
	// when no reliable pitch is found. The frame is normalized to [-1, 1]
	// and has the length the estimator was created for. Implementations
	// must not retain frame after returning.
	Estimate(frame []float32) float64

	// Close releases any resources held by the estimator.
	Close() error
}

// Factory creates an Estimator for frames of frameSize samples captured at
// sampleRate Hz. The engine calls it once per capture cycle.
type Factory func(sampleRate, frameSize int) (Estimator, error)

// Valid reports whether hz is a usable pitch estimate.
func Valid(hz float64) bool {
	return hz > 0 && !math.IsInf(hz, 0) && !math.IsNaN(hz)
}
