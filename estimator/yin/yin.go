// Package yin implements the YIN fundamental-frequency estimator with an
// FFT-based difference function.
package yin

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/agnivade/pitchtrack/estimator"
)

// DefaultThreshold is the absolute threshold applied to the cumulative mean
// normalized difference.
const DefaultThreshold = 0.10

// Detector estimates pitch with YIN. It keeps preallocated buffers and is
// not safe for concurrent use.
type Detector struct {
	sampleRate int
	frameSize  int
	threshold  float64

	fft      *fourier.FFT
	padded   []float64    // frame zero-padded to the FFT length
	spectrum []complex128 // FFT length/2 + 1
	corr     []float64    // autocorrelation, FFT length
	prefix   []float64    // prefix sums of squares, frameSize + 1
	yin      []float64    // difference / CMND, frameSize / 2
}

// New returns a Detector for frames of frameSize samples at sampleRate Hz.
func New(sampleRate, frameSize int) (*Detector, error) {
	return NewWithThreshold(sampleRate, frameSize, DefaultThreshold)
}

// NewWithThreshold is like New with an explicit YIN threshold.
func NewWithThreshold(sampleRate, frameSize int, threshold float64) (*Detector, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("yin: sample rate must be positive, got %d", sampleRate)
	}
	if frameSize < 4 {
		return nil, fmt.Errorf("yin: frame size must be at least 4, got %d", frameSize)
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("yin: threshold must be in (0, 1), got %v", threshold)
	}

	// Linear (not circular) correlation needs room for every lag.
	n := nextPow2(2 * frameSize)
	return &Detector{
		sampleRate: sampleRate,
		frameSize:  frameSize,
		threshold:  threshold,
		fft:        fourier.NewFFT(n),
		padded:     make([]float64, n),
		spectrum:   make([]complex128, n/2+1),
		corr:       make([]float64, n),
		prefix:     make([]float64, frameSize+1),
		yin:        make([]float64, frameSize/2),
	}, nil
}

// Factory adapts New to estimator.Factory.
func Factory(sampleRate, frameSize int) (estimator.Estimator, error) {
	return New(sampleRate, frameSize)
}

// Estimate implements estimator.Estimator. It returns -1 when the frame has
// the wrong length or no lag falls under the threshold.
func (d *Detector) Estimate(frame []float32) float64 {
	if len(frame) != d.frameSize {
		return -1
	}

	d.difference(frame)
	d.cumulativeMeanNormalizedDifference()

	tau := d.absoluteThreshold()
	if tau < 0 {
		return -1
	}
	refined := d.parabolicInterpolation(tau)
	if refined <= 0 {
		return -1
	}
	return float64(d.sampleRate) / refined
}

// Close implements estimator.Estimator.
func (d *Detector) Close() error {
	return nil
}

// difference computes d(tau) = sum (x[i] - x[i+tau])^2 over the frame as
// energy terms minus twice the autocorrelation.
func (d *Detector) difference(frame []float32) {
	for i := range d.padded {
		d.padded[i] = 0
	}
	for i, v := range frame {
		d.padded[i] = float64(v)
	}

	d.fft.Coefficients(d.spectrum, d.padded)
	for i, c := range d.spectrum {
		re, im := real(c), imag(c)
		d.spectrum[i] = complex(re*re+im*im, 0)
	}
	d.fft.Sequence(d.corr, d.spectrum)
	scale := 1 / float64(len(d.corr))

	n := d.frameSize
	d.prefix[0] = 0
	for i := 0; i < n; i++ {
		d.prefix[i+1] = d.prefix[i] + d.padded[i]*d.padded[i]
	}

	d.yin[0] = 0
	for tau := 1; tau < len(d.yin); tau++ {
		head := d.prefix[n-tau]
		tail := d.prefix[n] - d.prefix[tau]
		d.yin[tau] = head + tail - 2*d.corr[tau]*scale
	}
}

func (d *Detector) cumulativeMeanNormalizedDifference() {
	d.yin[0] = 1
	running := 0.0
	for tau := 1; tau < len(d.yin); tau++ {
		running += d.yin[tau]
		if running > 0 {
			d.yin[tau] *= float64(tau) / running
		} else {
			d.yin[tau] = 1
		}
	}
}

// absoluteThreshold returns the first lag under the threshold, walked
// down to its local minimum, or -1.
func (d *Detector) absoluteThreshold() int {
	for tau := 2; tau < len(d.yin); tau++ {
		if d.yin[tau] < d.threshold {
			for tau+1 < len(d.yin) && d.yin[tau+1] < d.yin[tau] {
				tau++
			}
			return tau
		}
	}
	return -1
}

func (d *Detector) parabolicInterpolation(tau int) float64 {
	if tau <= 0 || tau >= len(d.yin)-1 {
		return float64(tau)
	}
	s0, s1, s2 := d.yin[tau-1], d.yin[tau], d.yin[tau+1]
	denom := 2 * (2*s1 - s2 - s0)
	if denom == 0 {
		return float64(tau)
	}
	return float64(tau) + (s2-s0)/denom
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
