// Package synth provides a generated capture.Source. It stands in for a
// microphone in demos and engine tests: a sine or silence generator with
// optional real-time pacing and injectable device faults.
package synth

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agnivade/pitchtrack/capture"
)

const defaultChunkSize = 512

// Signal returns the sample value at time t seconds since the stream started.
type Signal func(t float64) float64

// Sine returns a sine wave at freq Hz with the given peak amplitude.
func Sine(freq, amplitude float64) Signal {
	return func(t float64) float64 {
		return amplitude * math.Sin(2*math.Pi*freq*t)
	}
}

// Silence returns a signal that is always zero.
func Silence() Signal {
	return func(float64) float64 { return 0 }
}

// Source implements capture.Source with generated audio.
// The zero value produces silence as fast as it is read.
type Source struct {
	// Signal generates samples; nil means silence.
	Signal Signal

	// ChunkSize caps the samples returned per read. Defaults to 512.
	ChunkSize int

	// Realtime paces reads to the wall clock at the stream's sample rate.
	Realtime bool

	// OpenErr, when set, is returned by every Open.
	OpenErr error

	// ReadErr, when set, is returned by every read of a stream once it has
	// served FailAfterReads successful reads.
	ReadErr        error
	FailAfterReads int

	// BlockReads makes every read block until the stream is stopped.
	BlockReads bool

	opens atomic.Int64
}

// Opens reports how many streams have been opened so far.
func (s *Source) Opens() int {
	return int(s.opens.Load())
}

// Open implements capture.Source.
func (s *Source) Open(config capture.StreamConfig) (capture.Stream, error) {
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	s.opens.Add(1)

	chunk := s.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}
	signal := s.Signal
	if signal == nil {
		signal = Silence()
	}
	return &Stream{
		src:        s,
		signal:     signal,
		encoding:   config.Encoding,
		sampleRate: config.SampleRate,
		chunk:      chunk,
		stopped:    make(chan struct{}),
	}, nil
}

// Stream is a generated capture.Stream.
type Stream struct {
	src        *Source
	signal     Signal
	encoding   capture.Encoding
	sampleRate int
	chunk      int

	sample  int64
	reads   int
	started time.Time

	stopOnce sync.Once
	stopped  chan struct{}
}

// Encoding implements capture.Stream.
func (s *Stream) Encoding() capture.Encoding {
	return s.encoding
}

// Start implements capture.Stream.
func (s *Stream) Start() error {
	s.started = time.Now()
	return nil
}

// Stop implements capture.Stream.
func (s *Stream) Stop() error {
	s.stopOnce.Do(func() { close(s.stopped) })
	return nil
}

// Close implements capture.Stream.
func (s *Stream) Close() error {
	return s.Stop()
}

// ReadInt16 implements capture.Stream.
func (s *Stream) ReadInt16(dst []int16) (int, error) {
	if s.encoding != capture.Int16 {
		return 0, capture.ErrEncoding
	}
	n, err := s.wait(len(dst))
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		v := s.next() * 32768
		dst[i] = int16(math.Max(-32768, math.Min(32767, v)))
	}
	return n, nil
}

// ReadFloat32 implements capture.Stream.
func (s *Stream) ReadFloat32(dst []float32) (int, error) {
	if s.encoding != capture.Float32 {
		return 0, capture.ErrEncoding
	}
	n, err := s.wait(len(dst))
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		dst[i] = float32(s.next())
	}
	return n, nil
}

// wait applies the configured faults and pacing and returns how many
// samples the current read may deliver.
func (s *Stream) wait(want int) (int, error) {
	select {
	case <-s.stopped:
		return 0, capture.ErrStopped
	default:
	}

	if s.src.BlockReads {
		<-s.stopped
		return 0, capture.ErrStopped
	}
	if s.src.ReadErr != nil && s.reads >= s.src.FailAfterReads {
		return 0, s.src.ReadErr
	}
	s.reads++

	n := min(want, s.chunk)
	if s.src.Realtime && s.sampleRate > 0 {
		due := s.started.Add(time.Duration(float64(s.sample+int64(n)) / float64(s.sampleRate) * float64(time.Second)))
		if d := time.Until(due); d > 0 {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-s.stopped:
				return 0, capture.ErrStopped
			}
		}
	}
	return n, nil
}

func (s *Stream) next() float64 {
	rate := s.sampleRate
	if rate <= 0 {
		rate = 44100
	}
	v := s.signal(float64(s.sample) / float64(rate))
	s.sample++
	return v
}
