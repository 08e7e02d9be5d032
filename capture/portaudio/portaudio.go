// Package portaudio captures microphone audio through PortAudio's blocking
// read API.
package portaudio

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"

	"github.com/agnivade/pitchtrack/capture"
)

// defaultFramesPerBuffer is used when the stream config carries no hint.
const defaultFramesPerBuffer = 1024

// paStream is a local interface that wraps the methods we need from
// *portaudio.Stream to enable easier testing.
type paStream interface {
	Start() error
	Stop() error
	Read() error
	Close() error
}

// Source implements capture.Source on top of PortAudio.
type Source struct {
	device string
	log    *slog.Logger

	// openStream is swapped out in tests.
	openStream func(params portaudio.StreamParameters, buf any) (paStream, error)
}

// NewSource initializes PortAudio and returns a Source reading from the
// input device whose name contains device, or the default input device when
// device is empty. The caller must call Close to terminate PortAudio.
func NewSource(device string, logger *slog.Logger) (*Source, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio initialize: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("portaudio initialized", "version", portaudio.VersionText())

	return &Source{
		device: device,
		log:    logger,
		openStream: func(params portaudio.StreamParameters, buf any) (paStream, error) {
			return portaudio.OpenStream(params, buf)
		},
	}, nil
}

// Close terminates PortAudio.
func (s *Source) Close() error {
	return portaudio.Terminate()
}

// Open implements capture.Source.
func (s *Source) Open(config capture.StreamConfig) (capture.Stream, error) {
	dev, err := s.inputDevice()
	if err != nil {
		return nil, err
	}

	frames := config.BufferSize
	if frames <= 0 {
		frames = defaultFramesPerBuffer
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: 1,
			Latency:  dev.DefaultLowInputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Channels: 0,
			Device:   nil,
		},
		SampleRate:      float64(config.SampleRate),
		FramesPerBuffer: frames,
	}

	st := &Stream{encoding: config.Encoding}
	var buf any
	switch config.Encoding {
	case capture.Int16:
		st.buf16 = make([]int16, frames)
		buf = st.buf16
	case capture.Float32:
		st.buf32 = make([]float32, frames)
		buf = st.buf32
	default:
		return nil, fmt.Errorf("portaudio: unsupported encoding %s", config.Encoding)
	}

	stream, err := s.openStream(params, buf)
	if err != nil {
		return nil, fmt.Errorf("portaudio open %q at %d Hz %s: %w", dev.Name, config.SampleRate, config.Encoding, err)
	}
	st.stream = stream

	s.log.Debug("portaudio stream opened",
		"device", dev.Name,
		"sample_rate", config.SampleRate,
		"encoding", config.Encoding.String(),
		"frames_per_buffer", frames,
	)
	return st, nil
}

func (s *Source) inputDevice() (*portaudio.DeviceInfo, error) {
	if s.device == "" {
		dev, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("portaudio default input device: %w", err)
		}
		return dev, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("portaudio list devices: %w", err)
	}
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 && strings.Contains(dev.Name, s.device) {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("portaudio: no input device matching %q", s.device)
}

// Stream implements capture.Stream over a blocking PortAudio stream.
// PortAudio fills the whole bound buffer on every Read; samples not yet
// handed to the caller stay pending in buf16/buf32 between calls.
type Stream struct {
	stream   paStream
	encoding capture.Encoding
	buf16    []int16
	buf32    []float32

	// pending region of the bound buffer
	pos int
	end int

	stopped   atomic.Bool
	stopOnce  sync.Once
	stopErr   error
	closeOnce sync.Once
	closeErr  error
}

// Encoding implements capture.Stream.
func (s *Stream) Encoding() capture.Encoding {
	return s.encoding
}

// Start implements capture.Stream.
func (s *Stream) Start() error {
	return s.stream.Start()
}

// ReadInt16 implements capture.Stream.
func (s *Stream) ReadInt16(dst []int16) (int, error) {
	if s.encoding != capture.Int16 {
		return 0, capture.ErrEncoding
	}
	if err := s.refill(len(s.buf16)); err != nil {
		return 0, err
	}
	n := copy(dst, s.buf16[s.pos:s.end])
	s.pos += n
	return n, nil
}

// ReadFloat32 implements capture.Stream.
func (s *Stream) ReadFloat32(dst []float32) (int, error) {
	if s.encoding != capture.Float32 {
		return 0, capture.ErrEncoding
	}
	if err := s.refill(len(s.buf32)); err != nil {
		return 0, err
	}
	n := copy(dst, s.buf32[s.pos:s.end])
	s.pos += n
	return n, nil
}

// refill performs one blocking PortAudio read once the pending samples
// are used up.
func (s *Stream) refill(size int) error {
	if s.pos < s.end {
		return nil
	}
	if s.stopped.Load() {
		return capture.ErrStopped
	}
	if err := s.stream.Read(); err != nil {
		if s.stopped.Load() {
			return capture.ErrStopped
		}
		// An overflow still delivers a full buffer; only the oldest
		// samples were lost.
		if !errors.Is(err, portaudio.InputOverflowed) {
			return err
		}
	}
	s.pos, s.end = 0, size
	return nil
}

// Stop implements capture.Stream. It is safe to call concurrently with a
// blocked read and more than once.
func (s *Stream) Stop() error {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		s.stopErr = s.stream.Stop()
	})
	return s.stopErr
}

// Close implements capture.Stream. It stops the stream first if needed.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		stopErr := s.Stop()
		s.closeErr = errors.Join(stopErr, s.stream.Close())
	})
	return s.closeErr
}
