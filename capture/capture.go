package capture

import (
	"errors"
	"fmt"
)

// ErrEncoding is returned by a Stream read method that does not match the
// stream's negotiated encoding.
var ErrEncoding = errors.New("capture: read does not match stream encoding")

// ErrStopped is returned by reads on a stream that has been stopped or closed.
var ErrStopped = errors.New("capture: stream stopped")

// Encoding is the PCM sample encoding of a capture stream.
type Encoding int

const (
	// Int16 is signed 16-bit PCM.
	Int16 Encoding = iota
	// Float32 is 32-bit floating point PCM in [-1, 1].
	Float32
)

func (e Encoding) String() string {
	switch e {
	case Int16:
		return "int16"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Source opens capture streams on an audio input device.
// Different backends (PortAudio, synthetic generators) implement this
// interface so the engine never touches a device API directly.
type Source interface {
	// Open acquires a mono input stream with the given configuration.
	// An error means the device could not be initialized with these
	// parameters; it is not a transient condition.
	Open(config StreamConfig) (Stream, error)
}

// Stream is one open hardware capture handle.
// It is owned by a single goroutine for reads; Stop may be called from
// another goroutine to unblock a pending read.
type Stream interface {
	// Encoding reports the sample encoding chosen at Open.
	Encoding() Encoding

	// ReadInt16 blocks until samples are available and copies at most
	// len(dst) of them into dst. It returns ErrEncoding on a Float32 stream.
	// A zero count with a nil error means nothing was delivered and the
	// caller may retry.
	ReadInt16(dst []int16) (int, error)

	// ReadFloat32 is the Float32 counterpart of ReadInt16.
	ReadFloat32(dst []float32) (int, error)

	// Start begins delivering samples.
	Start() error

	// Stop halts capture. A read blocked in another goroutine must return
	// promptly once Stop is called.
	Stop() error

	// Close releases the handle. The stream must not be used afterwards.
	Close() error
}

// StreamConfig holds the parameters used to open a Stream.
type StreamConfig struct {
	// SampleRate is the capture rate in Hz (e.g. 44100).
	SampleRate int

	// Encoding is the requested sample encoding.
	Encoding Encoding

	// BufferSize is a hint for the device buffer length in samples.
	// Backends may round it.
	BufferSize int
}
