package pitchtrack

import (
	"context"
	"fmt"

	"github.com/agnivade/pitchtrack/capture"
)

// ReadFunc performs one blocking read of normalized samples into dst and
// returns how many it delivered. Zero with a nil error is allowed.
type ReadFunc func(dst []float32) (int, error)

// StreamReader adapts s to a ReadFunc. int16 samples are divided by 32768;
// float32 samples are copied through. maxChunk bounds a single read.
func StreamReader(s capture.Stream, maxChunk int) ReadFunc {
	if s.Encoding() == capture.Float32 {
		return s.ReadFloat32
	}
	scratch := make([]int16, maxChunk)
	return func(dst []float32) (int, error) {
		raw := scratch[:min(len(dst), len(scratch))]
		n, err := s.ReadInt16(raw)
		if err != nil {
			return 0, err
		}
		for i := 0; i < n; i++ {
			dst[i] = float32(raw[i]) / 32768
		}
		return n, nil
	}
}

// RollingBuffer is a fixed-size window of the most recent samples, advanced
// by a fixed hop. Samples live in a ring; head is the oldest sample.
type RollingBuffer struct {
	ring []float32
	hop  int
	head int
}

// NewRollingBuffer returns a window of frameSize samples advanced by hop.
func NewRollingBuffer(frameSize, hop int) *RollingBuffer {
	if hop <= 0 || hop > frameSize {
		hop = frameSize
	}
	return &RollingBuffer{
		ring: make([]float32, frameSize),
		hop:  hop,
	}
}

// Len is the window length. It never changes.
func (b *RollingBuffer) Len() int {
	return len(b.ring)
}

// Hop is the number of samples replaced by Advance.
func (b *RollingBuffer) Hop() int {
	return b.hop
}

// Fill reads a whole window, in chunks of at most one hop, for the first
// frame of a cycle.
func (b *RollingBuffer) Fill(ctx context.Context, read ReadFunc) error {
	b.head = 0
	return b.readInto(ctx, read, 0, len(b.ring))
}

// Advance drops the oldest hop and reads exactly one hop of new samples in
// its place.
func (b *RollingBuffer) Advance(ctx context.Context, read ReadFunc) error {
	if err := b.readInto(ctx, read, b.head, b.hop); err != nil {
		return err
	}
	b.head = (b.head + b.hop) % len(b.ring)
	return nil
}

// readInto reads count samples into the ring starting at slot pos,
// wrapping at the end.
func (b *RollingBuffer) readInto(ctx context.Context, read ReadFunc, pos, count int) error {
	for count > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(pos+min(count, b.hop), len(b.ring))
		n, err := read(b.ring[pos:end])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRead, err)
		}
		pos = (pos + n) % len(b.ring)
		count -= n
	}
	return ctx.Err()
}

// Frame copies the window into dst, oldest sample first. dst must hold
// Len samples.
func (b *RollingBuffer) Frame(dst []float32) []float32 {
	n := copy(dst, b.ring[b.head:])
	copy(dst[n:], b.ring[:b.head])
	return dst[:len(b.ring)]
}
