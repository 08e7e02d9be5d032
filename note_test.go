package pitchtrack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteFromFrequency(t *testing.T) {
	tests := []struct {
		name      string
		hz        float64
		wantLabel string
		wantMIDI  int
	}{
		{"A4", 440, "A4", 69},
		{"middle C", 261.6256, "C4", 60},
		{"low E string", 82.4069, "E2", 40},
		{"high E string", 329.6276, "E4", 64},
		{"C#5", 554.3653, "C#5", 73},
		{"A0", 27.5, "A0", 21},
		{"B3 just under C4", 246.9417, "B3", 59},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NoteFromFrequency(tt.hz, DefaultReferenceHz)
			assert.Equal(t, tt.wantLabel, n.Label())
			assert.Equal(t, tt.wantMIDI, n.MIDI)
			assert.Less(t, math.Abs(n.Cents), 0.5)
		})
	}
}

func TestNoteFromFrequency_Deterministic(t *testing.T) {
	for _, hz := range []float64{55, 123.47, 440, 987.77, 3520.1} {
		assert.Equal(t, NoteFromFrequency(hz, 440), NoteFromFrequency(hz, 440))
	}
}

func TestNoteFromFrequency_CentsSign(t *testing.T) {
	sharp := NoteFromFrequency(442, 440)
	assert.Equal(t, "A4", sharp.Label())
	assert.Greater(t, sharp.Cents, 0.0)
	assert.InDelta(t, 7.85, sharp.Cents, 0.01)

	flat := NoteFromFrequency(438, 440)
	assert.Equal(t, "A4", flat.Label())
	assert.Less(t, flat.Cents, 0.0)
}

func TestNoteFromFrequency_CentsRange(t *testing.T) {
	for hz := 60.0; hz < 2000; hz *= 1.0137 {
		n := NoteFromFrequency(hz, 440)
		assert.Greater(t, n.Cents, -50.0-1e-9, "hz=%v", hz)
		assert.LessOrEqual(t, n.Cents, 50.0+1e-9, "hz=%v", hz)
	}
}

func TestNoteFromFrequency_HalfwayRoundsUp(t *testing.T) {
	assert.Equal(t, 70, roundMIDI(69.5))
	assert.Equal(t, 69, roundMIDI(69.49))
	assert.Equal(t, 61, roundMIDI(60.5))
	assert.Equal(t, -1, roundMIDI(-1.5))

	// Either side of the midpoint between A4 and A#4.
	mid := 440 * math.Pow(2, 0.5/12)
	above := NoteFromFrequency(mid*1.000001, 440)
	assert.Equal(t, "A#4", above.Label())
	assert.InDelta(t, -50, above.Cents, 0.01)

	below := NoteFromFrequency(mid*0.999999, 440)
	assert.Equal(t, "A4", below.Label())
	assert.InDelta(t, 50, below.Cents, 0.01)
}

func TestNoteFromFrequency_ReferencePitch(t *testing.T) {
	n := NoteFromFrequency(432, 432)
	assert.Equal(t, "A4", n.Label())
	assert.InDelta(t, 0, n.Cents, 1e-9)

	// A non-positive reference falls back to 440.
	assert.Equal(t, NoteFromFrequency(440, 440), NoteFromFrequency(440, 0))
}

func TestNoteFromFrequency_LowOctaves(t *testing.T) {
	// MIDI 12 is C0; octave uses truncating division.
	n := NoteFromFrequency(16.3516, 440)
	assert.Equal(t, "C0", n.Label())
	assert.Equal(t, 12, n.MIDI)
}
