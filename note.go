package pitchtrack

import (
	"math"
	"strconv"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is an equal-tempered note with the deviation of a measured frequency
// from it.
type Note struct {
	// MIDI is the MIDI number of the nearest note (A4 = 69).
	MIDI   int
	Name   string // pitch class, e.g. "C#"
	Octave int    // MIDI 60 is C4
	// TargetHz is the exact frequency of the note.
	TargetHz float64
	// Cents is the signed deviation from TargetHz; negative is flat.
	Cents float64
}

// Label returns the pitch class followed by the octave, e.g. "A4".
func (n Note) Label() string {
	return n.Name + strconv.Itoa(n.Octave)
}

// NoteFromFrequency maps hz to the nearest note tuned to referenceHz for A4.
// A non-positive referenceHz means 440. hz must be positive and finite.
//
// MIDI numbers are rounded half up, so a frequency exactly between two
// semitones maps to the upper one.
func NoteFromFrequency(hz, referenceHz float64) Note {
	if referenceHz <= 0 {
		referenceHz = DefaultReferenceHz
	}
	m := roundMIDI(69 + 12*math.Log2(hz/referenceHz))
	target := referenceHz * math.Pow(2, float64(m-69)/12)
	return Note{
		MIDI:     m,
		Name:     noteNames[((m%12)+12)%12],
		Octave:   m/12 - 1,
		TargetHz: target,
		Cents:    1200 * math.Log2(hz/target),
	}
}

func roundMIDI(x float64) int {
	return int(math.Floor(x + 0.5))
}
