package pitchtrack

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// StandardTuningName is the six-string standard guitar tuning.
const StandardTuningName = "EADGBE"

// stringOctaves are the octaves of guitar strings six through one.
var stringOctaves = [6]int{2, 2, 3, 3, 3, 4}

// TargetNote is one string's target pitch.
type TargetNote struct {
	Name   string
	Octave int
}

func (t TargetNote) String() string {
	return t.Name + strconv.Itoa(t.Octave)
}

// Tuning lists target notes from the sixth string to the first.
type Tuning []TargetNote

// StandardTuning returns E2 A2 D3 G3 B3 E4.
func StandardTuning() Tuning {
	t, _ := ParseTuning(StandardTuningName)
	return t
}

// ParseTuning parses six note letters such as "DADGBE" into targets using
// guitar string octaves.
func ParseTuning(s string) (Tuning, error) {
	letters := strings.ToUpper(strings.TrimSpace(s))
	if len(letters) != len(stringOctaves) {
		return nil, fmt.Errorf("tuning %q must have %d notes (e.g. DADGBE)", s, len(stringOctaves))
	}

	t := make(Tuning, 0, len(stringOctaves))
	for i, ch := range letters {
		if ch < 'A' || ch > 'G' {
			return nil, fmt.Errorf("tuning %q: %q is not a note letter", s, ch)
		}
		t = append(t, TargetNote{Name: string(ch), Octave: stringOctaves[i]})
	}
	return t, nil
}

// Contains reports whether label, e.g. "D3", names one of the targets by
// pitch class and octave.
func (t Tuning) Contains(label string) bool {
	i := strings.IndexFunc(label, func(r rune) bool {
		return r != '#' && (r < 'A' || r > 'Z')
	})
	if i <= 0 {
		return false
	}
	octave, err := strconv.Atoi(label[i:])
	if err != nil {
		return false
	}
	return slices.Contains(t, TargetNote{Name: label[:i], Octave: octave})
}

func (t Tuning) String() string {
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}

// Indicator is a nine-tick cents meter reading.
type Indicator struct {
	// Tick is 0 (40 or more cents flat) through 8 (40 or more sharp);
	// 4 is centred.
	Tick   int
	InTune bool
}

// CentsIndicator maps cents to a meter tick. ok is false for non-finite
// cents, which light no tick.
func CentsIndicator(cents float64) (ind Indicator, ok bool) {
	if math.IsNaN(cents) || math.IsInf(cents, 0) {
		return Indicator{}, false
	}

	var tick int
	switch {
	case cents <= -40:
		tick = 0
	case cents <= -25:
		tick = 1
	case cents <= -15:
		tick = 2
	case cents <= -7:
		tick = 3
	case cents < 7:
		tick = 4
	case cents < 15:
		tick = 5
	case cents < 25:
		tick = 6
	case cents < 40:
		tick = 7
	default:
		tick = 8
	}
	return Indicator{Tick: tick, InTune: math.Abs(cents) < 10}, true
}
