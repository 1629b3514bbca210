package tuning

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteOffsets = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParseNoteOrHz interprets a literal as a frequency: a float is taken as Hz,
// anything else as a note name ("A4", "F#2", "Ab3") resolved against the
// diapason (A4 frequency).
func ParseNoteOrHz(s string, diapasonHz float64) (float64, error) {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		if f <= 0 {
			return 0, fmt.Errorf("%w: frequency %g must be > 0", ErrInvalidParameter, f)
		}
		return f, nil
	}
	key, err := NoteNameToMidi(s)
	if err != nil {
		return 0, err
	}
	return MidiToHz(key, diapasonHz), nil
}

// NoteNameToMidi converts a scientific note name into a MIDI key (C4 = 60).
func NoteNameToMidi(name string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if s == "" {
		return 0, fmt.Errorf("%w: empty note name", ErrInvalidParameter)
	}
	offset, ok := noteOffsets[s[0]]
	if !ok {
		return 0, fmt.Errorf("%w: bad note name %q", ErrInvalidParameter, name)
	}
	alteration, octaveIndex := 0, 1
	if len(s) > 1 {
		switch s[1] {
		case '#':
			alteration, octaveIndex = 1, 2
		case 'B':
			alteration, octaveIndex = -1, 2
		}
	}
	octave, err := strconv.Atoi(s[octaveIndex:])
	if err != nil {
		return 0, fmt.Errorf("%w: bad octave in note name %q", ErrInvalidParameter, name)
	}
	// +1 aligns MIDI numbering with scientific pitch notation (C4 = 60)
	key := (octave+1)*12 + offset + alteration
	if key < minMidiKey || key > maxMidiKey {
		return 0, fmt.Errorf("%w: note %q is outside midi range 0..127", ErrRangeOverflow, name)
	}
	return key, nil
}

// MidiToHz converts a MIDI key to Hz relative to the diapason (A4 = key 69).
func MidiToHz(key int, diapasonHz float64) float64 {
	return diapasonHz * math.Pow(2, (float64(key)-69)/12)
}

// NoteName labels a frequency with the nearest 12-TET note name relative to
// the diapason, or an empty string for non-positive inputs.
func NoteName(hz, diapasonHz float64) string {
	if hz <= 0 || diapasonHz <= 0 {
		return ""
	}
	key := int(math.Round(69 + 12*math.Log2(hz/diapasonHz)))
	key = max(minMidiKey, min(maxMidiKey, key))
	return fmt.Sprintf("%s%d", noteNames[key%12], key/12-1)
}
