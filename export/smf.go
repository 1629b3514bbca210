package export

import (
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/writer"

	"github.com/lbimbi/sim/tuning"
)

const (
	auditionVelocity = 100
	auditionBPM      = 120
	// delta ticks per played step at the writer's default resolution
	ticksPerStep = 960
)

// WriteScaleSMF writes <base>.mid playing each degree in order, one beat
// apiece. Fractional pitches are rendered with a per-note pitch bend,
// assuming the common 2-semitone bend range; notes cycle through channels
// so bends never bleed between overlapping releases.
func WriteScaleSMF(base string, degs []tuning.Degree, diapasonHz float64) (string, error) {
	path := base + ".mid"
	if len(degs) == 0 {
		return path, fmt.Errorf("audition midi: %w", tuning.ErrDegenerateInput)
	}
	if diapasonHz <= 0 {
		return path, fmt.Errorf("audition midi: diapason %g: %w", diapasonHz, tuning.ErrInvalidParameter)
	}
	err := writer.WriteSMF(path, 1, func(wr *writer.SMF) error {
		writer.TempoBPM(wr, auditionBPM)
		for i, d := range degs {
			pitch := 69 + 12*math.Log2(d.Hz/diapasonHz)
			note, bend := pitchToMIDI(pitch)
			wr.SetChannel(uint8(i % 16))
			if err := writer.Pitchbend(wr, bend); err != nil {
				return err
			}
			if err := writer.NoteOn(wr, note, auditionVelocity); err != nil {
				return err
			}
			wr.SetDelta(ticksPerStep)
			if err := writer.NoteOff(wr, note); err != nil {
				return err
			}
		}
		writer.EndOfTrack(wr)
		return nil
	})
	if err != nil {
		return path, fmt.Errorf("audition midi: %w", err)
	}
	return path, nil
}

// return a note and pitch bend value for the given fractional MIDI pitch,
// assuming a 2-semitone bend range
func pitchToMIDI(p float64) (uint8, int16) {
	note := uint8(math.Round(math.Max(0, math.Min(127, p))))
	bend := int16((p - float64(note)) * 4096)
	return note, bend
}
