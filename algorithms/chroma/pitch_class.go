package chroma

import (
	"math"
)

// NumPitchClasses is the size of a chroma vector
const NumPitchClasses = 12

// ReferenceA4 is the tuning reference in Hz
const ReferenceA4 = 440.0

var pitchClassNames = [NumPitchClasses]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchClassName returns the name of pc (taken modulo 12)
func PitchClassName(pc int) string {
	return pitchClassNames[((pc%NumPitchClasses)+NumPitchClasses)%NumPitchClasses]
}

// FrequencyToMIDI converts frequency to a fractional MIDI note number.
// A4 (440 Hz) = MIDI note 69.
func FrequencyToMIDI(frequency float64) float64 {
	if frequency <= 0 {
		return 0
	}
	return 69.0 + 12.0*math.Log2(frequency/ReferenceA4)
}

// PitchClassWeight maps a frequency to its nearest pitch class and a weight
// in [0, 1] that falls off as a raised cosine with distance from the
// nearest semitone: 1 on the note, 0.5 a quarter tone away.
func PitchClassWeight(frequency float64) (pc int, weight float64) {
	midi := FrequencyToMIDI(frequency)
	nearest := math.Round(midi)

	pc = int(nearest) % NumPitchClasses
	if pc < 0 {
		pc += NumPitchClasses
	}
	weight = 0.5 * (1 + math.Cos(math.Pi*math.Abs(midi-nearest)))
	return pc, weight
}
