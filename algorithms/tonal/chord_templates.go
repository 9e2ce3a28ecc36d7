package tonal

import (
	"fmt"

	"github.com/RyanBlaney/sonido-mix/algorithms/chroma"
)

// ChordQuality represents the quality/type of a chord
type ChordQuality int

const (
	ChordMajor ChordQuality = iota
	ChordMinor
	ChordMaj7
	ChordMin7
	ChordDom7
	ChordDom9
	ChordDom11
	ChordDom13
	ChordDom7Sharp9
	ChordDom7Flat9
	ChordSus2
	ChordSus4
	ChordDom7Sus4
	ChordDiminished
	ChordDim7
	ChordHalfDim7
	ChordAugmented
	ChordAug7
	ChordMajor6
	ChordMinor6
	ChordMinMaj7
	ChordMaj9
	ChordMin9
	ChordAdd9
	ChordPowerChord // 🤘

	numChordQualities
)

type qualityInfo struct {
	name      string
	suffix    string
	intervals []int
}

// Scoring iterates qualities in this order, so on equal scores the
// earlier (simpler) chord wins.
var qualities = [numChordQualities]qualityInfo{
	ChordMajor:      {"maj", "", []int{0, 4, 7}},
	ChordMinor:      {"min", "m", []int{0, 3, 7}},
	ChordMaj7:       {"maj7", "maj7", []int{0, 4, 7, 11}},
	ChordMin7:       {"min7", "m7", []int{0, 3, 7, 10}},
	ChordDom7:       {"7", "7", []int{0, 4, 7, 10}},
	ChordDom9:       {"9", "9", []int{0, 4, 7, 10, 2}},
	ChordDom11:      {"11", "11", []int{0, 4, 7, 10, 2, 5}},
	ChordDom13:      {"13", "13", []int{0, 4, 7, 10, 2, 9}},
	ChordDom7Sharp9: {"7#9", "7#9", []int{0, 4, 7, 10, 3}},
	ChordDom7Flat9:  {"7b9", "7b9", []int{0, 4, 7, 10, 1}},
	ChordSus2:       {"sus2", "sus2", []int{0, 2, 7}},
	ChordSus4:       {"sus4", "sus4", []int{0, 5, 7}},
	ChordDom7Sus4:   {"7sus4", "7sus4", []int{0, 5, 7, 10}},
	ChordDiminished: {"dim", "dim", []int{0, 3, 6}},
	ChordDim7:       {"dim7", "dim7", []int{0, 3, 6, 9}},
	ChordHalfDim7:   {"half-dim7", "m7b5", []int{0, 3, 6, 10}},
	ChordAugmented:  {"aug", "aug", []int{0, 4, 8}},
	ChordAug7:       {"aug7", "aug7", []int{0, 4, 8, 10}},
	ChordMajor6:     {"6", "6", []int{0, 4, 7, 9}},
	ChordMinor6:     {"min6", "m6", []int{0, 3, 7, 9}},
	ChordMinMaj7:    {"minMaj7", "m(maj7)", []int{0, 3, 7, 11}},
	ChordMaj9:       {"maj9", "maj9", []int{0, 4, 7, 11, 2}},
	ChordMin9:       {"min9", "m9", []int{0, 3, 7, 10, 2}},
	ChordAdd9:       {"add9", "add9", []int{0, 4, 7, 2}},
	ChordPowerChord: {"power5", "5", []int{0, 7}},
}

// String returns the quality's canonical name ("maj", "min7", "half-dim7", ...)
func (q ChordQuality) String() string {
	if q < 0 || q >= numChordQualities {
		return "unknown"
	}
	return qualities[q].name
}

// Suffix returns the symbol suffix appended to the root name
func (q ChordQuality) Suffix() string {
	if q < 0 || q >= numChordQualities {
		return "?"
	}
	return qualities[q].suffix
}

func (q ChordQuality) MarshalText() ([]byte, error) {
	if q < 0 || q >= numChordQualities {
		return nil, fmt.Errorf("invalid chord quality %d", int(q))
	}
	return []byte(q.String()), nil
}

func (q *ChordQuality) UnmarshalText(text []byte) error {
	parsed, err := ParseChordQuality(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// ParseChordQuality maps a canonical name back to its quality
func ParseChordQuality(name string) (ChordQuality, error) {
	for q := range numChordQualities {
		if qualities[q].name == name {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unknown chord quality %q", name)
}

// ChordQualities returns every supported quality in scoring order
func ChordQualities() []ChordQuality {
	out := make([]ChordQuality, numChordQualities)
	for q := range numChordQualities {
		out[q] = q
	}
	return out
}

// ChordLabel is a root pitch class plus a quality
type ChordLabel struct {
	Root    int          `json:"root"`
	Quality ChordQuality `json:"quality"`
}

// Symbol renders the label as a chord symbol, e.g. "C", "Am", "F#m7b5"
func (c ChordLabel) Symbol() string {
	return chroma.PitchClassName(c.Root) + c.Quality.Suffix()
}

func (c ChordLabel) String() string {
	return c.Symbol()
}

// ChordTemplate is a 0/1 chroma pattern rooted on C
type ChordTemplate struct {
	Quality  ChordQuality
	Pattern  chroma.Vector
	NumTones int
}

var templateBank = buildTemplates()

func buildTemplates() [numChordQualities]ChordTemplate {
	var bank [numChordQualities]ChordTemplate
	for q := range numChordQualities {
		t := ChordTemplate{Quality: q}
		for _, interval := range qualities[q].intervals {
			t.Pattern[interval%chroma.NumPitchClasses] = 1
		}
		for _, v := range t.Pattern {
			if v > 0 {
				t.NumTones++
			}
		}
		bank[q] = t
	}
	return bank
}

// Template returns the C-rooted template for q
func Template(q ChordQuality) ChordTemplate {
	return templateBank[q]
}
