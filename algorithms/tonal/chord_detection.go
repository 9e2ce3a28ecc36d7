package tonal

import (
	"github.com/RyanBlaney/sonido-mix/algorithms/chroma"
	"github.com/RyanBlaney/sonido-mix/algorithms/common"
)

// NoBass marks a frame without a detected bass pitch class
const NoBass = -1

const (
	nonChordToneWeight = 0.5
	nonChordPenalty    = 0.3
	bassBonus          = 0.2
)

// ScoreTemplate scores chroma against template rotated to root.
// bass is the bass pitch class or NoBass. The result is not clamped.
func ScoreTemplate(c chroma.Vector, template ChordTemplate, root, bass int) float64 {
	if template.NumTones == 0 {
		return 0
	}

	toneSum := 0.0
	nonChordSum := 0.0
	for i := range chroma.NumPitchClasses {
		v := c[(i+root)%chroma.NumPitchClasses]
		if template.Pattern[i] > 0 {
			toneSum += v
		} else {
			nonChordSum += v * nonChordToneWeight
		}
	}

	score := toneSum/float64(template.NumTones) - nonChordPenalty*nonChordSum
	if bass != NoBass && bass == root {
		score += bassBonus
	}
	return score
}

// ScoreLabel scores chroma against a single chord, clamped to [0, 1]
func ScoreLabel(c chroma.Vector, label ChordLabel, bass int) float64 {
	if label.Quality < 0 || label.Quality >= numChordQualities {
		return 0
	}
	return common.Clamp(ScoreTemplate(c, templateBank[label.Quality], label.Root, bass), 0, 1)
}

// BestChord returns the best-scoring chord over every quality and root.
// Ties keep the first candidate in quality order then root order. The
// score is clamped to [0, 1].
func BestChord(c chroma.Vector, bass int) (ChordLabel, float64) {
	var best ChordLabel
	bestScore := 0.0
	first := true

	for q := range numChordQualities {
		template := templateBank[q]
		for root := range chroma.NumPitchClasses {
			score := ScoreTemplate(c, template, root, bass)
			if first || score > bestScore {
				best = ChordLabel{Root: root, Quality: q}
				bestScore = score
				first = false
			}
		}
	}

	return best, common.Clamp(bestScore, 0, 1)
}
