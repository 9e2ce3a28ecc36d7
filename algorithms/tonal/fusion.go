package tonal

import (
	"github.com/RyanBlaney/sonido-mix/algorithms/chroma"
)

// BandParams describes one harmonic band feeding the detector
type BandParams struct {
	chroma.Band
	Priority float64 `json:"priority" toml:"priority"`
	IsBass   bool    `json:"is_bass" toml:"is_bass"`
}

// BandFrame is one band's chroma and liveness signals for one frame
type BandFrame struct {
	Params    BandParams    `json:"params"`
	Chroma    chroma.Result `json:"chroma"`
	Flatness  float64       `json:"flatness"`  // 1 = noise, 0 = tonal
	Transient float64       `json:"transient"` // onset strength vs. previous frame
	Loudness  float64       `json:"loudness"`  // 0..1
}

// Frame is the per-frame input of the detector
type Frame struct {
	Index int         `json:"index"`
	Bands []BandFrame `json:"bands"`
}

// BandWeight is priority·(1−0.5·flatness)·(1−0.3·transient)·gate where
// gate ramps linearly up to 1 at loudnessThreshold
func BandWeight(priority, flatness, transient, loudness, loudnessThreshold float64) float64 {
	gate := 1.0
	if loudness < loudnessThreshold {
		gate = max(0, loudness) / loudnessThreshold
	}
	return priority * (1 - 0.5*flatness) * (1 - 0.3*transient) * gate
}

// Fusion is the combined chroma of a frame
type Fusion struct {
	Chroma      chroma.Vector `json:"chroma"`
	TotalWeight float64       `json:"total_weight"`
	Bass        int           `json:"bass"`
}

// Fuse averages the band chromas by liveness weight and max-normalises
// the result. The bass pitch class is the argmax of the first bass band
// whose un-normalised peak exceeds bassThreshold.
func Fuse(bands []BandFrame, loudnessThreshold, bassThreshold float64) Fusion {
	fusion := Fusion{Bass: NoBass}

	var sum chroma.Vector
	for _, b := range bands {
		w := BandWeight(b.Params.Priority, b.Flatness, b.Transient, b.Loudness, loudnessThreshold)
		if w > 0 {
			for pc, v := range b.Chroma.Chroma {
				sum[pc] += v * w
			}
			fusion.TotalWeight += w
		}

		if b.Params.IsBass && fusion.Bass == NoBass && b.Chroma.Peak > bassThreshold {
			fusion.Bass = b.Chroma.Chroma.ArgMax()
		}
	}

	if fusion.TotalWeight <= 0 {
		fusion.TotalWeight = 0
		return fusion
	}

	for pc := range sum {
		sum[pc] /= fusion.TotalWeight
	}
	fusion.Chroma = sum.Normalized()
	return fusion
}
