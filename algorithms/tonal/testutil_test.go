package tonal

import (
	"math"

	"github.com/RyanBlaney/sonido-mix/algorithms/chroma"
)

// chromaOf returns a vector with 1 at each pitch class
func chromaOf(pcs ...int) chroma.Vector {
	var v chroma.Vector
	for _, pc := range pcs {
		v[pc%chroma.NumPitchClasses] = 1
	}
	return v
}

// bandFrame builds a fully loud, tonal band frame carrying c
func bandFrame(c chroma.Vector, priority float64) BandFrame {
	return BandFrame{
		Params:   BandParams{Band: chroma.Band{Name: "test", LowHz: 100, HighHz: 2000}, Priority: priority},
		Chroma:   chroma.Result{Chroma: c, Peak: 1},
		Loudness: 1,
	}
}

func frameOf(c chroma.Vector) Frame {
	return Frame{Bands: []BandFrame{bandFrame(c, 1)}}
}

// synthChord sums equal-amplitude sines for the given duration
func synthChord(sampleRate int, seconds, amplitude float64, freqs ...float64) []float64 {
	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	for _, f := range freqs {
		for i := range out {
			out[i] += amplitude * math.Sin(2*math.Pi*f*float64(i)/float64(sampleRate))
		}
	}
	return out
}
