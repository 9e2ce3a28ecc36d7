package analyzers

import (
	"math"
	"math/rand/v2"

	"github.com/RyanBlaney/sonido-mix/transcode"
)

const testSampleRate = 44100

func sine(freq, amplitude float64, seconds float64) []float64 {
	n := int(seconds * testSampleRate)
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/testSampleRate)
	}
	return out
}

func noise(seed uint64, rms, seconds float64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed*7+1))
	out := make([]float64, int(seconds*testSampleRate))
	for i := range out {
		out[i] = rng.NormFloat64() * rms
	}
	return out
}

func negate(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = -v
	}
	return out
}

func mono(samples []float64) *transcode.AudioData {
	return transcode.NewAudioData(testSampleRate, samples)
}

func stereo(left, right []float64) *transcode.AudioData {
	return transcode.NewAudioData(testSampleRate, left, right)
}

func near(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}
