package analysis

import (
	"math"
	"math/rand/v2"

	"github.com/RyanBlaney/sonido-mix/analysis/config"
	"github.com/RyanBlaney/sonido-mix/transcode"
)

const testSampleRate = 44100

func sine(freq, amplitude, seconds float64) []float64 {
	out := make([]float64, int(seconds*testSampleRate))
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/testSampleRate)
	}
	return out
}

func chord(seconds, amplitude float64, freqs ...float64) []float64 {
	out := make([]float64, int(seconds*testSampleRate))
	for _, f := range freqs {
		for i, v := range sine(f, amplitude, seconds) {
			out[i] += v
		}
	}
	return out
}

func noise(seed uint64, rms, seconds float64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b9))
	out := make([]float64, int(seconds*testSampleRate))
	for i := range out {
		out[i] = rng.NormFloat64() * rms
	}
	return out
}

func mono(samples []float64) *transcode.AudioData {
	return transcode.NewAudioData(testSampleRate, samples)
}

func stereo(left, right []float64) *transcode.AudioData {
	return transcode.NewAudioData(testSampleRate, left, right)
}

func testOptions() config.Options {
	opts := config.DefaultOptions()
	opts.SpectrogramWidth = 64
	opts.SpectrogramHeight = 32
	return opts
}

func near(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}
