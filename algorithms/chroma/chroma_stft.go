package chroma

import (
	"fmt"

	"github.com/RyanBlaney/sonido-mix/algorithms/spectral"
)

// MinFrequency is the lowest bin frequency that contributes to chroma
const MinFrequency = 20.0

// Band is a frequency range a chroma vector is extracted from
type Band struct {
	Name   string  `json:"name" toml:"name"`
	LowHz  float64 `json:"low_hz" toml:"low_hz"`
	HighHz float64 `json:"high_hz" toml:"high_hz"`
}

// Validate checks the band edges
func (b Band) Validate() error {
	if b.LowHz < 0 || b.HighHz <= b.LowHz {
		return fmt.Errorf("band %q: invalid range %.1f-%.1f Hz", b.Name, b.LowHz, b.HighHz)
	}
	return nil
}

// Result is the chroma of one band in one frame
type Result struct {
	Chroma Vector  `json:"chroma"` // max-normalised
	Peak   float64 `json:"peak"`   // largest bin before normalisation
}

// Extractor projects byte-scaled magnitude spectra (0..255 per bin) onto
// pitch classes. The bin-to-pitch-class table is computed once per FFT size.
type Extractor struct {
	sampleRate int
	fftSize    int
	pitchClass []int
	weight     []float64
}

// NewExtractor creates an extractor for spectra of fftSize/2 bins
func NewExtractor(sampleRate, fftSize int) *Extractor {
	bins := fftSize / 2
	e := &Extractor{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		pitchClass: make([]int, bins),
		weight:     make([]float64, bins),
	}

	for k := range bins {
		freq := spectral.BinFrequency(k, fftSize, sampleRate)
		if freq < MinFrequency {
			e.pitchClass[k] = -1
			continue
		}
		e.pitchClass[k], e.weight[k] = PitchClassWeight(freq)
	}
	return e
}

// BinRange returns the first and last bin whose centre lies in band,
// or ok=false when none does
func (e *Extractor) BinRange(band Band) (lo, hi int, ok bool) {
	bins := len(e.pitchClass)
	lo, hi = -1, -1
	for k := range bins {
		freq := spectral.BinFrequency(k, e.fftSize, e.sampleRate)
		if freq < band.LowHz {
			continue
		}
		if freq > band.HighHz {
			break
		}
		if lo < 0 {
			lo = k
		}
		hi = k
	}
	return lo, hi, lo >= 0
}

// Extract computes the chroma of the bins of magnitudes inside band.
// Bins outside the band are ignored; a silent band yields a zero vector.
func (e *Extractor) Extract(magnitudes []float64, band Band) Result {
	lo, hi, ok := e.BinRange(band)
	if !ok {
		return Result{}
	}
	return e.ExtractBins(magnitudes, lo, hi)
}

// ExtractBins is Extract over the precomputed bin range [lo, hi]
func (e *Extractor) ExtractBins(magnitudes []float64, lo, hi int) Result {
	var raw Vector

	hi = min(hi, len(magnitudes)-1, len(e.pitchClass)-1)
	for k := max(0, lo); k <= hi; k++ {
		pc := e.pitchClass[k]
		if pc < 0 {
			continue
		}
		raw[pc] += magnitudes[k] / 255.0 * e.weight[k]
	}

	return Result{
		Chroma: raw.Normalized(),
		Peak:   raw.Max(),
	}
}
