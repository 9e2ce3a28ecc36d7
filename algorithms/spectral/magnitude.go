package spectral

import (
	"math"
	"math/cmplx"
)

const (
	// FloorDB is the lowest level reported anywhere in the engine
	FloorDB = -90.0
	// CeilingDB is the highest level reported for spectral bins
	CeilingDB = 0.0

	// FullScaleHann is |X|/N of a full-scale sine under a Hann window
	FullScaleHann = 0.25
)

// MagnitudeSpectrum returns the first N/2 bins of sqrt(re²+im²)/N
func MagnitudeSpectrum(re, im []float64) []float64 {
	n := min(len(re), len(im))
	if n == 0 {
		return []float64{}
	}

	bins := n / 2
	mags := make([]float64, bins)
	scale := 1.0 / float64(n)
	for i := range bins {
		mags[i] = math.Hypot(re[i], im[i]) * scale
	}
	return mags
}

// magnitudeFromComplex is MagnitudeSpectrum for a complex spectrum, written into dst
func magnitudeFromComplex(spectrum []complex128, dst []float64) {
	scale := 1.0 / float64(len(spectrum))
	for i := range dst {
		dst[i] = cmplx.Abs(spectrum[i]) * scale
	}
}

// LinearToDB converts a linear amplitude to dB.
// Non-positive input yields -Inf; callers clamp with ClampDB.
func LinearToDB(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(x)
}

// ClampDB limits db to [floor, ceiling]; NaN maps to floor
func ClampDB(db, floor, ceiling float64) float64 {
	if math.IsNaN(db) || db < floor {
		return floor
	}
	if db > ceiling {
		return ceiling
	}
	return db
}

// LinearToClampedDB is LinearToDB followed by the engine's -90..0 clamp
func LinearToClampedDB(x float64) float64 {
	return ClampDB(LinearToDB(x), FloorDB, CeilingDB)
}

// ByteSpectrum rescales linear magnitudes to 0..255 against ref (the
// magnitude that maps to 255). Values above ref saturate.
func ByteSpectrum(mags []float64, ref float64) []float64 {
	out := make([]float64, len(mags))
	if ref <= 0 {
		return out
	}

	scale := 255.0 / ref
	for i, m := range mags {
		v := m * scale
		if v > 255 {
			v = 255
		}
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

// BinFrequency returns the centre frequency of bin for the given FFT size
func BinFrequency(bin, fftSize, sampleRate int) float64 {
	return float64(bin) * float64(sampleRate) / float64(fftSize)
}

// FrequencyBin returns the nearest bin to freq, clamped to [0, bins-1]
func FrequencyBin(freq float64, fftSize, sampleRate, bins int) int {
	if bins <= 0 {
		return 0
	}
	bin := int(math.Round(freq * float64(fftSize) / float64(sampleRate)))
	return max(0, min(bins-1, bin))
}
