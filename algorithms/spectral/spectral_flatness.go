package spectral

import (
	"gonum.org/v1/gonum/stat"
)

// SpectralFlatness computes spectral flatness (Wiener entropy):
// geometric mean over arithmetic mean of the magnitudes.
// 1 means white noise, 0 means a single pure tone.
type SpectralFlatness struct {
	minThreshold float64 // floor applied to every bin to avoid log(0)
}

// NewSpectralFlatness creates a new spectral flatness calculator
func NewSpectralFlatness() *SpectralFlatness {
	return &SpectralFlatness{
		minThreshold: 1e-10,
	}
}

// Compute calculates spectral flatness for a single magnitude spectrum.
// Every bin takes part; empty bins are floored rather than skipped so a
// sparse tonal spectrum stays near 0.
func (sf *SpectralFlatness) Compute(magnitudeSpectrum []float64) float64 {
	if len(magnitudeSpectrum) == 0 {
		return 0.0
	}

	floored := make([]float64, len(magnitudeSpectrum))
	for i, m := range magnitudeSpectrum {
		floored[i] = max(m, sf.minThreshold)
	}

	arithmeticMean := stat.Mean(floored, nil)
	if arithmeticMean <= sf.minThreshold {
		return 0.0
	}

	flatness := stat.GeometricMean(floored, nil) / arithmeticMean
	return max(0, min(1, flatness))
}

// ComputeBandLimited calculates flatness over bins [startBin, endBin]
func (sf *SpectralFlatness) ComputeBandLimited(magnitudeSpectrum []float64, startBin, endBin int) float64 {
	if startBin < 0 || endBin >= len(magnitudeSpectrum) || startBin > endBin {
		return 0.0
	}
	return sf.Compute(magnitudeSpectrum[startBin : endBin+1])
}
