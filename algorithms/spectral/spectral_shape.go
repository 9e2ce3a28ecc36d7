package spectral

// DefaultRolloff is the energy fraction Rolloff is usually asked for
const DefaultRolloff = 0.85

// SpectralShape summarizes where the energy of a magnitude spectrum sits
type SpectralShape struct {
	sampleRate int
	fftSize    int
	freqBins   []float64 // bin centre frequencies, rebuilt when the length changes
}

// NewSpectralShape creates a calculator for spectra of an fftSize transform
func NewSpectralShape(sampleRate, fftSize int) *SpectralShape {
	return &SpectralShape{
		sampleRate: sampleRate,
		fftSize:    fftSize,
	}
}

func (ss *SpectralShape) frequencies(bins int) []float64 {
	if len(ss.freqBins) != bins {
		ss.freqBins = make([]float64, bins)
		for i := range bins {
			ss.freqBins[i] = BinFrequency(i, ss.fftSize, ss.sampleRate)
		}
	}
	return ss.freqBins
}

// Centroid returns the magnitude-weighted mean frequency in Hz, 0 for an
// empty or silent spectrum
func (ss *SpectralShape) Centroid(spectrum []float64) float64 {
	freqs := ss.frequencies(len(spectrum))

	numerator, denominator := 0.0, 0.0
	for i, m := range spectrum {
		numerator += freqs[i] * m
		denominator += m
	}
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Rolloff returns the lowest frequency below which fraction (0..1) of the
// spectral energy lies, 0 for an empty or silent spectrum
func (ss *SpectralShape) Rolloff(spectrum []float64, fraction float64) float64 {
	freqs := ss.frequencies(len(spectrum))

	total := 0.0
	for _, m := range spectrum {
		total += m * m
	}
	if total == 0 {
		return 0
	}

	target := fraction * total
	cumulative := 0.0
	for i, m := range spectrum {
		cumulative += m * m
		if cumulative >= target {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}
