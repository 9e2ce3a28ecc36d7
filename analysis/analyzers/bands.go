package analyzers

import (
	"cmp"
	"math"
	"slices"

	"github.com/RyanBlaney/sonido-mix/algorithms/common"
	"github.com/RyanBlaney/sonido-mix/algorithms/spectral"
	"github.com/RyanBlaney/sonido-mix/analysis/config"
	"github.com/RyanBlaney/sonido-mix/logging"
)

// tiltFloor keeps the tilt finite when one side of the spectrum is empty
const tiltFloor = 1e-9

// BandEnergy is the normalized energy of one profile band
type BandEnergy struct {
	config.Band
	Energy float64 `json:"energy"` // RMS of max-normalized magnitudes, 0..1
}

// FrequencyProfile is the band energy layout of a whole signal
type FrequencyProfile struct {
	Bands    []BandEnergy      `json:"bands"`
	Tilt     float64           `json:"tilt_db"` // upper vs lower band energy
	Centroid float64           `json:"centroid_hz"`
	Rolloff  float64           `json:"rolloff_hz"` // 85% energy point
	Source   config.BandSource `json:"source"`
}

// Energy returns the energy of the named band
func (fp *FrequencyProfile) Energy(name string) (float64, bool) {
	for _, b := range fp.Bands {
		if b.Name == name {
			return b.Energy, true
		}
	}
	return 0, false
}

// Dominant returns the band with the most energy. Ties keep the lower band.
func (fp *FrequencyProfile) Dominant() (BandEnergy, bool) {
	if len(fp.Bands) == 0 {
		return BandEnergy{}, false
	}
	return slices.MaxFunc(fp.Bands, func(a, b BandEnergy) int {
		return cmp.Compare(a.Energy, b.Energy)
	}), true
}

// BandAnalyzer builds a FrequencyProfile from an averaged magnitude spectrum
type BandAnalyzer struct {
	bands  []config.Band
	logger logging.Logger
}

// NewBandAnalyzer creates a band analyzer over bands (DefaultBands when empty)
func NewBandAnalyzer(bands []config.Band) *BandAnalyzer {
	if len(bands) == 0 {
		bands = config.DefaultBands()
	}
	return &BandAnalyzer{
		bands:  bands,
		logger: logging.Component("band_analyzer"),
	}
}

// Analyze computes band energies from spectrum, a linear magnitude
// spectrum of fftSize/2 (or fftSize/2+1) bins. spectrum is not modified.
func (ba *BandAnalyzer) Analyze(spectrum []float64, sampleRate, fftSize int, source config.BandSource) *FrequencyProfile {
	normalized := slices.Clone(spectrum)
	common.NormalizeMax(normalized)

	profile := &FrequencyProfile{
		Bands:  make([]BandEnergy, len(ba.bands)),
		Source: source,
	}

	bins := len(normalized)
	for i, band := range ba.bands {
		profile.Bands[i] = BandEnergy{Band: band}
		if bins == 0 || band.LowHz >= float64(sampleRate)/2 {
			continue
		}

		lo := spectral.FrequencyBin(band.LowHz, fftSize, sampleRate, bins)
		hi := spectral.FrequencyBin(band.HighHz, fftSize, sampleRate, bins)
		if hi < lo {
			continue
		}
		profile.Bands[i].Energy = common.RMS(normalized[lo : hi+1])
	}

	profile.Tilt = Tilt(profile.Bands)

	shape := spectral.NewSpectralShape(sampleRate, fftSize)
	profile.Centroid = shape.Centroid(spectrum)
	profile.Rolloff = shape.Rolloff(spectrum, spectral.DefaultRolloff)

	ba.logger.Debug("Frequency profile computed", logging.Fields{
		"bands":    len(profile.Bands),
		"tilt":     profile.Tilt,
		"centroid": profile.Centroid,
		"source":   source,
	})

	return profile
}

// Tilt returns 10·log10(mean upper energy / mean lower energy) where the
// lower half is the first len/2 bands (the three lowest of the default
// seven). Both means are floored at 1e-9, so silence reports 0 dB.
func Tilt(bands []BandEnergy) float64 {
	split := len(bands) / 2
	if split == 0 {
		return 0
	}

	lower, upper := 0.0, 0.0
	for _, b := range bands[:split] {
		lower += b.Energy
	}
	for _, b := range bands[split:] {
		upper += b.Energy
	}
	lower = max(lower/float64(split), tiltFloor)
	upper = max(upper/float64(len(bands)-split), tiltFloor)

	tilt := 10 * math.Log10(upper/lower)
	if !common.IsFinite(tilt) {
		return 0
	}
	return tilt
}
