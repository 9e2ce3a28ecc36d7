package tonal

import (
	"github.com/RyanBlaney/sonido-mix/algorithms/chroma"
	"github.com/RyanBlaney/sonido-mix/algorithms/spectral"
)

// FrontEnd turns byte-scaled magnitude spectra (0..255 per bin) into
// detector frames: per band chroma, flatness, transient and loudness.
// It keeps the previous spectrum of every band for the transient score.
type FrontEnd struct {
	bands     []BandParams
	extractor *chroma.Extractor
	flatness  *spectral.SpectralFlatness
	ranges    [][2]int
	previous  [][]float64
	frames    int
}

// NewFrontEnd creates a front end for spectra of fftSize/2 bins
func NewFrontEnd(sampleRate, fftSize int, bands []BandParams) *FrontEnd {
	fe := &FrontEnd{
		bands:     bands,
		extractor: chroma.NewExtractor(sampleRate, fftSize),
		flatness:  spectral.NewSpectralFlatness(),
		ranges:    make([][2]int, len(bands)),
		previous:  make([][]float64, len(bands)),
	}

	for i, b := range bands {
		lo, hi, ok := fe.extractor.BinRange(b.Band)
		if !ok {
			lo, hi = 0, -1
		}
		fe.ranges[i] = [2]int{lo, hi}
	}
	return fe
}

// Analyze builds the frame for one spectrum
func (fe *FrontEnd) Analyze(spectrum []float64) Frame {
	frame := Frame{Index: fe.frames, Bands: make([]BandFrame, len(fe.bands))}
	fe.frames++

	for i, b := range fe.bands {
		bf := BandFrame{Params: b}

		lo, hi := fe.ranges[i][0], min(fe.ranges[i][1], len(spectrum)-1)
		if hi >= lo {
			bins := spectrum[lo : hi+1]

			bf.Chroma = fe.extractor.ExtractBins(spectrum, lo, hi)
			bf.Flatness = fe.flatness.ComputeBandLimited(spectrum, lo, hi)
			bf.Transient = spectral.TransientScore(bins, fe.previous[i])

			peak := 0.0
			for _, v := range bins {
				peak = max(peak, v)
			}
			bf.Loudness = peak / 255.0

			fe.previous[i] = append(fe.previous[i][:0], bins...)
		}

		frame.Bands[i] = bf
	}
	return frame
}

// Reset forgets the previous spectra
func (fe *FrontEnd) Reset() {
	for i := range fe.previous {
		fe.previous[i] = fe.previous[i][:0]
	}
	fe.frames = 0
}
