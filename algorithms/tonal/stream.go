package tonal

import (
	"iter"

	"github.com/RyanBlaney/sonido-mix/algorithms/spectral"
)

// DetectStream lazily runs the detector over frames, yielding one
// detection per frame in input order
func DetectStream(detector *Detector, frames iter.Seq[Frame]) iter.Seq[Detection] {
	return func(yield func(Detection) bool) {
		for frame := range frames {
			if !yield(detector.Process(frame)) {
				return
			}
		}
	}
}

// SpectrumFrames lazily converts linear magnitude frames (|X|/N) into
// detector frames. Magnitudes are byte-scaled against a full-scale sine
// under a Hann window.
func SpectrumFrames(frontEnd *FrontEnd, magnitudes [][]float64) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for _, mags := range magnitudes {
			if !yield(frontEnd.Analyze(spectral.ByteSpectrum(mags, spectral.FullScaleHann))) {
				return
			}
		}
	}
}
