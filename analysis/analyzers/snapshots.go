package analyzers

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/RyanBlaney/sonido-mix/algorithms/windowing"
)

// AverageSnapshots averages the magnitude spectra of count equally spaced
// Hann-windowed DFTs of fftSize samples. It returns fftSize/2 bins scaled
// by 1/fftSize, the same scale as the spectrogram frames. Signals shorter
// than fftSize are zero-padded into a single snapshot.
func AverageSnapshots(signal []float64, fftSize, count int) []float64 {
	bins := fftSize / 2
	avg := make([]float64, bins)
	if len(signal) == 0 || fftSize <= 0 || count <= 0 {
		return avg
	}

	span := max(0, len(signal)-fftSize)
	if span == 0 {
		count = 1
	}

	window := windowing.Coefficients(windowing.KindHann, fftSize)
	transform := fourier.NewFFT(fftSize)
	frame := make([]float64, fftSize)
	coeffs := make([]complex128, fftSize/2+1)

	for k := range count {
		offset := 0
		if count > 1 {
			offset = k * span / (count - 1)
		}

		clear(frame)
		copy(frame, signal[offset:min(offset+fftSize, len(signal))])
		for i := range frame {
			frame[i] *= window[i]
		}

		transform.Coefficients(coeffs, frame)
		for i := range bins {
			avg[i] += cmplx.Abs(coeffs[i])
		}
	}

	scale := 1.0 / (float64(count) * float64(fftSize))
	for i := range avg {
		avg[i] *= scale
	}
	return avg
}
