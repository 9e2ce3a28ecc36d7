package spectral

import (
	"errors"
	"fmt"

	"github.com/mjibson/go-dsp/fft"
)

// ErrNotPowerOfTwo is returned when the FFT input length is not a power of two
var ErrNotPowerOfTwo = errors.New("fft length must be a power of two")

// IsPowerOfTwo reports whether n is a positive power of two
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// FFT provides radix-2 Fast Fourier Transform functionality.
// go-dsp dispatches power-of-two lengths to its iterative Cooley-Tukey
// kernel with bit-reversal reordering; other lengths are rejected here.
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// ComputeComplex returns the complex DFT of x
func (f *FFT) ComputeComplex(x []float64) ([]complex128, error) {
	if !IsPowerOfTwo(len(x)) {
		return nil, fmt.Errorf("%w: got %d", ErrNotPowerOfTwo, len(x))
	}
	return fft.FFTReal(x), nil
}

// Compute returns the real and imaginary parts of the DFT of x, each len(x) long
func (f *FFT) Compute(x []float64) (re, im []float64, err error) {
	spectrum, err := f.ComputeComplex(x)
	if err != nil {
		return nil, nil, err
	}

	re = make([]float64, len(spectrum))
	im = make([]float64, len(spectrum))
	for i, c := range spectrum {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, nil
}
