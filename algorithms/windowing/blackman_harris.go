package windowing

import (
	"math"
)

// BlackmanHarris is the 4-term Blackman-Harris window
type BlackmanHarris struct {
	table
}

// NewBlackmanHarris creates a symmetric Blackman-Harris window.
// go-dsp only ships Blackman and Blackman-Nuttall, so the table is built here.
func NewBlackmanHarris(size int) *BlackmanHarris {
	bh := &BlackmanHarris{table{kind: KindBlackmanHarris}}
	bh.coefficients = make([]float64, size)
	if size == 1 {
		bh.coefficients[0] = 1
		return bh
	}

	a0, a1, a2, a3 := 0.35875, 0.48829, 0.14128, 0.01168
	denominator := float64(size - 1)

	for i := range size {
		arg := 2 * math.Pi * float64(i) / denominator
		bh.coefficients[i] = a0 - a1*math.Cos(arg) + a2*math.Cos(2*arg) - a3*math.Cos(3*arg)
	}
	return bh
}
