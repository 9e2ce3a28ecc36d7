package windowing

import (
	"github.com/mjibson/go-dsp/window"
)

// Hamming is the window 0.54−0.46·cos(2πn/(N−1))
type Hamming struct {
	table
}

// NewHamming creates a symmetric Hamming window
func NewHamming(size int) *Hamming {
	h := &Hamming{table{kind: KindHamming}}
	if size == 1 {
		h.coefficients = []float64{1}
	} else {
		h.coefficients = window.Hamming(size)
	}
	return h
}
