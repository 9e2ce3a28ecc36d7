package windowing

import (
	"github.com/mjibson/go-dsp/window"
)

// Hann is the raised-cosine window 0.5·(1−cos(2πn/(N−1)))
type Hann struct {
	table
}

// NewHann creates a symmetric Hann window
func NewHann(size int) *Hann {
	h := &Hann{table{kind: KindHann}}
	if size == 1 {
		h.coefficients = []float64{1}
	} else {
		h.coefficients = window.Hann(size)
	}
	return h
}
