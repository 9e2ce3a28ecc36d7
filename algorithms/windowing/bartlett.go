package windowing

import (
	"github.com/mjibson/go-dsp/window"
)

// Bartlett is the triangular window reaching zero at both ends
type Bartlett struct {
	table
}

// NewBartlett creates a symmetric Bartlett window
func NewBartlett(size int) *Bartlett {
	return &Bartlett{table{kind: KindBartlett, coefficients: window.Bartlett(size)}}
}
