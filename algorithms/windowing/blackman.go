package windowing

import (
	"github.com/mjibson/go-dsp/window"
)

// Blackman is the 3-term window 0.42 − 0.5·cos(x) + 0.08·cos(2x)
type Blackman struct {
	table
}

// NewBlackman creates a symmetric Blackman window
func NewBlackman(size int) *Blackman {
	return &Blackman{table{kind: KindBlackman, coefficients: window.Blackman(size)}}
}
