package windowing

import (
	"github.com/mjibson/go-dsp/window"
)

// Rectangular leaves the frame unweighted
type Rectangular struct {
	table
}

// NewRectangular creates a window of ones
func NewRectangular(size int) *Rectangular {
	return &Rectangular{table{kind: KindRectangular, coefficients: window.Rectangular(size)}}
}
