package chroma

import (
	"github.com/RyanBlaney/sonido-mix/algorithms/common"
)

// Vector is a 12-bin pitch class profile, index 0 = C
type Vector [NumPitchClasses]float64

// Max returns the largest value
func (v Vector) Max() float64 {
	peak := 0.0
	for _, x := range v {
		peak = max(peak, x)
	}
	return peak
}

// ArgMax returns the strongest pitch class; ties keep the lowest index
func (v Vector) ArgMax() int {
	return common.ArgMax(v[:])
}

// IsZero reports whether every bin is zero
func (v Vector) IsZero() bool {
	return v.Max() <= 0
}

// Normalized returns v scaled so its maximum is 1. An all-zero vector is
// returned unchanged.
func (v Vector) Normalized() Vector {
	common.NormalizeMax(v[:])
	return v
}

// Rotate returns v shifted so that index 0 holds the value at pc
func (v Vector) Rotate(pc int) Vector {
	var out Vector
	for i := range NumPitchClasses {
		out[i] = v[(i+pc)%NumPitchClasses]
	}
	return out
}
