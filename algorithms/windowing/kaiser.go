package windowing

import (
	"math"
)

// DefaultKaiserBeta gives roughly Blackman-Harris sidelobe rejection
const DefaultKaiserBeta = 8.6

// Kaiser is the Bessel-based window I0(β·√(1−x²))/I0(β), x in [−1, 1]
type Kaiser struct {
	table
	beta float64
}

// NewKaiser creates a symmetric Kaiser window
func NewKaiser(size int, beta float64) *Kaiser {
	k := &Kaiser{table: table{kind: KindKaiser}, beta: beta}
	k.coefficients = make([]float64, size)
	if size == 1 {
		k.coefficients[0] = 1
		return k
	}

	norm := besselI0(beta)
	n := float64(size - 1)
	for i := range size {
		x := 2*float64(i)/n - 1
		k.coefficients[i] = besselI0(beta*math.Sqrt(max(0, 1-x*x))) / norm
	}
	return k
}

// besselI0 is the zero-order modified Bessel function of the first kind,
// summed until the series terms fall below 1e-12 of the total
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	half := x / 2
	for i := 1; i < 64; i++ {
		term *= (half / float64(i)) * (half / float64(i))
		sum += term
		if term < 1e-12*sum {
			break
		}
	}
	return sum
}
