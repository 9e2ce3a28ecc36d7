package windowing

import (
	"math"
)

// DefaultTukeyAlpha is the tapered fraction used when Tukey is picked by name
const DefaultTukeyAlpha = 0.5

// Tukey is flat in the middle with raised-cosine tapers covering alpha of
// the frame. alpha 0 is rectangular, alpha 1 is Hann.
type Tukey struct {
	table
	alpha float64
}

// NewTukey creates a symmetric Tukey window; alpha is clamped to [0, 1]
func NewTukey(size int, alpha float64) *Tukey {
	alpha = max(0, min(1, alpha))
	t := &Tukey{table: table{kind: KindTukey}, alpha: alpha}
	t.coefficients = make([]float64, size)
	if size == 1 {
		t.coefficients[0] = 1
		return t
	}

	n := float64(size - 1)
	edge := alpha * n / 2
	for i := range size {
		x := float64(i)
		switch {
		case x < edge:
			t.coefficients[i] = 0.5 * (1 - math.Cos(math.Pi*x/edge))
		case x > n-edge:
			t.coefficients[i] = 0.5 * (1 - math.Cos(math.Pi*(n-x)/edge))
		default:
			t.coefficients[i] = 1
		}
	}
	return t
}
