package windowing

// Welch is the parabolic window 1 − ((n − M)/M)², M = (N−1)/2
type Welch struct {
	table
}

// NewWelch creates a symmetric Welch window
func NewWelch(size int) *Welch {
	w := &Welch{table{kind: KindWelch}}
	w.coefficients = make([]float64, size)
	if size == 1 {
		w.coefficients[0] = 1
		return w
	}

	half := float64(size-1) / 2
	for i := range size {
		x := (float64(i) - half) / half
		w.coefficients[i] = 1 - x*x
	}
	return w
}
