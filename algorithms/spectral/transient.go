package spectral

// TransientScore measures onset energy between two byte-scaled spectra
// (values 0..255): the summed positive change divided by N·128, clamped
// to [0, 1]. A missing previous frame scores 0.
func TransientScore(current, previous []float64) float64 {
	n := len(current)
	if n == 0 || len(previous) != n {
		return 0.0
	}

	sum := 0.0
	for i := range n {
		if diff := current[i] - previous[i]; diff > 0 {
			sum += diff
		}
	}

	score := sum / (float64(n) * 128.0)
	return max(0, min(1, score))
}
