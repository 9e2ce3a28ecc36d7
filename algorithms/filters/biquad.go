package filters

import (
	"math"
)

// Biquad is a second-order IIR section with a0 normalised to 1.
//
// The difference equation is:
// y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
type Biquad struct {
	b0, b1, b2 float64 // Numerator coefficients
	a1, a2     float64 // Denominator coefficients (a0 = 1)

	// Direct form II state
	w1, w2 float64
}

// NewBiquad creates a section from coefficients already divided by a0
func NewBiquad(b0, b1, b2, a1, a2 float64) *Biquad {
	return &Biquad{b0: b0, b1: b1, b2: b2, a1: a1, a2: a2}
}

// Process filters a single sample
func (bq *Biquad) Process(input float64) float64 {
	// w[n] = x[n] - a1*w[n-1] - a2*w[n-2]
	w := input - bq.a1*bq.w1 - bq.a2*bq.w2

	// y[n] = b0*w[n] + b1*w[n-1] + b2*w[n-2]
	output := bq.b0*w + bq.b1*bq.w1 + bq.b2*bq.w2

	bq.w2 = bq.w1
	bq.w1 = w

	return output
}

// ProcessBuffer filters a buffer into a freshly allocated slice
func (bq *Biquad) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = bq.Process(sample)
	}
	return output
}

// Reset clears the delay line
func (bq *Biquad) Reset() {
	bq.w1, bq.w2 = 0, 0
}

// Response returns the linear magnitude response at frequency for sampleRate.
//
// H(e^jw) = (b0 + b1*e^-jw + b2*e^-j2w) / (1 + a1*e^-jw + a2*e^-j2w)
func (bq *Biquad) Response(frequency float64, sampleRate int) float64 {
	w := 2.0 * math.Pi * frequency / float64(sampleRate)

	cosW, sinW := math.Cos(w), math.Sin(w)
	cos2W, sin2W := math.Cos(2*w), math.Sin(2*w)

	numReal := bq.b0 + bq.b1*cosW + bq.b2*cos2W
	numImag := -bq.b1*sinW - bq.b2*sin2W

	denReal := 1 + bq.a1*cosW + bq.a2*cos2W
	denImag := -bq.a1*sinW - bq.a2*sin2W

	return math.Hypot(numReal, numImag) / math.Hypot(denReal, denImag)
}
