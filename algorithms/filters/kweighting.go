package filters

import (
	"math"
)

// ITU-R BS.1770 K-weighting design constants. The coefficients are
// re-derived for the actual sample rate instead of using the 48 kHz table.
const (
	shelfFrequency = 1681.974450955533
	shelfGainDB    = 3.999843853973347
	shelfQ         = 0.7071752369554196

	highpassFrequency = 38.13547087602444
	highpassQ         = 0.5003270373238773
)

// KWeighting is the BS.1770 pre-filter: a high shelf (+4 dB above
// ~1.5 kHz) followed by a ~38 Hz high-pass (RLB curve).
type KWeighting struct {
	sampleRate int
	shelf      *Biquad
	highpass   *Biquad
}

// NewKWeighting builds the two-biquad cascade for sampleRate
func NewKWeighting(sampleRate int) *KWeighting {
	fs := float64(sampleRate)

	k := math.Tan(math.Pi * shelfFrequency / fs)
	vh := math.Pow(10, shelfGainDB/20)
	vb := math.Pow(vh, 0.4996667741545416)
	a0 := 1 + k/shelfQ + k*k
	shelf := NewBiquad(
		(vh+vb*k/shelfQ+k*k)/a0,
		2*(k*k-vh)/a0,
		(vh-vb*k/shelfQ+k*k)/a0,
		2*(k*k-1)/a0,
		(1-k/shelfQ+k*k)/a0,
	)

	k = math.Tan(math.Pi * highpassFrequency / fs)
	a0 = 1 + k/highpassQ + k*k
	highpass := NewBiquad(
		1, -2, 1,
		2*(k*k-1)/a0,
		(1-k/highpassQ+k*k)/a0,
	)

	return &KWeighting{sampleRate: sampleRate, shelf: shelf, highpass: highpass}
}

// Apply filters pcm into a new slice. The filter state is reset first so
// repeated calls on different channels are independent.
func (kw *KWeighting) Apply(pcm []float64) []float64 {
	kw.Reset()

	return kw.highpass.ProcessBuffer(kw.shelf.ProcessBuffer(pcm))
}

// Reset clears both sections
func (kw *KWeighting) Reset() {
	kw.shelf.Reset()
	kw.highpass.Reset()
}

// Response returns the cascade's linear magnitude response at frequency
func (kw *KWeighting) Response(frequency float64) float64 {
	return kw.shelf.Response(frequency, kw.sampleRate) * kw.highpass.Response(frequency, kw.sampleRate)
}
