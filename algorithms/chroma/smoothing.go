package chroma

import (
	"github.com/RyanBlaney/sonido-mix/algorithms/common"
)

// DefaultMedianWindow is the number of frames the median smoother spans
const DefaultMedianWindow = 5

// MedianSmoother is a sliding per-pitch-class median over the last W
// chroma vectors. Frames older than W are dropped.
type MedianSmoother struct {
	history *common.Ring[Vector]
	scratch []float64
}

// NewMedianSmoother creates a smoother over window frames (minimum 1)
func NewMedianSmoother(window int) *MedianSmoother {
	window = max(1, window)
	return &MedianSmoother{
		history: common.NewRing[Vector](window),
		scratch: make([]float64, 0, window),
	}
}

// Push adds a frame and returns the smoothed vector over the frames seen so far
func (ms *MedianSmoother) Push(v Vector) Vector {
	ms.history.Push(v)

	var out Vector
	for pc := range NumPitchClasses {
		ms.scratch = ms.scratch[:0]
		ms.history.All(func(_ int, frame Vector) {
			ms.scratch = append(ms.scratch, frame[pc])
		})
		out[pc] = common.Median(ms.scratch)
	}
	return out
}

// Window returns the smoother length in frames
func (ms *MedianSmoother) Window() int {
	return ms.history.Cap()
}

// Reset drops all history
func (ms *MedianSmoother) Reset() {
	ms.history.Clear()
}
