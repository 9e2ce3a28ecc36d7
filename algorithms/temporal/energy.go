package temporal

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Energy computes frame-wise energy of a signal
type Energy struct {
	frameSize int
	hopSize   int
}

// NewEnergy creates a new energy calculator
func NewEnergy(frameSize, hopSize int) *Energy {
	return &Energy{
		frameSize: frameSize,
		hopSize:   hopSize,
	}
}

// ComputeShortTimeEnergy returns the RMS of every complete frame.
// A trailing partial frame is ignored.
func (e *Energy) ComputeShortTimeEnergy(signal []float64) []float64 {
	if len(signal) < e.frameSize || e.hopSize <= 0 || e.frameSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-e.frameSize)/e.hopSize + 1
	energies := make([]float64, numFrames)

	for i := range numFrames {
		frame := signal[i*e.hopSize : i*e.hopSize+e.frameSize]
		energies[i] = math.Sqrt(floats.Dot(frame, frame) / float64(e.frameSize))
	}

	return energies
}

// FrameRMS returns the RMS of consecutive non-overlapping windows of
// windowSize samples
func FrameRMS(signal []float64, windowSize int) []float64 {
	return NewEnergy(windowSize, windowSize).ComputeShortTimeEnergy(signal)
}
