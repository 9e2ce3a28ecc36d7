package temporal

import (
	"math"
)

// ClipThreshold is the absolute sample value treated as clipped
const ClipThreshold = 0.99

// ClipReport describes clipped regions of a signal
type ClipReport struct {
	Events  int   `json:"events"`  // contiguous runs at or above the threshold
	Samples int   `json:"samples"` // total clipped samples
	Starts  []int `json:"starts"`  // first sample index of each run, capped
}

// ClipDetector finds runs of samples at or above a threshold
type ClipDetector struct {
	threshold float64
	maxStarts int
}

// NewClipDetector creates a detector recording at most maxStarts run starts
func NewClipDetector(threshold float64, maxStarts int) *ClipDetector {
	return &ClipDetector{
		threshold: threshold,
		maxStarts: max(0, maxStarts),
	}
}

// Detect scans signal for clipped runs
func (cd *ClipDetector) Detect(signal []float64) ClipReport {
	report := ClipReport{Starts: []int{}}
	inRun := false

	for i, sample := range signal {
		if math.Abs(sample) >= cd.threshold {
			report.Samples++
			if !inRun {
				report.Events++
				if len(report.Starts) < cd.maxStarts {
					report.Starts = append(report.Starts, i)
				}
				inRun = true
			}
			continue
		}
		inRun = false
	}

	return report
}
