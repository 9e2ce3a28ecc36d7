package spectrogram

import (
	"math"
)

// LogScale maps each of height image rows to an FFT bin on a logarithmic
// frequency axis from maxFreq (row 0) down to minFreq (last row). A single
// row maps to maxFreq. Bins are clamped to [0, fftSize/2-1].
func LogScale(height int, minFreq, maxFreq float64, sampleRate, fftSize int) []int {
	if height <= 0 || fftSize < 2 || sampleRate <= 0 || minFreq <= 0 || maxFreq < minFreq {
		return []int{}
	}

	bins := fftSize / 2
	binWidth := float64(sampleRate) / float64(fftSize)
	logMin := math.Log10(minFreq)
	logSpan := math.Log10(maxFreq / minFreq)

	rows := make([]int, height)
	for r := range rows {
		position := 1.0
		if height > 1 {
			position = 1 - float64(r)/float64(height-1)
		}
		freq := math.Pow(10, logMin+position*logSpan)
		bin := int(math.Round(freq / binWidth))
		rows[r] = max(0, min(bins-1, bin))
	}
	return rows
}
