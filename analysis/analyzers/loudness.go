package analyzers

import (
	"math"

	"github.com/RyanBlaney/sonido-mix/algorithms/common"
	"github.com/RyanBlaney/sonido-mix/algorithms/filters"
	"github.com/RyanBlaney/sonido-mix/algorithms/temporal"
	"github.com/RyanBlaney/sonido-mix/logging"
	"github.com/RyanBlaney/sonido-mix/transcode"
)

// BS.1770 gating constants
const (
	SilenceLUFS = -70.0
	MaxLUFS     = 0.0

	loudnessOffset    = -0.691
	blockDuration     = 0.4 // seconds
	blockHop          = 0.1 // 75% overlap
	relativeGateLU    = -10.0
	absoluteGateLUFS  = SilenceLUFS
	channelWeightMain = 1.0 // L/R weight; surround channels are not supported
)

// LoudnessReport holds sample-level and perceived loudness of a signal
type LoudnessReport struct {
	Peak           float64 `json:"peak"`
	PeakDB         float64 `json:"peak_db"`
	RMS            float64 `json:"rms"`
	RMSDB          float64 `json:"rms_db"`
	CrestFactor    float64 `json:"crest_factor_db"`
	DynamicRange   float64 `json:"dynamic_range_db"`
	IntegratedLUFS float64 `json:"integrated_lufs"`
	GatedBlocks    int     `json:"gated_blocks"` // blocks surviving both gates
	TotalBlocks    int     `json:"total_blocks"`
}

// LoudnessAnalyzer measures peak, RMS and gated integrated loudness
type LoudnessAnalyzer struct {
	levels *temporal.DynamicRange
	logger logging.Logger
}

// NewLoudnessAnalyzer creates a loudness analyzer
func NewLoudnessAnalyzer() *LoudnessAnalyzer {
	return &LoudnessAnalyzer{
		levels: temporal.NewDynamicRange(),
		logger: logging.Component("loudness_analyzer"),
	}
}

// Analyze measures levels on the mono downmix and integrated loudness on
// the K-weighted channels. audio must already be validated.
func (la *LoudnessAnalyzer) Analyze(audio *transcode.AudioData) *LoudnessReport {
	levels := la.levels.ComputeLevels(audio.Downmix())

	lufs, gated, total := IntegratedLoudness(audio.Samples, audio.SampleRate)

	la.logger.Debug("Loudness measured", logging.Fields{
		"peak_db":      levels.PeakDB,
		"rms_db":       levels.RMSDB,
		"lufs":         lufs,
		"gated_blocks": gated,
		"total_blocks": total,
	})

	return &LoudnessReport{
		Peak:           levels.Peak,
		PeakDB:         levels.PeakDB,
		RMS:            levels.RMS,
		RMSDB:          levels.RMSDB,
		CrestFactor:    levels.CrestFactor,
		DynamicRange:   levels.Range,
		IntegratedLUFS: lufs,
		GatedBlocks:    gated,
		TotalBlocks:    total,
	}
}

// IntegratedLoudness returns the BS.1770 gated loudness of channels in
// LUFS, clamped to [-70, 0], together with the number of blocks that
// survived gating and the number of blocks measured. Inputs shorter than
// one 400 ms block are measured as a single ungated block.
func IntegratedLoudness(channels [][]float64, sampleRate int) (lufs float64, gated, total int) {
	if len(channels) == 0 || len(channels[0]) == 0 || sampleRate <= 0 {
		return SilenceLUFS, 0, 0
	}

	n := len(channels[0])
	kw := filters.NewKWeighting(sampleRate)

	// prefix sums of squared K-weighted samples, one per channel
	energy := make([][]float64, len(channels))
	for ch, samples := range channels {
		weighted := kw.Apply(samples)
		cum := make([]float64, n+1)
		for i, x := range weighted {
			cum[i+1] = cum[i] + x*x
		}
		energy[ch] = cum
	}

	// mean over channels of each channel's mean square
	meanSquare := func(start, end int) float64 {
		sum := 0.0
		for _, cum := range energy {
			sum += channelWeightMain * (cum[end] - cum[start])
		}
		return sum / float64(len(energy)*(end-start))
	}

	blockSize := int(math.Round(blockDuration * float64(sampleRate)))
	hopSize := int(math.Round(blockHop * float64(sampleRate)))

	if n < blockSize {
		return clampLUFS(blockLoudness(meanSquare(0, n))), 1, 1
	}

	absThreshold := math.Pow(10, (absoluteGateLUFS-loudnessOffset)/10)

	blocks := make([]float64, 0, (n-blockSize)/hopSize+1)
	for start := 0; start+blockSize <= n; start += hopSize {
		blocks = append(blocks, meanSquare(start, start+blockSize))
	}
	total = len(blocks)

	survivors := make([]float64, 0, len(blocks))
	for _, z := range blocks {
		if z > absThreshold {
			survivors = append(survivors, z)
		}
	}
	if len(survivors) == 0 {
		return SilenceLUFS, 0, total
	}

	relThreshold := common.Mean(survivors) * math.Pow(10, relativeGateLU/10)
	final := survivors[:0]
	for _, z := range survivors {
		if z > relThreshold {
			final = append(final, z)
		}
	}
	if len(final) == 0 {
		return SilenceLUFS, 0, total
	}

	return clampLUFS(blockLoudness(common.Mean(final))), len(final), total
}

func blockLoudness(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return SilenceLUFS
	}
	return loudnessOffset + 10*math.Log10(meanSquare)
}

func clampLUFS(lufs float64) float64 {
	return common.Clamp(lufs, SilenceLUFS, MaxLUFS)
}
