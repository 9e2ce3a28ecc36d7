package analyzers

import (
	"math"

	"github.com/RyanBlaney/sonido-mix/algorithms/common"
	"github.com/RyanBlaney/sonido-mix/logging"
	"github.com/RyanBlaney/sonido-mix/transcode"
)

const (
	// MaxBalanceDB replaces an infinite balance when one channel is silent
	MaxBalanceDB = 60.0
	// MonoWidth is the width below which a stereo signal counts as mono
	MonoWidth = 5.0
)

// StereoReport describes the stereo image
type StereoReport struct {
	Correlation float64 `json:"correlation"` // -1..1
	Width       float64 `json:"width"`       // 0..200 percent, >100 is anti-phase
	BalanceDB   float64 `json:"balance_db"`  // negative = left-heavy
	IsMono      bool    `json:"is_mono"`
	Channels    int     `json:"channels"`
}

// StereoAnalyzer measures correlation, width and balance
type StereoAnalyzer struct {
	logger logging.Logger
}

// NewStereoAnalyzer creates a stereo analyzer
func NewStereoAnalyzer() *StereoAnalyzer {
	return &StereoAnalyzer{
		logger: logging.Component("stereo_analyzer"),
	}
}

// Analyze measures the stereo image. Mono input reports a fully
// correlated, zero-width, centred image.
func (sa *StereoAnalyzer) Analyze(audio *transcode.AudioData) *StereoReport {
	if audio.Channels < 2 {
		return &StereoReport{Correlation: 1, Width: 0, BalanceDB: 0, IsMono: true, Channels: audio.Channels}
	}

	left, right := audio.Samples[0], audio.Samples[1]

	correlation, ok := common.Correlation(left, right)
	if !ok {
		correlation = 1
	}

	width := common.Clamp((1-correlation)*100, 0, 200)
	report := &StereoReport{
		Correlation: correlation,
		Width:       width,
		BalanceDB:   Balance(common.RMS(left), common.RMS(right)),
		IsMono:      width < MonoWidth,
		Channels:    audio.Channels,
	}

	sa.logger.Debug("Stereo image measured", logging.Fields{
		"correlation": report.Correlation,
		"width":       report.Width,
		"balance_db":  report.BalanceDB,
	})

	return report
}

// Balance returns 20·log10(rmsRight/rmsLeft) limited to ±MaxBalanceDB.
// Two silent channels are balanced.
func Balance(rmsLeft, rmsRight float64) float64 {
	switch {
	case rmsLeft <= 0 && rmsRight <= 0:
		return 0
	case rmsLeft <= 0:
		return MaxBalanceDB
	case rmsRight <= 0:
		return -MaxBalanceDB
	}
	return common.Clamp(20*math.Log10(rmsRight/rmsLeft), -MaxBalanceDB, MaxBalanceDB)
}
