package temporal

import (
	"math"

	"github.com/RyanBlaney/sonido-mix/algorithms/common"
)

// SilenceDB is the level reported for a linear amplitude of zero
const SilenceDB = -90.0

// Levels holds the sample-domain level statistics of a signal
type Levels struct {
	Peak        float64 `json:"peak"`
	PeakDB      float64 `json:"peak_db"`
	RMS         float64 `json:"rms"`
	RMSDB       float64 `json:"rms_db"`
	CrestFactor float64 `json:"crest_factor_db"`
	Range       float64 `json:"dynamic_range_db"`
}

// DynamicRange analyzes amplitude dynamics
type DynamicRange struct{}

// NewDynamicRange creates a new dynamic range analyzer
func NewDynamicRange() *DynamicRange {
	return &DynamicRange{}
}

// ComputeLevels returns peak, RMS, crest factor and peak-to-RMS range.
// Crest and range are 0 when the signal has no energy.
func (dr *DynamicRange) ComputeLevels(signal []float64) Levels {
	peak := common.MaxAbs(signal)
	rms := common.RMS(signal)

	levels := Levels{
		Peak:   peak,
		PeakDB: AmplitudeToDB(peak),
		RMS:    rms,
		RMSDB:  AmplitudeToDB(rms),
	}

	if rms > 0 {
		levels.CrestFactor = max(0, levels.PeakDB-levels.RMSDB)
		levels.Range = levels.CrestFactor
	}
	return levels
}

// AmplitudeToDB converts a linear amplitude to dBFS with a -90 dB floor
func AmplitudeToDB(amplitude float64) float64 {
	if amplitude <= 0 {
		return SilenceDB
	}
	return max(SilenceDB, 20*math.Log10(amplitude))
}
