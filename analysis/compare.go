package analysis

import (
	"slices"

	"github.com/RyanBlaney/sonido-mix/analysis/recommend"
)

// BandDelta is the energy difference of one profile band
type BandDelta struct {
	Name  string  `json:"name"`
	Delta float64 `json:"delta"`
}

// Comparison is the A/B difference of two results. Every delta is A - B.
type Comparison struct {
	LUFSDelta         float64 `json:"lufs_delta"`
	PeakDelta         float64 `json:"peak_delta"`
	RMSDelta          float64 `json:"rms_delta"`
	DynamicRangeDelta float64 `json:"dynamic_range_delta"`
	CrestDelta        float64 `json:"crest_delta"`

	CorrelationDelta float64 `json:"correlation_delta"`
	WidthDelta       float64 `json:"width_delta"`
	BalanceDelta     float64 `json:"balance_delta"`

	ScoreDelta    float64     `json:"score_delta"`
	TiltDelta     float64     `json:"tilt_delta"`
	CentroidDelta float64     `json:"centroid_delta"`
	Bands         []BandDelta `json:"bands"`

	// Recommendations present in B but not A (Added) and in A but not B
	// (Removed), keyed by kind and status
	Added   []recommend.Item `json:"added"`
	Removed []recommend.Item `json:"removed"`
}

// Better reports which side scored higher: "A", "B" or "" on a tie
func (c *Comparison) Better() string {
	switch {
	case c.ScoreDelta > 0:
		return "A"
	case c.ScoreDelta < 0:
		return "B"
	default:
		return ""
	}
}

// Compare diffs two results. It does not modify either.
func Compare(a, b *Result) *Comparison {
	c := &Comparison{
		Bands:   []BandDelta{},
		Added:   []recommend.Item{},
		Removed: []recommend.Item{},
	}

	if a.Loudness != nil && b.Loudness != nil {
		c.LUFSDelta = a.Loudness.IntegratedLUFS - b.Loudness.IntegratedLUFS
		c.PeakDelta = a.Loudness.PeakDB - b.Loudness.PeakDB
		c.RMSDelta = a.Loudness.RMSDB - b.Loudness.RMSDB
		c.DynamicRangeDelta = a.Loudness.DynamicRange - b.Loudness.DynamicRange
		c.CrestDelta = a.Loudness.CrestFactor - b.Loudness.CrestFactor
	}
	if a.Stereo != nil && b.Stereo != nil {
		c.CorrelationDelta = a.Stereo.Correlation - b.Stereo.Correlation
		c.WidthDelta = a.Stereo.Width - b.Stereo.Width
		c.BalanceDelta = a.Stereo.BalanceDB - b.Stereo.BalanceDB
	}
	if a.Quality != nil && b.Quality != nil {
		c.ScoreDelta = a.Quality.Score - b.Quality.Score
	}
	if a.Profile != nil && b.Profile != nil {
		c.TiltDelta = a.Profile.Tilt - b.Profile.Tilt
		c.CentroidDelta = a.Profile.Centroid - b.Profile.Centroid
		for _, band := range a.Profile.Bands {
			if energy, ok := b.Profile.Energy(band.Name); ok {
				c.Bands = append(c.Bands, BandDelta{Name: band.Name, Delta: band.Energy - energy})
			}
		}
	}

	c.Added = missingFrom(b.Recommendations, a.Recommendations)
	c.Removed = missingFrom(a.Recommendations, b.Recommendations)
	return c
}

// missingFrom returns the items of from whose key does not occur in other
func missingFrom(from, other []recommend.Item) []recommend.Item {
	out := []recommend.Item{}
	for _, item := range from {
		inOther := slices.ContainsFunc(other, func(o recommend.Item) bool { return o.Key() == item.Key() })
		inOut := slices.ContainsFunc(out, func(o recommend.Item) bool { return o.Key() == item.Key() })
		if !inOther && !inOut {
			out = append(out, item)
		}
	}
	return out
}
