package tonal

import (
	"fmt"

	"github.com/RyanBlaney/sonido-mix/algorithms/chroma"
	"github.com/RyanBlaney/sonido-mix/logging"
)

// Params configures a Detector
type Params struct {
	Bands             []BandParams   `json:"bands" toml:"bands"`
	Smoother          SmootherParams `json:"smoother" toml:"smoother"`
	MedianWindow      int            `json:"median_window" toml:"median_window"`           // 1 disables chroma smoothing
	LoudnessThreshold float64        `json:"loudness_threshold" toml:"loudness_threshold"` // band loudness below this is gated
	BassThreshold     float64        `json:"bass_threshold" toml:"bass_threshold"`         // bass chroma peak needed for a bass note
}

// DefaultBands returns the full-mix band layout
func DefaultBands() []BandParams {
	return []BandParams{
		{Band: chroma.Band{Name: "harmonic", LowHz: 110, HighHz: 1760}, Priority: 0.6},
		{Band: chroma.Band{Name: "upper", LowHz: 440, HighHz: 4200}, Priority: 0.25},
		{Band: chroma.Band{Name: "bass", LowHz: 40, HighHz: 260}, Priority: 0.15, IsBass: true},
	}
}

// DefaultParams returns the full-mix detector configuration
func DefaultParams() Params {
	return Params{
		Bands:             DefaultBands(),
		Smoother:          DefaultSmootherParams(),
		MedianWindow:      chroma.DefaultMedianWindow,
		LoudnessThreshold: 0.1,
		BassThreshold:     0.3,
	}
}

// Validate checks the parameters
func (p Params) Validate() error {
	if len(p.Bands) == 0 {
		return fmt.Errorf("at least one chord band is required")
	}
	for _, b := range p.Bands {
		if err := b.Validate(); err != nil {
			return err
		}
		if b.Priority < 0 {
			return fmt.Errorf("band %q: negative priority %.2f", b.Name, b.Priority)
		}
	}
	if p.MedianWindow < 1 {
		return fmt.Errorf("median window must be at least 1, got %d", p.MedianWindow)
	}
	if p.LoudnessThreshold <= 0 {
		return fmt.Errorf("loudness threshold must be positive, got %.3f", p.LoudnessThreshold)
	}
	if p.Smoother.MinFrames < 1 {
		return fmt.Errorf("smoother min frames must be at least 1, got %d", p.Smoother.MinFrames)
	}
	if p.Smoother.Retain < 0 || p.Smoother.Retain > 1 {
		return fmt.Errorf("smoother retain must be in [0, 1], got %.2f", p.Smoother.Retain)
	}
	return nil
}

// Detection is the detector output for one frame
type Detection struct {
	Index      int           `json:"index"`
	Chord      *ChordLabel   `json:"chord,omitempty"` // nil during warm-up and on silent frames
	Confidence float64       `json:"confidence"`
	Stable     bool          `json:"stable"`
	Chroma     chroma.Vector `json:"chroma"` // the chroma the decision was made on
	Bass       int           `json:"bass"`   // NoBass when absent

	Raw      ChordLabel `json:"raw"`       // best template before smoothing
	RawScore float64    `json:"raw_score"` // its clamped score
}

// Symbol returns the chord symbol or "N" when no chord is locked
func (d Detection) Symbol() string {
	if d.Chord == nil {
		return "N"
	}
	return d.Chord.Symbol()
}

// Detector turns per-frame band chromas into a smoothed chord label.
// Frames must be fed in time order. Not safe for concurrent use.
type Detector struct {
	params   Params
	median   *chroma.MedianSmoother
	smoother *Smoother
	frames   int
	logger   logging.Logger
}

// NewDetector creates a detector. Params are validated.
func NewDetector(params Params) (*Detector, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chord detector params: %w", err)
	}

	return &Detector{
		params:   params,
		median:   chroma.NewMedianSmoother(params.MedianWindow),
		smoother: NewSmoother(params.Smoother),
		logger:   logging.Component("chord-detector"),
	}, nil
}

// Process consumes one frame. A frame whose band weights sum to zero, or
// whose smoothed chroma is silent, yields no chord with confidence 0 and
// leaves the smoother untouched.
func (d *Detector) Process(frame Frame) Detection {
	index := d.frames
	d.frames++

	fusion := Fuse(frame.Bands, d.params.LoudnessThreshold, d.params.BassThreshold)
	if fusion.TotalWeight == 0 {
		return Detection{Index: index, Stable: d.smoother.Current().Stable, Bass: fusion.Bass}
	}

	smoothed := d.median.Push(fusion.Chroma)
	if smoothed.IsZero() {
		return Detection{Index: index, Stable: d.smoother.Current().Stable, Bass: fusion.Bass}
	}
	raw, rawScore := BestChord(smoothed, fusion.Bass)

	before, hadLock := d.smoother.Locked()
	state := d.smoother.Update(index, raw, rawScore, func(locked ChordLabel) float64 {
		return ScoreLabel(smoothed, locked, fusion.Bass)
	})

	if after, ok := d.smoother.Locked(); ok && (!hadLock || after != before) {
		d.logger.Debug("Chord locked", logging.Fields{
			"frame":      index,
			"chord":      after.Symbol(),
			"confidence": state.Confidence,
		})
	}

	return Detection{
		Index:      index,
		Chord:      state.Chord,
		Confidence: state.Confidence,
		Stable:     state.Stable,
		Chroma:     smoothed,
		Bass:       fusion.Bass,
		Raw:        raw,
		RawScore:   rawScore,
	}
}

// Params returns the detector configuration
func (d *Detector) Params() Params {
	return d.params
}

// Reset clears the smoother and chroma history
func (d *Detector) Reset() {
	d.smoother.Reset()
	d.median.Reset()
	d.frames = 0
}
