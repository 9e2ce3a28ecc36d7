package recommend

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-mix/analysis/analyzers"
	"github.com/RyanBlaney/sonido-mix/analysis/config"
)

// Status is the verdict of one recommendation
type Status string

const (
	StatusSuccess Status = "success"
	StatusInfo    Status = "info"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Kind tags what a recommendation is about
type Kind string

const (
	KindLoudness Kind = "loudness"
	KindPeak     Kind = "peak"
	KindClipping Kind = "clipping"
	KindStereo   Kind = "stereo"
	KindBalance  Kind = "balance"
	KindDCOffset Kind = "dc-offset"
)

const (
	loudnessTolerance = 1.0 // LU either side of the target
	peakMargin        = 0.5 // dB below the ceiling that still warns
	wideStereoWidth   = 95.0
	balanceLimit      = 3.0
	dcLimit           = 0.01
)

// Item is a single recommendation
type Item struct {
	Status  Status   `json:"status"`
	Kind    Kind     `json:"kind"`
	Message string   `json:"message"`
	Delta   *float64 `json:"delta,omitempty"` // measured minus target, where meaningful
}

// Key identifies an item for set comparison
func (i Item) Key() string {
	return string(i.Kind) + ":" + string(i.Status)
}

// Input is everything the rules look at
type Input struct {
	Target   config.PlatformTarget
	Channels int
	Loudness *analyzers.LoudnessReport
	Stereo   *analyzers.StereoReport
	Quality  *analyzers.QualityReport
}

// Generate applies the rules in a fixed order: loudness, peak, clipping,
// stereo, balance, DC offset. The output is deterministic.
func Generate(in Input) []Item {
	items := []Item{}
	items = append(items, loudness(in.Target, in.Loudness))
	items = append(items, peak(in.Target, in.Loudness))

	if in.Quality != nil && in.Quality.ClipEvents > 0 {
		items = append(items, Item{
			Status:  StatusError,
			Kind:    KindClipping,
			Message: fmt.Sprintf("Clipping detected: %d events", in.Quality.ClipEvents),
		})
	}

	items = append(items, stereo(in.Channels, in.Stereo)...)

	if in.Stereo != nil && math.Abs(in.Stereo.BalanceDB) > balanceLimit {
		side := "right"
		if in.Stereo.BalanceDB < 0 {
			side = "left"
		}
		items = append(items, Item{
			Status:  StatusWarning,
			Kind:    KindBalance,
			Message: fmt.Sprintf("Mix leans %s by %.1f dB", side, math.Abs(in.Stereo.BalanceDB)),
			Delta:   delta(in.Stereo.BalanceDB),
		})
	}

	if in.Quality != nil && math.Abs(in.Quality.DCOffset) > dcLimit {
		items = append(items, Item{
			Status:  StatusWarning,
			Kind:    KindDCOffset,
			Message: fmt.Sprintf("DC offset of %.4f: apply a high-pass filter", in.Quality.DCOffset),
			Delta:   delta(in.Quality.DCOffset),
		})
	}

	return items
}

func loudness(target config.PlatformTarget, report *analyzers.LoudnessReport) Item {
	d := report.IntegratedLUFS - target.LUFS
	switch {
	case math.Abs(d) <= loudnessTolerance:
		return Item{
			Status:  StatusSuccess,
			Kind:    KindLoudness,
			Message: fmt.Sprintf("Loudness %.1f LUFS is on target for %s (%.0f LUFS)", report.IntegratedLUFS, target.Name, target.LUFS),
			Delta:   delta(d),
		}
	case d < 0:
		return Item{
			Status:  StatusInfo,
			Kind:    KindLoudness,
			Message: fmt.Sprintf("Level too low: %.1f LU below the %s target of %.0f LUFS", -d, target.Name, target.LUFS),
			Delta:   delta(d),
		}
	default:
		return Item{
			Status:  StatusWarning,
			Kind:    KindLoudness,
			Message: fmt.Sprintf("Level too high: %.1f LU above the %s target of %.0f LUFS, expect turn-down", d, target.Name, target.LUFS),
			Delta:   delta(d),
		}
	}
}

func peak(target config.PlatformTarget, report *analyzers.LoudnessReport) Item {
	d := report.PeakDB - target.TruePeakCeiling
	switch {
	case d > 0:
		return Item{
			Status:  StatusError,
			Kind:    KindPeak,
			Message: fmt.Sprintf("Peak %.1f dBFS exceeds the %.0f dBTP ceiling by %.1f dB", report.PeakDB, target.TruePeakCeiling, d),
			Delta:   delta(d),
		}
	case d > -peakMargin:
		return Item{
			Status:  StatusWarning,
			Kind:    KindPeak,
			Message: fmt.Sprintf("Peak %.1f dBFS is within %.1f dB of the ceiling", report.PeakDB, peakMargin),
			Delta:   delta(d),
		}
	default:
		return Item{
			Status:  StatusSuccess,
			Kind:    KindPeak,
			Message: fmt.Sprintf("Peak %.1f dBFS leaves headroom below %.0f dBTP", report.PeakDB, target.TruePeakCeiling),
			Delta:   delta(d),
		}
	}
}

func stereo(channels int, report *analyzers.StereoReport) []Item {
	if report == nil {
		return nil
	}

	var items []Item
	if report.Correlation < 0 {
		items = append(items, Item{
			Status:  StatusError,
			Kind:    KindStereo,
			Message: fmt.Sprintf("Out-of-phase: correlation %.2f will cancel in mono", report.Correlation),
		})
	}
	if report.Width > wideStereoWidth {
		items = append(items, Item{
			Status:  StatusWarning,
			Kind:    KindStereo,
			Message: fmt.Sprintf("Wide stereo image (%.0f%%): check mono compatibility", report.Width),
		})
	}
	if channels == 2 && report.Width < analyzers.MonoWidth {
		items = append(items, Item{
			Status:  StatusInfo,
			Kind:    KindStereo,
			Message: "Stereo file is effectively mono",
		})
	}
	return items
}

func delta(v float64) *float64 {
	return &v
}
