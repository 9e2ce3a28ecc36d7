package analyzers

import (
	"fmt"
	"math"
	"slices"

	"github.com/RyanBlaney/sonido-mix/algorithms/common"
	"github.com/RyanBlaney/sonido-mix/algorithms/temporal"
	"github.com/RyanBlaney/sonido-mix/logging"
	"github.com/RyanBlaney/sonido-mix/transcode"
)

const (
	MaxClipStarts = 100

	DefaultSNR       = 60.0 // reported when the noise floor cannot be measured
	snrWindow        = 0.1  // seconds
	snrNoisePct      = 0.1
	snrSignalPct     = 0.9
	noiseFloorMinRMS = 1e-10

	dcMajor = 0.01
	dcMinor = 0.001
)

// IssueKind classifies a quality finding
type IssueKind string

const (
	IssueClipping IssueKind = "clipping"
	IssueDCOffset IssueKind = "dc-offset"
	IssuePhase    IssueKind = "phase"
	IssueBalance  IssueKind = "balance"
	IssueSNR      IssueKind = "snr"
	IssueDynamics IssueKind = "dynamics"
	IssueLevel    IssueKind = "level"
)

// Severity ranks a quality finding
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is a single quality finding
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Penalty  float64   `json:"penalty"` // points deducted from the score
}

// QualityMeasurements are the sample-level measurements the score needs
// beyond the loudness and stereo reports
type QualityMeasurements struct {
	ClipEvents     int     `json:"clip_events"` // runs merged across channels by start index
	ClippedSamples int     `json:"clipped_samples"`
	ClipStarts     []int   `json:"clip_starts"` // at most MaxClipStarts, ascending
	DCOffset       float64 `json:"dc_offset"`
	SNR            float64 `json:"snr_db"`
}

// QualityReport is the technical quality verdict
type QualityReport struct {
	QualityMeasurements
	Score  float64 `json:"score"` // 0..100
	Grade  string  `json:"grade"` // A..F
	Issues []Issue `json:"issues"`
}

// HasIssue reports whether an issue of kind was raised
func (qr *QualityReport) HasIssue(kind IssueKind) bool {
	return slices.ContainsFunc(qr.Issues, func(i Issue) bool { return i.Kind == kind })
}

// QualityScorer measures clipping, DC offset and noise floor and turns
// them, with the loudness and stereo reports, into a score
type QualityScorer struct {
	clips  *temporal.ClipDetector
	logger logging.Logger
}

// NewQualityScorer creates a quality scorer
func NewQualityScorer() *QualityScorer {
	return &QualityScorer{
		clips:  temporal.NewClipDetector(temporal.ClipThreshold, math.MaxInt),
		logger: logging.Component("quality_scorer"),
	}
}

// Measure scans the audio. It depends only on the samples, so it can run
// alongside the loudness and stereo analyzers.
func (qs *QualityScorer) Measure(audio *transcode.AudioData) QualityMeasurements {
	m := QualityMeasurements{ClipStarts: []int{}}

	for _, samples := range audio.Samples {
		report := qs.clips.Detect(samples)
		m.ClippedSamples += report.Samples
		m.ClipStarts = append(m.ClipStarts, report.Starts...)
	}
	slices.Sort(m.ClipStarts)
	m.ClipStarts = slices.Compact(m.ClipStarts)
	m.ClipEvents = len(m.ClipStarts)
	if len(m.ClipStarts) > MaxClipStarts {
		m.ClipStarts = m.ClipStarts[:MaxClipStarts]
	}

	sum := 0.0
	for _, samples := range audio.Samples {
		for _, s := range samples {
			sum += s
		}
	}
	m.DCOffset = sum / float64(audio.Channels*audio.Frames())

	m.SNR = EstimateSNR(audio.Samples, audio.SampleRate)
	return m
}

// EstimateSNR compares the 90th and 10th percentile RMS of 100 ms windows.
// Window levels are the power mean over channels, so anti-phase content
// does not cancel. Inputs shorter than two windows, or silent ones, report
// DefaultSNR.
func EstimateSNR(channels [][]float64, sampleRate int) float64 {
	if len(channels) == 0 || sampleRate <= 0 {
		return DefaultSNR
	}

	windowSize := int(math.Round(snrWindow * float64(sampleRate)))
	if windowSize <= 0 || len(channels[0]) < 2*windowSize {
		return DefaultSNR
	}

	var levels []float64
	for _, samples := range channels {
		frames := temporal.FrameRMS(samples, windowSize)
		if levels == nil {
			levels = make([]float64, len(frames))
		}
		for i, rms := range frames {
			levels[i] += rms * rms
		}
	}
	for i := range levels {
		levels[i] = math.Sqrt(levels[i] / float64(len(channels)))
	}

	signal := common.Percentile(levels, snrSignalPct)
	if signal <= 0 {
		return DefaultSNR
	}
	noise := max(common.Percentile(levels, snrNoisePct), noiseFloorMinRMS)
	return 20 * math.Log10(signal/noise)
}

// Score applies the deductions to m and grades the result
func (qs *QualityScorer) Score(m QualityMeasurements, loudness *LoudnessReport, stereo *StereoReport) *QualityReport {
	report := &QualityReport{
		QualityMeasurements: m,
		Issues:              []Issue{},
	}
	add := func(kind IssueKind, severity Severity, penalty float64, format string, args ...any) {
		report.Issues = append(report.Issues, Issue{
			Kind:     kind,
			Severity: severity,
			Message:  fmt.Sprintf(format, args...),
			Penalty:  penalty,
		})
	}

	if m.ClippedSamples > 0 {
		add(IssueClipping, SeverityHigh, min(30, 2*float64(m.ClippedSamples)),
			"%d clipping events (%d samples at or above full scale)", m.ClipEvents, m.ClippedSamples)
	}

	switch dc := math.Abs(m.DCOffset); {
	case dc > dcMajor:
		add(IssueDCOffset, SeverityMedium, 10, "DC offset of %.4f", m.DCOffset)
	case dc > dcMinor:
		add(IssueDCOffset, SeverityLow, 0, "Minor DC offset of %.4f", m.DCOffset)
	}

	switch {
	case stereo.Correlation < 0:
		add(IssuePhase, SeverityHigh, 15, "Channels are out of phase (correlation %.2f)", stereo.Correlation)
	case stereo.Correlation < 0.3:
		add(IssuePhase, SeverityLow, 5, "Low channel correlation (%.2f)", stereo.Correlation)
	}

	switch balance := math.Abs(stereo.BalanceDB); {
	case balance > 3:
		add(IssueBalance, SeverityMedium, 10, "Channel imbalance of %.1f dB", stereo.BalanceDB)
	case balance > 1:
		add(IssueBalance, SeverityLow, 3, "Slight channel imbalance of %.1f dB", stereo.BalanceDB)
	}

	if m.SNR < 40 {
		add(IssueSNR, SeverityMedium, 10, "Estimated signal-to-noise ratio of %.1f dB", m.SNR)
	}
	if loudness.DynamicRange < 6 {
		add(IssueDynamics, SeverityLow, 5, "Limited dynamic range (%.1f dB)", loudness.DynamicRange)
	}
	if loudness.PeakDB < -6 {
		add(IssueLevel, SeverityLow, 5, "Peak level is low (%.1f dBFS)", loudness.PeakDB)
	}

	score := 100.0
	for _, issue := range report.Issues {
		score -= issue.Penalty
	}
	report.Score = common.Clamp(score, 0, 100)
	report.Grade = Grade(report.Score)

	qs.logger.Debug("Quality scored", logging.Fields{
		"score":  report.Score,
		"grade":  report.Grade,
		"issues": len(report.Issues),
	})

	return report
}

// Analyze is Measure followed by Score
func (qs *QualityScorer) Analyze(audio *transcode.AudioData, loudness *LoudnessReport, stereo *StereoReport) *QualityReport {
	return qs.Score(qs.Measure(audio), loudness, stereo)
}

// Grade maps a score to a letter using 90/80/70/60 thresholds
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
