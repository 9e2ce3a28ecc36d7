package analysis

import (
	"time"

	"github.com/RyanBlaney/sonido-mix/algorithms/tonal"
	"github.com/RyanBlaney/sonido-mix/analysis/analyzers"
	"github.com/RyanBlaney/sonido-mix/analysis/config"
	"github.com/RyanBlaney/sonido-mix/analysis/recommend"
	"github.com/RyanBlaney/sonido-mix/analysis/spectrogram"
	"github.com/RyanBlaney/sonido-mix/transcode"
)

// InputInfo describes the analysed audio
type InputInfo struct {
	SampleRate int                 `json:"sample_rate"`
	Channels   int                 `json:"channels"`
	Frames     int                 `json:"frames"`
	Duration   time.Duration       `json:"duration"`
	Metadata   *transcode.Metadata `json:"metadata,omitempty"`
}

// Result is the complete analysis of one input
type Result struct {
	Platform config.Platform       `json:"platform"`
	Target   config.PlatformTarget `json:"target"`
	Input    InputInfo             `json:"input"`

	Loudness *analyzers.LoudnessReport   `json:"loudness"`
	Stereo   *analyzers.StereoReport     `json:"stereo"`
	Quality  *analyzers.QualityReport    `json:"quality"`
	Profile  *analyzers.FrequencyProfile `json:"profile"`

	Spectrogram *spectrogram.Spectrogram `json:"spectrogram"`
	Images      *spectrogram.Images      `json:"-"` // nil unless a size was requested

	Chords        []tonal.Detection `json:"-"`
	ChordTimeline []tonal.Segment   `json:"chord_timeline"`

	Recommendations []recommend.Item `json:"recommendations"`

	AnalyzedAt time.Time     `json:"analyzed_at"`
	Elapsed    time.Duration `json:"elapsed"`
}

// SpectrogramResult is the output of Engine.GenerateSpectrogram
type SpectrogramResult struct {
	Spectrogram *spectrogram.Spectrogram `json:"spectrogram"`
	Images      *spectrogram.Images      `json:"-"`
}
