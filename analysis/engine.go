package analysis

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/RyanBlaney/sonido-mix/algorithms/tonal"
	"github.com/RyanBlaney/sonido-mix/analysis/analyzers"
	"github.com/RyanBlaney/sonido-mix/analysis/config"
	"github.com/RyanBlaney/sonido-mix/analysis/recommend"
	"github.com/RyanBlaney/sonido-mix/analysis/spectrogram"
	"github.com/RyanBlaney/sonido-mix/logging"
	"github.com/RyanBlaney/sonido-mix/transcode"
)

// ProgressFunc receives the completed fraction of an analysis, 0..1,
// never decreasing within one call
type ProgressFunc func(fraction float64)

// Phase progress marks
const (
	progressValidated   = 0.1
	progressLoudness    = 0.2
	progressStereo      = 0.3
	progressQuality     = 0.4
	progressSpectrogram = 0.6
	progressBands       = 0.7
	progressChords      = 0.9
	progressDone        = 1.0
)

// Engine runs the analysis pipeline. An Engine holds no per-run state and
// may be shared between goroutines.
type Engine struct {
	loudness    *analyzers.LoudnessAnalyzer
	stereo      *analyzers.StereoAnalyzer
	quality     *analyzers.QualityScorer
	spectrogram *spectrogram.Engine
	logger      logging.Logger
}

// NewEngine creates an analysis engine
func NewEngine() *Engine {
	return &Engine{
		loudness:    analyzers.NewLoudnessAnalyzer(),
		stereo:      analyzers.NewStereoAnalyzer(),
		quality:     analyzers.NewQualityScorer(),
		spectrogram: spectrogram.NewEngine(),
		logger: logging.WithFields(logging.Fields{
			"component": "analysis_engine",
		}),
	}
}

// progressReporter clamps reported fractions to a non-decreasing sequence
type progressReporter struct {
	fn   ProgressFunc
	last float64
}

func (p *progressReporter) report(fraction float64) {
	if p.fn == nil || fraction < p.last {
		return
	}
	p.last = fraction
	p.fn(fraction)
}

// Analyze runs every phase over audio: loudness, stereo, quality,
// spectrogram, frequency profile, chords and recommendations. ctx is
// checked between phases and at spectrogram checkpoints; on cancellation
// the returned error matches ErrCancelled and no result is returned.
func (e *Engine) Analyze(ctx context.Context, audio *transcode.AudioData, opts config.Options, progress ProgressFunc) (*Result, error) {
	start := time.Now()
	logger := e.logger.WithContext(ctx).WithFields(logging.Fields{
		"function": "Analyze",
		"platform": opts.Platform,
	})

	target, err := e.validate(audio, opts)
	if err != nil {
		logger.Warn("Input rejected", logging.Fields{"error": err.Error()})
		return nil, err
	}

	logger = logger.WithFields(logging.Fields{
		"sample_rate": audio.SampleRate,
		"channels":    audio.Channels,
		"samples":     audio.Frames(),
	})
	logger.Debug("Starting analysis")

	reporter := &progressReporter{fn: progress}
	reporter.report(progressValidated)

	result := &Result{
		Platform: opts.Platform,
		Target:   target,
		Input: InputInfo{
			SampleRate: audio.SampleRate,
			Channels:   audio.Channels,
			Frames:     audio.Frames(),
			Duration:   audio.Duration,
			Metadata:   audio.Metadata,
		},
		AnalyzedAt: start,
	}

	if err := e.levels(ctx, audio, opts, result, reporter, logger); err != nil {
		return nil, err
	}

	if err := e.checkpoint(ctx, logger, "spectrogram"); err != nil {
		return nil, err
	}
	phaseStart := time.Now()
	sgram, images, err := e.computeSpectrogram(ctx, audio, opts, func(done, total int) {
		reporter.report(progressQuality + (progressSpectrogram-progressQuality)*float64(done)/float64(total))
	})
	if err != nil {
		return nil, e.phaseError(err, logger, "spectrogram")
	}
	result.Spectrogram = sgram
	result.Images = images
	reporter.report(progressSpectrogram)
	logger.Debug("Spectrogram phase finished", logging.Fields{
		"frames":   sgram.Frames,
		"views":    sgram.Views,
		"duration": time.Since(phaseStart),
	})

	if err := e.checkpoint(ctx, logger, "bands"); err != nil {
		return nil, err
	}
	result.Profile = e.frequencyProfile(audio, sgram, opts)
	reporter.report(progressBands)

	if err := e.checkpoint(ctx, logger, "chords"); err != nil {
		return nil, err
	}
	phaseStart = time.Now()
	chords, timeline, err := e.detectChords(ctx, sgram, opts)
	if err != nil {
		return nil, e.phaseError(err, logger, "chords")
	}
	result.Chords = chords
	result.ChordTimeline = timeline
	reporter.report(progressChords)
	logger.Debug("Chord phase finished", logging.Fields{
		"frames":   len(chords),
		"segments": len(timeline),
		"duration": time.Since(phaseStart),
	})

	if err := e.checkpoint(ctx, logger, "recommendations"); err != nil {
		return nil, err
	}
	result.Recommendations = recommend.Generate(recommend.Input{
		Target:   target,
		Channels: audio.Channels,
		Loudness: result.Loudness,
		Stereo:   result.Stereo,
		Quality:  result.Quality,
	})

	if err := checkInvariants(result); err != nil {
		logger.Error(err, "Analysis produced an inconsistent result")
		return nil, err
	}

	result.Elapsed = time.Since(start)
	reporter.report(progressDone)

	logger.Debug("Analysis completed", logging.Fields{
		"duration":        result.Elapsed,
		"lufs":            result.Loudness.IntegratedLUFS,
		"score":           result.Quality.Score,
		"recommendations": len(result.Recommendations),
	})

	return result, nil
}

// GenerateSpectrogram computes the spectrogram views of audio and renders
// them when opts requests an image size
func (e *Engine) GenerateSpectrogram(ctx context.Context, audio *transcode.AudioData, opts config.Options) (*SpectrogramResult, error) {
	logger := e.logger.WithContext(ctx).WithFields(logging.Fields{
		"function": "GenerateSpectrogram",
	})

	if _, err := e.validate(audio, opts); err != nil {
		logger.Warn("Input rejected", logging.Fields{"error": err.Error()})
		return nil, err
	}

	sgram, images, err := e.computeSpectrogram(ctx, audio, opts, nil)
	if err != nil {
		return nil, e.phaseError(err, logger, "spectrogram")
	}
	return &SpectrogramResult{Spectrogram: sgram, Images: images}, nil
}

func (e *Engine) validate(audio *transcode.AudioData, opts config.Options) (config.PlatformTarget, error) {
	if err := audio.Validate(); err != nil {
		return config.PlatformTarget{}, newError(KindInvalidInput, err, "audio rejected")
	}
	if err := opts.Validate(); err != nil {
		return config.PlatformTarget{}, newError(KindInvalidInput, err, "options rejected")
	}
	target, _ := opts.Platform.Target()
	return target, nil
}

func (e *Engine) checkpoint(ctx context.Context, logger logging.Logger, phase string) error {
	if err := ctx.Err(); err != nil {
		logger.Info("Analysis cancelled", logging.Fields{"before_phase": phase})
		return newError(KindCancelled, err, "cancelled before %s", phase)
	}
	return nil
}

// phaseError maps a phase failure onto the error taxonomy
func (e *Engine) phaseError(err error, logger logging.Logger, phase string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Info("Analysis cancelled", logging.Fields{"during_phase": phase})
		return newError(KindCancelled, err, "cancelled during %s", phase)
	case errors.Is(err, spectrogram.ErrTooLarge):
		logger.Warn("Analysis over budget", logging.Fields{"phase": phase, "error": err.Error()})
		return newError(KindOutOfBudget, err, "%s too large", phase)
	default:
		logger.Error(err, "Analysis phase failed", logging.Fields{"phase": phase})
		return newError(KindInternalInvariant, err, "%s failed", phase)
	}
}

// levels runs the loudness, stereo and quality phases, concurrently when
// opts.Parallel is set. All three only read the samples.
func (e *Engine) levels(ctx context.Context, audio *transcode.AudioData, opts config.Options, result *Result, reporter *progressReporter, logger logging.Logger) error {
	phaseStart := time.Now()

	if opts.Parallel {
		if err := e.checkpoint(ctx, logger, "loudness"); err != nil {
			return err
		}

		var measurements analyzers.QualityMeasurements
		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			result.Loudness = e.loudness.Analyze(audio)
		}()
		go func() {
			defer wg.Done()
			result.Stereo = e.stereo.Analyze(audio)
		}()
		go func() {
			defer wg.Done()
			measurements = e.quality.Measure(audio)
		}()
		wg.Wait()

		reporter.report(progressLoudness)
		reporter.report(progressStereo)
		result.Quality = e.quality.Score(measurements, result.Loudness, result.Stereo)
		reporter.report(progressQuality)
	} else {
		if err := e.checkpoint(ctx, logger, "loudness"); err != nil {
			return err
		}
		result.Loudness = e.loudness.Analyze(audio)
		reporter.report(progressLoudness)

		if err := e.checkpoint(ctx, logger, "stereo"); err != nil {
			return err
		}
		result.Stereo = e.stereo.Analyze(audio)
		reporter.report(progressStereo)

		if err := e.checkpoint(ctx, logger, "quality"); err != nil {
			return err
		}
		result.Quality = e.quality.Analyze(audio, result.Loudness, result.Stereo)
		reporter.report(progressQuality)
	}

	logger.Debug("Level phases finished", logging.Fields{
		"parallel": opts.Parallel,
		"duration": time.Since(phaseStart),
	})
	return nil
}

func (e *Engine) computeSpectrogram(ctx context.Context, audio *transcode.AudioData, opts config.Options, progress spectrogram.Progress) (*spectrogram.Spectrogram, *spectrogram.Images, error) {
	sgram, err := e.spectrogram.Compute(ctx, audio, spectrogram.Params{
		FFTSize:          opts.FFTSize,
		HopSize:          opts.HopSize,
		Window:           opts.Window,
		CheckpointFrames: opts.CheckpointFrames,
		MaxCells:         opts.MaxSpectrogramCells,
	}, progress)
	if err != nil {
		return nil, nil, err
	}

	if opts.SpectrogramWidth == 0 || opts.SpectrogramHeight == 0 {
		return sgram, nil, nil
	}

	images, err := spectrogram.RenderAll(sgram, spectrogram.RenderOptions{
		Width:        opts.SpectrogramWidth,
		Height:       opts.SpectrogramHeight,
		MinFrequency: opts.MinFrequency,
		MaxFrequency: opts.MaxFrequency,
		MaxPixels:    opts.MaxSpectrogramCells,
	})
	if err != nil {
		return nil, nil, err
	}
	return sgram, images, nil
}

func (e *Engine) frequencyProfile(audio *transcode.AudioData, sgram *spectrogram.Spectrogram, opts config.Options) *analyzers.FrequencyProfile {
	var averaged []float64
	switch opts.BandSource {
	case config.BandSourceSnapshots:
		averaged = analyzers.AverageSnapshots(audio.Downmix(), opts.FFTSize, opts.SnapshotCount)
	default:
		averaged = sgram.Mono.MeanMagnitude()
	}
	return analyzers.NewBandAnalyzer(opts.ProfileBands()).Analyze(averaged, audio.SampleRate, opts.FFTSize, opts.BandSource)
}

// detectChords feeds the mono spectrogram through a fresh detector in
// frame order
func (e *Engine) detectChords(ctx context.Context, sgram *spectrogram.Spectrogram, opts config.Options) ([]tonal.Detection, []tonal.Segment, error) {
	detector, err := tonal.NewDetector(opts.Chord)
	if err != nil {
		return nil, nil, err
	}
	frontEnd := tonal.NewFrontEnd(sgram.SampleRate, sgram.FFTSize, opts.Chord.Bands)
	timeline := tonal.NewTimeline(sgram.Mono.TimeResolution)

	every := max(1, opts.CheckpointFrames)
	detections := make([]tonal.Detection, 0, sgram.Frames)
	for d := range tonal.DetectStream(detector, tonal.SpectrumFrames(frontEnd, sgram.Mono.Magnitude)) {
		detections = append(detections, d)
		timeline.Add(d)

		if len(detections)%every == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
	}
	return detections, timeline.Segments(), nil
}

// checkInvariants verifies the post-conditions every result must meet
func checkInvariants(r *Result) error {
	l := r.Loudness
	for name, v := range map[string]float64{
		"peak_db":    l.PeakDB,
		"rms_db":     l.RMSDB,
		"lufs":       l.IntegratedLUFS,
		"score":      r.Quality.Score,
		"tilt":       r.Profile.Tilt,
		"balance_db": r.Stereo.BalanceDB,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return newError(KindInternalInvariant, nil, "%s is not finite", name)
		}
	}
	if l.RMSDB > l.PeakDB+1e-9 {
		return newError(KindInternalInvariant, nil, "rms %.2f dB above peak %.2f dB", l.RMSDB, l.PeakDB)
	}
	if l.IntegratedLUFS < analyzers.SilenceLUFS || l.IntegratedLUFS > analyzers.MaxLUFS {
		return newError(KindInternalInvariant, nil, "integrated loudness %.2f LUFS out of range", l.IntegratedLUFS)
	}
	if r.Stereo.Correlation < -1 || r.Stereo.Correlation > 1 || r.Stereo.Width < 0 || r.Stereo.Width > 200 {
		return newError(KindInternalInvariant, nil, "stereo report out of range")
	}
	return nil
}
