package spectrogram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RyanBlaney/sonido-mix/algorithms/spectral"
	"github.com/RyanBlaney/sonido-mix/algorithms/windowing"
	"github.com/RyanBlaney/sonido-mix/logging"
	"github.com/RyanBlaney/sonido-mix/transcode"
)

// ErrTooLarge is returned when a spectrogram or image would exceed the
// configured cell budget
var ErrTooLarge = errors.New("spectrogram exceeds size budget")

// Channel names a computed view of the input
type Channel string

const (
	ChannelMono  Channel = "mono"
	ChannelLeft  Channel = "left"
	ChannelRight Channel = "right"
)

// Params configures the engine
type Params struct {
	FFTSize          int            `json:"fft_size"`
	HopSize          int            `json:"hop_size"`
	Window           windowing.Kind `json:"window"`
	CheckpointFrames int            `json:"checkpoint_frames"`
	MaxCells         int            `json:"max_cells"` // frames x bins per view, 0 = unlimited
}

// DefaultParams returns the standard 2048/512 Hann configuration
func DefaultParams() Params {
	return Params{
		FFTSize:          2048,
		HopSize:          512,
		Window:           windowing.KindHann,
		CheckpointFrames: 100,
	}
}

// Spectrogram holds the STFT views of one input. Mono is always present;
// Left and Right only for stereo input.
type Spectrogram struct {
	Mono  *spectral.STFTResult `json:"-"`
	Left  *spectral.STFTResult `json:"-"`
	Right *spectral.STFTResult `json:"-"`

	FFTSize    int           `json:"fft_size"`
	HopSize    int           `json:"hop_size"`
	SampleRate int           `json:"sample_rate"`
	Duration   time.Duration `json:"duration"`
	Frames     int           `json:"frames"`
	Bins       int           `json:"bins"`
	Views      int           `json:"views"` // number of views actually computed
}

// View returns the STFT of channel, or nil when it was not computed
func (s *Spectrogram) View(channel Channel) *spectral.STFTResult {
	switch channel {
	case ChannelMono:
		return s.Mono
	case ChannelLeft:
		return s.Left
	case ChannelRight:
		return s.Right
	default:
		return nil
	}
}

// Channels lists the computed views in render order
func (s *Spectrogram) Channels() []Channel {
	if s.Left != nil && s.Right != nil {
		return []Channel{ChannelLeft, ChannelRight, ChannelMono}
	}
	return []Channel{ChannelMono}
}

// Progress receives the number of frames computed so far over all views
type Progress func(done, total int)

// Engine computes spectrograms of validated audio
type Engine struct {
	stft   *spectral.STFT
	logger logging.Logger
}

// NewEngine creates a spectrogram engine
func NewEngine() *Engine {
	return &Engine{
		stft:   spectral.NewSTFT(),
		logger: logging.Component("spectrogram_engine"),
	}
}

// Compute runs the STFT over the mono downmix and, for stereo input, each
// channel. ctx is checked every CheckpointFrames frames; a cancelled
// context aborts with ctx.Err() and no partial result.
func (e *Engine) Compute(ctx context.Context, audio *transcode.AudioData, params Params, progress Progress) (*Spectrogram, error) {
	frames := spectral.FrameCount(audio.Frames(), params.FFTSize, params.HopSize)
	bins := params.FFTSize / 2
	if params.MaxCells > 0 && frames > params.MaxCells/max(1, bins) {
		return nil, fmt.Errorf("%w: %d frames x %d bins, limit %d cells", ErrTooLarge, frames, bins, params.MaxCells)
	}

	type view struct {
		channel Channel
		signal  []float64
	}
	views := []view{{ChannelMono, audio.Downmix()}}
	if audio.IsStereo() {
		views = append(views, view{ChannelLeft, audio.Samples[0]}, view{ChannelRight, audio.Samples[1]})
	}

	total := frames * len(views)
	stftParams := spectral.STFTParams{
		FFTSize:          params.FFTSize,
		HopSize:          params.HopSize,
		Window:           params.Window,
		CheckpointFrames: params.CheckpointFrames,
	}

	result := &Spectrogram{
		FFTSize:    params.FFTSize,
		HopSize:    params.HopSize,
		SampleRate: audio.SampleRate,
		Duration:   audio.Duration,
		Frames:     frames,
		Bins:       bins,
		Views:      len(views),
	}

	start := time.Now()
	for i, v := range views {
		offset := i * frames
		stft, err := e.stft.Compute(v.signal, audio.SampleRate, stftParams, func(done, _ int) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if progress != nil {
				progress(offset+done, total)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		switch v.channel {
		case ChannelMono:
			result.Mono = stft
		case ChannelLeft:
			result.Left = stft
		case ChannelRight:
			result.Right = stft
		}
	}

	e.logger.Debug("Spectrogram computed", logging.Fields{
		"frames":   frames,
		"bins":     bins,
		"views":    len(views),
		"duration": time.Since(start),
	})

	return result, nil
}
