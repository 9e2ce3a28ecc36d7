package config

import (
	"errors"
	"fmt"
	"math/bits"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/RyanBlaney/sonido-mix/algorithms/tonal"
	"github.com/RyanBlaney/sonido-mix/algorithms/windowing"
)

// ErrInvalidOptions is wrapped by every Validate failure
var ErrInvalidOptions = errors.New("invalid options")

const (
	MinFFTSize = 256
	MaxFFTSize = 1 << 16
)

// Band is a named frequency range of the frequency profile
type Band struct {
	Name   string  `json:"name" toml:"name"`
	LowHz  float64 `json:"low_hz" toml:"low_hz"`
	HighHz float64 `json:"high_hz" toml:"high_hz"`
}

// DefaultBands returns the seven-band frequency profile layout
func DefaultBands() []Band {
	return []Band{
		{Name: "Sub-Bass", LowHz: 20, HighHz: 60},
		{Name: "Bass", LowHz: 60, HighHz: 250},
		{Name: "Low-Mid", LowHz: 250, HighHz: 500},
		{Name: "Mid", LowHz: 500, HighHz: 2000},
		{Name: "High-Mid", LowHz: 2000, HighHz: 4000},
		{Name: "Presence", LowHz: 4000, HighHz: 6000},
		{Name: "Brilliance", LowHz: 6000, HighHz: 20000},
	}
}

// BandSource selects the averaged spectrum the band profile is built from
type BandSource string

const (
	BandSourceSTFT      BandSource = "stft"      // mean-pooled spectrogram frames
	BandSourceSnapshots BandSource = "snapshots" // averaged DFT snapshots
)

// Options configures one analysis run
type Options struct {
	Platform Platform `json:"platform" toml:"platform"`

	// Spectral analysis
	FFTSize int            `json:"fft_size" toml:"fft_size"`
	HopSize int            `json:"hop_size" toml:"hop_size"`
	Window  windowing.Kind `json:"window" toml:"window"`

	// Rendering. A zero width or height skips image rendering.
	SpectrogramWidth  int     `json:"spectrogram_width" toml:"spectrogram_width"`
	SpectrogramHeight int     `json:"spectrogram_height" toml:"spectrogram_height"`
	MinFrequency      float64 `json:"min_frequency" toml:"min_frequency"`
	MaxFrequency      float64 `json:"max_frequency" toml:"max_frequency"`

	// Frequency profile
	Bands         []Band     `json:"bands,omitempty" toml:"bands,omitempty"` // empty means DefaultBands
	BandSource    BandSource `json:"band_source" toml:"band_source"`
	SnapshotCount int        `json:"snapshot_count" toml:"snapshot_count"`

	Chord tonal.Params `json:"chord" toml:"chord"`

	// Execution
	Parallel            bool `json:"parallel" toml:"parallel"`                           // run loudness, stereo and quality concurrently
	CheckpointFrames    int  `json:"checkpoint_frames" toml:"checkpoint_frames"`         // spectrogram frames between cancellation checks
	MaxSpectrogramCells int  `json:"max_spectrogram_cells" toml:"max_spectrogram_cells"` // frames x bins per channel
}

// DefaultOptions returns the default analysis configuration
func DefaultOptions() Options {
	return Options{
		Platform:            PlatformSpotify,
		FFTSize:             2048,
		HopSize:             512,
		Window:              windowing.KindHann,
		MinFrequency:        20,
		MaxFrequency:        20000,
		BandSource:          BandSourceSTFT,
		SnapshotCount:       10,
		Chord:               tonal.DefaultParams(),
		CheckpointFrames:    100,
		MaxSpectrogramCells: 64 << 20, // 512 MiB of float64 per matrix
	}
}

// ProfileBands returns the configured bands or the default layout
func (o Options) ProfileBands() []Band {
	if len(o.Bands) == 0 {
		return DefaultBands()
	}
	return o.Bands
}

// Validate checks the options. Every failure wraps ErrInvalidOptions.
func (o Options) Validate() error {
	if _, ok := o.Platform.Target(); !ok {
		return fmt.Errorf("%w: unknown platform %q", ErrInvalidOptions, o.Platform)
	}
	if o.FFTSize < MinFFTSize || o.FFTSize > MaxFFTSize || bits.OnesCount(uint(o.FFTSize)) != 1 {
		return fmt.Errorf("%w: fft size %d must be a power of two in [%d, %d]", ErrInvalidOptions, o.FFTSize, MinFFTSize, MaxFFTSize)
	}
	if o.HopSize <= 0 || o.HopSize > o.FFTSize {
		return fmt.Errorf("%w: hop size %d must be in (0, %d]", ErrInvalidOptions, o.HopSize, o.FFTSize)
	}
	if o.SpectrogramWidth < 0 || o.SpectrogramHeight < 0 {
		return fmt.Errorf("%w: negative spectrogram size %dx%d", ErrInvalidOptions, o.SpectrogramWidth, o.SpectrogramHeight)
	}
	if o.MinFrequency <= 0 || o.MaxFrequency <= o.MinFrequency {
		return fmt.Errorf("%w: frequency range [%.1f, %.1f] Hz", ErrInvalidOptions, o.MinFrequency, o.MaxFrequency)
	}
	for _, b := range o.Bands {
		if b.LowHz < 0 || b.HighHz <= b.LowHz {
			return fmt.Errorf("%w: band %q has range [%.1f, %.1f] Hz", ErrInvalidOptions, b.Name, b.LowHz, b.HighHz)
		}
	}
	switch o.BandSource {
	case BandSourceSTFT:
	case BandSourceSnapshots:
		if o.SnapshotCount < 1 {
			return fmt.Errorf("%w: snapshot count %d", ErrInvalidOptions, o.SnapshotCount)
		}
	default:
		return fmt.Errorf("%w: unknown band source %q", ErrInvalidOptions, o.BandSource)
	}
	if err := o.Chord.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if o.CheckpointFrames < 0 {
		return fmt.Errorf("%w: checkpoint frames %d", ErrInvalidOptions, o.CheckpointFrames)
	}
	if o.MaxSpectrogramCells < 0 {
		return fmt.Errorf("%w: max spectrogram cells %d", ErrInvalidOptions, o.MaxSpectrogramCells)
	}
	return nil
}

// LoadFile reads a TOML options file over DefaultOptions. Keys missing
// from the file keep their default values.
func LoadFile(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("could not read options file: %w", err)
	}

	// Decoding into a non-empty slice reuses its elements, so band lists
	// start empty and only fall back to the defaults when the file has none.
	opts.Bands = nil
	opts.Chord.Bands = nil

	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return opts, fmt.Errorf("could not parse options file %s: %w", path, err)
	}
	if !md.IsDefined("chord", "bands") {
		opts.Chord.Bands = tonal.DefaultBands()
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidOptions, undecoded[0].String(), path)
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
