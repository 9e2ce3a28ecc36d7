package transcode

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	MinSampleRate = 8000
	MaxSampleRate = 384000
)

// ErrInvalidAudio is wrapped by every validation failure
var ErrInvalidAudio = errors.New("invalid audio")

// AudioData is an immutable block of decoded PCM. Samples holds one slice
// per channel, all of the same length, with values nominally in [-1, 1].
type AudioData struct {
	Samples    [][]float64   `json:"-"`
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	Duration   time.Duration `json:"duration"`
	Metadata   *Metadata     `json:"metadata,omitempty"`
}

// Metadata describes where the audio came from
type Metadata struct {
	Source   string `json:"source,omitempty"`
	Format   string `json:"format,omitempty"`
	BitDepth int    `json:"bit_depth,omitempty"`
	Title    string `json:"title,omitempty"`
	Artist   string `json:"artist,omitempty"`
}

// NewAudioData wraps per-channel samples. The slices are not copied.
func NewAudioData(sampleRate int, channels ...[]float64) *AudioData {
	ad := &AudioData{
		Samples:    channels,
		SampleRate: sampleRate,
		Channels:   len(channels),
	}
	if sampleRate > 0 && len(channels) > 0 {
		ad.Duration = time.Duration(float64(len(channels[0])) / float64(sampleRate) * float64(time.Second))
	}
	return ad
}

// Frames returns the number of samples per channel
func (ad *AudioData) Frames() int {
	if ad == nil || len(ad.Samples) == 0 {
		return 0
	}
	return len(ad.Samples[0])
}

// IsStereo reports whether the block has two channels
func (ad *AudioData) IsStereo() bool {
	return ad.Channels == 2
}

// Validate checks the block is usable for analysis: supported sample
// rate, one or two channels of equal non-zero length, finite samples.
func (ad *AudioData) Validate() error {
	if ad == nil {
		return fmt.Errorf("%w: audio data cannot be nil", ErrInvalidAudio)
	}
	if ad.SampleRate < MinSampleRate || ad.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: sample rate %d Hz outside [%d, %d]", ErrInvalidAudio, ad.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if ad.Channels != 1 && ad.Channels != 2 {
		return fmt.Errorf("%w: %d channels, expected 1 or 2", ErrInvalidAudio, ad.Channels)
	}
	if len(ad.Samples) != ad.Channels {
		return fmt.Errorf("%w: %d sample slices for %d channels", ErrInvalidAudio, len(ad.Samples), ad.Channels)
	}

	n := len(ad.Samples[0])
	if n == 0 {
		return fmt.Errorf("%w: audio is empty", ErrInvalidAudio)
	}

	for ch, samples := range ad.Samples {
		if len(samples) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d", ErrInvalidAudio, ch, len(samples), n)
		}
		for i, s := range samples {
			if math.IsNaN(s) || math.IsInf(s, 0) {
				return fmt.Errorf("%w: non-finite sample at channel %d index %d", ErrInvalidAudio, ch, i)
			}
		}
	}
	return nil
}

// Downmix returns the per-sample average of all channels in a new slice
func (ad *AudioData) Downmix() []float64 {
	n := ad.Frames()
	mono := make([]float64, n)
	if n == 0 {
		return mono
	}

	if len(ad.Samples) == 1 {
		copy(mono, ad.Samples[0])
		return mono
	}

	scale := 1.0 / float64(len(ad.Samples))
	for _, samples := range ad.Samples {
		for i, s := range samples {
			mono[i] += s * scale
		}
	}
	return mono
}

// Scaled returns a copy with every sample multiplied by gain
func (ad *AudioData) Scaled(gain float64) *AudioData {
	channels := make([][]float64, len(ad.Samples))
	for ch, samples := range ad.Samples {
		channels[ch] = make([]float64, len(samples))
		for i, s := range samples {
			channels[ch][i] = s * gain
		}
	}

	out := NewAudioData(ad.SampleRate, channels...)
	out.Metadata = ad.Metadata
	return out
}
