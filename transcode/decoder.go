package transcode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-mix/logging"
)

// ErrUnsupportedFormat is returned for containers or encodings the decoder cannot read
var ErrUnsupportedFormat = errors.New("unsupported audio format")

const wavFormatPCM = 1

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	MaxDuration time.Duration `json:"max_duration" toml:"max_duration"` // 0 = no limit
	ForceMono   bool          `json:"force_mono" toml:"force_mono"`     // downmix stereo on load
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		MaxDuration: 0,
		ForceMono:   false,
	}
}

// Decoder reads integer PCM WAV files into AudioData
type Decoder struct {
	config *DecoderConfig
	logger logging.Logger
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{
		config: config,
		logger: logging.Component("audio_decoder"),
	}
}

// DecodeFile decodes a WAV file
func (d *Decoder) DecodeFile(filename string) (*AudioData, error) {
	logger := d.logger.WithFields(logging.Fields{
		"function": "DecodeFile",
		"filename": filename,
	})

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	audioData, err := d.DecodeReader(f)
	if err != nil {
		logger.Error(err, "Failed to decode audio file")
		return nil, err
	}

	audioData.Metadata.Source = filename
	audioData.Metadata.Title = filepath.Base(filename)
	return audioData, nil
}

// DecodeReader decodes WAV data from r
func (d *Decoder) DecodeReader(r io.ReadSeeker) (*AudioData, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV file", ErrUnsupportedFormat)
	}
	if decoder.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: WAV encoding %d, only integer PCM is supported", ErrUnsupportedFormat, decoder.WavAudioFormat)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("could not read PCM buffer: %w", err)
	}

	d.logger.Debug("WAV header read", logging.Fields{
		"sample_rate": buf.Format.SampleRate,
		"channels":    buf.Format.NumChannels,
		"bit_depth":   buf.SourceBitDepth,
		"samples":     len(buf.Data),
	})

	audioData, err := d.fromIntBuffer(buf)
	if err != nil {
		return nil, err
	}
	return audioData, nil
}

// fromIntBuffer de-interleaves buf and scales samples to [-1, 1)
func (d *Decoder) fromIntBuffer(buf *audio.IntBuffer) (*AudioData, error) {
	numChans := buf.Format.NumChannels
	if numChans < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, numChans)
	}
	if buf.SourceBitDepth < 8 || buf.SourceBitDepth > 32 {
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, buf.SourceBitDepth)
	}

	frames := len(buf.Data) / numChans
	if d.config.MaxDuration > 0 {
		limit := int(d.config.MaxDuration.Seconds() * float64(buf.Format.SampleRate))
		frames = min(frames, limit)
	}

	scale := 1.0 / float64(audio.IntMaxSignedValue(buf.SourceBitDepth)+1)
	if buf.SourceBitDepth == 8 {
		// 8-bit WAV is unsigned, centred on 128
		scale = 1.0 / 128.0
	}

	channels := make([][]float64, numChans)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range numChans {
			v := buf.Data[i*numChans+ch]
			if buf.SourceBitDepth == 8 {
				v -= 128
			}
			channels[ch][i] = float64(v) * scale
		}
	}

	audioData := NewAudioData(buf.Format.SampleRate, channels...)
	if d.config.ForceMono && numChans > 1 {
		audioData = NewAudioData(buf.Format.SampleRate, audioData.Downmix())
	}

	audioData.Metadata = &Metadata{
		Format:   "wav",
		BitDepth: buf.SourceBitDepth,
	}
	return audioData, nil
}
