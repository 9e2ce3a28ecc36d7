package cli

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/sonido-mix/analysis/spectrogram"
)

// ImagePaths returns the file each computed view is written to. Mono
// input writes to path itself; stereo input adds a -left, -right or -mono
// suffix before the extension.
func ImagePaths(path string, channels []spectrogram.Channel) map[spectrogram.Channel]string {
	paths := make(map[spectrogram.Channel]string, len(channels))
	if len(channels) == 1 {
		paths[channels[0]] = path
		return paths
	}

	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ch := range channels {
		paths[ch] = fmt.Sprintf("%s-%s%s", base, ch, ext)
	}
	return paths
}

// SaveImages encodes every rendered view as PNG and returns the files
// written, in render order
func SaveImages(path string, s *spectrogram.Spectrogram, images *spectrogram.Images) ([]string, error) {
	if images == nil {
		return nil, fmt.Errorf("no spectrogram images rendered")
	}

	channels := s.Channels()
	paths := ImagePaths(path, channels)

	written := make([]string, 0, len(channels))
	for _, ch := range channels {
		img := images.Get(ch)
		if img == nil {
			continue
		}

		out := paths[ch]
		f, err := os.Create(out)
		if err != nil {
			return written, fmt.Errorf("failed to create %s: %w", out, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return written, fmt.Errorf("failed to encode %s: %w", out, err)
		}
		if err := f.Close(); err != nil {
			return written, fmt.Errorf("failed to close %s: %w", out, err)
		}
		written = append(written, out)
	}
	return written, nil
}
