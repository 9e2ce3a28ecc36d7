package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/RyanBlaney/sonido-mix/analysis/config"
)

func TestGlobalsOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mix.toml")
	if err := os.WriteFile(path, []byte("platform = \"podcast\"\nfft_size = 4096\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name         string
		globals      Globals
		wantPlatform config.Platform
		wantFFT      int
		wantParallel bool
	}{
		{"defaults", Globals{}, config.PlatformSpotify, 2048, false},
		{"config file", Globals{Config: path}, config.PlatformPodcast, 4096, false},
		{"flag overrides file", Globals{Config: path, Platform: "ebu", Parallel: true}, config.PlatformBroadcast, 4096, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.globals.options()
			if err != nil {
				t.Fatal(err)
			}
			if opts.Platform != tt.wantPlatform || opts.FFTSize != tt.wantFFT || opts.Parallel != tt.wantParallel {
				t.Errorf("options = %s/%d/%v", opts.Platform, opts.FFTSize, opts.Parallel)
			}
		})
	}
}

func TestGlobalsOptionsErrors(t *testing.T) {
	if _, err := (&Globals{Platform: "radio"}).options(); err == nil {
		t.Error("unknown platform accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("fft_size = 1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&Globals{Config: path}).options(); !errors.Is(err, config.ErrInvalidOptions) {
		t.Errorf("error = %v, want ErrInvalidOptions", err)
	}
}
