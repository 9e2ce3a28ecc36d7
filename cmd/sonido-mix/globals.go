package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/RyanBlaney/sonido-mix/analysis/config"
	"github.com/RyanBlaney/sonido-mix/transcode"
)

// Globals are the flags shared by every command
type Globals struct {
	Version  kong.VersionFlag `short:"v" help:"Show version information"`
	Config   string           `short:"c" type:"path" help:"Path to TOML config file (optional)"`
	Platform string           `short:"p" placeholder:"NAME" help:"Target platform: spotify, apple-music, youtube, podcast, broadcast"`
	Parallel bool             `help:"Run the level analyzers concurrently"`
	LogLevel string           `default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	NoColor  bool             `help:"Disable colored log output"`
}

// options loads the config file, if any, and applies flag overrides
func (g *Globals) options() (config.Options, error) {
	opts := config.DefaultOptions()
	if g.Config != "" {
		loaded, err := config.LoadFile(g.Config)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	if g.Platform != "" {
		platform, err := config.ParsePlatform(g.Platform)
		if err != nil {
			return opts, err
		}
		opts.Platform = platform
	}
	if g.Parallel {
		opts.Parallel = true
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func decode(path string) (*transcode.AudioData, error) {
	audio, err := transcode.NewDecoder(transcode.DefaultDecoderConfig()).DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return audio, nil
}
