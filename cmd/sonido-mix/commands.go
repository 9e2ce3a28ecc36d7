package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/RyanBlaney/sonido-mix/analysis"
	"github.com/RyanBlaney/sonido-mix/analysis/config"
	"github.com/RyanBlaney/sonido-mix/internal/cli"
	"github.com/RyanBlaney/sonido-mix/logging"
	"github.com/RyanBlaney/sonido-mix/transcode"
)

// AnalyzeCmd runs the full analysis of one file
type AnalyzeCmd struct {
	File        string `arg:"" type:"existingfile" help:"WAV file to analyze"`
	JSON        bool   `help:"Print the result as JSON"`
	Spectrogram string `type:"path" placeholder:"PNG" help:"Also write the spectrogram to this PNG"`
	Width       int    `default:"1024" help:"Spectrogram width in pixels"`
	Height      int    `default:"512" help:"Spectrogram height in pixels"`
	Quiet       bool   `short:"q" help:"Hide the progress bar"`
}

func (c *AnalyzeCmd) Run(g *Globals, ctx context.Context) error {
	opts, err := g.options()
	if err != nil {
		return err
	}
	if c.Spectrogram != "" {
		opts.SpectrogramWidth = c.Width
		opts.SpectrogramHeight = c.Height
	}

	audio, err := decode(c.File)
	if err != nil {
		return err
	}

	results, err := analyzeAll(ctx, []*transcode.AudioData{audio}, []string{c.File}, opts, c.Quiet)
	if err != nil {
		return err
	}
	result := results[0]

	if c.Spectrogram != "" {
		written, err := cli.SaveImages(c.Spectrogram, result.Spectrogram, result.Images)
		if err != nil {
			return err
		}
		logging.Info("Spectrogram written", logging.Fields{"files": written})
	}

	if c.JSON {
		return writeJSON(os.Stdout, result)
	}
	return cli.WriteReport(os.Stdout, filepath.Base(c.File), result)
}

// CompareCmd analyzes two files and prints their difference
type CompareCmd struct {
	A     string `arg:"" name:"a" type:"existingfile" help:"First WAV file"`
	B     string `arg:"" name:"b" type:"existingfile" help:"Second WAV file"`
	JSON  bool   `help:"Print the comparison as JSON"`
	Quiet bool   `short:"q" help:"Hide the progress bars"`
}

func (c *CompareCmd) Run(g *Globals, ctx context.Context) error {
	opts, err := g.options()
	if err != nil {
		return err
	}

	a, err := decode(c.A)
	if err != nil {
		return err
	}
	b, err := decode(c.B)
	if err != nil {
		return err
	}

	results, err := analyzeAll(ctx, []*transcode.AudioData{a, b}, []string{c.A, c.B}, opts, c.Quiet)
	if err != nil {
		return err
	}

	comparison := analysis.Compare(results[0], results[1])
	if c.JSON {
		return writeJSON(os.Stdout, comparison)
	}
	return cli.WriteComparison(os.Stdout, filepath.Base(c.A), filepath.Base(c.B), comparison)
}

// SpectrogramCmd renders spectrogram images without the other phases
type SpectrogramCmd struct {
	File   string `arg:"" type:"existingfile" help:"WAV file to render"`
	Output string `short:"o" type:"path" default:"spectrogram.png" help:"Output PNG; stereo input writes -left, -right and -mono files"`
	Width  int    `default:"1024" help:"Image width in pixels"`
	Height int    `default:"512" help:"Image height in pixels"`
}

func (c *SpectrogramCmd) Run(g *Globals, ctx context.Context) error {
	opts, err := g.options()
	if err != nil {
		return err
	}
	opts.SpectrogramWidth = c.Width
	opts.SpectrogramHeight = c.Height

	audio, err := decode(c.File)
	if err != nil {
		return err
	}

	out, err := analysis.NewEngine().GenerateSpectrogram(ctx, audio, opts)
	if err != nil {
		return err
	}

	written, err := cli.SaveImages(c.Output, out.Spectrogram, out.Images)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Println(path)
	}
	return nil
}

// analyzeAll runs one analysis per input concurrently, each with its own
// progress bar on stderr
func analyzeAll(ctx context.Context, inputs []*transcode.AudioData, names []string, opts config.Options, quiet bool) ([]*analysis.Result, error) {
	engine := analysis.NewEngine()

	var progress *cli.Progress
	if !quiet {
		progress = cli.NewProgress(os.Stderr)
	}

	results := make([]*analysis.Result, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i, audio := range inputs {
		var report analysis.ProgressFunc
		var bar *cli.ProgressBar
		if progress != nil {
			bar = progress.AddBar(filepath.Base(names[i]))
			report = bar.Update
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = engine.Analyze(ctx, audio, opts, report)
			if bar != nil {
				bar.Finish()
			}
		}()
	}
	wg.Wait()
	if progress != nil {
		progress.Wait()
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
	}
	return results, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
