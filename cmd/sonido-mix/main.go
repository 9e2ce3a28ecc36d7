package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/RyanBlaney/sonido-mix/internal/cli"
	"github.com/RyanBlaney/sonido-mix/logging"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Globals

	Analyze     AnalyzeCmd     `cmd:"" help:"Analyze a WAV file and print a report"`
	Compare     CompareCmd     `cmd:"" help:"Compare two WAV files (A/B)"`
	Spectrogram SpectrogramCmd `cmd:"" help:"Render spectrogram PNGs of a WAV file"`
}

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("sonido-mix"),
		kong.Description("Offline mix analysis: loudness, stereo, spectrum, chords and quality"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
		kong.BindTo(runCtx, (*context.Context)(nil)),
	)

	logging.SetLevel(logging.ParseLevel(cliArgs.LogLevel))
	if cliArgs.NoColor {
		logging.DisableColors()
	}

	if err := ctx.Run(&cliArgs.Globals); err != nil {
		stop()
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
