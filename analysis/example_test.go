package analysis_test

import (
	"context"
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-mix/analysis"
	"github.com/RyanBlaney/sonido-mix/analysis/config"
	"github.com/RyanBlaney/sonido-mix/logging"
	"github.com/RyanBlaney/sonido-mix/transcode"
)

func ExampleEngine_Analyze() {
	logging.SetGlobalLogger(nil)

	samples := make([]float64, 44100)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}
	audio := transcode.NewAudioData(44100, samples)

	opts := config.DefaultOptions()
	opts.Platform = config.PlatformPodcast

	result, err := analysis.NewEngine().Analyze(context.Background(), audio, opts, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("peak %.1f dBFS, mono %v\n", result.Loudness.PeakDB, result.Stereo.IsMono)
	fmt.Println(result.Recommendations[1].Status)
	// Output:
	// peak -6.0 dBFS, mono true
	// success
}
