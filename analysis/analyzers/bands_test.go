package analyzers

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/RyanBlaney/sonido-mix/algorithms/common"
	"github.com/RyanBlaney/sonido-mix/algorithms/spectral"
	"github.com/RyanBlaney/sonido-mix/algorithms/windowing"
	"github.com/RyanBlaney/sonido-mix/analysis/config"
)

func meanSpectrum(t *testing.T, signal []float64) []float64 {
	t.Helper()
	result, err := spectral.NewSTFT().Compute(signal, testSampleRate, spectral.STFTParams{
		FFTSize: 2048,
		HopSize: 512,
		Window:  windowing.KindHann,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return result.MeanMagnitude()
}

func TestBandProfileMidSine(t *testing.T) {
	profile := NewBandAnalyzer(nil).Analyze(meanSpectrum(t, sine(1000, 1, 2)), testSampleRate, 2048, config.BandSourceSTFT)

	if len(profile.Bands) != 7 {
		t.Fatalf("got %d bands", len(profile.Bands))
	}
	dominant, _ := profile.Dominant()
	if dominant.Name != "Mid" {
		t.Errorf("dominant band = %s", dominant.Name)
	}
	// the tone sits in the upper group of bands
	if profile.Tilt <= 0 {
		t.Errorf("tilt = %.2f dB, want positive", profile.Tilt)
	}
	if profile.Centroid < 950 || profile.Centroid > 1050 || profile.Rolloff < 950 || profile.Rolloff > 1050 {
		t.Errorf("centroid = %.0f Hz, rolloff = %.0f Hz, want about 1 kHz", profile.Centroid, profile.Rolloff)
	}
	for _, b := range profile.Bands {
		if b.Energy < 0 || b.Energy > 1 || !common.IsFinite(b.Energy) {
			t.Errorf("band %s energy %v out of range", b.Name, b.Energy)
		}
	}
}

func TestBandProfileBassSineTiltsLow(t *testing.T) {
	profile := NewBandAnalyzer(nil).Analyze(meanSpectrum(t, sine(100, 0.8, 2)), testSampleRate, 2048, config.BandSourceSTFT)

	dominant, _ := profile.Dominant()
	if dominant.Name != "Bass" {
		t.Errorf("dominant band = %s", dominant.Name)
	}
	if profile.Tilt >= 0 {
		t.Errorf("tilt = %.2f dB, want negative", profile.Tilt)
	}
}

func TestBandProfileSilence(t *testing.T) {
	profile := NewBandAnalyzer(nil).Analyze(meanSpectrum(t, make([]float64, testSampleRate)), testSampleRate, 2048, config.BandSourceSTFT)

	for _, b := range profile.Bands {
		if b.Energy != 0 {
			t.Errorf("band %s energy = %v", b.Name, b.Energy)
		}
	}
	if profile.Tilt != 0 || profile.Centroid != 0 || profile.Rolloff != 0 {
		t.Errorf("tilt = %v, centroid = %v, rolloff = %v", profile.Tilt, profile.Centroid, profile.Rolloff)
	}
}

func TestBandProfileCustomBands(t *testing.T) {
	bands := []config.Band{{Name: "low", LowHz: 20, HighHz: 500}, {Name: "high", LowHz: 500, HighHz: 20000}}
	profile := NewBandAnalyzer(bands).Analyze(meanSpectrum(t, sine(3000, 0.5, 1)), testSampleRate, 2048, config.BandSourceSTFT)

	high, ok := profile.Energy("high")
	low, _ := profile.Energy("low")
	if !ok || high <= low {
		t.Errorf("high = %v, low = %v", high, low)
	}
	if _, ok := profile.Energy("Mid"); ok {
		t.Error("default band present in custom profile")
	}
}

func TestBandAboveNyquistIsEmpty(t *testing.T) {
	bands := []config.Band{{Name: "ultra", LowHz: 30000, HighHz: 40000}}
	profile := NewBandAnalyzer(bands).Analyze([]float64{1, 1, 1, 1}, 8000, 8, config.BandSourceSTFT)
	if profile.Bands[0].Energy != 0 {
		t.Errorf("energy = %v", profile.Bands[0].Energy)
	}
}

func TestTilt(t *testing.T) {
	bands := func(energies ...float64) []BandEnergy {
		out := make([]BandEnergy, len(energies))
		for i, e := range energies {
			out[i].Energy = e
		}
		return out
	}

	tests := []struct {
		name  string
		bands []BandEnergy
		want  float64
	}{
		{"flat", bands(0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5), 0},
		{"ten times brighter", bands(0.1, 0.1, 0.1, 1, 1, 1, 1), 10},
		{"all zero", bands(0, 0, 0, 0, 0, 0, 0), 0},
		{"single band", bands(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tilt(tt.bands); !near(got, tt.want, 1e-9) {
				t.Errorf("Tilt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAverageSnapshots(t *testing.T) {
	avg := AverageSnapshots(sine(1000, 1, 2), 2048, 10)

	if len(avg) != 1024 {
		t.Fatalf("got %d bins", len(avg))
	}
	peakBin := spectral.FrequencyBin(1000, 2048, testSampleRate, 1024)
	if got := common.ArgMax(avg); got != peakBin {
		t.Errorf("peak at bin %d, want %d", got, peakBin)
	}
	if avg[peakBin] <= 0.1 || avg[peakBin] > spectral.FullScaleHann {
		t.Errorf("peak magnitude = %v", avg[peakBin])
	}

	profile := NewBandAnalyzer(nil).Analyze(avg, testSampleRate, 2048, config.BandSourceSnapshots)
	if dominant, _ := profile.Dominant(); dominant.Name != "Mid" {
		t.Errorf("snapshot profile dominant band = %s", dominant.Name)
	}
}

func TestAverageSnapshotsShortSignal(t *testing.T) {
	avg := AverageSnapshots(sine(1000, 1, 0.01), 2048, 10)
	if common.ArgMax(avg) < 0 || common.MaxAbs(avg) == 0 {
		t.Error("short signal produced an empty spectrum")
	}
	if got := AverageSnapshots(nil, 2048, 10); common.MaxAbs(got) != 0 {
		t.Error("empty signal produced energy")
	}
}

func TestBandProfileFiniteForRandomSpectra(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 23))

	for _, sampleRate := range []int{8000, 44100, 96000} {
		for _, fftSize := range []int{256, 1024, 4096} {
			t.Run(fmt.Sprintf("%d/%d", sampleRate, fftSize), func(t *testing.T) {
				for trial := range 20 {
					spectrum := make([]float64, fftSize/2+trial%2)
					for i := range spectrum {
						switch rng.IntN(4) {
						case 0: // empty bin
						case 1:
							spectrum[i] = rng.Float64() * 1e-12
						default:
							spectrum[i] = rng.ExpFloat64() * 1e3
						}
					}

					profile := NewBandAnalyzer(nil).Analyze(spectrum, sampleRate, fftSize, config.BandSourceSTFT)

					total := 0.0
					for _, b := range profile.Bands {
						if !common.IsFinite(b.Energy) || b.Energy < 0 || b.Energy > 1 {
							t.Fatalf("trial %d: band %s energy = %v", trial, b.Name, b.Energy)
						}
						total += b.Energy
					}
					if !common.IsFinite(total) || !common.IsFinite(profile.Tilt) {
						t.Fatalf("trial %d: total = %v, tilt = %v", trial, total, profile.Tilt)
					}
					if !common.IsFinite(profile.Centroid) || !common.IsFinite(profile.Rolloff) {
						t.Fatalf("trial %d: centroid = %v, rolloff = %v", trial, profile.Centroid, profile.Rolloff)
					}
				}
			})
		}
	}
}
