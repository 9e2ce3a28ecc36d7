package recommend

import (
	"strings"
	"testing"

	"github.com/RyanBlaney/sonido-mix/analysis/analyzers"
	"github.com/RyanBlaney/sonido-mix/analysis/config"
)

func spotify(t *testing.T) config.PlatformTarget {
	t.Helper()
	target, ok := config.PlatformSpotify.Target()
	if !ok {
		t.Fatal("spotify target missing")
	}
	return target
}

func find(items []Item, kind Kind) []Item {
	var out []Item
	for _, i := range items {
		if i.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

func baseInput(t *testing.T) Input {
	return Input{
		Target:   spotify(t),
		Channels: 2,
		Loudness: &analyzers.LoudnessReport{IntegratedLUFS: -14, PeakDB: -3},
		Stereo:   &analyzers.StereoReport{Correlation: 0.6, Width: 40, Channels: 2},
		Quality:  &analyzers.QualityReport{},
	}
}

func TestLoudnessRule(t *testing.T) {
	tests := []struct {
		name   string
		lufs   float64
		status Status
		delta  float64
	}{
		{"on target", -14.5, StatusSuccess, -0.5},
		{"edge of tolerance", -15, StatusSuccess, -1},
		{"too quiet", -20, StatusInfo, -6},
		{"too loud", -8, StatusWarning, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput(t)
			in.Loudness.IntegratedLUFS = tt.lufs

			got := find(Generate(in), KindLoudness)
			if len(got) != 1 || got[0].Status != tt.status || got[0].Delta == nil || *got[0].Delta != tt.delta {
				t.Fatalf("loudness items = %+v", got)
			}
		})
	}
}

func TestSilenceIsTooLow(t *testing.T) {
	in := baseInput(t)
	in.Loudness = &analyzers.LoudnessReport{IntegratedLUFS: analyzers.SilenceLUFS, PeakDB: -90}

	got := find(Generate(in), KindLoudness)
	if len(got) != 1 || got[0].Status != StatusInfo || !strings.Contains(got[0].Message, "Level too low") {
		t.Errorf("silence loudness = %+v", got)
	}
}

func TestPeakRule(t *testing.T) {
	tests := []struct {
		peak   float64
		status Status
	}{
		{0, StatusError},
		{-0.9, StatusError},
		{-1, StatusWarning},
		{-1.3, StatusWarning},
		{-1.5, StatusSuccess},
		{-6, StatusSuccess},
	}

	for _, tt := range tests {
		in := baseInput(t)
		in.Loudness.PeakDB = tt.peak
		got := find(Generate(in), KindPeak)
		if len(got) != 1 || got[0].Status != tt.status {
			t.Errorf("peak %.1f: %+v, want %s", tt.peak, got, tt.status)
		}
	}
}

func TestClippingRule(t *testing.T) {
	in := baseInput(t)
	in.Quality.ClipEvents = 12

	got := find(Generate(in), KindClipping)
	if len(got) != 1 || got[0].Status != StatusError || !strings.Contains(got[0].Message, "12") {
		t.Errorf("clipping = %+v", got)
	}

	in.Quality.ClipEvents = 0
	if got := find(Generate(in), KindClipping); len(got) != 0 {
		t.Errorf("clean input produced %+v", got)
	}
}

func TestStereoRules(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		report   analyzers.StereoReport
		want     []Status
	}{
		{"healthy", 2, analyzers.StereoReport{Correlation: 0.6, Width: 40}, nil},
		{"anti-phase", 2, analyzers.StereoReport{Correlation: -1, Width: 200}, []Status{StatusError, StatusWarning}},
		{"wide", 2, analyzers.StereoReport{Correlation: 0, Width: 100}, []Status{StatusWarning}},
		{"dual mono", 2, analyzers.StereoReport{Correlation: 1, Width: 0, IsMono: true}, []Status{StatusInfo}},
		{"mono file", 1, analyzers.StereoReport{Correlation: 1, Width: 0, IsMono: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput(t)
			in.Channels = tt.channels
			in.Stereo = &tt.report

			got := find(Generate(in), KindStereo)
			if len(got) != len(tt.want) {
				t.Fatalf("stereo items = %+v, want statuses %v", got, tt.want)
			}
			for i, status := range tt.want {
				if got[i].Status != status {
					t.Errorf("item %d status = %s, want %s", i, got[i].Status, status)
				}
			}
		})
	}
}

func TestWideStereoMessage(t *testing.T) {
	in := baseInput(t)
	in.Stereo = &analyzers.StereoReport{Correlation: 0, Width: 100}

	got := find(Generate(in), KindStereo)
	if len(got) != 1 || !strings.Contains(got[0].Message, "mono compatibility") {
		t.Errorf("wide stereo = %+v", got)
	}
}

func TestBalanceAndDCRules(t *testing.T) {
	in := baseInput(t)
	in.Stereo.BalanceDB = -4.5
	in.Quality.DCOffset = 0.02

	balance := find(Generate(in), KindBalance)
	if len(balance) != 1 || balance[0].Status != StatusWarning || !strings.Contains(balance[0].Message, "left") {
		t.Errorf("balance = %+v", balance)
	}
	dc := find(Generate(in), KindDCOffset)
	if len(dc) != 1 || dc[0].Status != StatusWarning {
		t.Errorf("dc = %+v", dc)
	}

	in.Stereo.BalanceDB = 2
	in.Quality.DCOffset = 0.005
	if len(find(Generate(in), KindBalance)) != 0 || len(find(Generate(in), KindDCOffset)) != 0 {
		t.Error("rules fired below their thresholds")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	in := baseInput(t)
	in.Quality.ClipEvents = 3
	in.Stereo.Correlation = -0.2

	a, b := Generate(in), Generate(in)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Key() != b[i].Key() || a[i].Message != b[i].Message {
			t.Errorf("item %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
