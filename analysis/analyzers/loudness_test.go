package analyzers

import (
	"testing"
)

func TestLoudnessFullScaleSine(t *testing.T) {
	report := NewLoudnessAnalyzer().Analyze(mono(sine(1000, 1, 2)))

	if !near(report.PeakDB, 0, 0.01) {
		t.Errorf("peak = %.4f dB, want 0", report.PeakDB)
	}
	if !near(report.RMSDB, -3.01, 0.1) {
		t.Errorf("rms = %.3f dB, want -3.01", report.RMSDB)
	}
	if !near(report.CrestFactor, 3.01, 0.1) || !near(report.DynamicRange, 3.0, 0.1) {
		t.Errorf("crest = %.3f, range = %.3f", report.CrestFactor, report.DynamicRange)
	}
	if report.IntegratedLUFS < -4 || report.IntegratedLUFS > -2 {
		t.Errorf("integrated = %.2f LUFS, want about -3", report.IntegratedLUFS)
	}
	if report.RMSDB > report.PeakDB {
		t.Error("rms above peak")
	}
}

func TestLoudnessSilence(t *testing.T) {
	report := NewLoudnessAnalyzer().Analyze(mono(make([]float64, testSampleRate)))

	if report.PeakDB != -90 || report.RMS != 0 || report.IntegratedLUFS != SilenceLUFS {
		t.Errorf("silence report = %+v", report)
	}
	if report.CrestFactor != 0 || report.DynamicRange != 0 {
		t.Errorf("crest = %v, range = %v", report.CrestFactor, report.DynamicRange)
	}
}

func TestLoudnessStereoNoise(t *testing.T) {
	audio := stereo(noise(1, 0.1, 3), noise(2, 0.1, 3))
	report := NewLoudnessAnalyzer().Analyze(audio)

	// -20 dBFS white noise reads about 3 LU hot through the K-weighting shelf
	if !near(report.IntegratedLUFS, -16.9, 0.5) {
		t.Errorf("integrated = %.2f LUFS", report.IntegratedLUFS)
	}

	left, _, _ := IntegratedLoudness([][]float64{audio.Samples[0]}, testSampleRate)
	if !near(report.IntegratedLUFS, left, 0.2) {
		t.Errorf("stereo %.2f LUFS, left channel alone %.2f LUFS", report.IntegratedLUFS, left)
	}
	if report.GatedBlocks == 0 || report.GatedBlocks > report.TotalBlocks {
		t.Errorf("gated %d of %d blocks", report.GatedBlocks, report.TotalBlocks)
	}
}

func TestIntegratedLoudnessAveragesChannels(t *testing.T) {
	tone := sine(1000, 0.5, 1)
	single, _, _ := IntegratedLoudness([][]float64{tone}, testSampleRate)
	dual, _, _ := IntegratedLoudness([][]float64{tone, tone}, testSampleRate)
	if !near(single, dual, 1e-9) {
		t.Errorf("dual mono = %.3f LUFS, single = %.3f LUFS", dual, single)
	}

	onlyLeft, _, _ := IntegratedLoudness([][]float64{tone, make([]float64, len(tone))}, testSampleRate)
	if !near(single-onlyLeft, 3.01, 0.05) {
		t.Errorf("silent right channel lowered loudness by %.2f LU", single-onlyLeft)
	}
}

func TestIntegratedLoudnessTracksLevel(t *testing.T) {
	loud, _, _ := IntegratedLoudness([][]float64{sine(1000, 1, 1)}, testSampleRate)
	quiet, _, _ := IntegratedLoudness([][]float64{sine(1000, 0.5, 1)}, testSampleRate)

	if !near(loud-quiet, 6.02, 0.1) {
		t.Errorf("halving amplitude changed loudness by %.2f LU", loud-quiet)
	}
}

func TestIntegratedLoudnessShortInput(t *testing.T) {
	lufs, gated, total := IntegratedLoudness([][]float64{sine(1000, 1, 0.2)}, testSampleRate)

	if total != 1 || gated != 1 {
		t.Errorf("blocks = %d/%d, want a single block", gated, total)
	}
	if lufs < -4.5 || lufs > -2 {
		t.Errorf("short input = %.2f LUFS", lufs)
	}
}

func TestIntegratedLoudnessRelativeGate(t *testing.T) {
	signal := append(sine(1000, 1, 2), sine(1000, 0.003, 2)...)
	lufs, gated, total := IntegratedLoudness([][]float64{signal}, testSampleRate)

	if gated >= total {
		t.Errorf("relative gate dropped nothing: %d of %d", gated, total)
	}
	if lufs < -4 {
		t.Errorf("quiet half pulled loudness down to %.2f LUFS", lufs)
	}
}

func TestIntegratedLoudnessEmpty(t *testing.T) {
	if lufs, _, _ := IntegratedLoudness(nil, testSampleRate); lufs != SilenceLUFS {
		t.Errorf("empty input = %v", lufs)
	}
}
