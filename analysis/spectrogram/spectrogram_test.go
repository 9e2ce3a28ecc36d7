package spectrogram

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-mix/transcode"
)

const testSampleRate = 44100

func sine(freq, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/testSampleRate)
	}
	return out
}

func TestColorLUTRoundTrip(t *testing.T) {
	for i := range LUTSize {
		if got := ColorIndex(IndexToDB(i)); got != i {
			t.Errorf("ColorIndex(IndexToDB(%d)) = %d", i, got)
		}
	}
}

func TestColorLUTStops(t *testing.T) {
	table := LUT()
	if table[0] != (color.RGBA{0, 20, 40, 255}) {
		t.Errorf("floor colour = %v", table[0])
	}
	if table[LUTSize-1] != (color.RGBA{255, 255, 192, 255}) {
		t.Errorf("ceiling colour = %v", table[LUTSize-1])
	}
	if LUT() != table {
		t.Error("LUT rebuilt on second call")
	}
}

func TestColorIndexClamps(t *testing.T) {
	tests := map[float64]int{-200: 0, -90: 0, 0: 255, 12: 255, -45: 128}
	for db, want := range tests {
		if got := ColorIndex(db); got != want {
			t.Errorf("ColorIndex(%v) = %d, want %d", db, got, want)
		}
	}
	if ColorIndex(math.NaN()) != 0 {
		t.Error("NaN not mapped to floor")
	}
}

func TestLogScale(t *testing.T) {
	rows := LogScale(100, 20, 20000, testSampleRate, 2048)
	if len(rows) != 100 {
		t.Fatalf("got %d rows", len(rows))
	}

	// row 0 is the top of the image, the highest frequency
	if rows[0] != 929 || rows[99] != 1 {
		t.Errorf("top bin = %d, bottom bin = %d", rows[0], rows[99])
	}
	for r := 1; r < len(rows); r++ {
		if rows[r] > rows[r-1] {
			t.Fatalf("row %d bin %d above row %d bin %d", r, rows[r], r-1, rows[r-1])
		}
	}

	single := LogScale(1, 20, 20000, testSampleRate, 2048)
	if len(single) != 1 || single[0] != rows[0] {
		t.Errorf("single row = %v", single)
	}

	clamped := LogScale(2, 20, 20000, 8000, 2048)
	if clamped[0] != 1023 {
		t.Errorf("bin above Nyquist not clamped: %d", clamped[0])
	}
}

func TestEngineMono(t *testing.T) {
	audio := transcode.NewAudioData(testSampleRate, sine(1000, 0.5, testSampleRate))

	var calls, last int
	sgram, err := NewEngine().Compute(context.Background(), audio, DefaultParams(), func(done, total int) {
		calls++
		if done < last || done > total {
			t.Errorf("progress %d/%d after %d", done, total, last)
		}
		last = done
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	wantFrames := (testSampleRate-2048)/512 + 1
	if sgram.Frames != wantFrames || sgram.Bins != 1024 || sgram.Views != 1 {
		t.Errorf("frames = %d, bins = %d, views = %d", sgram.Frames, sgram.Bins, sgram.Views)
	}
	if sgram.Left != nil || sgram.Right != nil || len(sgram.Channels()) != 1 {
		t.Error("mono input produced channel views")
	}
	if calls != 1 || last != wantFrames {
		t.Errorf("progress calls = %d, last = %d", calls, last)
	}

	for _, frame := range sgram.Mono.DB {
		for _, db := range frame {
			if db < -90 || db > 0 {
				t.Fatalf("dB %v outside [-90, 0]", db)
			}
		}
	}
}

func TestEngineStereoViews(t *testing.T) {
	left := sine(440, 0.5, 8192)
	right := make([]float64, 8192)
	audio := transcode.NewAudioData(testSampleRate, left, right)

	sgram, err := NewEngine().Compute(context.Background(), audio, DefaultParams(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if sgram.Views != 3 || sgram.Left == nil || sgram.Right == nil || sgram.Mono == nil {
		t.Fatalf("views = %d", sgram.Views)
	}

	bin := int(math.Round(440 * 2048.0 / testSampleRate))
	if sgram.Right.DB[0][bin] != -90 {
		t.Errorf("silent right channel has %v dB at %d", sgram.Right.DB[0][bin], bin)
	}
	if sgram.Left.DB[0][bin] <= sgram.Mono.DB[0][bin] {
		t.Errorf("left %v dB not above mono %v dB", sgram.Left.DB[0][bin], sgram.Mono.DB[0][bin])
	}
}

func TestEngineShortInputSingleFrame(t *testing.T) {
	audio := transcode.NewAudioData(testSampleRate, sine(1000, 0.5, 100))

	sgram, err := NewEngine().Compute(context.Background(), audio, DefaultParams(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if sgram.Frames != 1 || len(sgram.Mono.DB) != 1 {
		t.Errorf("frames = %d", sgram.Frames)
	}
}

func TestEngineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	audio := transcode.NewAudioData(testSampleRate, sine(1000, 0.5, testSampleRate))
	_, err := NewEngine().Compute(ctx, audio, DefaultParams(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestEngineBudget(t *testing.T) {
	params := DefaultParams()
	params.MaxCells = 10 * 1024

	audio := transcode.NewAudioData(testSampleRate, sine(1000, 0.5, testSampleRate))
	_, err := NewEngine().Compute(context.Background(), audio, params, nil)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
}

func TestRenderSilenceIsFloorColour(t *testing.T) {
	audio := transcode.NewAudioData(testSampleRate, make([]float64, testSampleRate))
	sgram, err := NewEngine().Compute(context.Background(), audio, DefaultParams(), nil)
	if err != nil {
		t.Fatal(err)
	}

	images, err := RenderAll(sgram, RenderOptions{Width: 64, Height: 32, MinFrequency: 20, MaxFrequency: 20000})
	if err != nil {
		t.Fatal(err)
	}
	if images.Left != nil || images.Mono == nil {
		t.Fatal("unexpected views")
	}

	bounds := images.Mono.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 32 {
		t.Fatalf("image size = %v", bounds)
	}
	floor := LUT()[0]
	for y := range 32 {
		for x := range 64 {
			if got := images.Mono.RGBAAt(x, y); got != floor {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, floor)
			}
		}
	}
}

func TestRenderColumnsSampleFrames(t *testing.T) {
	frames := [][]float64{{-90, -90}, {0, 0}}
	img := Render(frames, []int{1, 0}, 4)

	top := LUT()[LUTSize-1]
	if img.RGBAAt(0, 0) != LUT()[0] || img.RGBAAt(1, 0) != LUT()[0] {
		t.Error("left half should show the first frame")
	}
	if img.RGBAAt(2, 1) != top || img.RGBAAt(3, 1) != top {
		t.Error("right half should show the second frame")
	}
}

func TestRenderAllRejectsBadSize(t *testing.T) {
	sgram := &Spectrogram{Mono: nil, SampleRate: testSampleRate, FFTSize: 2048}
	if _, err := RenderAll(sgram, RenderOptions{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
	_, err := RenderAll(sgram, RenderOptions{Width: 1000, Height: 1000, MinFrequency: 20, MaxFrequency: 20000, MaxPixels: 1000})
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
}
