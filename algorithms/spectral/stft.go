package spectral

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/RyanBlaney/sonido-mix/algorithms/windowing"
	"github.com/RyanBlaney/sonido-mix/logging"
)

// STFT provides Short-Time Fourier Transform functionality
type STFT struct {
	fft    *FFT
	logger logging.Logger
}

// STFTParams configures a transform
type STFTParams struct {
	FFTSize int            `json:"fft_size"`
	HopSize int            `json:"hop_size"`
	Window  windowing.Kind `json:"window"`

	// CheckpointFrames is how many frames are computed between checkpoint
	// calls. Zero means a single checkpoint at the end.
	CheckpointFrames int `json:"checkpoint_frames"`
}

// Checkpoint is called after each chunk of frames. Returning an error
// aborts the transform and the error is returned unchanged.
type Checkpoint func(done, total int) error

// STFTResult holds the result of STFT analysis
type STFTResult struct {
	Magnitude      [][]float64 `json:"-"`               // Time x Frequency, linear |X|/N
	DB             [][]float64 `json:"-"`               // Time x Frequency, dB clamped to [-90, 0]
	TimeFrames     int         `json:"time_frames"`     // Number of time frames
	FreqBins       int         `json:"freq_bins"`       // fftSize/2
	SampleRate     int         `json:"sample_rate"`     // Sample rate
	WindowSize     int         `json:"window_size"`     // FFT window size
	HopSize        int         `json:"hop_size"`        // Hop size between frames
	FreqResolution float64     `json:"freq_resolution"` // Hz per bin
	TimeResolution float64     `json:"time_resolution"` // seconds per frame
}

// NewSTFT creates a new STFT calculator
func NewSTFT() *STFT {
	return &STFT{
		fft:    NewFFT(),
		logger: logging.Component("stft"),
	}
}

// FrameCount returns the number of frames a signal of n samples produces.
// Signals shorter than one window still produce a single zero-padded frame.
func FrameCount(n, fftSize, hopSize int) int {
	if n <= fftSize || hopSize <= 0 {
		return 1
	}
	return (n-fftSize)/hopSize + 1
}

// Compute runs the transform over signal. Frames are filled by a worker
// pool one checkpoint chunk at a time, so frame order is preserved and
// cancellation is observed at chunk boundaries.
func (s *STFT) Compute(signal []float64, sampleRate int, params STFTParams, checkpoint Checkpoint) (*STFTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if !IsPowerOfTwo(params.FFTSize) {
		return nil, fmt.Errorf("%w: fft size %d", ErrNotPowerOfTwo, params.FFTSize)
	}
	if params.HopSize <= 0 || params.HopSize > params.FFTSize {
		return nil, fmt.Errorf("hop size %d outside (0, %d]", params.HopSize, params.FFTSize)
	}

	win, err := windowing.New(params.Window, params.FFTSize)
	if err != nil {
		return nil, err
	}

	numFrames := FrameCount(len(signal), params.FFTSize, params.HopSize)
	freqBins := params.FFTSize / 2

	magnitude := make([][]float64, numFrames)
	db := make([][]float64, numFrames)
	for i := range numFrames {
		magnitude[i] = make([]float64, freqBins)
		db[i] = make([]float64, freqBins)
	}

	chunk := params.CheckpointFrames
	if chunk <= 0 {
		chunk = numFrames
	}

	s.logger.Debug("Computing STFT", logging.Fields{
		"frames":   numFrames,
		"fft_size": params.FFTSize,
		"hop_size": params.HopSize,
		"window":   params.Window.String(),
	})

	for start := 0; start < numFrames; start += chunk {
		end := min(start+chunk, numFrames)
		s.computeFrames(signal, params, win, start, end, magnitude, db)

		if checkpoint != nil {
			if err := checkpoint(end, numFrames); err != nil {
				return nil, err
			}
		}
	}

	return &STFTResult{
		Magnitude:      magnitude,
		DB:             db,
		TimeFrames:     numFrames,
		FreqBins:       freqBins,
		SampleRate:     sampleRate,
		WindowSize:     params.FFTSize,
		HopSize:        params.HopSize,
		FreqResolution: float64(sampleRate) / float64(params.FFTSize),
		TimeResolution: float64(params.HopSize) / float64(sampleRate),
	}, nil
}

// computeFrames fills frames [start, end) in parallel
func (s *STFT) computeFrames(signal []float64, params STFTParams, win windowing.Window, start, end int, magnitude, db [][]float64) {
	jobs := make(chan int, end-start)
	for frameIdx := start; frameIdx < end; frameIdx++ {
		jobs <- frameIdx
	}
	close(jobs)

	var wg sync.WaitGroup
	for range getOptimalWorkerCount(end - start) {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Reuse frame buffer for this worker
			frameBuffer := make([]float64, params.FFTSize)

			for frameIdx := range jobs {
				offset := frameIdx * params.HopSize
				clear(frameBuffer)
				if offset < len(signal) {
					copy(frameBuffer, signal[offset:min(offset+params.FFTSize, len(signal))])
				}

				// length always matches: the window was built for FFTSize
				_ = win.ApplyInPlace(frameBuffer)

				spectrum, err := s.fft.ComputeComplex(frameBuffer)
				if err != nil {
					continue
				}

				magnitudeFromComplex(spectrum, magnitude[frameIdx])
				for i, m := range magnitude[frameIdx] {
					db[frameIdx][i] = LinearToClampedDB(m)
				}
			}
		}()
	}
	wg.Wait()
}

// getOptimalWorkerCount determines the number of workers for a chunk of frames
func getOptimalWorkerCount(numFrames int) int {
	numCPU := runtime.NumCPU()

	// For small workloads, don't over-parallelize
	if numFrames < 100 {
		return max(1, min(numCPU/2, numFrames))
	}

	if numFrames < 1000 {
		return max(1, min(numCPU, 8))
	}

	return numCPU
}

// MeanMagnitude mean-pools the linear magnitude frames into one spectrum
func (r *STFTResult) MeanMagnitude() []float64 {
	mean := make([]float64, r.FreqBins)
	if r.TimeFrames == 0 {
		return mean
	}

	for _, frame := range r.Magnitude {
		for i, m := range frame {
			mean[i] += m
		}
	}

	scale := 1.0 / float64(r.TimeFrames)
	for i := range mean {
		mean[i] *= scale
	}
	return mean
}
