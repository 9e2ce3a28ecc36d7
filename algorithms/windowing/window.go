package windowing

import (
	"fmt"
	"strings"
)

// Kind names a window shape
type Kind int

const (
	KindHann Kind = iota
	KindHamming
	KindBlackmanHarris
	KindBlackman
	KindBartlett
	KindWelch
	KindTukey
	KindKaiser
	KindRectangular
)

var kindNames = map[Kind]string{
	KindHann:           "hann",
	KindHamming:        "hamming",
	KindBlackmanHarris: "blackman_harris",
	KindBlackman:       "blackman",
	KindBartlett:       "bartlett",
	KindWelch:          "welch",
	KindTukey:          "tukey",
	KindKaiser:         "kaiser",
	KindRectangular:    "rectangular",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a window name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hann", "hanning":
		return KindHann, nil
	case "hamming":
		return KindHamming, nil
	case "blackman_harris", "blackman-harris", "blackmanharris":
		return KindBlackmanHarris, nil
	case "blackman":
		return KindBlackman, nil
	case "bartlett", "triangular":
		return KindBartlett, nil
	case "welch":
		return KindWelch, nil
	case "tukey":
		return KindTukey, nil
	case "kaiser":
		return KindKaiser, nil
	case "rectangular", "rect", "none":
		return KindRectangular, nil
	default:
		return KindHann, fmt.Errorf("unknown window %q", name)
	}
}

// MarshalText lets Kind round-trip through JSON and TOML option files.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a window name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Window is a precomputed table of window coefficients
type Window interface {
	Apply(signal []float64) []float64
	ApplyInPlace(signal []float64) error
	GetCoefficients() []float64
	GetSize() int
	GetType() string
}

// New returns a symmetric window of the given kind and size.
func New(kind Kind, size int) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}

	switch kind {
	case KindHann:
		return NewHann(size), nil
	case KindHamming:
		return NewHamming(size), nil
	case KindBlackmanHarris:
		return NewBlackmanHarris(size), nil
	case KindBlackman:
		return NewBlackman(size), nil
	case KindBartlett:
		return NewBartlett(size), nil
	case KindWelch:
		return NewWelch(size), nil
	case KindTukey:
		return NewTukey(size, DefaultTukeyAlpha), nil
	case KindKaiser:
		return NewKaiser(size, DefaultKaiserBeta), nil
	case KindRectangular:
		return NewRectangular(size), nil
	default:
		return nil, fmt.Errorf("unsupported window kind %d", kind)
	}
}

// Coefficients returns the length-n coefficient vector for kind.
// Unknown kinds and non-positive sizes yield nil.
func Coefficients(kind Kind, n int) []float64 {
	w, err := New(kind, n)
	if err != nil {
		return nil
	}
	return w.GetCoefficients()
}

// table holds coefficients shared by every window shape
type table struct {
	kind         Kind
	coefficients []float64
}

// Apply applies the window to a signal (creates new array)
func (t *table) Apply(signal []float64) []float64 {
	if len(signal) != len(t.coefficients) {
		return nil
	}

	windowed := make([]float64, len(signal))
	for i, c := range t.coefficients {
		windowed[i] = signal[i] * c
	}
	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (t *table) ApplyInPlace(signal []float64) error {
	if len(signal) != len(t.coefficients) {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), len(t.coefficients))
	}

	for i, c := range t.coefficients {
		signal[i] *= c
	}
	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (t *table) GetCoefficients() []float64 {
	coeffs := make([]float64, len(t.coefficients))
	copy(coeffs, t.coefficients)
	return coeffs
}

// GetSize returns the window size
func (t *table) GetSize() int {
	return len(t.coefficients)
}

// GetType returns the window type
func (t *table) GetType() string {
	return t.kind.String()
}
