package windowing

import (
	"math"
	"testing"
)

func TestCoefficientsMatchClosedForm(t *testing.T) {
	const n = 64
	tests := []struct {
		kind Kind
		want func(i int) float64
	}{
		{KindHann, func(i int) float64 {
			return 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		}},
		{KindHamming, func(i int) float64 {
			return 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		}},
		{KindBlackmanHarris, func(i int) float64 {
			arg := 2 * math.Pi * float64(i) / float64(n-1)
			return 0.35875 - 0.48829*math.Cos(arg) + 0.14128*math.Cos(2*arg) - 0.01168*math.Cos(3*arg)
		}},
		{KindBlackman, func(i int) float64 {
			arg := 2 * math.Pi * float64(i) / float64(n-1)
			return 0.42 - 0.5*math.Cos(arg) + 0.08*math.Cos(2*arg)
		}},
		{KindBartlett, func(i int) float64 {
			return 1 - math.Abs(2*float64(i)/float64(n-1)-1)
		}},
		{KindWelch, func(i int) float64 {
			x := 2*float64(i)/float64(n-1) - 1
			return 1 - x*x
		}},
		{KindRectangular, func(int) float64 { return 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			coeffs := Coefficients(tt.kind, n)
			if len(coeffs) != n {
				t.Fatalf("len = %d, want %d", len(coeffs), n)
			}
			for i, c := range coeffs {
				if math.Abs(c-tt.want(i)) > 1e-12 {
					t.Fatalf("coeff[%d] = %g, want %g", i, c, tt.want(i))
				}
			}
			// symmetric windows mirror around the centre
			for i := range n / 2 {
				if math.Abs(coeffs[i]-coeffs[n-1-i]) > 1e-12 {
					t.Fatalf("not symmetric at %d", i)
				}
			}
		})
	}
}

func TestSingleSampleWindow(t *testing.T) {
	for kind := range kindNames {
		coeffs := Coefficients(kind, 1)
		if len(coeffs) != 1 || coeffs[0] != 1 {
			t.Errorf("%s: got %v, want [1]", kind, coeffs)
		}
	}
}

func TestApplyInPlaceRejectsWrongLength(t *testing.T) {
	w, err := New(KindHann, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.ApplyInPlace(make([]float64, 4)); err == nil {
		t.Error("expected length mismatch error")
	}
	if got := w.Apply(make([]float64, 4)); got != nil {
		t.Errorf("Apply on wrong length = %v, want nil", got)
	}
}

func TestParseKind(t *testing.T) {
	var k Kind
	if err := k.UnmarshalText([]byte("blackman-harris")); err != nil || k != KindBlackmanHarris {
		t.Errorf("UnmarshalText = %v, %v", k, err)
	}
	if _, err := ParseKind("triangle"); err == nil {
		t.Error("expected error for unknown window")
	}
}

func TestTukeySpansRectangularToHann(t *testing.T) {
	const n = 33
	hann := Coefficients(KindHann, n)
	flat := NewTukey(n, 0).GetCoefficients()
	full := NewTukey(n, 1).GetCoefficients()
	for i := range n {
		if flat[i] != 1 {
			t.Fatalf("alpha 0: coeff[%d] = %g", i, flat[i])
		}
		if math.Abs(full[i]-hann[i]) > 1e-12 {
			t.Fatalf("alpha 1: coeff[%d] = %g, hann %g", i, full[i], hann[i])
		}
	}

	half := Coefficients(KindTukey, n)
	if half[0] != 0 || half[n/2] != 1 || half[n-1] > 1e-12 {
		t.Errorf("default tukey edges = %g, %g, %g", half[0], half[n/2], half[n-1])
	}
}

func TestKaiserShape(t *testing.T) {
	const n = 65
	coeffs := Coefficients(KindKaiser, n)
	if math.Abs(coeffs[n/2]-1) > 1e-12 {
		t.Errorf("centre = %g, want 1", coeffs[n/2])
	}
	if want := 1 / besselI0(DefaultKaiserBeta); math.Abs(coeffs[0]-want) > 1e-12 {
		t.Errorf("edge = %g, want %g", coeffs[0], want)
	}
	for i := 1; i <= n/2; i++ {
		if coeffs[i] < coeffs[i-1] {
			t.Fatalf("not rising at %d", i)
		}
	}
	// I0(0) = 1, I0(1) = 1.2660658777520082
	if besselI0(0) != 1 || math.Abs(besselI0(1)-1.2660658777520082) > 1e-10 {
		t.Errorf("besselI0 = %v, %v", besselI0(0), besselI0(1))
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for kind, name := range kindNames {
		parsed, err := ParseKind(name)
		if err != nil || parsed != kind {
			t.Errorf("ParseKind(%q) = %v, %v", name, parsed, err)
		}
		text, _ := kind.MarshalText()
		if string(text) != name {
			t.Errorf("MarshalText = %q, want %q", text, name)
		}
	}
}
