package pass

import (
	"math"
	"testing"

	"github.com/neuroview/eeg-dsp/dsp/filter/biquad"
)

func TestNotchNullsCenterFrequency(t *testing.T) {
	sr := 500.0
	c := Notch(50, 30, sr)

	// The numerator has zeros on the unit circle at the center frequency.
	if g := magSection(c, 50, sr); g > 1e-12 {
		t.Fatalf("gain at center = %v, want 0", g)
	}

	assertStableSection(t, c)
}

func TestNotchUnityAwayFromCenter(t *testing.T) {
	sr := 500.0
	c := Notch(50, 30, sr)

	for _, f := range []float64{1, 10, 40, 100, 200} {
		if g := magSection(c, f, sr); math.Abs(g-1) > 0.05 {
			t.Fatalf("gain at %g Hz = %v, want ~1", f, g)
		}
	}
}

func TestNotchQControlsBandwidth(t *testing.T) {
	// A higher quality factor rejects less of the neighborhood.
	sr := 500.0
	narrow := Notch(50, 30, sr)
	wide := Notch(50, 5, sr)

	if magSection(narrow, 48, sr) <= magSection(wide, 48, sr) {
		t.Fatal("narrow notch attenuates a neighbor more than a wide one")
	}
}

func TestNotchInvalidInputs(t *testing.T) {
	cases := []struct {
		name          string
		freq, q, rate float64
	}{
		{"zero frequency", 0, 30, 500},
		{"above Nyquist", 300, 30, 500},
		{"zero q", 50, 0, 500},
		{"negative q", 50, -1, 500},
	}

	for _, tc := range cases {
		if c := Notch(tc.freq, tc.q, tc.rate); c != (biquad.Coefficients{}) {
			t.Fatalf("%s: expected zero coefficients, got %#v", tc.name, c)
		}
	}
}

func magSection(c biquad.Coefficients, freq, sr float64) float64 {
	chain := biquad.NewChain([]biquad.Coefficients{c})
	return magChain(chain, freq, sr)
}
