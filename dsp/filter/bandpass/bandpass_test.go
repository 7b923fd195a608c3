package bandpass

import (
	"errors"
	"math"
	"testing"

	"github.com/neuroview/eeg-dsp/eeg"
	"github.com/neuroview/eeg-dsp/internal/testutil"
	"github.com/neuroview/eeg-dsp/stats/series"
)

func TestApplySamplesPreservesLength(t *testing.T) {
	in := testutil.DeterministicSine(10, 500, 1.0, 5000)

	out, err := ApplySamples(in, 500, 0.5, 40, DefaultOrder)
	if err != nil {
		t.Fatalf("ApplySamples: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}

	testutil.RequireFinite(t, out)
}

func TestApplySamplesDoesNotModifyInput(t *testing.T) {
	in := testutil.DeterministicSine(10, 500, 1.0, 2000)
	orig := append([]float64(nil), in...)

	if _, err := ApplySamples(in, 500, 0.5, 40, DefaultOrder); err != nil {
		t.Fatalf("ApplySamples: %v", err)
	}

	for i := range in {
		if in[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}
}

func TestApplySamplesPassbandAndStopband(t *testing.T) {
	const (
		sr = 500.0
		n  = 10000
	)

	inBand := testutil.DeterministicSine(10, sr, 1.0, n)   // well inside 0.5-40
	outBand := testutil.DeterministicSine(100, sr, 1.0, n) // well above 40

	passed, err := ApplySamples(inBand, sr, 0.5, 40, DefaultOrder)
	if err != nil {
		t.Fatalf("ApplySamples: %v", err)
	}
	stopped, err := ApplySamples(outBand, sr, 0.5, 40, DefaultOrder)
	if err != nil {
		t.Fatalf("ApplySamples: %v", err)
	}

	// Skip the edges where the forward-backward pass has transients.
	passRMS := series.RMS(passed[n/4 : 3*n/4])
	stopRMS := series.RMS(stopped[n/4 : 3*n/4])

	inRMS := series.RMS(inBand[n/4 : 3*n/4])
	if passRMS < 0.9*inRMS {
		t.Fatalf("passband RMS %v, input RMS %v: too much attenuation", passRMS, inRMS)
	}
	if stopRMS > 0.01*inRMS {
		t.Fatalf("stopband RMS %v, want < 1%% of %v", stopRMS, inRMS)
	}
}

func TestApplySamplesZeroPhase(t *testing.T) {
	// Forward-backward filtering must not shift a pulse in time.
	const n = 4001
	in := make([]float64, n)
	// Smooth in-band pulse centered at n/2.
	for i := range in {
		x := (float64(i) - float64(n/2)) / 25.0
		in[i] = math.Exp(-x * x)
	}

	out, err := ApplySamples(in, 500, 0.5, 40, DefaultOrder)
	if err != nil {
		t.Fatalf("ApplySamples: %v", err)
	}

	peak := 0
	for i := range out {
		if out[i] > out[peak] {
			peak = i
		}
	}
	if d := peak - n/2; d < -2 || d > 2 {
		t.Fatalf("pulse peak moved to %d, want ~%d", peak, n/2)
	}
}

func TestApplyFiltersEveryChannel(t *testing.T) {
	data := [][]float64{
		testutil.DeterministicSine(10, 500, 1.0, 2500),
		testutil.DeterministicSine(100, 500, 1.0, 2500),
	}
	sig, err := eeg.NewSignal(data, 500, []string{"C3", "C4"})
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}

	out, err := Apply(sig, 0.5, 40, DefaultOrder)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if out.ChannelCount() != 2 || out.Samples() != 2500 {
		t.Fatalf("shape changed: %d channels, %d samples", out.ChannelCount(), out.Samples())
	}
	if out.SampleRate() != 500 {
		t.Fatalf("sample rate changed: %g", out.SampleRate())
	}
	if names := out.ChannelNames(); names[0] != "C3" || names[1] != "C4" {
		t.Fatalf("channel names changed: %v", names)
	}

	ch0, _ := out.Channel(0)
	ch1, _ := out.Channel(1)
	if !(series.RMS(ch0[500:2000]) > 10*series.RMS(ch1[500:2000])) {
		t.Fatal("out-of-band channel not attenuated relative to in-band channel")
	}
}

func TestValidateRejectsBadRanges(t *testing.T) {
	cases := []struct {
		name      string
		low, high float64
		order     int
	}{
		{"zero low edge", 0, 40, 4},
		{"negative low edge", -1, 40, 4},
		{"inverted edges", 40, 10, 4},
		{"high at nyquist", 10, 250, 4},
		{"high above nyquist", 10, 300, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ApplySamples(make([]float64, 100), 500, tc.low, tc.high, tc.order)
			if !errors.Is(err, ErrInvalidFilterRange) {
				t.Fatalf("err = %v, want ErrInvalidFilterRange", err)
			}
		})
	}

	if _, err := ApplySamples(make([]float64, 100), 500, 0.5, 40, 0); err == nil {
		t.Fatal("expected error for order 0")
	}
}
