// Package spectrum estimates power spectral densities of EEG segments
// using Welch's method of averaged modified periodograms.
//
// The FFT itself is delegated to an external backend; this package owns
// segmentation, windowing, scaling, and band integration.
package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/neuroview/eeg-dsp/dsp/window"
)

// DefaultSegmentLength caps the Welch segment length in samples when the
// config leaves it unset. Short inputs fall back to a single full-length
// segment.
const DefaultSegmentLength = 512

// DefaultOverlap is the default fractional overlap between segments.
const DefaultOverlap = 0.5

// WelchConfig holds Welch PSD estimation parameters.
type WelchConfig struct {
	SampleRate    float64
	SegmentLength int         // samples per segment; 0 selects min(len, DefaultSegmentLength)
	Overlap       float64     // fraction in [0, 1); 0 selects DefaultOverlap
	Window        window.Type // defaults to Hann
}

// Welch estimates the one-sided PSD of samples.
//
// Each segment is demeaned, windowed, zero-padded to the next power of two,
// and transformed; squared magnitudes are averaged across segments and
// scaled to density units (power per Hz). freqs and psd have equal length
// covering [0, SampleRate/2].
func Welch(samples []float64, cfg WelchConfig) (freqs, psd []float64, err error) {
	if len(samples) == 0 {
		return nil, nil, errors.New("spectrum: empty input")
	}
	if cfg.SampleRate <= 0 {
		return nil, nil, fmt.Errorf("spectrum: sample rate must be > 0: %g", cfg.SampleRate)
	}

	segLen := cfg.SegmentLength
	if segLen <= 0 {
		segLen = DefaultSegmentLength
	}
	if segLen > len(samples) {
		segLen = len(samples)
	}

	overlap := cfg.Overlap
	if overlap <= 0 {
		overlap = DefaultOverlap
	}
	if overlap >= 1 {
		return nil, nil, fmt.Errorf("spectrum: overlap must be < 1: %g", overlap)
	}

	step := segLen - int(overlap*float64(segLen))
	if step < 1 {
		step = 1
	}

	winType := cfg.Window
	if winType == 0 {
		winType = window.TypeHann
	}

	coeffs := window.Generate(winType, segLen)
	wss := window.SumSquares(coeffs)
	if wss == 0 {
		return nil, nil, errors.New("spectrum: degenerate window")
	}

	fftSize := nextPowerOf2(segLen)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	binCount := fftSize/2 + 1
	acc := make([]float64, binCount)
	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)
	seg := make([]float64, segLen)

	segments := 0
	for start := 0; start+segLen <= len(samples); start += step {
		copy(seg, samples[start:start+segLen])
		demean(seg)
		window.ApplyCoefficients(seg, coeffs)

		for i := range in {
			if i < segLen {
				in[i] = complex(seg[i], 0)
			} else {
				in[i] = 0
			}
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, nil, fmt.Errorf("spectrum: fft: %w", err)
		}

		for k := 0; k < binCount; k++ {
			re := real(out[k])
			im := imag(out[k])
			acc[k] += re*re + im*im
		}

		segments++
	}

	if segments == 0 {
		return nil, nil, errors.New("spectrum: input shorter than one segment")
	}

	scale := 1 / (float64(segments) * cfg.SampleRate * wss)
	freqs = make([]float64, binCount)
	psd = make([]float64, binCount)
	binHz := cfg.SampleRate / float64(fftSize)

	for k := 0; k < binCount; k++ {
		freqs[k] = float64(k) * binHz
		v := acc[k] * scale
		// One-sided spectrum: interior bins carry the mirrored energy.
		if k != 0 && k != binCount-1 {
			v *= 2
		}
		psd[k] = v
	}

	return freqs, psd, nil
}

func demean(buf []float64) {
	var sum float64
	for _, x := range buf {
		sum += x
	}
	mean := sum / float64(len(buf))
	for i := range buf {
		buf[i] -= mean
	}
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// BandPower integrates a one-sided PSD over [lowHz, highHz) using the
// trapezoidal rule. Fewer than two bins inside the interval integrate
// to zero.
func BandPower(freqs, psd []float64, lowHz, highHz float64) float64 {
	lo := len(freqs)
	hi := len(freqs)
	for i, f := range freqs {
		if f >= lowHz {
			lo = i
			break
		}
	}
	for i := lo; i < len(freqs); i++ {
		if freqs[i] >= highHz {
			hi = i
			break
		}
	}

	if hi-lo < 2 {
		return 0
	}

	var total float64
	for i := lo; i < hi-1; i++ {
		df := freqs[i+1] - freqs[i]
		total += 0.5 * (psd[i] + psd[i+1]) * df
	}

	if total < 0 || math.IsNaN(total) {
		return 0
	}

	return total
}

// PeakFrequency returns the frequency of the largest PSD bin within
// [lowHz, highHz). Returns 0 when no bin falls inside the interval.
func PeakFrequency(freqs, psd []float64, lowHz, highHz float64) float64 {
	peak := -1.0
	peakFreq := 0.0
	for i, f := range freqs {
		if f < lowHz || f >= highHz {
			continue
		}
		if psd[i] > peak {
			peak = psd[i]
			peakFreq = f
		}
	}

	return peakFreq
}
