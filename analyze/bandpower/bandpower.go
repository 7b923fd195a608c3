// Package bandpower computes time-resolved frequency-band power over
// sliding windows of a single channel.
package bandpower

import (
	"errors"
	"fmt"
	"math"

	"github.com/neuroview/eeg-dsp/dsp/spectrum"
)

// Defaults for the sliding-window configuration.
const (
	DefaultWindowLength = 2.0 // seconds
	DefaultStep         = 0.5 // seconds
)

// ErrInvalidWindow reports a non-positive window length or step.
var ErrInvalidWindow = errors.New("bandpower: invalid window config")

// WindowConfig describes the sliding analysis window in seconds.
// Start and End bound the analyzed time range and are taken literally,
// clamped to the signal duration; a range too short for one window yields
// an empty Series. DefaultWindowConfig spans any signal.
type WindowConfig struct {
	WindowLength float64
	Step         float64
	Start        float64
	End          float64
}

// DefaultWindowConfig returns the standard 2 s window with 0.5 s step over
// the full time range.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{WindowLength: DefaultWindowLength, Step: DefaultStep, End: math.Inf(1)}
}

// Point is one band-power sample, timestamped at its window center.
type Point struct {
	Time  float64 // seconds
	Power float64
}

// Series is an ordered band-power trace with strictly increasing timestamps
// and non-negative values.
type Series []Point

// Values returns the power values of the series.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Power
	}

	return out
}

// Compute estimates band power in [lowHz, highHz) over sliding windows of
// the channel samples.
//
// Windows start at cfg.Start and advance by cfg.Step while a full window
// still fits before cfg.End. Each window's PSD is estimated with Welch's
// method and integrated over the band. A time range too short for a single
// window yields an empty Series and no error.
func Compute(samples []float64, sampleRate, lowHz, highHz float64, cfg WindowConfig) (Series, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("bandpower: sample rate must be > 0: %g", sampleRate)
	}
	if cfg.WindowLength <= 0 || cfg.Step <= 0 {
		return nil, fmt.Errorf("%w: window=%gs step=%gs", ErrInvalidWindow, cfg.WindowLength, cfg.Step)
	}
	if lowHz < 0 || highHz <= lowHz {
		return nil, fmt.Errorf("bandpower: invalid band %g-%g Hz", lowHz, highHz)
	}

	duration := float64(len(samples)) / sampleRate
	start, end := clamp(cfg.Start, cfg.End, duration)

	winSamples := int(cfg.WindowLength * sampleRate)
	stepSamples := int(cfg.Step * sampleRate)
	if winSamples < 2 || stepSamples < 1 {
		return nil, fmt.Errorf("%w: window=%gs step=%gs at %g Hz", ErrInvalidWindow, cfg.WindowLength, cfg.Step, sampleRate)
	}

	startSample := int(start * sampleRate)
	endSample := int(end * sampleRate)
	if endSample > len(samples) {
		endSample = len(samples)
	}

	var out Series
	for s := startSample; s+winSamples <= endSample; s += stepSamples {
		power, err := Total(samples[s:s+winSamples], sampleRate, lowHz, highHz)
		if err != nil {
			return nil, err
		}

		out = append(out, Point{
			Time:  float64(s)/sampleRate + cfg.WindowLength/2,
			Power: power,
		})
	}

	return out, nil
}

// Total estimates the band power of one contiguous segment: Welch PSD
// integrated over [lowHz, highHz). Negative rounding residue is clamped
// to zero.
func Total(segment []float64, sampleRate, lowHz, highHz float64) (float64, error) {
	freqs, psd, err := spectrum.Welch(segment, spectrum.WelchConfig{SampleRate: sampleRate})
	if err != nil {
		return 0, err
	}

	power := spectrum.BandPower(freqs, psd, lowHz, highHz)
	if power < 0 {
		power = 0
	}

	return power, nil
}

// DominantFrequency returns the PSD peak frequency of the segment within
// [lowHz, highHz).
func DominantFrequency(segment []float64, sampleRate, lowHz, highHz float64) (float64, error) {
	freqs, psd, err := spectrum.Welch(segment, spectrum.WelchConfig{SampleRate: sampleRate})
	if err != nil {
		return 0, err
	}

	return spectrum.PeakFrequency(freqs, psd, lowHz, highHz), nil
}

func clamp(start, end, duration float64) (float64, float64) {
	if end > duration {
		end = duration
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}

	return start, end
}
