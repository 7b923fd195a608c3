// Package notch removes narrowband interference, typically 50 or 60 Hz
// power-line hum, with a zero-phase band-reject biquad run forward and
// then backward over each channel.
package notch

import (
	"errors"
	"fmt"

	"github.com/neuroview/eeg-dsp/dsp/filter/biquad"
	"github.com/neuroview/eeg-dsp/dsp/filter/pass"
	"github.com/neuroview/eeg-dsp/eeg"
)

// DefaultQ trades rejection bandwidth against passband ripple. 30 keeps
// the rejected band under 2 Hz wide at mains frequencies.
const DefaultQ = 30.0

// ErrInvalidNotch reports a center frequency outside (0, Nyquist) or a
// non-positive quality factor.
var ErrInvalidNotch = errors.New("notch: invalid notch config")

// Apply notch-filters every channel of sig at freqHz and returns a new
// Signal; the input is left untouched. Sample count, channel count,
// names, and sample rate are preserved.
func Apply(sig *eeg.Signal, freqHz, q float64) (*eeg.Signal, error) {
	if err := validate(sig.SampleRate(), freqHz, q); err != nil {
		return nil, err
	}

	filtered := make([][]float64, sig.ChannelCount())
	for i := range filtered {
		ch, err := sig.Channel(i)
		if err != nil {
			return nil, err
		}

		out, err := ApplySamples(ch, sig.SampleRate(), freqHz, q)
		if err != nil {
			return nil, err
		}

		filtered[i] = out
	}

	return eeg.NewSignal(filtered, sig.SampleRate(), sig.ChannelNames())
}

// ApplySamples zero-phase notch-filters a single channel and returns a
// new slice of the same length.
func ApplySamples(samples []float64, sampleRate, freqHz, q float64) ([]float64, error) {
	if err := validate(sampleRate, freqHz, q); err != nil {
		return nil, err
	}

	section := biquad.NewSection(pass.Notch(freqHz, q, sampleRate))
	buf := append([]float64(nil), samples...)

	section.ProcessBlock(buf)
	reverse(buf)
	section.Reset()
	section.ProcessBlock(buf)
	reverse(buf)

	return buf, nil
}

func validate(sampleRate, freqHz, q float64) error {
	if q <= 0 {
		return fmt.Errorf("%w: quality factor %g must be > 0", ErrInvalidNotch, q)
	}

	nyquist := sampleRate / 2
	if freqHz <= 0 || freqHz >= nyquist {
		return fmt.Errorf("%w: center %g Hz outside (0, %g)", ErrInvalidNotch, freqHz, nyquist)
	}

	return nil
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
