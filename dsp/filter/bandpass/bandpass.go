// Package bandpass applies zero-phase Butterworth bandpass filtering to
// EEG signals. The band is realized as a highpass/lowpass cascade run
// forward and then backward over each channel, cancelling the cascade's
// phase response.
package bandpass

import (
	"errors"
	"fmt"

	"github.com/neuroview/eeg-dsp/dsp/filter/biquad"
	"github.com/neuroview/eeg-dsp/dsp/filter/pass"
	"github.com/neuroview/eeg-dsp/eeg"
)

// DefaultOrder is the Butterworth order used per edge of the band.
const DefaultOrder = 4

// ErrInvalidFilterRange reports band edges outside (0, Nyquist) or in the
// wrong order.
var ErrInvalidFilterRange = errors.New("bandpass: invalid filter range")

// Apply bandpass-filters every channel of sig to [lowHz, highHz] and
// returns a new Signal; the input is left untouched. Sample count, channel
// count, names, and sample rate are preserved.
//
// Requires 0 < lowHz < highHz < Nyquist and order > 0.
func Apply(sig *eeg.Signal, lowHz, highHz float64, order int) (*eeg.Signal, error) {
	if err := validate(sig.SampleRate(), lowHz, highHz, order); err != nil {
		return nil, err
	}

	filtered := make([][]float64, sig.ChannelCount())
	for i := range filtered {
		ch, err := sig.Channel(i)
		if err != nil {
			return nil, err
		}

		out, err := ApplySamples(ch, sig.SampleRate(), lowHz, highHz, order)
		if err != nil {
			return nil, err
		}

		filtered[i] = out
	}

	return eeg.NewSignal(filtered, sig.SampleRate(), sig.ChannelNames())
}

// ApplySamples zero-phase bandpass-filters a single channel and returns a
// new slice of the same length.
func ApplySamples(samples []float64, sampleRate, lowHz, highHz float64, order int) ([]float64, error) {
	if err := validate(sampleRate, lowHz, highHz, order); err != nil {
		return nil, err
	}

	coeffs := append(
		pass.ButterworthHP(lowHz, order, sampleRate),
		pass.ButterworthLP(highHz, order, sampleRate)...,
	)

	buf := append([]float64(nil), samples...)
	chain := biquad.NewChain(coeffs)

	chain.ProcessBlock(buf)
	reverse(buf)
	chain.Reset()
	chain.ProcessBlock(buf)
	reverse(buf)

	return buf, nil
}

func validate(sampleRate, lowHz, highHz float64, order int) error {
	if order <= 0 {
		return fmt.Errorf("bandpass: order must be > 0: %d", order)
	}

	nyquist := sampleRate / 2
	switch {
	case lowHz <= 0:
		return fmt.Errorf("%w: low edge %g Hz must be > 0", ErrInvalidFilterRange, lowHz)
	case lowHz >= highHz:
		return fmt.Errorf("%w: low edge %g Hz >= high edge %g Hz", ErrInvalidFilterRange, lowHz, highHz)
	case highHz >= nyquist:
		return fmt.Errorf("%w: high edge %g Hz >= Nyquist %g Hz", ErrInvalidFilterRange, highHz, nyquist)
	}

	return nil
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
