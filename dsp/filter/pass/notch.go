package pass

import (
	"math"

	"github.com/neuroview/eeg-dsp/dsp/filter/biquad"
)

// Notch designs a band-reject biquad centered on freq (Hz) with quality
// factor q (RBJ audio cookbook formulation). Gain is unity away from the
// notch and zero at its center; higher q narrows the rejected band.
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || q <= 0 {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalize(1, -2*cw, 1, 1+alpha, -2*cw, 1-alpha)
}
