// Package window generates window-function coefficients for spectral
// estimation. Only the windows used by Welch PSD averaging are provided.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of the
// symmetric form.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	denom := float64(length - 1)
	if cfg.periodic {
		denom = float64(length)
	}

	for i := range out {
		x := float64(i) / denom
		switch t {
		case TypeHann:
			out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*x)
		case TypeHamming:
			out[i] = 0.54 - 0.46*math.Cos(2*math.Pi*x)
		default:
			out[i] = 1
		}
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	vecmath.MulBlockInPlace(buf, coeffs)
}

// ApplyCoefficients multiplies samples in-place by precomputed coefficients.
// Both slices must have the same length.
func ApplyCoefficients(samples, coeffs []float64) {
	vecmath.MulBlockInPlace(samples, coeffs)
}

// SumSquares returns the sum of squared coefficients, the normalization
// term for Welch PSD scaling.
func SumSquares(coeffs []float64) float64 {
	var s float64
	for _, c := range coeffs {
		s += c * c
	}

	return s
}
