// Package series provides single-pass statistics over value series such as
// band-power traces. Variance is the population variance (N denominator),
// matching the convention used for spike thresholds.
package series

import (
	"errors"
	"math"
)

// ErrLengthMismatch reports x/y slices of different lengths.
var ErrLengthMismatch = errors.New("series: x and y must have the same length")

// Mean returns the arithmetic mean of values.
// Uses Kahan summation for numerical stability on long series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum, c float64
	for _, x := range values {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(values))
}

// MeanStd returns the mean and population standard deviation of values
// computed in a single pass with Welford's algorithm.
func MeanStd(values []float64) (mean, std float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}

	var m2 float64
	for i, x := range values {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}

	return mean, math.Sqrt(m2 / float64(n))
}

// Variance returns the population variance of values.
func Variance(values []float64) float64 {
	_, std := MeanStd(values)
	return std * std
}

// LinearFit fits y = slope*x + intercept by ordinary least squares.
// Requires at least two points with non-constant x.
func LinearFit(x, y []float64) (slope, intercept float64, err error) {
	if len(x) != len(y) {
		return 0, 0, ErrLengthMismatch
	}
	if len(x) < 2 {
		return 0, 0, errors.New("series: linear fit needs at least 2 points")
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sxy, sxx float64
	for i := range x {
		dx := x[i] - meanX
		sxy += dx * (y[i] - meanY)
		sxx += dx * dx
	}

	if sxx == 0 {
		return 0, 0, errors.New("series: linear fit is degenerate (constant x)")
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX

	return slope, intercept, nil
}

// RMS returns the root-mean-square of values.
func RMS(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range values {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(values)))
}
