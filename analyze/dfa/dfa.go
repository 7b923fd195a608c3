// Package dfa implements detrended fluctuation analysis, estimating the
// scaling exponent alpha that characterizes long-range correlations in a
// single-channel segment.
package dfa

import (
	"errors"
	"fmt"
	"math"

	"github.com/neuroview/eeg-dsp/stats/series"
)

// Default scale parameters. A zero max scale selects len(segment)/4, the
// largest scale that still averages at least four segments.
const (
	DefaultMinScale = 4
	DefaultNScales  = 20
)

var (
	// ErrInvalidScaleRange reports scale parameters outside the valid ranges.
	ErrInvalidScaleRange = errors.New("dfa: invalid scale range")
	// ErrInsufficientData reports a segment that yields no usable scales.
	ErrInsufficientData = errors.New("dfa: insufficient data")
)

// ScalePoint is one (scale, fluctuation) sample of the DFA curve.
type ScalePoint struct {
	Scale       int // samples
	Fluctuation float64
}

// Result holds the fluctuation curve in ascending scale order and the
// fitted scaling exponent.
type Result struct {
	Points []ScalePoint
	Alpha  float64
}

// Estimate runs DFA on the segment.
//
// The segment is demeaned and integrated; for each of nScales
// logarithmically spaced integer scales in [minScale, maxScale], the
// integrated profile is split into non-overlapping windows of that length,
// each window is linearly detrended, and the per-window RMS residuals are
// averaged into the fluctuation F(scale). Alpha is the least-squares slope
// of log F against log scale.
//
// Constraints: minScale >= 4 (shorter windows make linear detrending
// degenerate), maxScale <= len(segment)/4 (at least four windows per
// scale), minScale < maxScale, nScales >= 2. Scales whose fluctuation
// vanishes are dropped; if fewer than two scales survive, Estimate fails
// with ErrInsufficientData.
func Estimate(segment []float64, minScale, maxScale, nScales int) (Result, error) {
	if minScale < 4 {
		return Result{}, fmt.Errorf("%w: min scale %d, need >= 4", ErrInvalidScaleRange, minScale)
	}
	if maxScale > len(segment)/4 {
		return Result{}, fmt.Errorf("%w: max scale %d exceeds len/4 = %d", ErrInvalidScaleRange, maxScale, len(segment)/4)
	}
	if minScale >= maxScale {
		return Result{}, fmt.Errorf("%w: min scale %d >= max scale %d", ErrInvalidScaleRange, minScale, maxScale)
	}
	if nScales < 2 {
		return Result{}, fmt.Errorf("%w: n scales %d, need >= 2", ErrInvalidScaleRange, nScales)
	}

	profile := integrate(segment)
	scales := logScales(minScale, maxScale, nScales)

	points := make([]ScalePoint, 0, len(scales))
	for _, scale := range scales {
		nSeg := len(profile) / scale
		if nSeg < 1 {
			continue
		}

		var sumRMS float64
		for i := 0; i < nSeg; i++ {
			sumRMS += detrendedRMS(profile[i*scale : (i+1)*scale])
		}

		f := sumRMS / float64(nSeg)
		if f > 0 {
			points = append(points, ScalePoint{Scale: scale, Fluctuation: f})
		}
	}

	if len(points) < 2 {
		return Result{}, fmt.Errorf("%w: only %d usable scales", ErrInsufficientData, len(points))
	}

	logS := make([]float64, len(points))
	logF := make([]float64, len(points))
	for i, p := range points {
		logS[i] = math.Log(float64(p.Scale))
		logF[i] = math.Log(p.Fluctuation)
	}

	alpha, _, err := series.LinearFit(logS, logF)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}

	return Result{Points: points, Alpha: alpha}, nil
}

// integrate returns the cumulative sum of the demeaned segment.
func integrate(segment []float64) []float64 {
	mean := series.Mean(segment)
	out := make([]float64, len(segment))

	var sum float64
	for i, x := range segment {
		sum += x - mean
		out[i] = sum
	}

	return out
}

// logScales returns nScales logarithmically spaced integers in
// [minScale, maxScale], deduplicated, ascending.
func logScales(minScale, maxScale, nScales int) []int {
	logMin := math.Log(float64(minScale))
	logMax := math.Log(float64(maxScale))
	step := (logMax - logMin) / float64(nScales-1)

	out := make([]int, 0, nScales)
	prev := 0
	for i := 0; i < nScales; i++ {
		s := int(math.Round(math.Exp(logMin + float64(i)*step)))
		if s < minScale {
			s = minScale
		}
		if s > maxScale {
			s = maxScale
		}
		if s != prev {
			out = append(out, s)
			prev = s
		}
	}

	return out
}

// detrendedRMS fits a least-squares line to the window and returns the RMS
// of the residuals. The abscissa moments over 0..n-1 have closed forms.
func detrendedRMS(win []float64) float64 {
	n := float64(len(win))
	meanX := (n - 1) / 2
	sxx := n * (n*n - 1) / 12

	meanY := series.Mean(win)

	var sxy float64
	for i, y := range win {
		sxy += (float64(i) - meanX) * (y - meanY)
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	var sumSq float64
	for i, y := range win {
		r := y - (slope*float64(i) + intercept)
		sumSq += r * r
	}

	return math.Sqrt(sumSq / n)
}
