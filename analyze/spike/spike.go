// Package spike detects statistical outliers in band-power series using a
// mean-plus-sigma threshold.
package spike

import (
	"errors"
	"fmt"

	"github.com/neuroview/eeg-dsp/analyze/bandpower"
	"github.com/neuroview/eeg-dsp/stats/series"
)

// DefaultThresholdSigma is the standard spike threshold multiplier.
// Useful values fall in [1, 5].
const DefaultThresholdSigma = 2.0

// ErrInvalidThreshold reports a non-positive sigma multiplier.
var ErrInvalidThreshold = errors.New("spike: threshold sigma must be > 0")

// Event is one detected spike: a band-power point that exceeded the
// threshold in force at detection time.
type Event struct {
	Time      float64 // seconds
	Power     float64
	Threshold float64
}

// Detect finds every point whose power exceeds mean + thresholdSigma*sigma,
// where sigma is the population standard deviation of the series.
//
// The threshold value is returned alongside the events so callers can plot
// it. A series with fewer than two points has no defined sigma: Detect then
// returns no events and a threshold equal to the mean.
func Detect(powerSeries bandpower.Series, thresholdSigma float64) ([]Event, float64, error) {
	if thresholdSigma <= 0 {
		return nil, 0, fmt.Errorf("%w: %g", ErrInvalidThreshold, thresholdSigma)
	}

	values := powerSeries.Values()
	if len(values) < 2 {
		return nil, series.Mean(values), nil
	}

	mean, std := series.MeanStd(values)
	threshold := mean + thresholdSigma*std

	var events []Event
	for _, p := range powerSeries {
		if p.Power > threshold {
			events = append(events, Event{Time: p.Time, Power: p.Power, Threshold: threshold})
		}
	}

	return events, threshold, nil
}
