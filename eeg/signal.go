// Package eeg holds the core value types for EEG analysis: the immutable
// multi-channel Signal, the frequency-band registry, and the Session that
// ties channel/band/time-range selection to the analyzers.
package eeg

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChannel reports a channel index outside the signal.
	ErrInvalidChannel = errors.New("eeg: invalid channel index")
	// ErrNoSignal reports an operation on a session with no loaded signal.
	ErrNoSignal = errors.New("eeg: no signal loaded")
	// ErrUnknownBand reports a band name missing from the registry.
	ErrUnknownBand = errors.New("eeg: unknown frequency band")
)

// Signal is an immutable multi-channel recording sampled at a fixed rate.
// All channels have the same length. The constructor copies its input, so a
// Signal never aliases caller-owned buffers; replacing the signal held by a
// Session is therefore a plain pointer swap.
type Signal struct {
	data       [][]float64
	names      []string
	sampleRate float64
}

// NewSignal builds a Signal from per-channel sample slices.
//
// All channels must have equal, non-zero length and sampleRate must be
// positive. names may be nil, in which case channels are named "ch0",
// "ch1", ...; otherwise its length must match the channel count.
func NewSignal(data [][]float64, sampleRate float64, names []string) (*Signal, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("eeg: sample rate must be > 0: %g", sampleRate)
	}
	if len(data) == 0 {
		return nil, errors.New("eeg: signal needs at least one channel")
	}

	n := len(data[0])
	if n == 0 {
		return nil, errors.New("eeg: channels must not be empty")
	}
	for i, ch := range data {
		if len(ch) != n {
			return nil, fmt.Errorf("eeg: channel %d has %d samples, want %d", i, len(ch), n)
		}
	}

	if names != nil && len(names) != len(data) {
		return nil, fmt.Errorf("eeg: %d channel names for %d channels", len(names), len(data))
	}

	s := &Signal{
		data:       make([][]float64, len(data)),
		names:      make([]string, len(data)),
		sampleRate: sampleRate,
	}
	for i, ch := range data {
		s.data[i] = append([]float64(nil), ch...)
		if names != nil {
			s.names[i] = names[i]
		} else {
			s.names[i] = fmt.Sprintf("ch%d", i)
		}
	}

	return s, nil
}

// SampleRate returns the sampling rate in Hz.
func (s *Signal) SampleRate() float64 { return s.sampleRate }

// ChannelCount returns the number of channels.
func (s *Signal) ChannelCount() int { return len(s.data) }

// Samples returns the per-channel sample count.
func (s *Signal) Samples() int { return len(s.data[0]) }

// Duration returns the recording length in seconds.
func (s *Signal) Duration() float64 {
	return float64(s.Samples()) / s.sampleRate
}

// ChannelNames returns a copy of the channel name list.
func (s *Signal) ChannelNames() []string {
	return append([]string(nil), s.names...)
}

// Channel returns the samples of channel i as a read-only view.
// The slice must not be modified.
func (s *Signal) Channel(i int) ([]float64, error) {
	if i < 0 || i >= len(s.data) {
		return nil, fmt.Errorf("%w: %d (signal has %d channels)", ErrInvalidChannel, i, len(s.data))
	}

	return s.data[i], nil
}

// Segment returns the samples of channel i covering [startS, endS).
// The time range is clamped to [0, Duration]; a clamped-empty range yields
// an empty slice. The returned slice is a read-only view.
func (s *Signal) Segment(i int, startS, endS float64) ([]float64, error) {
	ch, err := s.Channel(i)
	if err != nil {
		return nil, err
	}

	startS, endS = ClampRange(startS, endS, s.Duration())

	lo := int(startS * s.sampleRate)
	hi := int(endS * s.sampleRate)
	if hi > len(ch) {
		hi = len(ch)
	}
	if lo >= hi {
		return nil, nil
	}

	return ch[lo:hi], nil
}

// ClampRange clamps (startS, endS) to [0, durationS], collapsing an
// inverted range onto its start point.
func ClampRange(startS, endS, durationS float64) (float64, float64) {
	if startS < 0 {
		startS = 0
	}
	if endS > durationS {
		endS = durationS
	}
	if endS < startS {
		endS = startS
	}

	return startS, endS
}
