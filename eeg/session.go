package eeg

import (
	"fmt"
	"sync"

	"github.com/neuroview/eeg-dsp/analyze/bandpower"
	"github.com/neuroview/eeg-dsp/analyze/dfa"
	"github.com/neuroview/eeg-dsp/analyze/spike"
)

// Session holds the currently loaded (filtered) signal together with the
// channel, band, time-range, and window selection, and dispatches analysis
// requests against a consistent snapshot of that state.
//
// Mutators take the write lock; computations read-lock only long enough to
// copy the signal pointer and selection, then run on the copied view.
// Signals are immutable, so a concurrent Load can never tear an in-flight
// computation. Analysis itself is synchronous on the caller's goroutine;
// backgrounding, if wanted, belongs to the presentation layer.
type Session struct {
	mu sync.RWMutex

	sig     *Signal
	channel int
	band    Band
	startS  float64
	endS    float64
	window  bandpower.WindowConfig
}

// selection is the snapshot a computation runs against.
type selection struct {
	sig     *Signal
	channel int
	band    Band
	startS  float64
	endS    float64
	window  bandpower.WindowConfig
}

// NewSession returns an empty session. Computations fail with ErrNoSignal
// until Load is called.
func NewSession() *Session {
	return &Session{
		band:   Alpha,
		window: bandpower.DefaultWindowConfig(),
	}
}

// Load replaces the current signal and resets the selection to channel 0,
// the alpha band, and the full time range. Loading over an existing signal
// is always valid.
func (s *Session) Load(sig *Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sig = sig
	s.channel = 0
	s.band = Alpha
	s.startS = 0
	s.endS = sig.Duration()
}

// Signal returns the currently loaded signal, or nil.
func (s *Session) Signal() *Signal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sig
}

// SelectChannel switches analysis to channel i.
func (s *Session) SelectChannel(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sig == nil {
		return ErrNoSignal
	}
	if i < 0 || i >= s.sig.ChannelCount() {
		return fmt.Errorf("%w: %d (signal has %d channels)", ErrInvalidChannel, i, s.sig.ChannelCount())
	}

	s.channel = i

	return nil
}

// SelectBand switches analysis to the named registry band.
func (s *Session) SelectBand(name string) error {
	band, err := BandByName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.band = band

	return nil
}

// SelectTimeRange restricts analysis to [startS, endS), clamped to the
// signal duration.
func (s *Session) SelectTimeRange(startS, endS float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sig == nil {
		return ErrNoSignal
	}

	s.startS, s.endS = ClampRange(startS, endS, s.sig.Duration())

	return nil
}

// SetWindow configures the sliding analysis window.
func (s *Session) SetWindow(windowLengthS, stepS float64) error {
	if windowLengthS <= 0 || stepS <= 0 {
		return fmt.Errorf("%w: window=%gs step=%gs", bandpower.ErrInvalidWindow, windowLengthS, stepS)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.window.WindowLength = windowLengthS
	s.window.Step = stepS

	return nil
}

// Selection returns the current channel index, band, and time range.
func (s *Session) Selection() (channel int, band Band, startS, endS float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.channel, s.band, s.startS, s.endS
}

func (s *Session) snapshot() (selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sig == nil {
		return selection{}, ErrNoSignal
	}

	return selection{
		sig:     s.sig,
		channel: s.channel,
		band:    s.band,
		startS:  s.startS,
		endS:    s.endS,
		window:  s.window,
	}, nil
}

// ComputePower computes the band-power series of the current selection.
func (s *Session) ComputePower() (bandpower.Series, error) {
	sel, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	samples, err := sel.sig.Channel(sel.channel)
	if err != nil {
		return nil, err
	}

	cfg := sel.window
	cfg.Start = sel.startS
	cfg.End = sel.endS

	return bandpower.Compute(samples, sel.sig.SampleRate(), sel.band.LowHz, sel.band.HighHz, cfg)
}

// DetectSpikes computes the band-power series of the current selection and
// runs sigma-threshold spike detection on it. The applied threshold value
// is returned alongside the events.
func (s *Session) DetectSpikes(thresholdSigma float64) ([]spike.Event, float64, error) {
	powerSeries, err := s.ComputePower()
	if err != nil {
		return nil, 0, err
	}

	return spike.Detect(powerSeries, thresholdSigma)
}

// ComputeDFA runs detrended fluctuation analysis on the selected channel's
// filtered samples over the selected time range. maxScale <= 0 selects
// len(segment)/4.
func (s *Session) ComputeDFA(minScale, maxScale, nScales int) (dfa.Result, error) {
	sel, err := s.snapshot()
	if err != nil {
		return dfa.Result{}, err
	}

	segment, err := sel.sig.Segment(sel.channel, sel.startS, sel.endS)
	if err != nil {
		return dfa.Result{}, err
	}

	if maxScale <= 0 {
		maxScale = len(segment) / 4
	}

	return dfa.Estimate(segment, minScale, maxScale, nScales)
}

// BandPowers computes the total power of every registry band over the
// selected channel and time range.
func (s *Session) BandPowers() (map[string]float64, error) {
	sel, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	segment, err := sel.sig.Segment(sel.channel, sel.startS, sel.endS)
	if err != nil {
		return nil, err
	}
	if len(segment) == 0 {
		return nil, fmt.Errorf("eeg: empty time range %g-%gs", sel.startS, sel.endS)
	}

	out := make(map[string]float64, len(bandRegistry))
	for _, band := range bandRegistry {
		power, err := bandpower.Total(segment, sel.sig.SampleRate(), band.LowHz, band.HighHz)
		if err != nil {
			return nil, err
		}
		out[band.Name] = power
	}

	return out, nil
}
