package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/neuroview/eeg-dsp/dsp/filter/bandpass"
	"github.com/neuroview/eeg-dsp/dsp/filter/notch"
	"github.com/neuroview/eeg-dsp/edfio"
	"github.com/neuroview/eeg-dsp/eeg"
	"github.com/neuroview/eeg-dsp/internal/config"
	"github.com/neuroview/eeg-dsp/internal/logger"
)

// loadRecording reads a recording, honoring the configured sample rate
// for text exports (EDF files carry their own).
func loadRecording(path string, textRate float64) (*eeg.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".edf":
		return edfio.LoadEDF(f)
	case ".txt", ".csv":
		return edfio.LoadText(f, textRate)
	default:
		return nil, fmt.Errorf("%w: %q", edfio.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// newSession runs the shared front half of every subcommand: load,
// bandpass-filter, and apply the configured selection.
func newSession(path string) (*eeg.Session, config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, config.Settings{}, err
	}

	sig, err := loadRecording(path, settings.TextSampleRate)
	if err != nil {
		return nil, settings, err
	}
	logger.Info("loaded %s: %d channels, %g Hz, %.1f s",
		filepath.Base(path), sig.ChannelCount(), sig.SampleRate(), sig.Duration())

	filtered, err := bandpass.Apply(sig, settings.FilterLow, settings.FilterHigh, settings.FilterOrder)
	if err != nil {
		return nil, settings, err
	}
	logger.Debug("bandpass %g-%g Hz, order %d", settings.FilterLow, settings.FilterHigh, settings.FilterOrder)

	if settings.NotchHz > 0 {
		filtered, err = notch.Apply(filtered, settings.NotchHz, notch.DefaultQ)
		if err != nil {
			return nil, settings, err
		}
		logger.Debug("notch %g Hz, Q %g", settings.NotchHz, notch.DefaultQ)
	}

	sess := eeg.NewSession()
	sess.Load(filtered)

	channel, err := resolveChannel(settings.Channel, filtered.ChannelNames())
	if err != nil {
		return nil, settings, err
	}
	if err := sess.SelectChannel(channel); err != nil {
		return nil, settings, err
	}
	if err := sess.SelectBand(settings.Band); err != nil {
		return nil, settings, err
	}

	endS := settings.EndS
	if endS == 0 {
		endS = filtered.Duration()
	}
	if err := sess.SelectTimeRange(settings.StartS, endS); err != nil {
		return nil, settings, err
	}
	if err := sess.SetWindow(settings.WindowLengthS, settings.StepS); err != nil {
		return nil, settings, err
	}

	return sess, settings, nil
}

// resolveChannel accepts either a numeric index or a channel label
// (case-insensitive).
func resolveChannel(spec string, names []string) (int, error) {
	if i, err := strconv.Atoi(spec); err == nil {
		return i, nil
	}

	for i, name := range names {
		if strings.EqualFold(name, spec) {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: no channel named %q", eeg.ErrInvalidChannel, spec)
}
