// Package config holds the analysis settings surface, backed by viper so
// flags, environment, and an optional config file resolve in the usual
// priority order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AppName is used for the config search path (~/.config/eeganalyze).
const AppName = "eeganalyze"

// Settings holds all analysis configuration.
type Settings struct {
	// Bandpass filter applied once at load.
	FilterLow   float64 `mapstructure:"filter_low"`
	FilterHigh  float64 `mapstructure:"filter_high"`
	FilterOrder int     `mapstructure:"filter_order"`

	// Power-line notch applied after the bandpass. 0 disables it; the
	// default band already ends below mains frequencies.
	NotchHz float64 `mapstructure:"notch_hz"`

	// Selection.
	Channel string  `mapstructure:"channel"` // index or channel name
	Band    string  `mapstructure:"band"`
	StartS  float64 `mapstructure:"start_s"`
	EndS    float64 `mapstructure:"end_s"` // 0 = full duration

	// Sliding-window power analysis.
	WindowLengthS float64 `mapstructure:"window_length_s"`
	StepS         float64 `mapstructure:"step_s"`

	// Spike detection.
	ThresholdSigma float64 `mapstructure:"threshold_sigma"`

	// DFA.
	DFAMinScale int `mapstructure:"dfa_min_scale"`
	DFAMaxScale int `mapstructure:"dfa_max_scale"` // 0 = segment length / 4
	DFANScales  int `mapstructure:"dfa_n_scales"`

	// Text import.
	TextSampleRate float64 `mapstructure:"text_sample_rate"`

	// Output.
	LogLevel string `mapstructure:"log_level"`
}

// SetDefaults registers the default value for every settings key.
func SetDefaults() {
	viper.SetDefault("filter_low", 0.5)
	viper.SetDefault("filter_high", 40.0)
	viper.SetDefault("filter_order", 4)
	viper.SetDefault("notch_hz", 0.0)
	viper.SetDefault("channel", "0")
	viper.SetDefault("band", "alpha")
	viper.SetDefault("start_s", 0.0)
	viper.SetDefault("end_s", 0.0)
	viper.SetDefault("window_length_s", 2.0)
	viper.SetDefault("step_s", 0.5)
	viper.SetDefault("threshold_sigma", 2.0)
	viper.SetDefault("dfa_min_scale", 4)
	viper.SetDefault("dfa_max_scale", 0)
	viper.SetDefault("dfa_n_scales", 20)
	viper.SetDefault("text_sample_rate", 500.0)
	viper.SetDefault("log_level", "info")
}

// Init sets defaults and reads an optional config file from the current
// directory or the user config directory. A missing file is not an error.
func Init() error {
	SetDefaults()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(configDir, AppName))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	return nil
}

// Load unmarshals the resolved configuration into a Settings value and
// validates the ranges that have hard constraints.
func Load() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}

	if s.ThresholdSigma < 1.0 || s.ThresholdSigma > 5.0 {
		return Settings{}, fmt.Errorf("config: threshold_sigma %g outside [1, 5]", s.ThresholdSigma)
	}
	if s.WindowLengthS <= 0 || s.StepS <= 0 {
		return Settings{}, fmt.Errorf("config: window_length_s and step_s must be > 0")
	}
	if s.NotchHz < 0 {
		return Settings{}, fmt.Errorf("config: notch_hz %g must be >= 0", s.NotchHz)
	}

	return s, nil
}
