// Package cli implements the eeganalyze command tree. Every subcommand
// takes a recording file, runs the load/filter/select pipeline, and
// prints its analysis to stdout.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/neuroview/eeg-dsp/internal/config"
	"github.com/neuroview/eeg-dsp/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "eeganalyze",
	Short: "EEG band power, spike, and DFA analysis",
	Long: `Loads an EEG recording (EDF or text export), applies a zero-phase
Butterworth bandpass filter, and runs band power, spike detection, or
detrended fluctuation analysis on a selected channel and time range.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().Float64("filter-low", 0.5, "bandpass low edge in Hz")
	rootCmd.PersistentFlags().Float64("filter-high", 40, "bandpass high edge in Hz")
	rootCmd.PersistentFlags().Int("filter-order", 4, "Butterworth order per band edge")
	rootCmd.PersistentFlags().Float64("notch", 0, "power-line notch frequency in Hz (0 = off)")
	rootCmd.PersistentFlags().StringP("channel", "c", "0", "channel index or label")
	rootCmd.PersistentFlags().StringP("band", "b", "alpha", "frequency band (delta, theta, alpha, beta, gamma)")
	rootCmd.PersistentFlags().Float64P("start", "s", 0, "selection start in seconds")
	rootCmd.PersistentFlags().Float64P("end", "e", 0, "selection end in seconds (0 = full duration)")
	rootCmd.PersistentFlags().Float64("window", 2.0, "sliding window length in seconds")
	rootCmd.PersistentFlags().Float64("step", 0.5, "sliding window step in seconds")
	rootCmd.PersistentFlags().Float64("sample-rate", 500, "sample rate assumed for text files in Hz")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.BindPFlag("filter_low", rootCmd.PersistentFlags().Lookup("filter-low"))
	viper.BindPFlag("filter_high", rootCmd.PersistentFlags().Lookup("filter-high"))
	viper.BindPFlag("filter_order", rootCmd.PersistentFlags().Lookup("filter-order"))
	viper.BindPFlag("notch_hz", rootCmd.PersistentFlags().Lookup("notch"))
	viper.BindPFlag("channel", rootCmd.PersistentFlags().Lookup("channel"))
	viper.BindPFlag("band", rootCmd.PersistentFlags().Lookup("band"))
	viper.BindPFlag("start_s", rootCmd.PersistentFlags().Lookup("start"))
	viper.BindPFlag("end_s", rootCmd.PersistentFlags().Lookup("end"))
	viper.BindPFlag("window_length_s", rootCmd.PersistentFlags().Lookup("window"))
	viper.BindPFlag("step_s", rootCmd.PersistentFlags().Lookup("step"))
	viper.BindPFlag("text_sample_rate", rootCmd.PersistentFlags().Lookup("sample-rate"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(viper.GetString("log_level"))
}
