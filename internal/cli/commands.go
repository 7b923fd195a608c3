package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/neuroview/eeg-dsp/eeg"
	"github.com/neuroview/eeg-dsp/internal/config"
	"github.com/neuroview/eeg-dsp/internal/logger"
)

var infoCmd = &cobra.Command{
	Use:   "info <recording>",
	Short: "Print recording metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}

		sig, err := loadRecording(args[0], settings.TextSampleRate)
		if err != nil {
			return err
		}

		fmt.Printf("channels:    %d\n", sig.ChannelCount())
		fmt.Printf("sample rate: %g Hz\n", sig.SampleRate())
		fmt.Printf("samples:     %d per channel\n", sig.Samples())
		fmt.Printf("duration:    %.2f s\n", sig.Duration())

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "\nIndex\tLabel\n")
		for i, name := range sig.ChannelNames() {
			fmt.Fprintf(tw, "%d\t%s\n", i, name)
		}

		return tw.Flush()
	},
}

var bandsCmd = &cobra.Command{
	Use:   "bands <recording>",
	Short: "Print absolute and relative power of every frequency band",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, err := newSession(args[0])
		if err != nil {
			return err
		}

		powers, err := sess.BandPowers()
		if err != nil {
			return err
		}

		var total float64
		for _, p := range powers {
			total += p
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Band\tRange [Hz]\tPower\tRelative\n")
		for _, band := range eeg.Bands() {
			power := powers[band.Name]
			rel := 0.0
			if total > 0 {
				rel = power / total
			}
			fmt.Fprintf(tw, "%s\t%g-%g\t%.6g\t%.1f%%\n",
				band.Name, band.LowHz, band.HighHz, power, 100*rel)
		}

		return tw.Flush()
	},
}

var powerCmd = &cobra.Command{
	Use:   "power <recording>",
	Short: "Print the sliding-window band power series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, err := newSession(args[0])
		if err != nil {
			return err
		}

		series, err := sess.ComputePower()
		if err != nil {
			return err
		}

		_, band, startS, endS := sess.Selection()
		logger.Info("%s band power, %d windows over %.1f-%.1f s", band.Name, len(series), startS, endS)

		fmt.Println("time_s,power")
		for _, p := range series {
			fmt.Printf("%.3f,%.6g\n", p.Time, p.Power)
		}

		return nil
	},
}

var spikesCmd = &cobra.Command{
	Use:   "spikes <recording>",
	Short: "Detect band-power spikes above a sigma threshold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, settings, err := newSession(args[0])
		if err != nil {
			return err
		}

		events, threshold, err := sess.DetectSpikes(settings.ThresholdSigma)
		if err != nil {
			return err
		}

		_, band, _, _ := sess.Selection()
		fmt.Printf("%d spikes in %s band (threshold %.6g at %.1f sigma)\n",
			len(events), band.Name, threshold, settings.ThresholdSigma)

		if len(events) == 0 {
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Time [s]\tPower\tThreshold\n")
		for _, ev := range events {
			fmt.Fprintf(tw, "%.3f\t%.6g\t%.6g\n", ev.Time, ev.Power, ev.Threshold)
		}

		return tw.Flush()
	},
}

var dfaCmd = &cobra.Command{
	Use:   "dfa <recording>",
	Short: "Estimate the detrended fluctuation scaling exponent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, settings, err := newSession(args[0])
		if err != nil {
			return err
		}

		result, err := sess.ComputeDFA(settings.DFAMinScale, settings.DFAMaxScale, settings.DFANScales)
		if err != nil {
			return err
		}

		fmt.Printf("alpha: %.4f (%s)\n", result.Alpha, interpretAlpha(result.Alpha))

		if showScales, _ := cmd.Flags().GetBool("show-scales"); showScales {
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "\nScale\tFluctuation\n")
			for _, p := range result.Points {
				fmt.Fprintf(tw, "%d\t%.6g\n", p.Scale, p.Fluctuation)
			}
			return tw.Flush()
		}

		return nil
	},
}

// interpretAlpha gives the conventional reading of a DFA exponent.
func interpretAlpha(alpha float64) string {
	switch {
	case alpha < 0.5:
		return "anti-correlated"
	case alpha < 0.8:
		return "uncorrelated, white-noise-like"
	case alpha < 1.2:
		return "long-range correlated, 1/f-like"
	default:
		return "non-stationary, random-walk-like"
	}
}

func init() {
	spikesCmd.Flags().Float64("threshold", 2.0, "spike threshold in standard deviations")
	viper.BindPFlag("threshold_sigma", spikesCmd.Flags().Lookup("threshold"))

	dfaCmd.Flags().Int("min-scale", 4, "smallest DFA window in samples")
	dfaCmd.Flags().Int("max-scale", 0, "largest DFA window in samples (0 = length/4)")
	dfaCmd.Flags().Int("scales", 20, "number of log-spaced DFA scales")
	dfaCmd.Flags().Bool("show-scales", false, "print the per-scale fluctuation table")
	viper.BindPFlag("dfa_min_scale", dfaCmd.Flags().Lookup("min-scale"))
	viper.BindPFlag("dfa_max_scale", dfaCmd.Flags().Lookup("max-scale"))
	viper.BindPFlag("dfa_n_scales", dfaCmd.Flags().Lookup("scales"))

	rootCmd.AddCommand(infoCmd, bandsCmd, powerCmd, spikesCmd, dfaCmd)
}
