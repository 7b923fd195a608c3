// Command eeganalyze analyzes EEG recordings: band power over time,
// sigma-threshold spike detection, and detrended fluctuation analysis.
//
// Usage:
//
//	eeganalyze info recording.edf
//	eeganalyze bands -c C3 recording.edf
//	eeganalyze power -b theta -s 10 -e 40 recording.edf
//	eeganalyze spikes --threshold 2.5 recording.edf
//	eeganalyze dfa --show-scales recording.txt
package main

import "github.com/neuroview/eeg-dsp/internal/cli"

func main() {
	cli.Execute()
}
