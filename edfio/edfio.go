// Package edfio loads EEG recordings into eeg.Signal values. EDF/EDF+
// containers are read through the OpenPSG EDF library; plain-text exports
// (one row per sample, one column per channel) are parsed directly.
package edfio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/OpenPSG/edf"

	"github.com/neuroview/eeg-dsp/eeg"
)

// ErrUnsupportedFormat reports a file extension this package cannot load.
var ErrUnsupportedFormat = errors.New("edfio: unsupported file format")

// DefaultTextSampleRate is assumed for text exports, which carry no rate
// metadata. 500 Hz matches the recorders the original files came from.
const DefaultTextSampleRate = 500.0

// Load reads an EEG recording from path, dispatching on the file
// extension (.edf, .txt, .csv). Text files are assumed to be sampled at
// DefaultTextSampleRate; use LoadText directly to override.
func Load(path string) (*eeg.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("edfio: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".edf":
		return LoadEDF(f)
	case ".txt", ".csv":
		return LoadText(f, DefaultTextSampleRate)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadEDF reads all data channels of an EDF/EDF+ stream into a Signal.
//
// Annotation signals are skipped, as are signals whose sampling rate
// differs from the first data signal (a Signal holds one common rate).
func LoadEDF(r io.ReadSeeker) (*eeg.Signal, error) {
	info, err := readInfo(r)
	if err != nil {
		return nil, err
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("edfio: %w", err)
	}

	rdr, err := edf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("edfio: %w", err)
	}

	var (
		data  [][]float64
		names []string
		rate  float64
	)

	for i := range info.labels {
		if isAnnotation(info.labels[i]) || info.samplesPerRecord[i] == 0 {
			continue
		}

		chRate := float64(info.samplesPerRecord[i]) / info.recordDurationS
		if rate == 0 {
			rate = chRate
		} else if chRate != rate {
			continue // mixed-rate channel, not representable in one Signal
		}

		samples, err := readChannel(rdr, i, info.records*info.samplesPerRecord[i])
		if err != nil {
			return nil, err
		}

		data = append(data, samples)
		names = append(names, info.labels[i])
	}

	if len(data) == 0 {
		return nil, errors.New("edfio: no data signals in file")
	}

	trimToShortest(data)

	return eeg.NewSignal(data, rate, names)
}

// readChannel drains signal index i through the library's calibrated
// sample reader. A short read (truncated final record) is not an error;
// channels are trimmed to a common length afterwards.
func readChannel(rdr *edf.Reader, i, total int) ([]float64, error) {
	sr, err := rdr.Signal(i)
	if err != nil {
		return nil, fmt.Errorf("edfio: signal %d: %w", i, err)
	}

	samples := make([]float64, total)
	n := 0
	for n < total {
		m, err := sr.Read(samples[n:])
		n += m
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("edfio: signal %d: %w", i, err)
		}
	}

	return samples[:n], nil
}

func trimToShortest(data [][]float64) {
	shortest := len(data[0])
	for _, ch := range data[1:] {
		if len(ch) < shortest {
			shortest = len(ch)
		}
	}
	for i := range data {
		data[i] = data[i][:shortest]
	}
}

// LoadText parses a whitespace- or comma-separated text export: one row
// per sample, one column per channel. Lines starting with '#' are skipped.
func LoadText(r io.Reader, sampleRate float64) (*eeg.Signal, error) {
	var data [][]float64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		if data == nil {
			data = make([][]float64, len(fields))
		}
		if len(fields) != len(data) {
			return nil, fmt.Errorf("edfio: row with %d columns, want %d", len(fields), len(data))
		}

		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("edfio: bad sample %q: %w", field, err)
			}
			data[i] = append(data[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("edfio: %w", err)
	}

	if data == nil {
		return nil, errors.New("edfio: empty text file")
	}

	return eeg.NewSignal(data, sampleRate, nil)
}

func isAnnotation(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), "EDF Annotations")
}
