package edfio_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/OpenPSG/edf"
	"github.com/stretchr/testify/require"

	"github.com/neuroview/eeg-dsp/edfio"
	"github.com/neuroview/eeg-dsp/internal/testutil"
)

// writeTestEDF writes an EDF file with the given per-channel samples, one
// second per data record at 500 Hz, and returns its path.
func writeTestEDF(t *testing.T, labels []string, data [][]float64) string {
	t.Helper()

	const samplesPerRecord = 500

	path := filepath.Join(t.TempDir(), "test.edf")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	signals := make([]edf.SignalHeader, len(labels))
	for i, label := range labels {
		signals[i] = edf.SignalHeader{
			Label:             label,
			PhysicalDimension: "uV",
			PhysicalMin:       -100,
			PhysicalMax:       100,
			DigitalMin:        -32768,
			DigitalMax:        32767,
			SamplesPerRecord:  samplesPerRecord,
		}
	}

	w, err := edf.Create(f, edf.Header{
		Version:            edf.Version0,
		PatientID:          "X",
		RecordingID:        "test recording",
		StartTime:          time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		DataRecordDuration: time.Second,
		SignalCount:        len(labels),
		Signals:            signals,
	})
	require.NoError(t, err)

	records := len(data[0]) / samplesPerRecord
	for r := 0; r < records; r++ {
		record := make([][]float64, len(data))
		for ch := range data {
			record[ch] = data[ch][r*samplesPerRecord : (r+1)*samplesPerRecord]
		}
		require.NoError(t, w.WriteRecord(record))
	}
	require.NoError(t, w.Close())

	return path
}

func TestLoadEDFRoundTrip(t *testing.T) {
	data := [][]float64{
		testutil.DeterministicSine(10, 500, 50, 1500),
		testutil.DeterministicSine(6, 500, 20, 1500),
	}
	path := writeTestEDF(t, []string{"C3", "C4"}, data)

	sig, err := edfio.Load(path)
	require.NoError(t, err)

	require.Equal(t, 2, sig.ChannelCount())
	require.Equal(t, 500.0, sig.SampleRate())
	require.Equal(t, 1500, sig.Samples())
	require.Equal(t, []string{"C3", "C4"}, sig.ChannelNames())

	// 16-bit quantization over a 200 uV range stays well under 0.01 uV.
	for ch := range data {
		got, err := sig.Channel(ch)
		require.NoError(t, err)
		for i := range data[ch] {
			require.InDelta(t, data[ch][i], got[i], 0.01, "channel %d sample %d", ch, i)
		}
	}
}

func TestLoadEDFSkipsAnnotationChannel(t *testing.T) {
	data := [][]float64{
		testutil.DeterministicSine(10, 500, 50, 1000),
		make([]float64, 1000), // annotation placeholder
	}
	path := writeTestEDF(t, []string{"C3", "EDF Annotations"}, data)

	sig, err := edfio.Load(path)
	require.NoError(t, err)

	require.Equal(t, 1, sig.ChannelCount())
	require.Equal(t, []string{"C3"}, sig.ChannelNames())
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recording.dat")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3\n"), 0o644))

	_, err := edfio.Load(path)
	require.ErrorIs(t, err, edfio.ErrUnsupportedFormat)
}

func TestLoadEDFGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.edf")
	require.NoError(t, os.WriteFile(path, []byte("not an edf file"), 0o644))

	_, err := edfio.Load(path)
	require.Error(t, err)
}

func TestLoadTextWhitespace(t *testing.T) {
	input := "# exported EEG\n" +
		"1.0\t2.0\n" +
		"\n" +
		"3.0\t4.0\n" +
		"5.0\t6.0\n"

	sig, err := edfio.LoadText(strings.NewReader(input), 500)
	require.NoError(t, err)

	require.Equal(t, 2, sig.ChannelCount())
	require.Equal(t, 3, sig.Samples())
	require.Equal(t, 500.0, sig.SampleRate())

	ch0, err := sig.Channel(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3, 5}, ch0)
}

func TestLoadTextComma(t *testing.T) {
	sig, err := edfio.LoadText(strings.NewReader("0.5,-1.5\n2.5,3.5\n"), 250)
	require.NoError(t, err)

	require.Equal(t, 2, sig.ChannelCount())
	ch1, err := sig.Channel(1)
	require.NoError(t, err)
	require.Equal(t, []float64{-1.5, 3.5}, ch1)
}

func TestLoadTextColumnMismatch(t *testing.T) {
	_, err := edfio.LoadText(strings.NewReader("1 2\n3 4 5\n"), 500)
	require.Error(t, err)
}

func TestLoadTextBadSample(t *testing.T) {
	_, err := edfio.LoadText(strings.NewReader("1 2\nx 4\n"), 500)
	require.Error(t, err)
}

func TestLoadTextEmpty(t *testing.T) {
	_, err := edfio.LoadText(strings.NewReader("# only a comment\n"), 500)
	require.Error(t, err)
}

func TestLoadTextSineSurvives(t *testing.T) {
	samples := testutil.DeterministicSine(10, 500, 1.0, 500)

	var b strings.Builder
	for _, v := range samples {
		b.WriteString(strconv.FormatFloat(v, 'g', 17, 64))
		b.WriteByte('\n')
	}

	sig, err := edfio.LoadText(strings.NewReader(b.String()), 500)
	require.NoError(t, err)

	got, err := sig.Channel(0)
	require.NoError(t, err)
	for i := range samples {
		require.InDelta(t, samples[i], got[i], 1e-9)
	}
}
