package edfio

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// fileInfo is the subset of EDF header metadata this package needs to
// size and label channels. The EDF library decodes sample data; its reader
// does not expose the parsed header, so the fixed-layout fields are read
// here directly (EDF headers are plain ASCII at fixed offsets).
type fileInfo struct {
	records          int
	recordDurationS  float64
	labels           []string
	samplesPerRecord []int
}

// EDF fixed header layout (bytes).
const (
	mainHeaderSize    = 256
	labelFieldSize    = 16
	perSignalHeaderSz = 16 + 80 + 8 + 8 + 8 + 8 + 8 + 80 // fields before samples-per-record
	sprFieldSize      = 8
)

func readInfo(r io.ReadSeeker) (*fileInfo, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("edfio: %w", err)
	}

	head := make([]byte, mainHeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("edfio: reading header: %w", err)
	}

	records, err := headerInt(head[236:244])
	if err != nil {
		return nil, fmt.Errorf("edfio: data record count: %w", err)
	}

	duration, err := headerFloat(head[244:252])
	if err != nil || duration <= 0 {
		return nil, fmt.Errorf("edfio: bad data record duration %q", strings.TrimSpace(string(head[244:252])))
	}

	signalCount, err := headerInt(head[252:256])
	if err != nil || signalCount <= 0 {
		return nil, fmt.Errorf("edfio: bad signal count: %w", err)
	}

	info := &fileInfo{
		records:          records,
		recordDurationS:  duration,
		labels:           make([]string, signalCount),
		samplesPerRecord: make([]int, signalCount),
	}

	labels := make([]byte, signalCount*labelFieldSize)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, fmt.Errorf("edfio: reading signal labels: %w", err)
	}
	for i := range info.labels {
		info.labels[i] = strings.TrimSpace(string(labels[i*labelFieldSize : (i+1)*labelFieldSize]))
	}

	sprOffset := int64(mainHeaderSize + signalCount*perSignalHeaderSz)
	if _, err := r.Seek(sprOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("edfio: %w", err)
	}

	spr := make([]byte, signalCount*sprFieldSize)
	if _, err := io.ReadFull(r, spr); err != nil {
		return nil, fmt.Errorf("edfio: reading samples-per-record: %w", err)
	}
	for i := range info.samplesPerRecord {
		v, err := headerInt(spr[i*sprFieldSize : (i+1)*sprFieldSize])
		if err != nil {
			return nil, fmt.Errorf("edfio: signal %d samples-per-record: %w", i, err)
		}
		info.samplesPerRecord[i] = v
	}

	return info, nil
}

func headerInt(b []byte) (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(b)))
}

func headerFloat(b []byte) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
}
