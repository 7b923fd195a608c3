package eeg

import (
	"fmt"
	"strings"
)

// Band is a named frequency interval [LowHz, HighHz).
type Band struct {
	Name   string
	LowHz  float64
	HighHz float64
}

// Standard EEG frequency bands.
var (
	Delta = Band{Name: "delta", LowHz: 0.5, HighHz: 4}
	Theta = Band{Name: "theta", LowHz: 4, HighHz: 8}
	Alpha = Band{Name: "alpha", LowHz: 8, HighHz: 13}
	Beta  = Band{Name: "beta", LowHz: 13, HighHz: 30}
	Gamma = Band{Name: "gamma", LowHz: 30, HighHz: 100}
)

var bandRegistry = []Band{Delta, Theta, Alpha, Beta, Gamma}

// Bands returns the standard band registry in ascending frequency order.
func Bands() []Band {
	return append([]Band(nil), bandRegistry...)
}

// BandByName looks up a standard band by name, case-insensitively.
func BandByName(name string) (Band, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, b := range bandRegistry {
		if b.Name == key {
			return b, nil
		}
	}

	return Band{}, fmt.Errorf("%w: %q", ErrUnknownBand, name)
}

// String returns the band formatted as "name (low-high Hz)".
func (b Band) String() string {
	return fmt.Sprintf("%s (%g-%g Hz)", b.Name, b.LowHz, b.HighHz)
}
