// Package catalogue holds the set of standard sample rates a resampled
// waveform may target and picks the smallest one that preserves a given
// bandwidth.
package catalogue

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrEmpty is returned when a catalogue is built from no rates.
	ErrEmpty = errors.New("rate catalogue is empty")
	// ErrNonPositive is returned when a catalogue entry is zero or negative.
	ErrNonPositive = errors.New("rate catalogue entries must be positive")
)

// Standard rates.
const (
	Rate8k  = 8000
	Rate12k = 12000
	Rate16k = 16000
	Rate22k = 22050
	Rate32k = 32000
	Rate44k = 44100
	Rate48k = 48000
)

// DefaultRates returns the default catalogue entries in ascending order.
func DefaultRates() []int {
	return []int{Rate8k, Rate12k, Rate16k, Rate22k, Rate32k, Rate44k, Rate48k}
}

// Catalogue is an immutable ascending set of sample rates.
type Catalogue struct {
	rates []int
}

// New builds a catalogue from rates in any order. Duplicates are removed.
func New(rates []int) (*Catalogue, error) {
	if len(rates) == 0 {
		return nil, ErrEmpty
	}
	for _, r := range rates {
		if r <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrNonPositive, r)
		}
	}

	sorted := slices.Clone(rates)
	slices.Sort(sorted)
	return &Catalogue{rates: slices.Compact(sorted)}, nil
}

// Rates returns a copy of the entries in ascending order.
func (c *Catalogue) Rates() []int {
	return slices.Clone(c.rates)
}

// Max returns the largest entry.
func (c *Catalogue) Max() int {
	return c.rates[len(c.rates)-1]
}

// Select returns the first entry that is at least ceil(2*bandwidth), or the
// largest entry when none is. Negative and NaN bandwidths count as 0.
func (c *Catalogue) Select(bandwidth float64) int {
	if !(bandwidth > 0) {
		return c.rates[0]
	}
	required := math.Ceil(2 * bandwidth)

	i, _ := slices.BinarySearchFunc(c.rates, required, func(rate int, target float64) int {
		switch {
		case float64(rate) < target:
			return -1
		case float64(rate) > target:
			return 1
		default:
			return 0
		}
	})
	if i == len(c.rates) {
		return c.Max()
	}
	return c.rates[i]
}
