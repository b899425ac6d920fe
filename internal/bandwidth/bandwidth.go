// Package bandwidth estimates the highest significant frequency of a
// magnitude spectrum.
package bandwidth

import (
	"fmt"
	"math"
	"slices"

	"github.com/tphakala/go-adaptive-resampler/internal/spectrum"
	"gonum.org/v1/gonum/floats"
)

// Policy selects the significance rule.
type Policy int

const (
	// EnergyPercentile reports the highest bin whose share of the total
	// magnitude reaches the configured percentile of all shares.
	EnergyPercentile Policy = iota
	// PeakMagnitude reports the frequency of the strongest bin.
	PeakMagnitude
)

// DefaultPercentile is the threshold used when none is configured.
const DefaultPercentile = 98.0

// Estimate is a bandwidth estimate in Hz.
type Estimate struct {
	Frequency float64
	// Fallback is set when the spectrum carried no usable energy and the
	// declared sample rate was reported instead.
	Fallback bool
}

// Estimator applies one policy with a fixed percentile threshold.
type Estimator struct {
	Policy     Policy
	Percentile float64
}

// Estimate returns the bandwidth of spec. declaredRate is only used as the
// fallback of the percentile policy. spec is never modified.
func (e Estimator) Estimate(spec spectrum.Spectrum, declaredRate float64) (Estimate, error) {
	switch e.Policy {
	case EnergyPercentile:
		p := e.Percentile
		if p == 0 {
			p = DefaultPercentile
		}
		return Percentile(spec, declaredRate, p), nil
	case PeakMagnitude:
		return Peak(spec), nil
	default:
		return Estimate{}, fmt.Errorf("unknown significance policy %d", e.Policy)
	}
}

// Percentile normalizes every magnitude of every frame by the grand total
// and returns the highest frequency whose normalized magnitude is at least
// the p-th percentile of the pooled normalized values.
//
// A zero or non-finite total, or a spectrum where no bin qualifies, yields
// declaredRate with Fallback set.
func Percentile(spec spectrum.Spectrum, declaredRate, p float64) Estimate {
	fallback := Estimate{Frequency: declaredRate, Fallback: true}

	var total float64
	for _, frame := range spec.Frames {
		total += floats.Sum(frame)
	}
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return fallback
	}

	pooled := make([]float64, 0, len(spec.Frames)*spec.NumBins())
	for _, frame := range spec.Frames {
		for _, m := range frame {
			pooled = append(pooled, m/total)
		}
	}
	if len(pooled) == 0 {
		return fallback
	}
	slices.Sort(pooled)
	threshold := quantile(pooled, p/100)

	for k := spec.NumBins() - 1; k >= 0; k-- {
		for _, frame := range spec.Frames {
			if frame[k]/total >= threshold {
				return Estimate{Frequency: spec.Frequencies[k]}
			}
		}
	}
	return fallback
}

// quantile returns the q-quantile of sorted using linear interpolation
// between the order statistics at position q*(n-1).
func quantile(sorted []float64, q float64) float64 {
	q = math.Max(0, math.Min(1, q))
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Peak returns the frequency of the largest magnitude across all frames.
// Ties resolve to the earliest frame and the lowest bin, so silence
// reports 0 Hz.
func Peak(spec spectrum.Spectrum) Estimate {
	best, bestMag := 0, math.Inf(-1)
	for _, frame := range spec.Frames {
		if len(frame) == 0 {
			continue
		}
		k := floats.MaxIdx(frame)
		if frame[k] > bestMag {
			best, bestMag = k, frame[k]
		}
	}
	if len(spec.Frequencies) == 0 {
		return Estimate{}
	}
	return Estimate{Frequency: spec.Frequencies[best]}
}
