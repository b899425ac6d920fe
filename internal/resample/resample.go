// Package resample converts sampled channels between rates. Two methods
// are provided: an exact Fourier-domain method for whole buffers and a
// band-limited Kaiser-windowed sinc interpolator.
package resample

import (
	"errors"
	"fmt"
	"math"
)

// Method selects the conversion algorithm.
type Method int

const (
	// MethodFFT truncates or zero-pads the spectrum of the whole channel.
	MethodFFT Method = iota
	// MethodSinc interpolates with a tabulated windowed-sinc kernel.
	MethodSinc
)

var (
	// ErrEmptyInput is returned for channels with no samples.
	ErrEmptyInput = errors.New("empty input")
	// ErrZeroOutput is returned when the converted length rounds to zero.
	ErrZeroOutput = errors.New("output length rounds to zero")
	// ErrInvalidRate is returned for non-positive or non-finite rates.
	ErrInvalidRate = errors.New("invalid sample rate")
)

// OutputLength returns round(n*target/source), rounding halves away from
// zero.
func OutputLength(n int, source, target float64) int {
	return int(math.Round(float64(n) * target / source))
}

// Options configures a Channels call.
type Options struct {
	Method  Method
	Quality Quality
}

// Channels converts every channel from source to target Hz. All channels
// must have the same length; each is processed independently and the input
// is never modified. Equal rates return the input slice itself.
func Channels(channels [][]float64, source, target float64, opts Options) ([][]float64, error) {
	if !validRate(source) || !validRate(target) {
		return nil, fmt.Errorf("%w: %v -> %v", ErrInvalidRate, source, target)
	}
	if len(channels) == 0 || len(channels[0]) == 0 {
		return nil, ErrEmptyInput
	}
	if source == target {
		return channels, nil
	}

	n := len(channels[0])
	m := OutputLength(n, source, target)
	if m == 0 {
		return nil, fmt.Errorf("%w: %d samples at %v Hz -> %v Hz", ErrZeroOutput, n, source, target)
	}

	out := make([][]float64, len(channels))
	switch opts.Method {
	case MethodFFT:
		for c, ch := range channels {
			out[c] = FFT(ch, m)
		}
	case MethodSinc:
		s, err := NewSinc(source, target, opts.Quality)
		if err != nil {
			return nil, err
		}
		for c, ch := range channels {
			out[c] = s.Process(ch, m)
		}
	default:
		return nil, fmt.Errorf("unknown resampling method %d", opts.Method)
	}
	return out, nil
}

func validRate(r float64) bool {
	return r > 0 && !math.IsInf(r, 0)
}
