// Package spectrum turns a multi-channel waveform into non-negative
// magnitude spectra, either over the whole signal or over short windowed
// frames.
package spectrum

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-adaptive-resampler/internal/transform"
)

// Mode selects how the signal is divided before transforming.
type Mode int

const (
	// WholeSignal transforms the entire signal at once.
	WholeSignal Mode = iota
	// Framed transforms Hann-windowed frames and keeps one magnitude
	// vector per frame.
	Framed
)

// Downmix selects how channels are combined into the analyzed signal.
type Downmix int

const (
	// DownmixAverage takes the arithmetic mean of all channels.
	DownmixAverage Downmix = iota
	// DownmixFirstChannel analyzes channel 0 only.
	DownmixFirstChannel
)

// Minimum analysis frame geometry.
const (
	MinFrameSize = 2
	MinHopSize   = 1
)

var (
	errNoChannels    = errors.New("no channels")
	errBadRate       = errors.New("sample rate must be positive")
	errFrameGeometry = errors.New("invalid frame geometry")
)

// Spectrum is a set of magnitude vectors sharing one frequency axis.
type Spectrum struct {
	// Frequencies in Hz, ascending, one per bin (N/2+1 bins for transform
	// length N).
	Frequencies []float64

	// Frames holds one magnitude vector per analysis window. Whole-signal
	// analysis produces exactly one frame.
	Frames [][]float64
}

// NumBins returns the number of frequency bins.
func (s Spectrum) NumBins() int {
	return len(s.Frequencies)
}

// Analyzer computes spectra with a fixed configuration. The zero value
// performs whole-signal analysis of the channel average.
type Analyzer struct {
	Mode      Mode
	Downmix   Downmix
	FrameSize int
	HopSize   int
}

// Analyze reduces channels to one signal and returns its spectrum. The input
// is never modified.
func (a Analyzer) Analyze(channels [][]float64, rate float64) (Spectrum, error) {
	if len(channels) == 0 {
		return Spectrum{}, errNoChannels
	}
	if !(rate > 0) {
		return Spectrum{}, fmt.Errorf("%w: %v", errBadRate, rate)
	}

	mono := Mix(channels, a.Downmix)

	switch a.Mode {
	case WholeSignal:
		return Whole(mono, rate), nil
	case Framed:
		if a.FrameSize < MinFrameSize || a.HopSize < MinHopSize {
			return Spectrum{}, fmt.Errorf("%w: frame=%d hop=%d", errFrameGeometry, a.FrameSize, a.HopSize)
		}
		return Frames(mono, rate, a.FrameSize, a.HopSize), nil
	default:
		return Spectrum{}, fmt.Errorf("unknown analysis mode %d", a.Mode)
	}
}

// Mix combines channels into a single signal. A single channel is returned
// as-is; callers must not modify the result.
func Mix(channels [][]float64, mode Downmix) []float64 {
	if len(channels) == 1 || mode == DownmixFirstChannel {
		return channels[0]
	}

	mono := make([]float64, len(channels[0]))
	for _, ch := range channels {
		floats.Add(mono, ch)
	}
	floats.Scale(1/float64(len(channels)), mono)
	return mono
}

// Whole returns the single-frame magnitude spectrum of the full signal
// without windowing.
func Whole(signal []float64, rate float64) Spectrum {
	n := len(signal)
	if n == 0 {
		return Spectrum{Frequencies: []float64{0}, Frames: [][]float64{{0}}}
	}

	coeffs := transform.NewReal(n).Coefficients(nil, signal)

	return Spectrum{
		Frequencies: binFrequencies(n, rate),
		Frames:      [][]float64{magnitudes(nil, coeffs)},
	}
}

// Frames returns the short-time magnitude spectra of signal. Frames start at
// sample 0 and advance by hop; the last frame is zero-padded so every
// sample contributes, and a signal shorter than one frame yields a single
// padded frame.
func Frames(signal []float64, rate float64, frameSize, hop int) Spectrum {
	count := 1
	if len(signal) > frameSize {
		count += (len(signal) - frameSize + hop - 1) / hop
	}

	win := window.Hann(frameSize)
	fft := transform.NewReal(frameSize)
	buf := make([]float64, frameSize)
	coeffs := make([]complex128, frameSize/2+1)

	out := Spectrum{
		Frequencies: binFrequencies(frameSize, rate),
		Frames:      make([][]float64, count),
	}

	for f := range count {
		start := f * hop
		clear(buf)
		if start < len(signal) {
			copy(buf, signal[start:min(start+frameSize, len(signal))])
		}
		floats.Mul(buf, win)
		coeffs = fft.Coefficients(coeffs, buf)
		out.Frames[f] = magnitudes(nil, coeffs)
	}

	return out
}

// binFrequencies returns k*rate/n for k = 0..n/2.
func binFrequencies(n int, rate float64) []float64 {
	freqs := make([]float64, n/2+1)
	for k := range freqs {
		freqs[k] = float64(k) * rate / float64(n)
	}
	return freqs
}

func magnitudes(dst []float64, coeffs []complex128) []float64 {
	if dst == nil {
		dst = make([]float64, len(coeffs))
	}
	for k, c := range coeffs {
		dst[k] = cmplx.Abs(c)
	}
	return dst
}
