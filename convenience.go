package resampler

import (
	"github.com/tphakala/go-adaptive-resampler/internal/catalogue"
)

// Standard sample rates of the default catalogue.
const (
	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = catalogue.Rate8k

	// RateNarrowWideband sits between narrowband and wideband speech.
	RateNarrowWideband = catalogue.Rate12k

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = catalogue.Rate16k

	// RateSpeech is the speech recognition common sample rate.
	RateSpeech = catalogue.Rate22k

	// RateBroadcast is the FM/digital broadcast sample rate.
	RateBroadcast = catalogue.Rate32k

	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = catalogue.Rate44k

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = catalogue.Rate48k
)

// DefaultRateCatalogue returns the default target rates in ascending order.
func DefaultRateCatalogue() []int {
	return catalogue.DefaultRates()
}

// Adapt runs the default engine on w: whole-signal analysis, 98th
// percentile significance, default catalogue, FFT resampling.
func Adapt(w *Waveform) (*Result, error) {
	e, err := New(Config{})
	if err != nil {
		return nil, err
	}
	return e.Process(w)
}

// ResampleMono converts one channel from inputRate to outputRate with the
// given method. An empty method selects MethodFFT.
func ResampleMono(input []float64, inputRate, outputRate float64, method Method) ([]float64, error) {
	e, err := New(Config{Method: method})
	if err != nil {
		return nil, err
	}
	out, err := e.Resample(NewWaveform(inputRate, input), outputRate)
	if err != nil {
		return nil, err
	}
	return out.Channels[0], nil
}

// Interleave converts channel-major samples to frame-major order:
// [c0[0], c1[0], ..., c0[1], c1[1], ...]. Channels are truncated to the
// shortest one.
func Interleave(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	n := len(channels[0])
	for _, ch := range channels[1:] {
		n = min(n, len(ch))
	}
	numCh := len(channels)
	out := make([]float64, n*numCh)
	for c, ch := range channels {
		for i := range n {
			out[i*numCh+c] = ch[i]
		}
	}
	return out
}

// Deinterleave splits frame-major samples into numChannels channels. A
// trailing partial frame is dropped.
func Deinterleave(interleaved []float64, numChannels int) [][]float64 {
	if numChannels < 1 {
		return nil
	}
	n := len(interleaved) / numChannels
	out := make([][]float64, numChannels)
	for c := range out {
		out[c] = make([]float64, n)
		for i := range n {
			out[c][i] = interleaved[i*numChannels+c]
		}
	}
	return out
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float64) []float64 {
	return Interleave([][]float64{left, right})
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float64) (left, right []float64) {
	ch := Deinterleave(interleaved, stereoChannels)
	return ch[0], ch[1]
}
