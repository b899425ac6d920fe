package testutil

import "math"

// Sine returns n samples of amplitude·sin(2π·freq·i/rate).
func Sine(freq, amplitude, rate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return out
}

// MultiTone sums unit-amplitude sines at the given frequencies, scaled so
// the peak cannot exceed 1.
func MultiTone(freqs []float64, rate float64, n int) []float64 {
	out := make([]float64, n)
	if len(freqs) == 0 {
		return out
	}
	scale := 1.0 / float64(len(freqs))
	for _, f := range freqs {
		for i := range out {
			out[i] += scale * math.Sin(2*math.Pi*f*float64(i)/rate)
		}
	}
	return out
}

// RMS returns the root mean square of s, or 0 for an empty slice.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(s)))
}

// ToneAmplitude estimates the amplitude of a sine at freq in s by
// correlating against quadrature references (single-bin DFT).
func ToneAmplitude(s []float64, freq, rate float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var re, im float64
	for i, v := range s {
		phase := 2 * math.Pi * freq * float64(i) / rate
		re += v * math.Cos(phase)
		im += v * math.Sin(phase)
	}
	return 2 * math.Hypot(re, im) / float64(len(s))
}

// BandLimited sums sines every step Hz from step up to maxFreq. Levels rise
// with frequency so the tone at maxFreq is the strongest component; with n
// equal to rate every tone lands on an exact FFT bin.
func BandLimited(maxFreq, step, rate float64, n int) []float64 {
	out := make([]float64, n)
	for f := step; f <= maxFreq; f += step {
		amp := 1 + f/maxFreq
		for i := range out {
			out[i] += amp * math.Sin(2*math.Pi*f*float64(i)/rate)
		}
	}
	return out
}
