// Package transform provides the real discrete Fourier transform used by
// spectral analysis and Fourier-domain resampling.
//
// Lengths whose prime factors are all small go through gonum's mixed-radix
// plan. Other lengths (primes, or products with a large prime factor) go
// through go-dsp, which switches to Bluestein's algorithm and stays
// O(n log n) for every length.
package transform

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// MaxSmoothPrime is the largest prime factor routed to the mixed-radix plan.
// It covers every length made of whole seconds at the common audio rates.
const MaxSmoothPrime = 7

// Real is a real-input transform of a fixed length. A Real is not safe for
// concurrent use.
type Real struct {
	n     int
	radix *fourier.FFT
}

// NewReal returns a transform for sequences of length n (n >= 1).
func NewReal(n int) *Real {
	r := &Real{n: n}
	if Smooth(n) {
		r.radix = fourier.NewFFT(n)
	}
	return r
}

// Len returns the sequence length.
func (r *Real) Len() int {
	return r.n
}

// Coefficients returns the n/2+1 non-negative-frequency coefficients of seq.
// dst is reused when it has that length and allocated when nil.
func (r *Real) Coefficients(dst []complex128, seq []float64) []complex128 {
	if len(seq) != r.n {
		panic(fmt.Sprintf("transform: sequence length %d, want %d", len(seq), r.n))
	}
	dst = sized(dst, r.n/2+1)
	if r.radix != nil {
		return r.radix.Coefficients(dst, seq)
	}
	copy(dst, fft.FFTReal(seq)[:len(dst)])
	return dst
}

// Sequence returns the n real samples whose coefficients are coeffs
// (n/2+1 values). The result is not normalized: Sequence(Coefficients(x))
// is n*x. Imaginary parts of the DC and Nyquist bins are ignored.
func (r *Real) Sequence(dst []float64, coeffs []complex128) []float64 {
	if len(coeffs) != r.n/2+1 {
		panic(fmt.Sprintf("transform: %d coefficients, want %d", len(coeffs), r.n/2+1))
	}
	if dst == nil {
		dst = make([]float64, r.n)
	} else if len(dst) != r.n {
		panic(fmt.Sprintf("transform: destination length %d, want %d", len(dst), r.n))
	}
	if r.radix != nil {
		return r.radix.Sequence(dst, coeffs)
	}

	full := make([]complex128, r.n)
	copy(full, coeffs)
	for k := len(coeffs); k < r.n; k++ {
		full[k] = cmplx.Conj(coeffs[r.n-k])
	}
	// go-dsp's inverse divides by n.
	scale := float64(r.n)
	for i, v := range fft.IFFT(full) {
		dst[i] = real(v) * scale
	}
	return dst
}

// Smooth reports whether every prime factor of n is at most MaxSmoothPrime.
func Smooth(n int) bool {
	return LargestPrimeFactor(n) <= MaxSmoothPrime
}

// LargestPrimeFactor returns the largest prime factor of n, or 1 for n <= 1.
func LargestPrimeFactor(n int) int {
	largest := 1
	for p := 2; p*p <= n; p++ {
		for n%p == 0 {
			largest = p
			n /= p
		}
	}
	if n > 1 {
		largest = n
	}
	return largest
}

func sized(dst []complex128, n int) []complex128 {
	if dst == nil {
		return make([]complex128, n)
	}
	if len(dst) != n {
		panic(fmt.Sprintf("transform: destination length %d, want %d", len(dst), n))
	}
	return dst
}
