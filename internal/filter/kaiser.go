// Package filter provides the Kaiser-windowed sinc kernels used by the
// band-limited resampling method, plus FIR analysis helpers.
package filter

import (
	"math"

	"github.com/tphakala/go-adaptive-resampler/internal/mathutil"
)

const (
	// Sinc function constants
	sincZeroThreshold = 1e-10

	// Frequency response defaults
	defaultResponsePoints = 512
	responseNyquist       = 0.5
)

// Kaiser evaluates a Kaiser window of shape beta at the normalized position
// x ∈ [-1, 1]. Positions outside that interval return 0.
//
// i0Beta must be mathutil.BesselI0(beta); passing it in lets table builders
// evaluate thousands of taps without recomputing the denominator.
func Kaiser(x, beta, i0Beta float64) float64 {
	if x < -1 || x > 1 {
		return 0
	}
	return mathutil.BesselI0(beta*math.Sqrt(1-x*x)) / i0Beta
}

// Sinc returns the lowpass impulse response 2fc·sinc(2fc·d) for a cutoff fc
// in cycles per sample, evaluated at a (possibly fractional) distance d.
func Sinc(fc, d float64) float64 {
	if math.Abs(d) < sincZeroThreshold {
		return 2 * fc
	}
	return math.Sin(2*math.Pi*fc*d) / (math.Pi * d)
}

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (normalized, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64
}

// ComputeFrequencyResponse evaluates the DTFT of an FIR filter at numPoints
// frequencies spaced evenly over [0, 0.5). A non-positive numPoints uses 512.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := responseNyquist * float64(k) / float64(numPoints)
		response.Frequencies[k] = freq

		var realPart, imagPart float64
		omega := 2 * math.Pi * freq
		for n, h := range coeffs {
			angle := omega * float64(n)
			realPart += h * math.Cos(angle)
			imagPart -= h * math.Sin(angle)
		}
		response.Magnitude[k] = math.Hypot(realPart, imagPart)
	}

	return response
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10 // Avoid log(0)
		dbMultiplier = 20.0  // 20*log10 for magnitude
	)

	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
