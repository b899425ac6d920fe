// Package mathutil provides the special functions and design formulas used
// to build Kaiser-windowed interpolation kernels.
package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order
// zero: I₀(x).
//
// Two Abramowitz & Stegun approximations are used:
//   - |x| < 3.75: polynomial in (x/3.75)²
//   - |x| ≥ 3.75: asymptotic form scaled by eˣ/√x
//
// Relative error stays below 2e-7 across the range, which is well beyond
// what window design needs.
func BesselI0(x float64) float64 {
	ax := math.Abs(x)

	if ax < besselSmallArgThreshold {
		t := x / besselSmallArgThreshold
		t *= t
		return 1.0 + t*(besselI0Coeff1+t*(besselI0Coeff2+t*(besselI0Coeff3+
			t*(besselI0Coeff4+t*(besselI0Coeff5+t*besselI0Coeff6)))))
	}

	t := besselSmallArgThreshold / ax
	p := besselI0AsympCoeff0 + t*(besselI0AsympCoeff1+t*(besselI0AsympCoeff2+
		t*(besselI0AsympCoeff3+t*(besselI0AsympCoeff4+t*(besselI0AsympCoeff5+
			t*(besselI0AsympCoeff6+t*(besselI0AsympCoeff7+t*besselI0AsympCoeff8)))))))

	return math.Exp(ax) * p / math.Sqrt(ax)
}

// KaiserBeta returns the Kaiser window β that achieves the given stopband
// attenuation in dB:
//
//	att > 50:       β = 0.1102·(att − 8.7)
//	21 ≤ att ≤ 50:  β = 0.5842·(att − 21)^0.4 + 0.07886·(att − 21)
//	att < 21:       β = 0 (rectangular)
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	default:
		return 0.0
	}
}

// EstimateFilterLength returns the odd number of taps a Kaiser-windowed FIR
// needs for the given attenuation (dB) and transition bandwidth, expressed
// as a fraction of the sample rate. The result is clamped to
// [minFilterLength, maxFilterLength].
func EstimateFilterLength(attenuation, transitionBW float64) int {
	if transitionBW <= 0 {
		transitionBW = defaultTransitionBW
	}

	n := (attenuation - kaiserLengthOffset) /
		(kaiserLengthMultiplier * kaiserLengthTwoPi * math.Pi * transitionBW)

	taps := int(math.Ceil(n))
	if taps%2 == 0 {
		taps++
	}

	return max(minFilterLength, min(taps, maxFilterLength))
}
