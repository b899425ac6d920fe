package mathutil

// Bessel I₀ approximation constants.
// Polynomial coefficients from Abramowitz & Stegun, "Handbook of
// Mathematical Functions", 9.8.1 and 9.8.2.
const (
	// |x| boundary between the polynomial and asymptotic forms.
	besselSmallArgThreshold = 3.75

	besselI0Coeff1 = 3.5156229
	besselI0Coeff2 = 3.0899424
	besselI0Coeff3 = 1.2067492
	besselI0Coeff4 = 0.2659732
	besselI0Coeff5 = 0.360768e-1
	besselI0Coeff6 = 0.45813e-2

	besselI0AsympCoeff0 = 0.39894228
	besselI0AsympCoeff1 = 0.1328592e-1
	besselI0AsympCoeff2 = 0.225319e-2
	besselI0AsympCoeff3 = -0.157565e-2
	besselI0AsympCoeff4 = 0.916281e-2
	besselI0AsympCoeff5 = -0.2057706e-1
	besselI0AsympCoeff6 = 0.2635537e-1
	besselI0AsympCoeff7 = -0.1647633e-1
	besselI0AsympCoeff8 = 0.392377e-2
)

// Kaiser & Schafer empirical design formulas.
const (
	kaiserAttHigh   = 50.0 // dB
	kaiserAttMedium = 21.0 // dB

	kaiserBetaHighCoeff  = 0.1102
	kaiserBetaHighOffset = 8.7

	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886

	// N ≈ (att - 7.95) / (2.285 · 2π · Δf)
	kaiserLengthOffset     = 7.95
	kaiserLengthMultiplier = 2.285
	kaiserLengthTwoPi      = 2.0
)

// Filter length bounds (taps).
const (
	minFilterLength = 3
	maxFilterLength = 16383

	// Used when the caller passes a non-positive transition bandwidth.
	defaultTransitionBW = 0.01
)
