package resample

import (
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-adaptive-resampler/internal/transform"
)

const (
	nyquistSplit = 0.5
	nyquistJoin  = 2.0
)

// FFT resamples x to m samples in the frequency domain.
//
// The real spectrum of x is truncated (m < len(x)) or zero-padded
// (m > len(x)) to m/2+1 bins and transformed back. When the shorter of the
// two lengths is even its Nyquist bin is shared between the positive and
// negative halves, so it is doubled when folding down and halved when
// spreading up. The result is scaled by 1/len(x), which keeps the amplitude
// of every preserved component unchanged.
//
// The method treats x as one period of a periodic signal; content near the
// ends may wrap around.
func FFT(x []float64, m int) []float64 {
	n := len(x)
	coeffs := transform.NewReal(n).Coefficients(nil, x)

	short := min(n, m)
	resized := make([]complex128, m/2+1)
	copy(resized, coeffs[:short/2+1])

	if short%2 == 0 {
		switch {
		case m < n:
			resized[short/2] *= nyquistJoin
		case m > n:
			resized[short/2] *= nyquistSplit
		}
	}

	y := transform.NewReal(m).Sequence(nil, resized)
	floats.Scale(1/float64(n), y)
	return y
}
