package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-adaptive-resampler/internal/testutil"
)

// TestBesselI0 checks BesselI0 against tabulated values.
func TestBesselI0(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		expected  float64
		tolerance float64
	}{
		{"zero", 0.0, 1.0, 1e-15},
		{"half", 0.5, 1.063483344, 2e-7},
		{"one", 1.0, 1.266065848, 2e-7},
		{"three", 3.0, 4.880792565, 2e-7},
		{"boundary", 3.75, 9.118945994, 2e-7},
		{"five", 5.0, 27.23987183, 2e-7},
		{"ten", 10.0, 2815.716628, 1e-6},
		{"negative_one", -1.0, 1.266065848, 2e-7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertRelativeError(t, tt.expected, BesselI0(tt.x), tt.tolerance)
		})
	}
}

// TestBesselI0_Monotonic checks that I₀ grows on x > 0, which the Kaiser
// window relies on to peak at its centre.
func TestBesselI0_Monotonic(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.1; x < 15.0; x += 0.1 {
		curr := BesselI0(x)
		assert.Greater(t, curr, prev, "not increasing at x=%v", x)
		prev = curr
	}
}

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		minBeta     float64
		maxBeta     float64
	}{
		{"below_21dB", 20.0, 0.0, 0.0},
		{"50dB", 50.0, 4.5, 4.6},
		{"80dB", 80.0, 7.8, 7.9},
		{"102dB", 102.4, 10.2, 10.4},
		{"126dB", 126.4, 12.9, 13.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertInRange(t, KaiserBeta(tt.attenuation), tt.minBeta, tt.maxBeta)
		})
	}
}

func TestKaiserBeta_Monotonic(t *testing.T) {
	prev := KaiserBeta(20.0)
	for att := 25.0; att <= 180.0; att += 5.0 {
		beta := KaiserBeta(att)
		assert.GreaterOrEqual(t, beta, prev, "not monotonic at att=%v", att)
		prev = beta
	}
}

func TestEstimateFilterLength(t *testing.T) {
	tests := []struct {
		name         string
		attenuation  float64
		transitionBW float64
		minTaps      int
		maxTaps      int
	}{
		{"wide_transition", 80.0, 0.2, 20, 35},
		{"cd_quality", 96.0, 0.1, 60, 80},
		{"high_quality", 120.0, 0.05, 150, 200},
		{"narrow", 150.0, 0.02, 450, 550},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taps := EstimateFilterLength(tt.attenuation, tt.transitionBW)
			assert.Equal(t, 1, taps%2, "length %d should be odd", taps)
			assert.GreaterOrEqual(t, taps, tt.minTaps)
			assert.LessOrEqual(t, taps, tt.maxTaps)
		})
	}
}

func TestEstimateFilterLength_Bounds(t *testing.T) {
	assert.GreaterOrEqual(t, EstimateFilterLength(100.0, 0.0), minFilterLength)
	assert.Equal(t, minFilterLength, EstimateFilterLength(10.0, 0.4))
	assert.Equal(t, maxFilterLength, EstimateFilterLength(200.0, 0.0001))
}

func BenchmarkBesselI0(b *testing.B) {
	for b.Loop() {
		_ = BesselI0(10.0)
	}
}
