// Package testutil provides shared assertions and synthetic signals for the
// resampler tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for numeric comparisons.
const (
	DefaultTolerance = 1e-10
	SampleTolerance  = 1e-9
)

// AssertNoNaNOrInf verifies that no element of s is NaN or ±Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertStrictlyIncreasing verifies s[i] > s[i-1] for every i.
func AssertStrictlyIncreasing(t *testing.T, s []float64) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			return assert.Fail(t, "not strictly increasing",
				"s[%d]=%f <= s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertSlicesInDelta verifies that two slices have equal length and that
// every pair of elements differs by at most tolerance.
func AssertSlicesInDelta(t *testing.T, expected, actual []float64, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	for i := range expected {
		if math.Abs(expected[i]-actual[i]) > tolerance {
			return assert.Fail(t, "slices differ",
				"index %d: expected %g, got %g (tolerance %g)", i, expected[i], actual[i], tolerance)
		}
	}
	return true
}

// AssertRelativeError verifies |actual-expected|/|expected| <= tolerance.
// An expected value of zero falls back to an absolute comparison.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that value lies within [minVal, maxVal].
func AssertInRange(t *testing.T, value, minVal, maxVal float64) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
