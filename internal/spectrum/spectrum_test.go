package spectrum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-adaptive-resampler/internal/testutil"
)

const (
	testRate     = 8000.0
	testLength   = 8000
	testTone     = 1000.0
	magTolerance = 1e-9
)

func TestMix(t *testing.T) {
	left := []float64{1, 2, 3}
	right := []float64{3, 2, 1}

	t.Run("average", func(t *testing.T) {
		got := Mix([][]float64{left, right}, DownmixAverage)
		assert.Equal(t, []float64{2, 2, 2}, got)
		assert.Equal(t, []float64{1, 2, 3}, left, "input must not change")
	})

	t.Run("first_channel", func(t *testing.T) {
		got := Mix([][]float64{left, right}, DownmixFirstChannel)
		assert.Equal(t, left, got)
	})

	t.Run("single_channel_passthrough", func(t *testing.T) {
		got := Mix([][]float64{left}, DownmixAverage)
		assert.Equal(t, left, got)
	})
}

func TestWhole(t *testing.T) {
	signal := testutil.Sine(testTone, 1.0, testRate, testLength)
	spec := Whole(signal, testRate)

	require.Len(t, spec.Frames, 1)
	require.Equal(t, testLength/2+1, spec.NumBins())
	require.Len(t, spec.Frames[0], spec.NumBins())
	testutil.AssertStrictlyIncreasing(t, spec.Frequencies)
	assert.Zero(t, spec.Frequencies[0])
	assert.InDelta(t, testRate/2, spec.Frequencies[spec.NumBins()-1], magTolerance)

	// 1 Hz bins: the tone lands exactly on bin 1000 with magnitude N/2.
	peak := 0
	for k, m := range spec.Frames[0] {
		if m > spec.Frames[0][peak] {
			peak = k
		}
	}
	assert.InDelta(t, testTone, spec.Frequencies[peak], magTolerance)
	assert.InDelta(t, float64(testLength)/2, spec.Frames[0][peak], 1e-6)
}

func TestWhole_PrimeLength(t *testing.T) {
	const (
		n      = 160001 // prime
		cycles = 10000
		rate   = 16000.0
	)
	freq := float64(cycles) * rate / n
	signal := testutil.Sine(freq, 1.0, rate, n)

	start := time.Now()
	spec := Whole(signal, rate)
	elapsed := time.Since(start)

	require.Equal(t, n/2+1, spec.NumBins())
	peak := 0
	for k, m := range spec.Frames[0] {
		if m > spec.Frames[0][peak] {
			peak = k
		}
	}
	assert.Equal(t, cycles, peak)
	assert.InDelta(t, freq, spec.Frequencies[peak], magTolerance)
	testutil.AssertRelativeError(t, float64(n)/2, spec.Frames[0][peak], 1e-6)
	assert.Less(t, elapsed, 5*time.Second, "whole-signal analysis of a prime length took %v", elapsed)
}

func TestWhole_Silence(t *testing.T) {
	spec := Whole(make([]float64, 1024), testRate)
	for _, m := range spec.Frames[0] {
		assert.Zero(t, m)
	}
}

func TestWhole_OddLength(t *testing.T) {
	spec := Whole(make([]float64, 7), 7)
	assert.Equal(t, []float64{0, 1, 2, 3}, spec.Frequencies)
}

func TestFrames_Geometry(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		frame, hop int
		wantFrames int
	}{
		{"exact_one_frame", 2048, 2048, 512, 1},
		{"shorter_than_frame", 100, 2048, 512, 1},
		{"one_extra_sample", 2049, 2048, 512, 2},
		{"exact_hops", 2048 + 3*512, 2048, 512, 4},
		{"partial_last_hop", 2048 + 3*512 + 1, 2048, 512, 5},
		{"unit_hop", 10, 4, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Frames(make([]float64, tt.length), testRate, tt.frame, tt.hop)
			assert.Len(t, spec.Frames, tt.wantFrames)
			assert.Equal(t, tt.frame/2+1, spec.NumBins())
			for _, f := range spec.Frames {
				assert.Len(t, f, spec.NumBins())
			}
		})
	}
}

func TestFrames_BinAxis(t *testing.T) {
	spec := Frames(make([]float64, 4096), testRate, 1024, 256)
	testutil.AssertStrictlyIncreasing(t, spec.Frequencies)
	assert.InDelta(t, testRate/1024, spec.Frequencies[1], magTolerance)
	assert.InDelta(t, testRate/2, spec.Frequencies[len(spec.Frequencies)-1], magTolerance)
}

func TestFrames_TonePeak(t *testing.T) {
	signal := testutil.Sine(testTone, 1.0, testRate, testLength)
	spec := Frames(signal, testRate, 1024, 256)

	// 7.8125 Hz bins; 1000 Hz sits on bin 128.
	for i, frame := range spec.Frames[:len(spec.Frames)-1] {
		peak := 0
		for k, m := range frame {
			if m > frame[peak] {
				peak = k
			}
		}
		assert.Equal(t, 128, peak, "frame %d", i)
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	signal := testutil.Sine(testTone, 0.5, testRate, testLength)
	channels := [][]float64{signal, signal}

	t.Run("whole_signal_default", func(t *testing.T) {
		spec, err := Analyzer{}.Analyze(channels, testRate)
		require.NoError(t, err)
		assert.Len(t, spec.Frames, 1)
	})

	t.Run("framed", func(t *testing.T) {
		spec, err := Analyzer{Mode: Framed, FrameSize: 2048, HopSize: 512}.Analyze(channels, testRate)
		require.NoError(t, err)
		assert.Greater(t, len(spec.Frames), 1)
	})

	t.Run("deterministic", func(t *testing.T) {
		a := Analyzer{Mode: Framed, FrameSize: 512, HopSize: 128}
		s1, err := a.Analyze(channels, testRate)
		require.NoError(t, err)
		s2, err := a.Analyze(channels, testRate)
		require.NoError(t, err)
		assert.Equal(t, s1, s2)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := Analyzer{}.Analyze(nil, testRate)
		assert.Error(t, err)

		_, err = Analyzer{}.Analyze(channels, 0)
		assert.Error(t, err)

		_, err = Analyzer{Mode: Framed, FrameSize: 1, HopSize: 1}.Analyze(channels, testRate)
		assert.Error(t, err)

		_, err = Analyzer{Mode: Mode(9)}.Analyze(channels, testRate)
		assert.Error(t, err)
	})
}
