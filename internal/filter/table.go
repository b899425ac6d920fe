package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-adaptive-resampler/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

const (
	// DefaultPhases is the fractional-delay resolution of a SincTable.
	DefaultPhases = 256

	minPhases = 2
	maxPhases = 8192

	// Row normalization target (unity DC gain)
	rowGainTarget = 1.0
)

// TableParams describes a fractional-delay interpolation kernel.
//
// Frequencies are normalized to the INPUT sample rate (0.5 = input Nyquist).
type TableParams struct {
	// Passband is the highest frequency that must pass unattenuated.
	Passband float64

	// Stopband is the frequency at which Attenuation must be reached.
	Stopband float64

	// Attenuation is the stopband attenuation in dB.
	Attenuation float64

	// Phases is the number of fractional positions tabulated between two
	// input samples. Zero selects DefaultPhases.
	Phases int
}

// Validate checks if table parameters are valid.
func (tp *TableParams) Validate() error {
	if tp.Passband <= 0 || tp.Passband >= tp.Stopband {
		return fmt.Errorf("passband %f must be in (0, stopband=%f)", tp.Passband, tp.Stopband)
	}
	if tp.Stopband > responseNyquist {
		return fmt.Errorf("stopband %f exceeds Nyquist (0.5)", tp.Stopband)
	}
	if tp.Attenuation <= 0 {
		return fmt.Errorf("attenuation %f dB must be positive", tp.Attenuation)
	}
	if tp.Phases != 0 && (tp.Phases < minPhases || tp.Phases > maxPhases) {
		return fmt.Errorf("number of phases %d out of range [%d, %d]", tp.Phases, minPhases, maxPhases)
	}
	return nil
}

// SincTable is a Kaiser-windowed sinc kernel sampled at Phases+1 fractional
// offsets. Row p holds the taps for an output position p/Phases of the way
// from input sample k to k+1; tap i multiplies input sample k-Half+1+i.
// The extra last row (fraction 1.0) lets callers interpolate linearly
// between adjacent rows without wrapping.
type SincTable struct {
	Rows   [][]float64
	Phases int
	Half   int
	Cutoff float64

	// Band edges the table was designed for.
	Passband float64
	Stopband float64
}

// Taps returns the number of taps in each row.
func (st *SincTable) Taps() int {
	return 2 * st.Half
}

// DesignSincTable builds the kernel table for params.
//
// The kernel length follows the Kaiser estimate for the requested
// attenuation over the transition band Stopband-Passband, and the cutoff
// sits midway through the transition band. Each row is scaled to sum to 1.
func DesignSincTable(params TableParams) (*SincTable, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sinc table parameters: %w", err)
	}

	phases := params.Phases
	if phases == 0 {
		phases = DefaultPhases
	}

	length := mathutil.EstimateFilterLength(params.Attenuation, params.Stopband-params.Passband)
	half := length/2 + 1
	cutoff := (params.Passband + params.Stopband) / 2
	beta := mathutil.KaiserBeta(params.Attenuation)
	i0Beta := mathutil.BesselI0(beta)

	table := &SincTable{
		Rows:     make([][]float64, phases+1),
		Phases:   phases,
		Half:     half,
		Cutoff:   cutoff,
		Passband: params.Passband,
		Stopband: params.Stopband,
	}

	taps := 2 * half
	for p := range table.Rows {
		frac := float64(p) / float64(phases)
		row := make([]float64, taps)
		for i := range row {
			d := frac + float64(half-1-i)
			row[i] = Sinc(cutoff, d) * Kaiser(d/float64(half), beta, i0Beta)
		}

		sum := f64.Sum(row)
		if math.Abs(sum) > sincZeroThreshold {
			f64.Scale(row, row, rowGainTarget/sum)
		}
		table.Rows[p] = row
	}

	return table, nil
}
