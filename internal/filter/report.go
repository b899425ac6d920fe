package filter

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// DefaultReportPoints is the frequency grid size used by Inspect.
const DefaultReportPoints = 2048

// TableReport summarizes how closely a SincTable meets its design.
type TableReport struct {
	Taps     int
	Phases   int
	Cutoff   float64
	Passband float64
	Stopband float64

	// MinDCGain and MaxDCGain bound the tap sum over every row.
	MinDCGain float64
	MaxDCGain float64

	// PassbandRippleDB is the largest |gain| in dB up to Passband.
	PassbandRippleDB float64

	// StopbandAttenuationDB is the smallest attenuation from Stopband to
	// the end of the grid. The grid stops short of Nyquist, so a stopband
	// at 0.5 is measured at the last grid point.
	StopbandAttenuationDB float64
}

// Inspect measures the DC gain of every row and the frequency response of
// row 0 on a numPoints grid (DefaultReportPoints when numPoints <= 0).
func Inspect(t *SincTable, numPoints int) TableReport {
	if numPoints <= 0 {
		numPoints = DefaultReportPoints
	}

	rep := TableReport{
		Taps:      t.Taps(),
		Phases:    t.Phases,
		Cutoff:    t.Cutoff,
		Passband:  t.Passband,
		Stopband:  t.Stopband,
		MinDCGain: math.Inf(1),
		MaxDCGain: math.Inf(-1),
	}
	for _, row := range t.Rows {
		g := f64.Sum(row)
		rep.MinDCGain = min(rep.MinDCGain, g)
		rep.MaxDCGain = max(rep.MaxDCGain, g)
	}

	resp := ComputeFrequencyResponse(t.Rows[0], numPoints)
	stopFrom := min(t.Stopband, resp.Frequencies[len(resp.Frequencies)-1])
	rep.StopbandAttenuationDB = math.Inf(1)
	for k, f := range resp.Frequencies {
		db := MagnitudeDB(resp.Magnitude[k])
		switch {
		case f <= t.Passband:
			rep.PassbandRippleDB = max(rep.PassbandRippleDB, math.Abs(db))
		case f >= stopFrom:
			rep.StopbandAttenuationDB = min(rep.StopbandAttenuationDB, -db)
		}
	}
	return rep
}
