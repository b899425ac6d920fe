package resample

import (
	"fmt"
	"math"

	"github.com/tphakala/go-adaptive-resampler/internal/filter"
	"github.com/tphakala/simd/f64"
)

// Quality selects the sinc kernel's attenuation and passband.
type Quality int

const (
	// QualityHigh keeps 95% of the band at about 20-bit precision.
	QualityHigh Quality = iota
	// QualityMedium keeps 90% of the band at about 16-bit precision.
	QualityMedium
	// QualityLow keeps 80% of the band at about 16-bit precision.
	QualityLow
)

// Bit precision to stopband attenuation: (bits+1) * 20*log10(2).
const dbPerBit = 6.0206

const (
	precision16Bit = 16
	precision20Bit = 20

	lowPassbandEnd    = 0.80
	mediumPassbandEnd = 0.90
	highPassbandEnd   = 0.95

	halfBand = 0.5
)

type qualitySpec struct {
	precision int
	passband  float64
}

func (q Quality) spec() (qualitySpec, error) {
	switch q {
	case QualityLow:
		return qualitySpec{precision16Bit, lowPassbandEnd}, nil
	case QualityMedium:
		return qualitySpec{precision16Bit, mediumPassbandEnd}, nil
	case QualityHigh:
		return qualitySpec{precision20Bit, highPassbandEnd}, nil
	default:
		return qualitySpec{}, fmt.Errorf("unknown quality %d", q)
	}
}

// Attenuation returns the stopband attenuation in dB for the preset.
func (q Quality) Attenuation() float64 {
	s, err := q.spec()
	if err != nil {
		return 0
	}
	return float64(s.precision+1) * dbPerBit
}

// Sinc is a band-limited interpolator for one rate pair. It holds only
// read-only tables and may be shared between goroutines.
type Sinc struct {
	table *filter.SincTable
	step  float64
}

// NewSinc designs the kernel for converting source Hz to target Hz. The
// stopband sits at the lower of the two Nyquist frequencies, so downsampling
// also removes everything the target rate cannot represent.
func NewSinc(source, target float64, q Quality) (*Sinc, error) {
	if !validRate(source) || !validRate(target) {
		return nil, fmt.Errorf("%w: %v -> %v", ErrInvalidRate, source, target)
	}
	spec, err := q.spec()
	if err != nil {
		return nil, err
	}

	band := halfBand * min(1, target/source)
	table, err := filter.DesignSincTable(filter.TableParams{
		Passband:    band * spec.passband,
		Stopband:    band,
		Attenuation: q.Attenuation(),
	})
	if err != nil {
		return nil, err
	}

	return &Sinc{table: table, step: source / target}, nil
}

// Report measures the kernel's DC gain and frequency response.
func (s *Sinc) Report() filter.TableReport {
	return filter.Inspect(s.table, filter.DefaultReportPoints)
}

// Latency returns how many input samples of look-ahead the kernel uses.
func (s *Sinc) Latency() int {
	return s.table.Half
}

// Process returns m output samples of x. Output j sits at input position
// j*source/target; samples outside x are treated as zero.
func (s *Sinc) Process(x []float64, m int) []float64 {
	half := s.table.Half
	taps := s.table.Taps()
	phases := s.table.Phases

	padded := make([]float64, len(x)+2*half+1)
	copy(padded[half:], x)

	out := make([]float64, m)
	for j := range out {
		t := float64(j) * s.step
		base := int(math.Floor(t))
		if base >= len(x) {
			break
		}

		pos := (t - float64(base)) * float64(phases)
		p := int(pos)
		frac := pos - float64(p)
		if p >= phases {
			p, frac = phases-1, 1
		}

		seg := padded[base+1 : base+1+taps]
		y0 := f64.DotProductUnsafe(s.table.Rows[p], seg)
		y1 := f64.DotProductUnsafe(s.table.Rows[p+1], seg)
		out[j] = y0 + frac*(y1-y0)
	}
	return out
}
