package resampler

import (
	"fmt"

	"github.com/tphakala/go-adaptive-resampler/internal/filter"
	"github.com/tphakala/go-adaptive-resampler/internal/resample"
)

// KernelReport describes a sinc interpolation kernel. Frequencies are
// normalized to the source rate (0.5 is the source Nyquist).
type KernelReport = filter.TableReport

// InspectKernel designs the sinc kernel this engine's quality setting
// would use for source -> target and measures its DC gain and frequency
// response. It is available whatever Method is configured.
func (e *Engine) InspectKernel(source, target float64) (KernelReport, error) {
	s, err := resample.NewSinc(source, target, e.c.resample.Quality)
	if err != nil {
		return KernelReport{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.Report(), nil
}
