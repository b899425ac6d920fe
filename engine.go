package resampler

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-adaptive-resampler/internal/bandwidth"
	"github.com/tphakala/go-adaptive-resampler/internal/resample"
	"github.com/tphakala/go-adaptive-resampler/internal/spectrum"
)

// Spectrum holds non-negative magnitude vectors over a shared ascending
// frequency axis in Hz. Whole-signal analysis yields exactly one frame.
type Spectrum = spectrum.Spectrum

// Estimate is a bandwidth estimate in Hz. Fallback is set when the energy
// percentile policy found no usable energy and reported the declared rate.
type Estimate = bandwidth.Estimate

// Result is the outcome of running one waveform through the engine.
type Result struct {
	// Waveform is the resampled audio at TargetRate. It is the input
	// waveform itself when no conversion was needed.
	Waveform *Waveform

	SourceRate float64
	TargetRate int
	Bandwidth  Estimate
}

// Engine analyzes waveforms, estimates their bandwidth, and resamples them
// to the smallest catalogue rate that keeps that bandwidth.
//
// An Engine holds only immutable configuration and is safe for concurrent
// use.
type Engine struct {
	c *compiled
}

// New validates cfg and returns an engine for it. Unknown enumerated options
// fail with ErrUnsupportedConfiguration, out-of-range numbers with
// ErrInvalidConfig, and a bad rate catalogue with ErrInvalidInput.
func New(cfg Config) (*Engine, error) {
	c, err := cfg.compile()
	if err != nil {
		return nil, err
	}
	return &Engine{c: c}, nil
}

// Config returns the effective configuration with defaults applied.
func (e *Engine) Config() Config {
	cfg := e.c.config
	cfg.RateCatalogue = e.c.catalogue.Rates()
	return cfg
}

// Rates returns the ascending, de-duplicated rate catalogue.
func (e *Engine) Rates() []int {
	return e.c.catalogue.Rates()
}

// Analyze returns the magnitude spectrum of w under the configured analysis
// mode and downmix. w is not modified.
func (e *Engine) Analyze(w *Waveform) (Spectrum, error) {
	if err := w.Validate(); err != nil {
		return Spectrum{}, err
	}
	return e.c.analyzer.Analyze(w.Channels, w.Rate)
}

// EstimateBandwidth applies the configured significance policy to s.
// declaredRate is reported with Fallback set when the energy-percentile
// policy finds no usable energy.
func (e *Engine) EstimateBandwidth(s Spectrum, declaredRate float64) (Estimate, error) {
	return e.c.estimator.Estimate(s, declaredRate)
}

// SelectRate returns the first catalogue rate that is at least twice the
// bandwidth, or the largest rate when none is.
func (e *Engine) SelectRate(bandwidthHz float64) int {
	return e.c.catalogue.Select(bandwidthHz)
}

// Resample converts w to target Hz. When target equals w.Rate, w itself is
// returned. Otherwise each channel becomes round(Len*target/Rate) samples
// long; a length that rounds to zero fails with ErrInvalidInput.
func (e *Engine) Resample(w *Waveform, target float64) (*Waveform, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if !(target > 0) || math.IsInf(target, 0) {
		return nil, fmt.Errorf("%w: target rate must be positive and finite, got %v", ErrInvalidInput, target)
	}
	if target == w.Rate {
		return w, nil
	}

	out, err := resample.Channels(w.Channels, w.Rate, target, e.c.resample)
	if err != nil {
		if errors.Is(err, resample.ErrZeroOutput) || errors.Is(err, resample.ErrEmptyInput) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, err
	}
	return &Waveform{Channels: out, Rate: target}, nil
}

// Process runs analysis, estimation, rate selection, and resampling on w.
func (e *Engine) Process(w *Waveform) (*Result, error) {
	return e.process(w, nil)
}

// process is Process with a hook called after each completed stage.
func (e *Engine) process(w *Waveform, reached func(Stage, *Result)) (*Result, error) {
	if reached == nil {
		reached = func(Stage, *Result) {}
	}

	spec, err := e.Analyze(w)
	if err != nil {
		return nil, err
	}
	res := &Result{SourceRate: w.Rate}
	reached(StageAnalyzed, res)

	est, err := e.EstimateBandwidth(spec, w.Rate)
	if err != nil {
		return nil, err
	}
	res.Bandwidth = est
	reached(StageEstimated, res)

	res.TargetRate = e.SelectRate(est.Frequency)
	reached(StageRateSelected, res)

	out, err := e.Resample(w, float64(res.TargetRate))
	if err != nil {
		return nil, err
	}
	res.Waveform = out
	reached(StageResampled, res)

	return res, nil
}
