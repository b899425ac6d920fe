package resampler

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/tphakala/go-adaptive-resampler/internal/bandwidth"
	"github.com/tphakala/go-adaptive-resampler/internal/catalogue"
	"github.com/tphakala/go-adaptive-resampler/internal/resample"
	"github.com/tphakala/go-adaptive-resampler/internal/spectrum"
)

// AnalysisMode selects how the waveform is divided for spectral analysis.
type AnalysisMode string

const (
	// AnalysisWholeSignal computes one spectrum over the entire waveform.
	AnalysisWholeSignal AnalysisMode = "whole_signal"

	// AnalysisFramed computes Hann-windowed spectra over overlapping frames
	// of FrameSize samples advanced by HopSize.
	AnalysisFramed AnalysisMode = "framed"
)

// SignificancePolicy selects the rule that decides which frequencies count
// toward the bandwidth.
type SignificancePolicy string

const (
	// PolicyEnergyPercentile reports the highest frequency whose share of
	// the total magnitude is at or above the PercentileThreshold-th
	// percentile of all shares.
	PolicyEnergyPercentile SignificancePolicy = "energy_percentile"

	// PolicyPeakMagnitude reports the frequency of the strongest bin.
	PolicyPeakMagnitude SignificancePolicy = "peak_magnitude"
)

// Downmix selects how multi-channel waveforms are reduced before analysis.
// Resampling always processes every channel.
type Downmix string

const (
	// DownmixAverage analyzes the arithmetic mean of all channels.
	DownmixAverage Downmix = "average"

	// DownmixFirstChannel analyzes channel 0 only.
	DownmixFirstChannel Downmix = "first_channel"
)

// Method selects the resampling algorithm.
type Method string

const (
	// MethodFFT resamples each channel in the frequency domain by truncating
	// or zero-padding its spectrum.
	MethodFFT Method = "fft"

	// MethodSinc resamples with a Kaiser-windowed sinc interpolator.
	MethodSinc Method = "sinc"
)

// Quality selects the sinc interpolator's precision. It has no effect on
// MethodFFT.
type Quality string

const (
	// QualityLow provides ~16-bit stopband attenuation with an 80% passband.
	QualityLow Quality = "low"

	// QualityMedium provides ~16-bit stopband attenuation with a 90% passband.
	QualityMedium Quality = "medium"

	// QualityHigh provides ~20-bit stopband attenuation with a 95% passband.
	QualityHigh Quality = "high"
)

// Config holds engine configuration. Zero values select the defaults listed
// in DefaultConfig, so a zero Config is valid.
type Config struct {
	// AnalysisMode selects whole-signal or framed analysis.
	AnalysisMode AnalysisMode `yaml:"analysis_mode,omitempty"`

	// SignificancePolicy selects the bandwidth rule.
	SignificancePolicy SignificancePolicy `yaml:"significance_policy,omitempty"`

	// PercentileThreshold is the percentile (0, 100] used by
	// PolicyEnergyPercentile.
	PercentileThreshold float64 `yaml:"percentile_threshold,omitempty"`

	// FrameSize and HopSize are in samples and only used by AnalysisFramed.
	FrameSize int `yaml:"frame_size,omitempty"`
	HopSize   int `yaml:"hop_size,omitempty"`

	// RateCatalogue lists the permitted target rates in Hz, in any order.
	// A nil slice selects the default catalogue; an empty non-nil slice is
	// rejected.
	RateCatalogue []int `yaml:"rate_catalogue,omitempty"`

	// Downmix selects the channel reduction applied before analysis.
	Downmix Downmix `yaml:"downmix,omitempty"`

	// Method and Quality select the resampling algorithm.
	Method  Method  `yaml:"method,omitempty"`
	Quality Quality `yaml:"quality,omitempty"`
}

// Common errors returned by the engine.
var (
	// ErrInvalidInput indicates an unusable waveform, sample rate, or rate
	// catalogue.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedConfiguration indicates an unknown enumerated option.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")

	// ErrInvalidConfig indicates a numeric option out of range.
	ErrInvalidConfig = errors.New("invalid resampler configuration")
)

// DefaultConfig returns the configuration used for zero-valued fields.
func DefaultConfig() Config {
	return Config{
		AnalysisMode:        AnalysisWholeSignal,
		SignificancePolicy:  PolicyEnergyPercentile,
		PercentileThreshold: DefaultPercentileThreshold,
		FrameSize:           DefaultFrameSize,
		HopSize:             DefaultHopSize,
		RateCatalogue:       DefaultRateCatalogue(),
		Downmix:             DownmixAverage,
		Method:              MethodFFT,
		Quality:             QualityHigh,
	}
}

// withDefaults returns a copy of c with zero fields filled in.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.AnalysisMode == "" {
		c.AnalysisMode = d.AnalysisMode
	}
	if c.SignificancePolicy == "" {
		c.SignificancePolicy = d.SignificancePolicy
	}
	if c.PercentileThreshold == 0 {
		c.PercentileThreshold = d.PercentileThreshold
	}
	if c.FrameSize == 0 {
		c.FrameSize = d.FrameSize
	}
	if c.HopSize == 0 {
		c.HopSize = d.HopSize
	}
	if c.RateCatalogue == nil {
		c.RateCatalogue = d.RateCatalogue
	} else {
		c.RateCatalogue = slices.Clone(c.RateCatalogue)
	}
	if c.Downmix == "" {
		c.Downmix = d.Downmix
	}
	if c.Method == "" {
		c.Method = d.Method
	}
	if c.Quality == "" {
		c.Quality = d.Quality
	}
	return c
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	_, err := c.compile()
	return err
}

// compiled is a validated configuration translated to the internal
// component settings.
type compiled struct {
	config    Config
	analyzer  spectrum.Analyzer
	estimator bandwidth.Estimator
	catalogue *catalogue.Catalogue
	resample  resample.Options
}

func (c *Config) compile() (*compiled, error) {
	cfg := c.withDefaults()
	out := &compiled{config: cfg}

	switch cfg.AnalysisMode {
	case AnalysisWholeSignal:
		out.analyzer.Mode = spectrum.WholeSignal
	case AnalysisFramed:
		out.analyzer.Mode = spectrum.Framed
	default:
		return nil, fmt.Errorf("%w: analysis_mode %q", ErrUnsupportedConfiguration, cfg.AnalysisMode)
	}

	switch cfg.SignificancePolicy {
	case PolicyEnergyPercentile:
		out.estimator.Policy = bandwidth.EnergyPercentile
	case PolicyPeakMagnitude:
		out.estimator.Policy = bandwidth.PeakMagnitude
	default:
		return nil, fmt.Errorf("%w: significance_policy %q", ErrUnsupportedConfiguration, cfg.SignificancePolicy)
	}

	switch cfg.Downmix {
	case DownmixAverage:
		out.analyzer.Downmix = spectrum.DownmixAverage
	case DownmixFirstChannel:
		out.analyzer.Downmix = spectrum.DownmixFirstChannel
	default:
		return nil, fmt.Errorf("%w: downmix %q", ErrUnsupportedConfiguration, cfg.Downmix)
	}

	switch cfg.Method {
	case MethodFFT:
		out.resample.Method = resample.MethodFFT
	case MethodSinc:
		out.resample.Method = resample.MethodSinc
	default:
		return nil, fmt.Errorf("%w: method %q", ErrUnsupportedConfiguration, cfg.Method)
	}

	switch cfg.Quality {
	case QualityLow:
		out.resample.Quality = resample.QualityLow
	case QualityMedium:
		out.resample.Quality = resample.QualityMedium
	case QualityHigh:
		out.resample.Quality = resample.QualityHigh
	default:
		return nil, fmt.Errorf("%w: quality %q", ErrUnsupportedConfiguration, cfg.Quality)
	}

	p := cfg.PercentileThreshold
	if math.IsNaN(p) || p <= 0 || p > maxPercentile {
		return nil, fmt.Errorf("%w: percentile_threshold must be in (0, %v], got %v", ErrInvalidConfig, maxPercentile, p)
	}
	out.estimator.Percentile = p

	if cfg.FrameSize < spectrum.MinFrameSize {
		return nil, fmt.Errorf("%w: frame_size must be at least %d, got %d", ErrInvalidConfig, spectrum.MinFrameSize, cfg.FrameSize)
	}
	if cfg.HopSize < spectrum.MinHopSize {
		return nil, fmt.Errorf("%w: hop_size must be at least %d, got %d", ErrInvalidConfig, spectrum.MinHopSize, cfg.HopSize)
	}
	out.analyzer.FrameSize = cfg.FrameSize
	out.analyzer.HopSize = cfg.HopSize

	cat, err := catalogue.New(cfg.RateCatalogue)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	out.catalogue = cat

	return out, nil
}
