package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	resampler "github.com/tphakala/go-adaptive-resampler"
)

// engineFlags mirror resampler.Config. Only flags the user set override the
// config file.
type engineFlags struct {
	mode       string
	policy     string
	percentile float64
	frameSize  int
	hopSize    int
	rates      string
	downmix    string
	method     string
	quality    string
}

func (f *engineFlags) register(cmd *cobra.Command) {
	def := resampler.DefaultConfig()
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.mode, "mode", string(def.AnalysisMode), "analysis mode: whole_signal or framed")
	pf.StringVar(&f.policy, "policy", string(def.SignificancePolicy), "significance policy: energy_percentile or peak_magnitude")
	pf.Float64Var(&f.percentile, "percentile", def.PercentileThreshold, "energy percentile threshold in (0, 100]")
	pf.IntVar(&f.frameSize, "frame-size", def.FrameSize, "framed analysis window length in samples")
	pf.IntVar(&f.hopSize, "hop-size", def.HopSize, "framed analysis hop in samples")
	pf.StringVar(&f.rates, "rates", joinRates(def.RateCatalogue), "comma separated rate catalogue in Hz")
	pf.StringVar(&f.downmix, "downmix", string(def.Downmix), "channel reduction: average or first_channel")
	pf.StringVar(&f.method, "method", string(def.Method), "resampling method: fft or sinc")
	pf.StringVar(&f.quality, "quality", string(def.Quality), "sinc quality: low, medium or high")
}

// loadConfig reads the config file (if any) and applies changed flags.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (resampler.Config, error) {
	cfg := resampler.DefaultConfig()
	if opts.configFile != "" {
		var err error
		cfg, err = resampler.LoadConfig(opts.configFile)
		if err != nil {
			return resampler.Config{}, err
		}
	}
	if err := opts.engine.apply(cmd, &cfg); err != nil {
		return resampler.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return resampler.Config{}, err
	}
	return cfg, nil
}

func (f *engineFlags) apply(cmd *cobra.Command, cfg *resampler.Config) error {
	changed := cmd.Flags().Changed
	if changed("mode") {
		cfg.AnalysisMode = resampler.AnalysisMode(f.mode)
	}
	if changed("policy") {
		cfg.SignificancePolicy = resampler.SignificancePolicy(f.policy)
	}
	if changed("percentile") {
		cfg.PercentileThreshold = f.percentile
	}
	if changed("frame-size") {
		cfg.FrameSize = f.frameSize
	}
	if changed("hop-size") {
		cfg.HopSize = f.hopSize
	}
	if changed("rates") {
		rates, err := parseRates(f.rates)
		if err != nil {
			return err
		}
		cfg.RateCatalogue = rates
	}
	if changed("downmix") {
		cfg.Downmix = resampler.Downmix(f.downmix)
	}
	if changed("method") {
		cfg.Method = resampler.Method(f.method)
	}
	if changed("quality") {
		cfg.Quality = resampler.Quality(f.quality)
	}
	return nil
}

// parseRates parses "8000,16000,...". Blank entries are ignored.
func parseRates(s string) ([]int, error) {
	var rates []int
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		r, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", field, err)
		}
		rates = append(rates, r)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: empty rate list", resampler.ErrInvalidInput)
	}
	return rates, nil
}

func joinRates(rates []int) string {
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ",")
}

// parseNumSample parses the --num-sample value: a positive count or "all".
// It returns 0 for "all".
func parseNumSample(s string) (int, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("--num-sample must be a positive integer or \"all\", got %q", s)
	}
	return n, nil
}
