package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	resampler "github.com/tphakala/go-adaptive-resampler"
	"github.com/tphakala/go-adaptive-resampler/internal/audiofile"
)

func newEstimateCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate FILE...",
		Short: "Print bandwidth and target rate for each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return estimateFiles(cmd, global, args)
		},
	}
}

func estimateFiles(cmd *cobra.Command, global *globalOptions, paths []string) error {
	cfg, err := loadConfig(cmd, global)
	if err != nil {
		return err
	}
	eng, err := resampler.New(cfg)
	if err != nil {
		return err
	}
	logger, err := newLogger(global)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	reg := audiofile.DefaultRegistry()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tRATE\tCHANNELS\tBANDWIDTH\tFALLBACK\tTARGET")

	failed := 0
	for _, p := range paths {
		if err := cmd.Context().Err(); err != nil {
			_ = tw.Flush()
			return err
		}
		est, target, a, err := estimateOne(eng, reg, p)
		if err != nil {
			failed++
			logger.Warn("estimate failed", zap.String("item", p), zap.Error(err))
			continue
		}
		fmt.Fprintf(tw, "%s\t%.0f\t%d\t%.1f\t%t\t%d\n",
			p, a.Waveform.Rate, a.Waveform.NumChannels(), est.Frequency, est.Fallback, target)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

func estimateOne(eng *resampler.Engine, reg *audiofile.Registry, path string) (resampler.Estimate, int, *audiofile.Audio, error) {
	a, err := reg.DecodeFile(path)
	if err != nil {
		return resampler.Estimate{}, 0, nil, err
	}
	spec, err := eng.Analyze(a.Waveform)
	if err != nil {
		return resampler.Estimate{}, 0, nil, err
	}
	est, err := eng.EstimateBandwidth(spec, a.Waveform.Rate)
	if err != nil {
		return resampler.Estimate{}, 0, nil, err
	}
	return est, eng.SelectRate(est.Frequency), a, nil
}
