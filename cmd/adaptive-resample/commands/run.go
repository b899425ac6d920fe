package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	resampler "github.com/tphakala/go-adaptive-resampler"
	"github.com/tphakala/go-adaptive-resampler/internal/audiofile"
)

const (
	defaultSuffix = "_resampled"
	outputDirPerm = 0o755
)

type runOptions struct {
	folder    string
	numSample string
	outputDir string
	suffix    string
	workers   int
}

func newRunCommand(global *globalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Resample every supported file in a folder",
		Long: `Resample every supported file directly inside --folder.

Files are processed in lexicographic order. Files whose name already ends
with --suffix are skipped. Each result is written as <name><suffix>.wav.
A failed file is reported and the remaining files are still processed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFolder(cmd, global, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.folder, "folder", "", "folder containing the input files (required)")
	f.StringVar(&opts.numSample, "num-sample", "all", "number of files to process, or \"all\"")
	f.StringVar(&opts.outputDir, "output-dir", "", "output folder (default: next to each input)")
	f.StringVar(&opts.suffix, "suffix", defaultSuffix, "suffix appended to output file names")
	f.IntVar(&opts.workers, "workers", 1, "number of files processed concurrently")
	_ = cmd.MarkFlagRequired("folder")
	return cmd
}

func runFolder(cmd *cobra.Command, global *globalOptions, opts *runOptions) error {
	limit, err := parseNumSample(opts.numSample)
	if err != nil {
		return err
	}
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
	paths, err := listInputs(opts.folder, opts.suffix, reg)
	if err != nil {
		return err
	}
	if opts.outputDir != "" {
		if err := os.MkdirAll(opts.outputDir, outputDirPerm); err != nil {
			return fmt.Errorf("failed to create output folder: %w", err)
		}
	}

	outputs, conflicts := planOutputs(paths, opts.outputDir, opts.suffix)
	for _, name := range conflicts {
		logger.Warn("output name collides with another input", zap.String("item", name))
	}

	depths := newDepthIndex()
	items := make([]resampler.Item, len(paths))
	for i, p := range paths {
		name := filepath.Base(p)
		items[i] = resampler.Item{
			Name: name,
			Load: func(context.Context) (*resampler.Waveform, error) {
				if _, ok := outputs[name]; !ok {
					return nil, fmt.Errorf("%w: %s", errOutputConflict, name)
				}
				a, err := reg.DecodeFile(p)
				if err != nil {
					return nil, err
				}
				depths.set(name, a.BitDepth)
				return a.Waveform, nil
			},
		}
	}

	persist := func(_ context.Context, name string, r *resampler.Result) error {
		out := outputs[name]
		if err := audiofile.WriteWAV(out, r.Waveform, audiofile.OutputBitDepth(depths.get(name))); err != nil {
			return err
		}
		logger.Debug("output written", zap.String("item", name), zap.String("path", out))
		return nil
	}

	results, err := eng.ProcessBatch(cmd.Context(), items, resampler.BatchOptions{
		Limit:   limit,
		Workers: opts.workers,
		Persist: persist,
		Logger:  logger,
	})
	failed := printSummary(cmd.OutOrStdout(), results)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// printSummary writes one line per item and returns the failure count.
func printSummary(w io.Writer, results []resampler.ItemResult) int {
	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(w, "FAIL %s (%s): %v\n", r.Name, r.Stage, r.Err)
		case r.Result != nil:
			fmt.Fprintf(w, "OK   %s: %.0f Hz -> %d Hz (bandwidth %.1f Hz%s)\n",
				r.Name, r.Result.SourceRate, r.Result.TargetRate,
				r.Result.Bandwidth.Frequency, fallbackNote(r.Result.Bandwidth))
		default:
			fmt.Fprintf(w, "SKIP %s (%s)\n", r.Name, r.Stage)
		}
	}
	fmt.Fprintf(w, "%d files, %d failed\n", len(results), failed)
	return failed
}

func fallbackNote(e resampler.Estimate) string {
	if e.Fallback {
		return ", fallback"
	}
	return ""
}
