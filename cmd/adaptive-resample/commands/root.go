// Package commands implements the adaptive-resample command tree.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "adaptive-resample"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configFile string
	verbose    bool
	logJSON    bool
	engine     engineFlags
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Bandwidth-aware audio resampler",
		Long: `adaptive-resample estimates the highest frequency that carries
significant energy in each audio file, picks the smallest catalogue sample
rate whose Nyquist limit covers it, and resamples the file to that rate.

Examples:
  # Resample every file in a folder
  adaptive-resample run --folder ./audio

  # Only the first 10 files, with the sinc method
  adaptive-resample run --folder ./audio --num-sample 10 --method sinc

  # Inspect a few files without writing anything
  adaptive-resample estimate a.wav b.mp3
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "engine config file (YAML)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&opts.logJSON, "log-json", false, "log as JSON (production encoder)")
	opts.engine.register(root)

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newEstimateCommand(opts))
	root.AddCommand(newKernelCommand(opts))
	return root
}

// newLogger builds the CLI logger. Info is the floor unless verbose is set.
func newLogger(opts *globalOptions) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if opts.logJSON {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if opts.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
