package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	resampler "github.com/tphakala/go-adaptive-resampler"
)

type kernelOptions struct {
	from float64
	to   float64
}

func newKernelCommand(global *globalOptions) *cobra.Command {
	opts := &kernelOptions{}

	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Report the sinc kernel used for a rate pair",
		Long: `Design the sinc interpolation kernel that --method sinc would use to
convert --from Hz to --to Hz at the configured --quality, and report its
size, per-phase DC gain and measured frequency response.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}
			eng, err := resampler.New(cfg)
			if err != nil {
				return err
			}
			rep, err := eng.InspectKernel(opts.from, opts.to)
			if err != nil {
				return err
			}
			printKernelReport(cmd, cfg.Quality, opts, rep)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.from, "from", 0, "source rate in Hz (required)")
	f.Float64Var(&opts.to, "to", 0, "target rate in Hz (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printKernelReport(cmd *cobra.Command, q resampler.Quality, opts *kernelOptions, rep resampler.KernelReport) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Kernel for %.0f Hz -> %.0f Hz (quality %s)\n", opts.from, opts.to, q)
	fmt.Fprintf(w, "  Phases:     %d\n", rep.Phases)
	fmt.Fprintf(w, "  Taps:       %d\n", rep.Taps)
	fmt.Fprintf(w, "  Passband:   %.1f Hz\n", rep.Passband*opts.from)
	fmt.Fprintf(w, "  Cutoff:     %.1f Hz\n", rep.Cutoff*opts.from)
	fmt.Fprintf(w, "  Stopband:   %.1f Hz\n", rep.Stopband*opts.from)
	fmt.Fprintf(w, "  DC gain:    %.10f .. %.10f\n", rep.MinDCGain, rep.MaxDCGain)
	fmt.Fprintf(w, "  Ripple:     %.4f dB\n", rep.PassbandRippleDB)
	fmt.Fprintf(w, "  Rejection:  %.1f dB\n", rep.StopbandAttenuationDB)
}
