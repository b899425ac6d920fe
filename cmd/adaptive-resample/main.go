// Command adaptive-resample measures how much of its sample rate each audio
// file actually uses and rewrites it at the smallest catalogue rate that
// still covers that bandwidth.
//
// Usage:
//
//	adaptive-resample run --folder DIR [--num-sample N|all] [flags]
//	adaptive-resample estimate FILE...
//
// Commands:
//
//	run       - resample every supported file in a folder
//	estimate  - print bandwidth and target rate without writing
//
// Engine settings come from --config (YAML) and can be overridden per flag.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/tphakala/go-adaptive-resampler/cmd/adaptive-resample/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
