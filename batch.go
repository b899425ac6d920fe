package resampler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Stage is a point in the per-waveform lifecycle.
type Stage int

// Lifecycle stages, in order.
const (
	StagePending Stage = iota
	StageLoaded
	StageAnalyzed
	StageEstimated
	StageRateSelected
	StageResampled
	StagePersisted
)

var stageNames = [...]string{
	StagePending:      "pending",
	StageLoaded:       "loaded",
	StageAnalyzed:     "analyzed",
	StageEstimated:    "estimated",
	StageRateSelected: "rate_selected",
	StageResampled:    "resampled",
	StagePersisted:    "persisted",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Item is one unit of batch work. Load is called at most once, from the
// worker that processes the item.
type Item struct {
	Name string
	Load func(ctx context.Context) (*Waveform, error)
}

// PersistFunc stores a finished result. It runs on the worker goroutine.
type PersistFunc func(ctx context.Context, name string, r *Result) error

// BatchOptions configures ProcessBatch.
type BatchOptions struct {
	// Limit caps how many items (after sorting) are attempted. Zero or
	// negative means no cap.
	Limit int

	// Workers is the number of items processed concurrently. Values below
	// 1 mean 1.
	Workers int

	// Persist, when set, runs after resampling. On success the result's
	// samples are released and only its rates and bandwidth remain.
	Persist PersistFunc

	// Logger receives per-item progress. Nil disables logging.
	Logger *zap.Logger
}

// ItemResult records how far one item got.
type ItemResult struct {
	Name string

	// Result carries whatever the engine produced before the item finished
	// or failed; it is nil when the item failed before analysis.
	Result *Result

	// Stage is the last stage completed.
	Stage Stage

	Err error
}

// ProcessBatch runs items in lexicographic order of Name, truncated to
// opts.Limit. Per-item failures are recorded in the returned slice and do
// not stop the batch. Results are always in sorted order regardless of
// opts.Workers.
//
// Cancelling ctx stops new items from starting; items that never started
// report ctx.Err(), and ProcessBatch returns ctx.Err(). Items already
// running finish their current computation.
func (e *Engine) ProcessBatch(ctx context.Context, items []Item, opts BatchOptions) ([]ItemResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return strings.Compare(a.Name, b.Name)
	})
	if opts.Limit > 0 && len(sorted) > opts.Limit {
		sorted = sorted[:opts.Limit]
	}

	results := make([]ItemResult, len(sorted))
	for i, it := range sorted {
		results[i] = ItemResult{Name: it.Name, Stage: StagePending}
	}

	workers := max(1, min(opts.Workers, len(sorted)))
	logger.Info("batch started",
		zap.Int("items", len(sorted)),
		zap.Int("skipped_by_limit", len(items)-len(sorted)),
		zap.Int("workers", workers))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i].Err = err
					continue
				}
				e.runItem(ctx, sorted[i], &results[i], opts.Persist, logger)
			}
		}()
	}

	for i := range sorted {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("batch finished", zap.Int("items", len(results)), zap.Int("failed", failed))

	return results, ctx.Err()
}

var errNoLoader = errors.New("item has no loader")

// runItem drives one item through every stage, recording progress in out.
func (e *Engine) runItem(ctx context.Context, it Item, out *ItemResult, persist PersistFunc, logger *zap.Logger) {
	log := logger.With(zap.String("item", it.Name))
	fail := func(err error) {
		out.Err = err
		log.Warn("item failed", zap.Stringer("stage", out.Stage), zap.Error(err))
	}

	if it.Load == nil {
		fail(errNoLoader)
		return
	}
	w, err := it.Load(ctx)
	if err != nil {
		fail(fmt.Errorf("load: %w", err))
		return
	}
	out.Stage = StageLoaded
	log.Debug("item loaded",
		zap.Float64("source_rate", w.Rate),
		zap.Int("channels", w.NumChannels()),
		zap.Int("samples", w.Len()))

	res, err := e.process(w, func(s Stage, r *Result) {
		out.Stage = s
		out.Result = r
		switch s {
		case StageEstimated:
			log.Debug("bandwidth estimated",
				zap.Float64("bandwidth_hz", r.Bandwidth.Frequency),
				zap.Bool("fallback", r.Bandwidth.Fallback))
		case StageRateSelected:
			log.Debug("rate selected",
				zap.Float64("source_rate", r.SourceRate),
				zap.Int("target_rate", r.TargetRate))
		}
	})
	if err != nil {
		fail(err)
		return
	}
	log.Debug("item resampled", zap.Int("samples", res.Waveform.Len()))

	if persist == nil {
		return
	}
	if err := persist(ctx, it.Name, res); err != nil {
		fail(fmt.Errorf("persist: %w", err))
		return
	}
	res.Waveform = nil
	out.Stage = StagePersisted
	log.Debug("item persisted")
}
