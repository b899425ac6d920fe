package resampler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-adaptive-resampler/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errLoadFailed = errors.New("decode failed")

func toneItem(name string, freq float64) Item {
	return Item{
		Name: name,
		Load: func(context.Context) (*Waveform, error) {
			return NewWaveform(48000, testutil.Sine(freq, 0.5, 48000, 4800)), nil
		},
	}
}

func names(results []ItemResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "pending", StagePending.String())
	assert.Equal(t, "rate_selected", StageRateSelected.String())
	assert.Equal(t, "persisted", StagePersisted.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}

func TestProcessBatch_SortedOrder(t *testing.T) {
	e := newTestEngine(t, Config{SignificancePolicy: PolicyPeakMagnitude})
	items := []Item{
		toneItem("c.wav", 1000),
		toneItem("a.wav", 5000),
		toneItem("b.wav", 9000),
	}

	results, err := e.ProcessBatch(context.Background(), items, BatchOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"a.wav", "b.wav", "c.wav"}, names(results))

	wantRates := []int{12000, 22050, 8000}
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, StageResampled, r.Stage)
		assert.Equal(t, wantRates[i], r.Result.TargetRate, r.Name)
		assert.NotNil(t, r.Result.Waveform)
	}
	assert.Equal(t, "c.wav", items[0].Name, "caller's slice is not reordered")
}

func TestProcessBatch_Limit(t *testing.T) {
	e := newTestEngine(t, Config{})
	var items []Item
	for _, n := range []string{"e", "d", "c", "b", "a"} {
		items = append(items, toneItem(n, 1000))
	}

	tests := []struct {
		limit int
		want  []string
	}{
		{0, []string{"a", "b", "c", "d", "e"}},
		{-1, []string{"a", "b", "c", "d", "e"}},
		{2, []string{"a", "b"}},
		{5, []string{"a", "b", "c", "d", "e"}},
		{10, []string{"a", "b", "c", "d", "e"}},
	}
	for _, tt := range tests {
		results, err := e.ProcessBatch(context.Background(), items, BatchOptions{Limit: tt.limit})
		require.NoError(t, err)
		assert.Equal(t, tt.want, names(results), "limit %d", tt.limit)
	}
}

func TestProcessBatch_LimitCountsFailures(t *testing.T) {
	e := newTestEngine(t, Config{})
	items := []Item{
		{Name: "a", Load: func(context.Context) (*Waveform, error) { return nil, errLoadFailed }},
		toneItem("b", 1000),
		toneItem("c", 1000),
	}

	results, err := e.ProcessBatch(context.Background(), items, BatchOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, errLoadFailed)
	assert.NoError(t, results[1].Err)
}

func TestProcessBatch_FailuresDoNotAbort(t *testing.T) {
	e := newTestEngine(t, Config{})
	items := []Item{
		toneItem("1-ok", 1000),
		{Name: "2-load", Load: func(context.Context) (*Waveform, error) { return nil, errLoadFailed }},
		{Name: "3-empty", Load: func(context.Context) (*Waveform, error) { return NewWaveform(44100, []float64{}), nil }},
		{Name: "4-noloader"},
		toneItem("5-ok", 2000),
	}

	results, err := e.ProcessBatch(context.Background(), items, BatchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, errLoadFailed)
	assert.Equal(t, StagePending, results[1].Stage)
	assert.ErrorIs(t, results[2].Err, ErrInvalidInput)
	assert.Equal(t, StageLoaded, results[2].Stage)
	assert.Error(t, results[3].Err)
	assert.NoError(t, results[4].Err)
	assert.Equal(t, StageResampled, results[4].Stage)
}

func TestProcessBatch_Persist(t *testing.T) {
	e := newTestEngine(t, Config{SignificancePolicy: PolicyPeakMagnitude})
	items := []Item{toneItem("a", 1000), toneItem("b", 1000)}

	var mu sync.Mutex
	persisted := map[string]int{}
	persist := func(_ context.Context, name string, r *Result) error {
		if name == "b" {
			return errors.New("disk full")
		}
		mu.Lock()
		defer mu.Unlock()
		persisted[name] = r.Waveform.Len()
		return nil
	}

	results, err := e.ProcessBatch(context.Background(), items, BatchOptions{Persist: persist})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"a": 800}, persisted)

	assert.Equal(t, StagePersisted, results[0].Stage)
	assert.NoError(t, results[0].Err)
	assert.Nil(t, results[0].Result.Waveform, "samples are released after persisting")
	assert.Equal(t, RateTelephony, results[0].Result.TargetRate)

	assert.Equal(t, StageResampled, results[1].Stage)
	assert.ErrorContains(t, results[1].Err, "disk full")
	assert.NotNil(t, results[1].Result.Waveform)
}

func TestProcessBatch_WorkersMatchSequential(t *testing.T) {
	e := newTestEngine(t, Config{SignificancePolicy: PolicyPeakMagnitude})
	var items []Item
	for i, f := range []float64{500, 1500, 3000, 4500, 6000, 7500, 9000, 11000, 15000, 20000} {
		items = append(items, toneItem(string(rune('a'+i)), f))
	}

	seq, err := e.ProcessBatch(context.Background(), items, BatchOptions{Workers: 1})
	require.NoError(t, err)
	par, err := e.ProcessBatch(context.Background(), items, BatchOptions{Workers: 4})
	require.NoError(t, err)

	assert.Equal(t, seq, par)
}

func TestProcessBatch_CancelledBeforeStart(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loaded := false
	items := []Item{{Name: "a", Load: func(context.Context) (*Waveform, error) {
		loaded = true
		return nil, nil
	}}}

	results, err := e.ProcessBatch(ctx, items, BatchOptions{Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.Equal(t, StagePending, results[0].Stage)
	assert.False(t, loaded)
}

func TestProcessBatch_CancelledBetweenItems(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	items := []Item{
		toneItem("a", 1000),
		{Name: "b", Load: func(context.Context) (*Waveform, error) {
			cancel()
			return NewWaveform(48000, testutil.Sine(1000, 0.5, 48000, 4800)), nil
		}},
		toneItem("c", 1000),
		toneItem("d", 1000),
	}

	results, err := e.ProcessBatch(ctx, items, BatchOptions{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err, "an item already running finishes")
	assert.Equal(t, StageResampled, results[1].Stage)
	for _, r := range results[2:] {
		assert.ErrorIs(t, r.Err, context.Canceled, r.Name)
		assert.Equal(t, StagePending, r.Stage, r.Name)
	}
}

func TestProcessBatch_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := newTestEngine(t, Config{})
	items := []Item{
		toneItem("ok", 1000),
		{Name: "bad", Load: func(context.Context) (*Waveform, error) { return nil, errLoadFailed }},
	}

	_, err := e.ProcessBatch(context.Background(), items, BatchOptions{Logger: zap.New(core)})
	require.NoError(t, err)

	failed := logs.FilterMessage("item failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "bad", failed[0].ContextMap()["item"])
	assert.Equal(t, "pending", failed[0].ContextMap()["stage"])

	selected := logs.FilterMessage("rate selected").All()
	require.Len(t, selected, 1)
	assert.Equal(t, int64(8000), selected[0].ContextMap()["target_rate"])

	assert.Equal(t, 1, logs.FilterMessage("batch finished").Len())
}
