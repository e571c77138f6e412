package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isomers/pkg/cache"
	perrors "github.com/matzehuels/isomers/pkg/errors"
	"github.com/matzehuels/isomers/pkg/observability"
)

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, log.New(io.Discard))
}

func newFileCache(t *testing.T) *cache.FileCache {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return c
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatal("NewRunner should fill nil dependencies")
	}
	if r.Limits != perrors.DefaultLimits {
		t.Errorf("Limits = %+v, want defaults", r.Limits)
	}
}

func TestTrees(t *testing.T) {
	r := newTestRunner(t, nil)
	res, err := r.Trees(context.Background(), 20, 4)
	if err != nil {
		t.Fatalf("Trees: %v", err)
	}
	if res.Count != "366319" {
		t.Errorf("Count = %s, want 366319", res.Count)
	}
	if res.Digits != 6 || res.Kind != KindTrees || res.Bound != 4 {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Value().Int64() != 366319 {
		t.Errorf("Value() = %s", res.Value())
	}
}

func TestRootedDefaultBranching(t *testing.T) {
	r := newTestRunner(t, nil)
	res, err := r.Rooted(context.Background(), 8, 0)
	if err != nil {
		t.Fatalf("Rooted: %v", err)
	}
	if res.Bound != DefaultBranching {
		t.Errorf("Bound = %d, want %d", res.Bound, DefaultBranching)
	}
	// OEIS A000598(8)
	if res.Count != "89" {
		t.Errorf("Count = %s, want 89", res.Count)
	}
}

func TestCountParallelMatchesSequential(t *testing.T) {
	r := newTestRunner(t, nil)
	ctx := context.Background()
	seq, err := r.Count(ctx, CountOptions{Vertices: 30, Bound: 4})
	if err != nil {
		t.Fatal(err)
	}
	par, err := r.Count(ctx, CountOptions{Vertices: 30, Bound: 4, Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if seq.Count != par.Count {
		t.Errorf("parallel %s != sequential %s", par.Count, seq.Count)
	}
}

func TestCountValidation(t *testing.T) {
	r := newTestRunner(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts CountOptions
		code perrors.Code
	}{
		{"zero vertices", CountOptions{Vertices: 0}, perrors.ErrCodeInvalidVertices},
		{"negative degree", CountOptions{Vertices: 5, Bound: -1}, perrors.ErrCodeInvalidDegree},
		{"too many vertices", CountOptions{Vertices: 10000}, perrors.ErrCodeTooLarge},
		{"unknown kind", CountOptions{Kind: "forests", Vertices: 5}, perrors.ErrCodeInvalidInput},
		{"negative branching", CountOptions{Kind: KindRooted, Vertices: 5, Bound: -2}, perrors.ErrCodeInvalidDegree},
		{"degree 8 at 400 vertices", CountOptions{Vertices: 400, Bound: 8}, perrors.ErrCodeTooLarge},
		{"degree 5 at 400 vertices", CountOptions{Vertices: 400, Bound: 5}, perrors.ErrCodeTooLarge},
		{"unbounded degree", CountOptions{Vertices: 100, Bound: 99}, perrors.ErrCodeTooLarge},
		{"wide rooted branching", CountOptions{Kind: KindRooted, Vertices: 200, Bound: 10}, perrors.ErrCodeTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Count(ctx, tt.opts)
			if !perrors.Is(err, tt.code) {
				t.Errorf("Count(%+v) error = %v, want code %s", tt.opts, err, tt.code)
			}
		})
	}
}

func TestCountUsesCache(t *testing.T) {
	c := newFileCache(t)
	r := newTestRunner(t, c)
	ctx := context.Background()

	first, err := r.Trees(ctx, 18, 4)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Error("first count should not be cached")
	}

	second, err := r.Trees(ctx, 18, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Error("second count should come from the cache")
	}
	if second.Count != first.Count {
		t.Errorf("cached count %s != computed %s", second.Count, first.Count)
	}

	refreshed, err := r.Count(ctx, CountOptions{Vertices: 18, Bound: 4, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.Cached {
		t.Error("Refresh should bypass the cache")
	}
}

// failingCache fails every operation.
type failingCache struct{ *cache.NullCache }

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, cache.ErrNetwork
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return cache.ErrNetwork
}

func TestCacheErrorsDoNotFailCount(t *testing.T) {
	r := newTestRunner(t, failingCache{cache.NewNullCache()})
	res, err := r.Trees(context.Background(), 10, 4)
	if err != nil {
		t.Fatalf("cache failure leaked into result: %v", err)
	}
	if res.Count != "75" {
		t.Errorf("Count = %s, want 75", res.Count)
	}
}

func TestCountCanceled(t *testing.T) {
	r := newTestRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Count(ctx, CountOptions{Vertices: 40, Bound: 4, Workers: 2})
	if !perrors.Is(err, perrors.ErrCodeCanceled) {
		t.Errorf("expected CANCELED, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error should wrap context.Canceled, got %v", err)
	}
}

func TestCountSequentialCanceled(t *testing.T) {
	r := newTestRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Count(ctx, CountOptions{Vertices: 40, Bound: 4})
	if !perrors.Is(err, perrors.ErrCodeCanceled) {
		t.Errorf("expected CANCELED without workers, got %v", err)
	}
}

func TestCountStopsAtDeadline(t *testing.T) {
	r := newTestRunner(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// p(59) partitions at the top level: accepted, but far slower than the
	// deadline.
	start := time.Now()
	_, err := r.Count(ctx, CountOptions{Vertices: 60, Bound: 60})
	if err == nil {
		t.Skip("count finished before the deadline")
	}
	if !perrors.Is(err, perrors.ErrCodeCanceled) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected CANCELED wrapping DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("count kept running %v after its deadline", elapsed)
	}
}

func TestTableTooLarge(t *testing.T) {
	r := newTestRunner(t, nil)
	if _, err := r.Table(context.Background(), 400, []int{4}); !perrors.Is(err, perrors.ErrCodeTooLarge) {
		t.Errorf("expected TOO_LARGE for a 400-row table, got %v", err)
	}
}

func TestTableCanceled(t *testing.T) {
	r := newTestRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Table(ctx, 20, []int{4})
	if !perrors.Is(err, perrors.ErrCodeCanceled) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected CANCELED wrapping context.Canceled, got %v", err)
	}
}

func TestPartitions(t *testing.T) {
	r := newTestRunner(t, nil)
	res, err := r.Partitions(context.Background(), PartitionOptions{Sum: 6})
	if err != nil {
		t.Fatalf("Partitions: %v", err)
	}
	// p(6) = 11
	if res.Total != 11 || len(res.Partitions) != 11 || res.Truncated {
		t.Errorf("Total = %d, listed = %d, truncated = %v", res.Total, len(res.Partitions), res.Truncated)
	}
	if res.MaxParts != 6 || res.MaxValue != 6 {
		t.Errorf("unbounded markers not resolved: %+v", res)
	}
	for _, p := range res.Partitions {
		sum := 0
		for _, pt := range p {
			sum += pt.Value * pt.Count
		}
		if sum != 6 {
			t.Errorf("partition %v sums to %d", p, sum)
		}
	}
}

func TestPartitionsTruncated(t *testing.T) {
	r := newTestRunner(t, nil)
	res, err := r.Partitions(context.Background(), PartitionOptions{Sum: 20, Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	// p(20) = 627
	if res.Total != 627 || len(res.Partitions) != 5 || !res.Truncated {
		t.Errorf("Total = %d, listed = %d, truncated = %v", res.Total, len(res.Partitions), res.Truncated)
	}
}

func TestPartitionsBounded(t *testing.T) {
	r := newTestRunner(t, nil)
	res, err := r.Partitions(context.Background(), PartitionOptions{Sum: 10, MaxParts: 3, MaxValue: 4})
	if err != nil {
		t.Fatal(err)
	}
	// 4+4+2, 4+3+3
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
}

func TestPartitionsValidation(t *testing.T) {
	r := newTestRunner(t, nil)
	ctx := context.Background()
	if _, err := r.Partitions(ctx, PartitionOptions{Sum: -1}); !perrors.Is(err, perrors.ErrCodeInvalidBounds) {
		t.Errorf("expected INVALID_BOUNDS, got %v", err)
	}
	if _, err := r.Partitions(ctx, PartitionOptions{Sum: 1000}); !perrors.Is(err, perrors.ErrCodeTooLarge) {
		t.Errorf("expected TOO_LARGE, got %v", err)
	}
	if _, err := r.Partitions(ctx, PartitionOptions{Sum: 5, Limit: -1}); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestTable(t *testing.T) {
	r := newTestRunner(t, nil)
	tbl, err := r.Table(context.Background(), 10, []int{2, 4})
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if len(tbl.Rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(tbl.Rows))
	}
	want4 := []int64{1, 1, 1, 2, 3, 5, 9, 18, 35, 75}
	for i, row := range tbl.Rows {
		if row[0].Int64() != 1 {
			t.Errorf("degree 2, %d vertices = %s, want 1", i+1, row[0])
		}
		if row[1].Int64() != want4[i] {
			t.Errorf("degree 4, %d vertices = %s, want %d", i+1, row[1], want4[i])
		}
	}

	if _, err := r.Table(context.Background(), 10, nil); err == nil {
		t.Error("Table without degrees should fail")
	}
	if _, err := r.Table(context.Background(), 10, []int{0}); !perrors.Is(err, perrors.ErrCodeInvalidDegree) {
		t.Errorf("expected INVALID_DEGREE, got %v", err)
	}
}

type recordingHooks struct {
	observability.NoopCountHooks
	mu     sync.Mutex
	starts []string
	ends   []string
}

func (h *recordingHooks) OnCountStart(_ context.Context, kind string, _, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts = append(h.starts, kind)
}

func (h *recordingHooks) OnCountComplete(_ context.Context, kind string, _, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ends = append(h.ends, kind)
}

func TestCountHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetCountHooks(h)
	defer observability.Reset()

	r := newTestRunner(t, nil)
	ctx := context.Background()
	if _, err := r.Trees(ctx, 6, 4); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Partitions(ctx, PartitionOptions{Sum: 4}); err != nil {
		t.Fatal(err)
	}

	want := []string{KindTrees, KindPartitions}
	if len(h.starts) != 2 || h.starts[0] != want[0] || h.starts[1] != want[1] {
		t.Errorf("starts = %v, want %v", h.starts, want)
	}
	if len(h.ends) != 2 {
		t.Errorf("ends = %v, want two events", h.ends)
	}
}
