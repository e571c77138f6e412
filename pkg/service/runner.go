package service

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isomers/pkg/cache"
	"github.com/matzehuels/isomers/pkg/errors"
	"github.com/matzehuels/isomers/pkg/isomers"
	"github.com/matzehuels/isomers/pkg/observability"
	"github.com/matzehuels/isomers/pkg/partition"
)

// Runner executes counts with caching. It holds no per-request state, so
// one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Limits errors.Limits
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer means the DefaultKeyer, a nil cache disables caching and a
// nil logger means log.Default(). Limits start at errors.DefaultLimits.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Limits: errors.DefaultLimits,
	}
}

// Trees counts unrooted trees with maximum vertex degree degree.
func (r *Runner) Trees(ctx context.Context, vertices, degree int) (*CountResult, error) {
	return r.Count(ctx, CountOptions{Kind: KindTrees, Vertices: vertices, Bound: degree})
}

// Rooted counts rooted trees with at most branching children per node.
func (r *Runner) Rooted(ctx context.Context, vertices, branching int) (*CountResult, error) {
	return r.Count(ctx, CountOptions{Kind: KindRooted, Vertices: vertices, Bound: branching})
}

// Count validates opts, answers from the cache when possible and otherwise
// computes and stores the count.
func (r *Runner) Count(ctx context.Context, opts CountOptions) (*CountResult, error) {
	if err := opts.ValidateAndSetDefaults(r.Limits); err != nil {
		return nil, err
	}
	key := r.Keyer.CountKey(opts.Kind, opts.Vertices, opts.Bound)

	if !opts.Refresh {
		var cached CountResult
		if r.load(ctx, "count", key, &cached) {
			cached.Cached = true
			r.Logger.Debug("count cache hit", "kind", opts.Kind, "vertices", opts.Vertices, "bound", opts.Bound)
			return &cached, nil
		}
	}

	hooks := observability.Count()
	hooks.OnCountStart(ctx, opts.Kind, opts.Vertices, opts.Bound)
	start := time.Now()
	v, err := r.compute(ctx, opts)
	elapsed := time.Since(start)
	hooks.OnCountComplete(ctx, opts.Kind, opts.Vertices, opts.Bound, elapsed, err)
	if err != nil {
		return nil, err
	}

	res := newCountResult(opts, v, elapsed)
	r.Logger.Info("counted "+opts.Kind,
		"vertices", opts.Vertices,
		"bound", opts.Bound,
		"digits", res.Digits,
		"duration", elapsed)

	r.store(ctx, "count", key, res, cache.TTLCount)
	return res, nil
}

func (r *Runner) compute(ctx context.Context, opts CountOptions) (v *big.Int, err error) {
	defer errors.Recover(&err)

	if opts.Kind == KindRooted {
		return isomers.RootedTrees(opts.Vertices, opts.Bound), nil
	}
	// Both paths check ctx inside the partition loop, so a request deadline
	// stops the work instead of only abandoning it.
	var (
		n    *big.Int
		perr error
	)
	if opts.Workers > 1 {
		n, perr = isomers.TreePermutationsParallel(ctx, opts.Vertices, opts.Bound, opts.Workers)
	} else {
		n, perr = isomers.TreePermutationsContext(ctx, opts.Vertices, opts.Bound)
	}
	if perr != nil {
		return nil, errors.Wrap(errors.ErrCodeCanceled, perr, "count interrupted")
	}
	return n, nil
}

// Partitions lists partitions of opts.Sum. The full enumeration runs to
// compute Total even when the listing is truncated at opts.Limit.
func (r *Runner) Partitions(ctx context.Context, opts PartitionOptions) (*PartitionResult, error) {
	if err := opts.ValidateAndSetDefaults(r.Limits); err != nil {
		return nil, err
	}
	key := r.Keyer.PartitionsKey(cache.PartitionKeyOpts{
		Sum:      opts.Sum,
		MaxParts: opts.MaxParts,
		MaxValue: opts.MaxValue,
		Limit:    opts.Limit,
	})

	var cached PartitionResult
	if r.load(ctx, "partitions", key, &cached) {
		cached.Cached = true
		return &cached, nil
	}

	hooks := observability.Count()
	hooks.OnCountStart(ctx, KindPartitions, opts.Sum, opts.MaxParts)
	start := time.Now()

	res := &PartitionResult{
		Sum:        opts.Sum,
		MaxParts:   opts.MaxParts,
		MaxValue:   opts.MaxValue,
		Partitions: [][]partition.Part{},
	}
	var err error
	for p := range opts.Partitioner().All() {
		if res.Total%4096 == 0 {
			if err = ctx.Err(); err != nil {
				break
			}
		}
		if res.Total < opts.Limit {
			res.Partitions = append(res.Partitions, p.Slice())
		}
		res.Total++
	}
	res.Truncated = res.Total > len(res.Partitions)
	res.Duration = time.Since(start)
	hooks.OnCountComplete(ctx, KindPartitions, opts.Sum, opts.MaxParts, res.Duration, err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCanceled, err, "partition listing interrupted")
	}

	r.Logger.Info("listed partitions",
		"sum", opts.Sum,
		"total", res.Total,
		"truncated", res.Truncated,
		"duration", res.Duration)

	r.store(ctx, "partitions", key, res, cache.TTLPartitions)
	return res, nil
}

// Table computes unrooted counts for 1..maxVertices vertices under each of
// degrees. Tables are cheap relative to their largest entry and are not
// cached as a whole.
func (r *Runner) Table(ctx context.Context, maxVertices int, degrees []int) (t *Table, err error) {
	if len(degrees) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one degree is required")
	}
	for _, d := range degrees {
		if err := errors.ValidateDegree(d, maxVertices); err != nil {
			return nil, err
		}
		if err := errors.ValidateSequence(maxVertices, d, r.Limits); err != nil {
			return nil, err
		}
	}
	defer errors.Recover(&err)

	start := time.Now()
	t = &Table{Degrees: degrees, Rows: make([][]*big.Int, maxVertices)}
	for i := range t.Rows {
		t.Rows[i] = make([]*big.Int, len(degrees))
	}
	for j, d := range degrees {
		for i := range t.Rows {
			v, cerr := isomers.TreePermutationsContext(ctx, i+1, d)
			if cerr != nil {
				return nil, errors.Wrap(errors.ErrCodeCanceled, cerr, "table interrupted")
			}
			t.Rows[i][j] = v
		}
	}
	r.Logger.Info("computed table", "vertices", maxVertices, "degrees", degrees, "duration", time.Since(start))
	return t, nil
}

// load decodes a cached value into dst. Backend failures and undecodable
// entries count as misses; caching never fails a request.
func (r *Runner) load(ctx context.Context, keyType, key string, dst any) bool {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return false
	}
	if !hit || json.Unmarshal(data, dst) != nil {
		hooks.OnCacheMiss(ctx, keyType)
		return false
	}
	hooks.OnCacheHit(ctx, keyType)
	return true
}

func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
