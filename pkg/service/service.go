// Package service runs isomer counts and partition listings for the CLI and
// the HTTP API.
//
// The counting packages are pure and panic on bad arguments. A [Runner]
// puts the outer-layer concerns around them in one place: input validation
// against configured limits, result caching, timing, logging and
// observability hooks. Both entry points use the same Runner so their
// behavior and cache keys never drift apart.
//
//	runner := service.NewRunner(cache, nil, logger)
//	res, err := runner.Count(ctx, service.CountOptions{Kind: service.KindTrees, Vertices: 20, Bound: 4})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Count) // 366319
package service

import (
	"math/big"
	"time"

	"github.com/matzehuels/isomers/pkg/errors"
	"github.com/matzehuels/isomers/pkg/partition"
)

// =============================================================================
// Default Values
// =============================================================================

// Count kinds.
const (
	KindTrees      = "trees"
	KindRooted     = "rooted"
	KindPartitions = "partitions"
)

const (
	// DefaultDegree is the maximum vertex degree of an unrooted count. Four
	// is the valence of carbon, which makes the counts alkane isomers.
	DefaultDegree = 4

	// DefaultBranching is the child bound of a rooted count: a carbon
	// substituent attaches by one bond and keeps three for children.
	DefaultBranching = 3

	// DefaultPartitionLimit caps how many partitions a listing returns.
	DefaultPartitionLimit = 1000
)

// ValidKinds is the set of supported count kinds.
var ValidKinds = map[string]bool{
	KindTrees:  true,
	KindRooted: true,
}

// =============================================================================
// Options
// =============================================================================

// CountOptions describes one tree count.
type CountOptions struct {
	Kind     string `json:"kind"`     // KindTrees or KindRooted
	Vertices int    `json:"vertices"` // number of vertices, >= 1
	Bound    int    `json:"bound"`    // max degree (trees) or branching (rooted); 0 selects the default

	// Workers > 1 splits an unrooted count across goroutines.
	Workers int `json:"-"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"-"`
}

// ValidateAndSetDefaults fills the default bound and checks the options
// against lim.
func (o *CountOptions) ValidateAndSetDefaults(lim errors.Limits) error {
	if o.Kind == "" {
		o.Kind = KindTrees
	}
	if !ValidKinds[o.Kind] {
		return errors.New(errors.ErrCodeInvalidInput, "unknown count kind %q", o.Kind)
	}
	if o.Bound == 0 {
		if o.Kind == KindRooted {
			o.Bound = DefaultBranching
		} else {
			o.Bound = DefaultDegree
		}
	}
	if o.Kind == KindRooted {
		if err := errors.ValidateBranching(o.Bound, o.Vertices); err != nil {
			return err
		}
		return errors.ValidateRootedVertices(o.Vertices, o.Bound, lim)
	}
	if err := errors.ValidateDegree(o.Bound, o.Vertices); err != nil {
		return err
	}
	return errors.ValidateVertices(o.Vertices, o.Bound, lim)
}

// PartitionOptions describes a partition listing. Zero MaxParts or MaxValue
// means unbounded, which is the same as the sum.
type PartitionOptions struct {
	Sum      int `json:"sum"`
	MaxParts int `json:"max_parts"`
	MaxValue int `json:"max_value"`

	// Limit caps the number of partitions returned; Total still counts all
	// of them. Zero selects DefaultPartitionLimit.
	Limit int `json:"limit"`
}

// ValidateAndSetDefaults resolves the unbounded markers and checks the
// options against lim.
func (o *PartitionOptions) ValidateAndSetDefaults(lim errors.Limits) error {
	if err := errors.ValidatePartitionBounds(o.Sum, o.MaxParts, o.MaxValue, lim); err != nil {
		return err
	}
	if o.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "limit must be non-negative, got %d", o.Limit)
	}
	if o.MaxParts == 0 {
		o.MaxParts = o.Sum
	}
	if o.MaxValue == 0 {
		o.MaxValue = o.Sum
	}
	if o.Limit == 0 {
		o.Limit = DefaultPartitionLimit
	}
	return nil
}

// Partitioner returns the partitioner described by validated options.
func (o PartitionOptions) Partitioner() *partition.Partitioner {
	return partition.New(o.Sum, o.MaxParts, o.MaxValue)
}

// =============================================================================
// Results
// =============================================================================

// CountResult is the outcome of a tree count. Count is a decimal string in
// JSON because the values exceed every fixed-width integer type.
type CountResult struct {
	Kind     string        `json:"kind"`
	Vertices int           `json:"vertices"`
	Bound    int           `json:"bound"`
	Count    string        `json:"count"`
	Digits   int           `json:"digits"`
	Cached   bool          `json:"cached"`
	Duration time.Duration `json:"duration_ns"`
}

// Value parses Count back into an integer.
func (r *CountResult) Value() *big.Int {
	v, ok := new(big.Int).SetString(r.Count, 10)
	if !ok {
		return new(big.Int)
	}
	return v
}

func newCountResult(opts CountOptions, v *big.Int, d time.Duration) *CountResult {
	s := v.String()
	return &CountResult{
		Kind:     opts.Kind,
		Vertices: opts.Vertices,
		Bound:    opts.Bound,
		Count:    s,
		Digits:   len(s),
		Duration: d,
	}
}

// PartitionResult is a partition listing.
type PartitionResult struct {
	Sum        int                `json:"sum"`
	MaxParts   int                `json:"max_parts"`
	MaxValue   int                `json:"max_value"`
	Total      int                `json:"total"`
	Truncated  bool               `json:"truncated"`
	Partitions [][]partition.Part `json:"partitions"`
	Cached     bool               `json:"cached"`
	Duration   time.Duration      `json:"duration_ns"`
}

// Table holds unrooted counts for 1..len(Rows) vertices under several
// degree bounds. Rows[i][j] is the count for i+1 vertices and Degrees[j].
type Table struct {
	Degrees []int        `json:"degrees"`
	Rows    [][]*big.Int `json:"rows"`
}
