package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Limits caps the inputs accepted from users. Counting is exact, and the
// number of partitions visited grows quickly with both vertices and degree,
// so interactive surfaces refuse work they cannot finish.
type Limits struct {
	MaxVertices int // largest vertex count for any count
	MaxWork     int // largest estimated number of partitions one request may visit
	MaxSum      int // largest sum for partition listings
}

// DefaultLimits are the limits used when no configuration overrides them.
// The work budget admits 400 vertices at degree 4 and about 65 vertices
// with unbounded degree, each finishing within a few seconds.
var DefaultLimits = Limits{
	MaxVertices: 400,
	MaxWork:     2_000_000,
	MaxSum:      80,
}

// ValidateVertices checks a vertex count for an unrooted count with the
// given degree bound. Negative degrees are reported separately by
// ValidateDegree.
func ValidateVertices(vertices, degree int, lim Limits) error {
	if err := checkVertexRange(vertices, lim); err != nil {
		return err
	}
	return checkWork(TreeWork(vertices, degree), fmt.Sprintf("trees with %d vertices and degree %d", vertices, degree), lim)
}

// ValidateRootedVertices checks a vertex count for a rooted count with the
// given branching bound.
func ValidateRootedVertices(vertices, branching int, lim Limits) error {
	if err := checkVertexRange(vertices, lim); err != nil {
		return err
	}
	return checkWork(RootedWork(vertices, branching), fmt.Sprintf("rooted trees with %d vertices and branching %d", vertices, branching), lim)
}

// ValidateSequence checks a table column of unrooted counts for 1 to
// maxVertices vertices.
func ValidateSequence(maxVertices, degree int, lim Limits) error {
	if err := checkVertexRange(maxVertices, lim); err != nil {
		return err
	}
	return checkWork(SequenceWork(maxVertices, degree), fmt.Sprintf("a table up to %d vertices with degree %d", maxVertices, degree), lim)
}

func checkVertexRange(vertices int, lim Limits) error {
	if vertices < 1 {
		return New(ErrCodeInvalidVertices, "vertices must be at least 1, got %d", vertices)
	}
	if vertices > lim.MaxVertices {
		return New(ErrCodeTooLarge, "vertices %d exceeds limit of %d", vertices, lim.MaxVertices)
	}
	return nil
}

func checkWork(work float64, what string, lim Limits) error {
	if work > float64(lim.MaxWork) {
		return New(ErrCodeTooLarge, "counting %s visits about %.3g partitions, over the limit of %d",
			what, work, lim.MaxWork)
	}
	return nil
}

// ValidateDegree checks the maximum vertex degree of an unrooted count.
// A degree of zero is only meaningful for the single-vertex tree.
func ValidateDegree(degree, vertices int) error {
	if degree < 0 {
		return New(ErrCodeInvalidDegree, "degree must be non-negative, got %d", degree)
	}
	if degree == 0 && vertices > 1 {
		return New(ErrCodeInvalidDegree, "degree 0 admits no tree with %d vertices", vertices)
	}
	return nil
}

// ValidateBranching checks the child bound of a rooted count.
func ValidateBranching(branching, vertices int) error {
	if branching < 0 {
		return New(ErrCodeInvalidDegree, "branching must be non-negative, got %d", branching)
	}
	if branching == 0 && vertices > 1 {
		return New(ErrCodeInvalidDegree, "branching 0 admits no rooted tree with %d vertices", vertices)
	}
	return nil
}

// ValidatePartitionBounds checks the bounds of a partition listing.
func ValidatePartitionBounds(sum, maxParts, maxValue int, lim Limits) error {
	if sum < 0 || maxParts < 0 || maxValue < 0 {
		return New(ErrCodeInvalidBounds, "bounds must be non-negative (sum=%d, parts=%d, max=%d)", sum, maxParts, maxValue)
	}
	if sum > lim.MaxSum {
		return New(ErrCodeTooLarge, "sum %d exceeds limit of %d", sum, lim.MaxSum)
	}
	return nil
}

// ParseInt parses a decimal integer named field, such as a CLI argument or
// URL path segment.
func ParseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, Wrap(ErrCodeInvalidInput, err, "%s must be an integer, got %q", field, s)
	}
	return n, nil
}

// ParseIntList parses a comma-separated list of integers such as "1,2,4".
func ParseIntList(field, s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, New(ErrCodeInvalidInput, "%s cannot be empty", field)
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := ParseInt(field, p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
