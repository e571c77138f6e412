package isomers

import (
	"fmt"
	"math/big"

	"github.com/matzehuels/isomers/pkg/combin"
	"github.com/matzehuels/isomers/pkg/partition"
)

// ArgumentError is the panic value for calls outside a count's domain.
type ArgumentError struct {
	Op       string
	Vertices int
	Bound    int
	Reason   string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("isomers: %s(%d, %d): %s", e.Op, e.Vertices, e.Bound, e.Reason)
}

// Counter memoizes rooted tree counts for one branching bound.
//
// A Counter is scoped to a single computation: it is not safe for
// concurrent use, and a memo built for one branching bound is meaningless
// for another.
type Counter struct {
	branching int
	memo      []*big.Int // memo[n] is the rooted count for n vertices, nil until computed
}

// NewCounter returns a Counter for rooted trees whose vertices have at most
// branching children. limit sizes the memo for vertex counts up to limit;
// larger counts grow it on demand.
func NewCounter(limit, branching int) *Counter {
	if branching < 0 {
		panic(&ArgumentError{Op: "NewCounter", Vertices: limit, Bound: branching, Reason: "branching must be non-negative"})
	}
	return &Counter{
		branching: branching,
		memo:      make([]*big.Int, max(limit, 0)+1),
	}
}

// Branching returns the child bound this Counter counts under.
func (c *Counter) Branching() int { return c.branching }

// Rooted returns the number of rooted trees on vertices nodes, filling the
// memo for every smaller subtree size it visits.
func (c *Counter) Rooted(vertices int) *big.Int {
	if vertices < 1 {
		panic(&ArgumentError{Op: "Rooted", Vertices: vertices, Bound: c.branching, Reason: "vertices must be positive"})
	}
	return new(big.Int).Set(c.rooted(vertices))
}

// rooted returns a memo-owned value; callers must not modify it.
func (c *Counter) rooted(vertices int) *big.Int {
	if vertices == 1 {
		return bigOne
	}
	// A root with no child slots cannot reach a second vertex.
	if c.branching == 0 {
		return bigZero
	}
	if vertices == 2 {
		return bigOne
	}
	if vertices < len(c.memo) {
		if r := c.memo[vertices]; r != nil {
			return r
		}
	} else {
		c.memo = append(c.memo, make([]*big.Int, vertices+1-len(c.memo))...)
	}

	r := c.sum(partition.NewBounded(vertices-1, c.branching))
	c.memo[vertices] = r
	return r
}

// sum adds the subtree choices of every partition p produces.
func (c *Counter) sum(p *partition.Partitioner) *big.Int {
	total := new(big.Int)
	for q := range p.All() {
		total.Add(total, c.product(q))
	}
	return total
}

// product returns the number of ways to pick one multiset of rooted
// subtrees per distinct size in q.
func (c *Counter) product(q *partition.Partition) *big.Int {
	p := big.NewInt(1)
	for pt := range q.Parts() {
		r := c.rooted(pt.Value)
		p.Mul(p, combin.Multisets(r, big.NewInt(int64(pt.Count))))
	}
	return p
}

// bicentral counts trees whose centroid is an edge joining two rooted
// subtrees of half vertices each.
func (c *Counter) bicentral(half int) *big.Int {
	return combin.Multisets(c.rooted(half), bigTwo)
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
)

// RootedTrees returns the number of rooted trees on vertices nodes in which
// every node has at most branching children, counted up to reordering of
// children.
//
// It panics with an *ArgumentError if vertices < 1, branching < 0, or
// branching is zero while vertices > 1.
func RootedTrees(vertices, branching int) *big.Int {
	if vertices < 1 {
		panic(&ArgumentError{Op: "RootedTrees", Vertices: vertices, Bound: branching, Reason: "vertices must be positive"})
	}
	if branching < 0 || (branching == 0 && vertices > 1) {
		panic(&ArgumentError{Op: "RootedTrees", Vertices: vertices, Bound: branching, Reason: "branching too small"})
	}
	return NewCounter(vertices, branching).Rooted(vertices)
}

// TreePermutations returns the number of unrooted trees on vertices nodes
// whose vertices all have degree at most degree.
//
// It panics with an *ArgumentError if vertices < 1, or if degree < 1 while
// vertices > 1.
func TreePermutations(vertices, degree int) *big.Int {
	checkTree("TreePermutations", vertices, degree)
	if vertices == 1 {
		return big.NewInt(1)
	}

	c := NewCounter(vertices/2, degree-1)
	total := c.sum(centroidPartitions(vertices, degree))
	if vertices%2 == 0 {
		total.Add(total, c.bicentral(vertices/2))
	}
	return total
}

// centroidPartitions bounds the subtree sizes around a centroid vertex:
// at most degree subtrees, none larger than half the remaining vertices.
func centroidPartitions(vertices, degree int) *partition.Partitioner {
	return partition.New(vertices-1, degree, (vertices-1)/2)
}

// Sequence returns TreePermutations(n, degree) for n = 1..maxVertices.
// Element i holds the count for i+1 vertices.
func Sequence(maxVertices, degree int) []*big.Int {
	out := make([]*big.Int, 0, max(maxVertices, 0))
	for n := 1; n <= maxVertices; n++ {
		out = append(out, TreePermutations(n, degree))
	}
	return out
}

func checkTree(op string, vertices, degree int) {
	if vertices < 1 {
		panic(&ArgumentError{Op: op, Vertices: vertices, Bound: degree, Reason: "vertices must be positive"})
	}
	if degree < 1 && vertices > 1 {
		panic(&ArgumentError{Op: op, Vertices: vertices, Bound: degree, Reason: "degree must be positive"})
	}
}
