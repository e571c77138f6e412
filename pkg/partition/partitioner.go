package partition

import (
	"errors"
	"fmt"
	"iter"
)

// ErrExhausted is returned when a cursor is advanced past its last partition.
var ErrExhausted = errors.New("partition: enumeration exhausted")

// BoundsError is the panic value for a Partitioner built from negative bounds.
type BoundsError struct {
	Sum, MaxParts, MaxValue int
}

// Error implements the error interface.
func (e *BoundsError) Error() string {
	return fmt.Sprintf("partition: bounds must be non-negative (sum=%d, parts=%d, max=%d)",
		e.Sum, e.MaxParts, e.MaxValue)
}

// Partitioner enumerates the partitions of a sum under fixed bounds.
// It is immutable and safe for concurrent use; each enumeration it starts
// owns its own state.
type Partitioner struct {
	sum  int
	bins int
	max  int
}

// New returns a Partitioner for partitions of sum into at most maxParts
// parts, none greater than maxValue. Both bounds are clamped to sum.
// It panics with a *BoundsError if any argument is negative.
func New(sum, maxParts, maxValue int) *Partitioner {
	if sum < 0 || maxParts < 0 || maxValue < 0 {
		panic(&BoundsError{Sum: sum, MaxParts: maxParts, MaxValue: maxValue})
	}
	return &Partitioner{
		sum:  sum,
		bins: min(maxParts, sum),
		max:  min(maxValue, sum),
	}
}

// NewBounded returns a Partitioner with no part-value limit beyond sum.
func NewBounded(sum, maxParts int) *Partitioner { return New(sum, maxParts, sum) }

// NewUnbounded returns a Partitioner over every partition of sum.
func NewUnbounded(sum int) *Partitioner { return New(sum, sum, sum) }

// Sum returns the value the parts add up to.
func (p *Partitioner) Sum() int { return p.sum }

// MaxParts returns the clamped maximum number of parts.
func (p *Partitioner) MaxParts() int { return p.bins }

// MaxValue returns the clamped maximum part value.
func (p *Partitioner) MaxValue() int { return p.max }

// Feasible reports whether at least one partition exists.
func (p *Partitioner) Feasible() bool { return p.sum <= p.bins*p.max }

// String describes the bounds.
func (p *Partitioner) String() string {
	return fmt.Sprintf("partitions(sum=%d, parts<=%d, max<=%d)", p.sum, p.bins, p.max)
}

// Cursor starts a new single-pass enumeration.
func (p *Partitioner) Cursor() *Cursor {
	c := &Cursor{src: p, feasible: p.Feasible()}
	if c.feasible {
		c.cur.parts = make([]Part, 0, min(p.sum, p.max))
		c.cur.distribute(p.sum, p.max)
	}
	return c
}

// All iterates every partition using a single reused value.
// The yielded partition is only valid until the loop body returns.
func (p *Partitioner) All() iter.Seq[*Partition] {
	return func(yield func(*Partition) bool) {
		c := p.Cursor()
		for c.Next() {
			if !yield(c.Partition()) {
				return
			}
		}
	}
}

// Collect returns every partition as an independent snapshot,
// in enumeration order.
func (p *Partitioner) Collect() []Partition {
	var out []Partition
	c := p.Cursor()
	for c.Next() {
		out = append(out, c.cur.snapshot())
	}
	return out
}

// Count returns the number of partitions without retaining any.
func (p *Partitioner) Count() int {
	n := 0
	c := p.Cursor()
	for c.Next() {
		n++
	}
	return n
}

// Cursor is a forward-only enumeration over a Partitioner's partitions.
//
// The partition returned by Partition and Advance is the same value on
// every step and is rewritten in place when the cursor moves. A Cursor is
// not safe for concurrent use.
type Cursor struct {
	src      *Partitioner
	cur      Partition
	feasible bool
	started  bool
	done     bool
}

// Next moves to the next partition and reports whether one exists.
// The first call positions the cursor on the initial partition.
func (c *Cursor) Next() bool {
	if c.done {
		return false
	}
	if !c.started {
		c.started = true
		c.done = !c.feasible
	} else {
		c.done = !c.cur.increment(c.src.bins)
	}
	return !c.done
}

// Partition returns the current partition.
// It panics with ErrExhausted if Next has not returned true.
func (c *Cursor) Partition() *Partition {
	if !c.started || c.done {
		panic(ErrExhausted)
	}
	return &c.cur
}

// Advance moves to the next partition and returns it, or ErrExhausted
// once the enumeration has ended.
func (c *Cursor) Advance() (*Partition, error) {
	if !c.Next() {
		return nil, ErrExhausted
	}
	return &c.cur, nil
}

// Done reports whether the cursor has passed its last partition.
func (c *Cursor) Done() bool { return c.done }

// Partitioner returns the Partitioner that started this cursor.
func (c *Cursor) Partitioner() *Partitioner { return c.src }
