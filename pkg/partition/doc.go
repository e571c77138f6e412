// Package partition enumerates integer partitions under part-count and
// part-size bounds.
//
// # Overview
//
// An integer partition of n is a multiset of positive integers summing to n.
// A [Partitioner] fixes three bounds: the target sum, the maximum number of
// parts (counted with multiplicity) and the maximum part value. Every
// partition satisfying those bounds is produced exactly once.
//
// A [Partition] is a sequence of [Part] values, each a (value, multiplicity)
// pair, observed in ascending value order:
//
//	p := partition.New(6, 3, 6)
//	for q := range p.All() {
//	    fmt.Println(q) // [6, 1] / [1, 1], [5, 1] / ...
//	}
//
// # Enumeration Order
//
// Enumeration starts at the partition with the fewest, largest parts and
// moves to the next admissible partition by a local transition: the lowest
// parts are removed, one part of the next value up is split off, and the
// freed amount is greedily redistributed using strictly smaller parts. Each
// step touches only the tail of the partition, so walking the full sequence
// does no per-step reallocation.
//
// # Ownership
//
// Two access forms are provided:
//
//   - [Partitioner.Cursor] and [Partitioner.All] reuse one [Partition] value
//     that is mutated in place on every advance. Callers that keep a value
//     past the next advance must [Partition.Clone] it. A cursor must not be
//     shared between goroutines.
//   - [Partitioner.Collect] returns independent snapshots owned by the
//     caller, suitable for random access and fan-out to worker goroutines.
//
// Advancing a finished cursor reports [ErrExhausted]. Negative bounds are
// programming errors and panic.
package partition
