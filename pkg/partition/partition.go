package partition

import (
	"iter"
	"strconv"
	"strings"
)

// Part is one distinct value of a partition together with its multiplicity.
type Part struct {
	Value int `json:"value"` // the part value, always >= 1
	Count int `json:"count"` // how many times Value occurs, always >= 1
}

// Partition is a single integer partition.
//
// Values are observed in strictly ascending order. Internally the pairs are
// stored with the lowest value last, since every transition edits the low
// end of the partition.
//
// A Partition obtained from a [Cursor] or [Partitioner.All] is owned by the
// enumeration and overwritten on the next advance; use [Partition.Clone] to
// keep it.
type Partition struct {
	parts []Part // descending by Value
	size  int    // sum of Count
}

// Len returns the number of distinct part values.
func (p *Partition) Len() int { return len(p.parts) }

// Size returns the number of parts counted with multiplicity.
func (p *Partition) Size() int { return p.size }

// Sum returns the weighted sum of the parts.
func (p *Partition) Sum() int {
	s := 0
	for _, pt := range p.parts {
		s += pt.Value * pt.Count
	}
	return s
}

// At returns the i-th pair in ascending value order.
// It panics if i is out of range.
func (p *Partition) At(i int) Part {
	return p.parts[len(p.parts)-1-i]
}

// Parts iterates the pairs in ascending value order without copying.
func (p *Partition) Parts() iter.Seq[Part] {
	return func(yield func(Part) bool) {
		for i := len(p.parts) - 1; i >= 0; i-- {
			if !yield(p.parts[i]) {
				return
			}
		}
	}
}

// Slice returns a new slice holding the pairs in ascending value order.
func (p *Partition) Slice() []Part {
	out := make([]Part, 0, len(p.parts))
	for pt := range p.Parts() {
		out = append(out, pt)
	}
	return out
}

// Values expands the partition into its parts with multiplicity, ascending.
func (p *Partition) Values() []int {
	out := make([]int, 0, p.size)
	for pt := range p.Parts() {
		for range pt.Count {
			out = append(out, pt.Value)
		}
	}
	return out
}

// Clone returns a deep copy that is unaffected by further enumeration.
func (p *Partition) Clone() *Partition {
	c := p.snapshot()
	return &c
}

func (p *Partition) snapshot() Partition {
	parts := make([]Part, len(p.parts))
	copy(parts, p.parts)
	return Partition{parts: parts, size: p.size}
}

// Equal reports whether p and q hold the same pairs.
func (p *Partition) Equal(q *Partition) bool {
	if len(p.parts) != len(q.parts) {
		return false
	}
	for i := range p.parts {
		if p.parts[i] != q.parts[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical string form suitable as a map key,
// e.g. "1x2+3x1" for 1+1+3.
func (p *Partition) Key() string {
	var b strings.Builder
	for pt := range p.Parts() {
		if b.Len() > 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(pt.Value))
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(pt.Count))
	}
	return b.String()
}

// String formats the pairs as "[value, count], ..." in ascending order.
func (p *Partition) String() string {
	var b strings.Builder
	for pt := range p.Parts() {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(pt.Value))
		b.WriteString(", ")
		b.WriteString(strconv.Itoa(pt.Count))
		b.WriteByte(']')
	}
	return b.String()
}

// FormatSum writes pairs given in ascending order as a sum of parts,
// largest first, e.g. "4 + 1×2". The empty partition is "∅".
func FormatSum(parts []Part) string {
	if len(parts) == 0 {
		return "∅"
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		if i < len(parts)-1 {
			b.WriteString(" + ")
		}
		b.WriteString(strconv.Itoa(parts[i].Value))
		if parts[i].Count > 1 {
			b.WriteString("×")
			b.WriteString(strconv.Itoa(parts[i].Count))
		}
	}
	return b.String()
}

// distribute fills sum back into the low end using the largest parts no
// greater than ceiling, appending each run below the existing ones.
func (p *Partition) distribute(sum, ceiling int) {
	for sum > 0 {
		if n := sum / ceiling; n > 0 {
			p.parts = append(p.parts, Part{Value: ceiling, Count: n})
			p.size += n
		}
		sum %= ceiling
		ceiling--
	}
}

// increment advances p to the next partition admissible under bins parts.
// It reports false when no further partition exists, leaving p unspecified.
func (p *Partition) increment(bins int) bool {
	if len(p.parts) == 0 {
		return false
	}

	// pending is the amount removed and awaiting redistribution; ceiling
	// caps the redistributed parts.
	pending, ceiling := 0, 1

	// A lowest run of ones can never be split further, so it goes entirely.
	removeLowest := p.parts[len(p.parts)-1].Value == 1

	for {
		last := len(p.parts) - 1
		if removeLowest {
			low := p.parts[last]
			pending += low.Value * low.Count
			p.size -= low.Count
			p.parts = p.parts[:last]
			last--
		}
		if last < 0 {
			return false
		}

		low := &p.parts[last]
		pending += low.Value
		ceiling = low.Value - 1
		low.Count--
		removeLowest = low.Count > 0
		if !removeLowest {
			p.parts = p.parts[:last]
		}
		p.size--

		if (pending-1)/ceiling+1 <= bins-p.size {
			break
		}
	}

	p.distribute(pending, ceiling)
	return true
}
