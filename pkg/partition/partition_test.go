package partition

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"testing"
)

// bruteForce lists every partition of n into at most parts parts no larger
// than max, as canonical keys.
func bruteForce(n, parts, max int) map[string]bool {
	out := make(map[string]bool)
	var walk func(rest, ceiling, left int, acc []int)
	walk = func(rest, ceiling, left int, acc []int) {
		if rest == 0 {
			out[keyOf(acc)] = true
			return
		}
		if left == 0 {
			return
		}
		for v := min(rest, ceiling); v >= 1; v-- {
			walk(rest-v, v, left-1, append(acc, v))
		}
	}
	walk(n, max, parts, nil)
	return out
}

// keyOf builds the Key form from a non-increasing list of parts.
func keyOf(vals []int) string {
	asc := slices.Clone(vals)
	slices.Sort(asc)
	var b strings.Builder
	for i := 0; i < len(asc); {
		j := i
		for j < len(asc) && asc[j] == asc[i] {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(asc[i]) + "x" + strconv.Itoa(j-i))
		i = j
	}
	return b.String()
}

func TestCompletenessAndUniqueness(t *testing.T) {
	for sum := 1; sum <= 12; sum++ {
		for parts := 0; parts <= sum+1; parts++ {
			for max := 0; max <= sum+1; max++ {
				want := bruteForce(sum, parts, max)
				got := New(sum, parts, max).Collect()

				seen := make(map[string]bool, len(got))
				for i := range got {
					k := got[i].Key()
					if seen[k] {
						t.Fatalf("New(%d,%d,%d): duplicate partition %s", sum, parts, max, k)
					}
					seen[k] = true
					if !want[k] {
						t.Fatalf("New(%d,%d,%d): unexpected partition %s", sum, parts, max, k)
					}
				}
				if len(seen) != len(want) {
					t.Fatalf("New(%d,%d,%d): got %d partitions, want %d", sum, parts, max, len(seen), len(want))
				}
			}
		}
	}
}

func TestInvariants(t *testing.T) {
	for sum := 1; sum <= 14; sum++ {
		for parts := 1; parts <= sum; parts++ {
			for max := 1; max <= sum; max++ {
				for q := range New(sum, parts, max).All() {
					if q.Sum() != sum {
						t.Fatalf("New(%d,%d,%d): %s sums to %d", sum, parts, max, q, q.Sum())
					}
					if q.Size() > parts {
						t.Fatalf("New(%d,%d,%d): %s has %d parts", sum, parts, max, q, q.Size())
					}
					prev, size := 0, 0
					for pt := range q.Parts() {
						if pt.Value <= prev {
							t.Fatalf("New(%d,%d,%d): %s not strictly ascending", sum, parts, max, q)
						}
						if pt.Value < 1 || pt.Value > max || pt.Count < 1 {
							t.Fatalf("New(%d,%d,%d): bad pair %+v in %s", sum, parts, max, pt, q)
						}
						prev = pt.Value
						size += pt.Count
					}
					if size != q.Size() {
						t.Fatalf("New(%d,%d,%d): Size()=%d but pairs hold %d", sum, parts, max, q.Size(), size)
					}
				}
			}
		}
	}
}

func TestPartitionNumbers(t *testing.T) {
	want := []int{1, 1, 2, 3, 5, 7, 11, 15, 22, 30, 42, 56, 77, 101, 135, 176, 231, 297, 385, 490, 627}
	for n, w := range want {
		if got := NewUnbounded(n).Count(); got != w {
			t.Errorf("p(%d) = %d, want %d", n, got, w)
		}
	}
}

func TestEnumerationOrder(t *testing.T) {
	var got []string
	for q := range NewUnbounded(4).All() {
		got = append(got, q.Key())
	}
	want := []string{"4x1", "1x1+3x1", "2x2", "1x2+2x1", "1x4"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestClamping(t *testing.T) {
	p := New(5, 10, 99)
	if p.MaxParts() != 5 || p.MaxValue() != 5 {
		t.Errorf("bounds not clamped: parts=%d max=%d", p.MaxParts(), p.MaxValue())
	}
	if p.Count() != NewUnbounded(5).Count() {
		t.Error("clamped partitioner should match unbounded one")
	}
}

func TestInfeasible(t *testing.T) {
	tests := []struct {
		name           string
		sum, parts, mx int
	}{
		{"too few parts", 7, 2, 3},
		{"zero parts", 3, 0, 3},
		{"zero max", 3, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.sum, tt.parts, tt.mx)
			if p.Feasible() {
				t.Error("Feasible() should be false")
			}
			c := p.Cursor()
			if c.Next() {
				t.Error("Next() should report no partitions")
			}
			if _, err := c.Advance(); !errors.Is(err, ErrExhausted) {
				t.Errorf("Advance() error = %v, want ErrExhausted", err)
			}
			if got := p.Collect(); len(got) != 0 {
				t.Errorf("Collect() = %d partitions, want 0", len(got))
			}
		})
	}
}

func TestZeroSum(t *testing.T) {
	got := NewUnbounded(0).Collect()
	if len(got) != 1 {
		t.Fatalf("partitions of 0 = %d, want 1", len(got))
	}
	if got[0].Len() != 0 || got[0].Size() != 0 || got[0].Sum() != 0 {
		t.Errorf("partition of 0 should be empty, got %s", &got[0])
	}
}

func TestCursorReuse(t *testing.T) {
	c := NewUnbounded(4).Cursor()
	if !c.Next() {
		t.Fatal("expected a first partition")
	}
	first := c.Partition()
	snap := first.Clone()

	if !c.Next() {
		t.Fatal("expected a second partition")
	}
	second := c.Partition()

	if first != second {
		t.Error("cursor should reuse the same partition value")
	}
	if snap.Key() != "4x1" {
		t.Errorf("snapshot changed to %s", snap.Key())
	}
	if second.Key() != "1x1+3x1" {
		t.Errorf("cursor partition = %s, want 1x1+3x1", second.Key())
	}
}

func TestCursorExhaustion(t *testing.T) {
	c := NewUnbounded(3).Cursor()

	func() {
		defer func() {
			if r := recover(); r != ErrExhausted {
				t.Errorf("Partition() before Next should panic with ErrExhausted, got %v", r)
			}
		}()
		c.Partition()
	}()

	n := 0
	for {
		_, err := c.Advance()
		if errors.Is(err, ErrExhausted) {
			break
		}
		if err != nil {
			t.Fatalf("Advance() error = %v", err)
		}
		n++
	}
	if n != 3 {
		t.Errorf("advanced %d times, want 3", n)
	}
	if !c.Done() {
		t.Error("Done() should be true after exhaustion")
	}
	if c.Next() {
		t.Error("Next() after exhaustion should stay false")
	}

	defer func() {
		if r := recover(); r != ErrExhausted {
			t.Errorf("Partition() after exhaustion should panic with ErrExhausted, got %v", r)
		}
	}()
	c.Partition()
}

func TestCollectIndependent(t *testing.T) {
	p := New(9, 4, 5)
	a := p.Collect()
	b := p.Collect()
	if len(a) != len(b) {
		t.Fatalf("Collect lengths differ: %d vs %d", len(a), len(b))
	}
	keys := func(ps []Partition) []string {
		out := make([]string, len(ps))
		for i := range ps {
			out[i] = ps[i].Key()
		}
		slices.Sort(out)
		return out
	}
	if !slices.Equal(keys(a), keys(b)) {
		t.Error("Collect should be idempotent")
	}

	// Snapshots do not alias one another.
	for i := 1; i < len(a); i++ {
		if a[i].Equal(&a[i-1]) {
			t.Fatalf("snapshots %d and %d are equal: %s", i-1, i, &a[i])
		}
	}
}

func TestAllEarlyStop(t *testing.T) {
	n := 0
	for range NewUnbounded(10).All() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("iterated %d, want 3", n)
	}
}

func TestPartitionAccessors(t *testing.T) {
	var q *Partition
	for p := range New(7, 7, 3).All() {
		if p.Key() == "1x1+3x2" {
			q = p.Clone()
			break
		}
	}
	if q == nil {
		t.Fatal("3+3+1 not produced")
	}
	if q.Len() != 2 || q.Size() != 3 || q.Sum() != 7 {
		t.Errorf("Len/Size/Sum = %d/%d/%d", q.Len(), q.Size(), q.Sum())
	}
	if q.At(0) != (Part{Value: 1, Count: 1}) || q.At(1) != (Part{Value: 3, Count: 2}) {
		t.Errorf("At() = %v, %v", q.At(0), q.At(1))
	}
	if got := q.Values(); !slices.Equal(got, []int{1, 3, 3}) {
		t.Errorf("Values() = %v", got)
	}
	if got := q.Slice(); len(got) != 2 || got[1].Value != 3 {
		t.Errorf("Slice() = %v", got)
	}
	if got := q.String(); got != "[1, 1], [3, 2]" {
		t.Errorf("String() = %q", got)
	}
}

func TestNegativeBoundsPanic(t *testing.T) {
	defer func() {
		r := recover()
		var be *BoundsError
		if err, ok := r.(error); !ok || !errors.As(err, &be) {
			t.Errorf("expected *BoundsError panic, got %v", r)
		}
	}()
	New(-1, 2, 2)
}
