package errors

// The tree counters spend their time visiting partitions: the unrooted count
// walks partitions of vertices-1 into at most degree parts, and every rooted
// subtree size m it needs walks partitions of m-1 into at most branching
// parts. The estimators below add up those enumeration sizes, so a count is
// judged by the work it will do rather than by its arguments alone.

// TreeWork estimates the partitions visited by an unrooted count with the
// given maximum degree. It ignores the half-size cap on the centroid
// subtrees, so it errs high.
func TreeWork(vertices, degree int) float64 {
	if vertices < 2 {
		return 0
	}
	top := boundedPartitions(vertices-1, degree)
	return top[vertices-1] + subtreeWork(vertices/2, degree-1)
}

// RootedWork estimates the partitions visited by a rooted count with the
// given branching bound.
func RootedWork(vertices, branching int) float64 {
	return subtreeWork(vertices, branching)
}

// SequenceWork estimates the partitions visited by TreeWork for every
// vertex count from 1 to maxVertices, which is what building a table
// column costs.
func SequenceWork(maxVertices, degree int) float64 {
	if maxVertices < 2 {
		return 0
	}
	top := boundedPartitions(maxVertices-1, degree)
	inner := boundedPartitions(maxVertices/2, degree-1)
	var total, subtrees float64
	for n := 2; n <= maxVertices; n++ {
		// Each count recomputes the subtree sizes 3..n/2 in a fresh memo;
		// the largest size grows by one at every even n.
		if m := n / 2; m >= 3 && n%2 == 0 {
			subtrees += inner[m-1]
		}
		total += top[n-1] + subtrees
	}
	return total
}

// subtreeWork sums the partitions of m-1 into at most branching parts over
// the memoized sizes 3 <= m <= maxSize. Sizes 1 and 2 are base cases.
func subtreeWork(maxSize, branching int) float64 {
	if maxSize < 3 {
		return 0
	}
	q := boundedPartitions(maxSize-1, branching)
	var total float64
	for m := 3; m <= maxSize; m++ {
		total += q[m-1]
	}
	return total
}

// boundedPartitions returns q where q[m] is the number of partitions of m
// into at most k parts, for 0 <= m <= n. Counting parts no larger than k
// gives the same numbers by conjugation. Floats keep the large cases from
// overflowing; only the magnitude matters.
func boundedPartitions(n, k int) []float64 {
	q := make([]float64, n+1)
	q[0] = 1
	for part := 1; part <= min(k, n); part++ {
		for m := part; m <= n; m++ {
			q[m] += q[m-part]
		}
	}
	return q
}
