// Package isomers counts degree-bounded tree shapes, the combinatorial core
// of counting saturated hydrocarbon (alkane) isomers.
//
// # Overview
//
// Two counts are provided:
//
//   - [RootedTrees]: rooted trees on n vertices where no vertex has more than
//     b children, up to reordering of children
//   - [TreePermutations]: unrooted trees on n vertices with maximum vertex
//     degree d
//
// With d = 4, TreePermutations(n, 4) is the number of structural isomers of
// the alkane CnH2n+2 (OEIS A000602). With d >= n-1 it is the number of
// unlabeled trees on n vertices (OEIS A000055).
//
// # Method
//
// A rooted tree on n vertices is a root plus a multiset of subtrees whose
// sizes form a partition of n-1 into at most b parts. For each partition
// from [partition.Partitioner], every distinct subtree size s occurring m
// times contributes Multisets(R(s), m) choices, where R(s) is the rooted
// count for size s. Products are summed over partitions. Rooted counts are
// memoized per top-level call in a [Counter].
//
// An unrooted tree is counted from its centroid. A centroid vertex carries
// at most d subtrees, each of size at most (n-1)/2, with one degree slot of
// every subtree root spent on the edge to the centroid. When n is even, a
// tree may instead have a centroid edge joining two subtrees of n/2
// vertices; those are added separately as Multisets(R(n/2), 2). The
// half-size cap applies only to the unrooted outer sum.
//
// # Concurrency
//
// Every call builds its own [Counter], so concurrent calls never share a
// memo. [TreePermutationsParallel] fans the outer partition sum across
// goroutines, each with a private Counter. [TreePermutationsContext] runs
// the same sum on the caller's goroutine and stops when its context ends.
//
// # Preconditions
//
// Vertex counts below one, negative branching, and a zero bound where more
// than one vertex is required are programming errors and panic with an
// [*ArgumentError].
package isomers
