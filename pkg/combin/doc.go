// Package combin provides exact counting helpers over arbitrary-precision
// integers.
//
// # Overview
//
// Tree counting multiplies and sums quantities that leave the 64-bit range
// for modest vertex counts, so every helper operates on [*big.Int] and
// returns a freshly allocated result. Operands are never modified.
//
//   - [Factorial]: n!
//   - [Permutations]: ordered selections n!/(n-k)!
//   - [Combinations]: unordered selections without replacement
//   - [Multisets]: unordered selections with replacement
//
// Small-operand forms ([FactorialInt], [PermutationsInt], [CombinationsInt], [MultisetsInt])
// accept machine integers for callers that do not already hold big values.
//
// # Preconditions
//
// Negative operands and k > n are programming errors, not runtime
// conditions. They panic with a [*ContractError]:
//
//	combin.Combinations(big.NewInt(3), big.NewInt(5)) // panics
//
// [Multisets] is total for n = 0: choosing k > 0 items from zero kinds has
// no solutions and yields zero.
package combin
