package combin

import (
	"fmt"
	"math/big"
)

var one = big.NewInt(1)

// ContractError describes a call made outside a helper's domain.
// It is the panic value for every precondition violation in this package.
type ContractError struct {
	Op   string
	N, K string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.K == "" {
		return fmt.Sprintf("combin: %s(%s): operand must be non-negative", e.Op, e.N)
	}
	return fmt.Sprintf("combin: %s(%s, %s): requires 0 <= k <= n", e.Op, e.N, e.K)
}

// Factorial returns n! = 1 × 2 × ... × n. Factorial(0) is 1.
// It panics with a *ContractError if n is negative.
func Factorial(n *big.Int) *big.Int {
	if n.Sign() < 0 {
		panic(&ContractError{Op: "Factorial", N: n.String()})
	}
	return product(one, n)
}

// Permutations returns n!/(n-k)!, the product of the k integers from n-k+1
// to n inclusive. Permutations(n, 0) is 1.
// It panics with a *ContractError unless 0 <= k <= n.
func Permutations(n, k *big.Int) *big.Int {
	checkRange("Permutations", n, k)
	lo := new(big.Int).Sub(n, k)
	lo.Add(lo, one)
	return product(lo, n)
}

// Combinations returns the number of k-element subsets of an n-element set,
// computed as Permutations(n, k) / Factorial(k). The division is exact.
// It panics with a *ContractError unless 0 <= k <= n.
func Combinations(n, k *big.Int) *big.Int {
	checkRange("Combinations", n, k)
	c := Permutations(n, k)
	return c.Quo(c, Factorial(k))
}

// Multisets returns the number of size-k multisets drawn from n distinct
// kinds, Combinations(n+k-1, k).
//
// Multisets(n, 0) is 1 for every n, and Multisets(0, k) is 0 for k > 0.
// It panics with a *ContractError if either operand is negative.
func Multisets(n, k *big.Int) *big.Int {
	if n.Sign() < 0 || k.Sign() < 0 {
		panic(&ContractError{Op: "Multisets", N: n.String(), K: k.String()})
	}
	if k.Sign() == 0 {
		return big.NewInt(1)
	}
	if n.Sign() == 0 {
		return new(big.Int)
	}
	m := new(big.Int).Add(n, k)
	m.Sub(m, one)
	return Combinations(m, k)
}

// FactorialInt is Factorial for a machine-sized operand.
func FactorialInt(n int) *big.Int {
	return Factorial(big.NewInt(int64(n)))
}

// PermutationsInt is Permutations for machine-sized operands.
func PermutationsInt(n, k int) *big.Int {
	return Permutations(big.NewInt(int64(n)), big.NewInt(int64(k)))
}

// CombinationsInt is Combinations for machine-sized operands.
func CombinationsInt(n, k int) *big.Int {
	return Combinations(big.NewInt(int64(n)), big.NewInt(int64(k)))
}

// MultisetsInt is Multisets for machine-sized operands.
func MultisetsInt(n, k int) *big.Int {
	return Multisets(big.NewInt(int64(n)), big.NewInt(int64(k)))
}

func checkRange(op string, n, k *big.Int) {
	if k.Sign() < 0 || n.Sign() < 0 || k.Cmp(n) > 0 {
		panic(&ContractError{Op: op, N: n.String(), K: k.String()})
	}
}

// product returns lo × (lo+1) × ... × hi, or 1 when lo > hi.
// Both bounds are positive when called from this package.
func product(lo, hi *big.Int) *big.Int {
	if lo.IsInt64() && hi.IsInt64() {
		a, b := lo.Int64(), hi.Int64()
		if a > b {
			return big.NewInt(1)
		}
		return new(big.Int).MulRange(a, b)
	}
	p := big.NewInt(1)
	for i := new(big.Int).Set(lo); i.Cmp(hi) <= 0; i.Add(i, one) {
		p.Mul(p, i)
	}
	return p
}
