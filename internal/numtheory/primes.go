// Package numtheory provides the integer primality and factorization
// utilities the field and polynomial layers are built on (spec.md §4.1).
package numtheory

import (
	"crypto/rand"
	"io"
	"math/big"
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
	one   = big.NewInt(1)
)

// DefaultMillerRabinRounds is the witness count used when callers don't
// need a different confidence/performance tradeoff (spec.md §4.1: k=32).
const DefaultMillerRabinRounds = 32

// IsPrime runs the Miller-Rabin primality test with k random witnesses
// drawn from reader. Returns false for n < 2 and for even n > 2, per
// spec.md §4.1. Never errors: a broken reader degrades to "not prime"
// rather than panicking, since a witness failure is observationally the
// same as finding compositeness.
func IsPrime(n *big.Int, reader io.Reader, k int) bool {
	if n.Sign() <= 0 {
		return false
	}
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	// n - 1 = d * 2^r with d odd.
	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	// Witnesses are sampled uniformly from [2, n-2]: rand.Int gives [0, upper),
	// so upper = n-3 and the result is shifted by 2.
	upper := new(big.Int).Sub(n, big.NewInt(3))
	if upper.Sign() <= 0 {
		upper = big.NewInt(1)
	}

	for i := 0; i < k; i++ {
		a, err := rand.Int(reader, upper)
		if err != nil {
			return false
		}
		a.Add(a, two)

		if millerRabinWitness(a, d, n, nMinus1, r) {
			return false
		}
	}
	return true
}

// millerRabinWitness reports whether a certifies n as composite.
func millerRabinWitness(a, d, n, nMinus1 *big.Int, r int) bool {
	x := new(big.Int).Exp(a, d, n)
	if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
		return false
	}
	for i := 0; i < r-1; i++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinus1) == 0 {
			return false
		}
	}
	return true
}
