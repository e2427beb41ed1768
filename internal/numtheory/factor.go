package numtheory

import (
	"errors"
	"io"
	"math/big"
	"sync"

	"github.com/ALTree/bigfloat"
)

// ErrUnfactorable is returned when Pollard p-1 exhausts the smoothness
// bound cap without finding a factor (spec.md §4.1, §9's Open Question on
// cap tuning: this module only ever calls FactorPrimePower on polynomial
// degrees, so the cap below is tuned for that, not for general-purpose
// integer factoring).
var ErrUnfactorable = errors.New("numtheory: exceeded smoothness bound cap, cannot factor")

// maxSmoothnessBound is the ceiling the doubling bound in pollardPMinus1
// is never allowed to cross (spec.md §4.1).
const maxSmoothnessBound = 1000

var (
	smallPrimesOnce sync.Once
	smallPrimes     []uint64
)

// sievePrimes returns the small-prime sieve used both to strip trivial
// factors and to build Pollard's smooth exponent, memoized once per
// process (spec.md §5: one piece of shared mutable cache, guarded the way
// go-gao's DensePolyRing guards its twiddle-factor cache).
func sievePrimes() []uint64 {
	smallPrimesOnce.Do(func() {
		const limit = 10000
		composite := make([]bool, limit+1)
		for p := uint64(2); p*p <= limit; p++ {
			if composite[p] {
				continue
			}
			for m := p * p; m <= limit; m += p {
				composite[m] = true
			}
		}
		for p := uint64(2); p <= limit; p++ {
			if !composite[p] {
				smallPrimes = append(smallPrimes, p)
			}
		}
	})
	return smallPrimes
}

// FactorPrimePower returns the multiset of prime factors of n, smallest
// first, trial-dividing by small primes before falling back to Pollard
// p-1 on the residual cofactor (spec.md §4.1). n is expected to be small
// (a polynomial degree, per spec.md §9) — this is not a general-purpose
// factoring routine.
func FactorPrimePower(n uint64, reader io.Reader) ([]uint64, error) {
	if n < 2 {
		return nil, errors.New("numtheory: cannot factor n < 2")
	}
	var factors []uint64
	for _, p := range sievePrimes() {
		if p*p > n {
			break
		}
		for n%p == 0 {
			factors = append(factors, p)
			n /= p
		}
	}
	for n > 1 {
		if isPrimeUint64(n, reader, DefaultMillerRabinRounds) {
			factors = append(factors, n)
			break
		}
		f, err := pollardPMinus1(n, reader)
		if err != nil {
			return nil, err
		}
		factors = append(factors, f)
		n /= f
	}
	return factors, nil
}

// pollardPMinus1 finds one nontrivial factor of the composite n, doubling
// the smoothness bound B until it finds one or crosses maxSmoothnessBound.
// The exponent ladder runs on the uint64 fast path (powMod64/mulMod64,
// widened through lukechampine.com/uint128 rather than math/bits, per
// SPEC_FULL.md's domain-stack wiring); gcd64 closes out the loop without
// ever promoting to math/big, since both operands are already uint64.
func pollardPMinus1(n uint64, reader io.Reader) (uint64, error) {
	for bound := 2; bound <= maxSmoothnessBound; bound *= 2 {
		a := uint64(2)
		for _, p := range sievePrimes() {
			if p > uint64(bound) {
				break
			}
			exp := floorLog(uint64(bound), p)
			for i := 0; i < exp; i++ {
				a = powMod64(a, p, n)
			}
		}
		am := a
		if am == 0 {
			am = n - 1
		} else {
			am--
		}
		g := gcd64(am, n)
		if g > 1 && g != n {
			return g, nil
		}
	}
	return 0, ErrUnfactorable
}

// floorLog returns floor(log_p(bound)) using arbitrary-precision floats,
// mirroring the original Python's floor(log(bound, p)) exponent step; the
// plain float64 math.Log path isn't precise enough once bound and p
// diverge in magnitude, which is why bigfloat.Log is used here instead.
func floorLog(bound, p uint64) int {
	if p < 2 || bound < p {
		return 0
	}
	logBound := bigfloat.Log(new(big.Float).SetUint64(bound))
	logP := bigfloat.Log(new(big.Float).SetUint64(p))
	ratio := new(big.Float).Quo(logBound, logP)
	exp, _ := ratio.Int64()
	return int(exp)
}
