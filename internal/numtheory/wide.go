package numtheory

import (
	"encoding/binary"
	"io"

	"lukechampine.com/uint128"
)

// mulMod64 computes a*b mod m without overflowing uint64, the same
// widen-then-reduce shape as go-gao's field.fieldMul (which reaches for
// math/bits.Mul64/Div64 to get the 128-bit intermediate product). Here the
// widening is done with lukechampine.com/uint128's Uint128 instead, since
// nothing below ever needs the quotient, only the remainder, and Uint128's
// Mod is a direct match.
func mulMod64(a, b, m uint64) uint64 {
	prod := uint128.From64(a).Mul(uint128.From64(b))
	return prod.Mod(uint128.From64(m)).Lo
}

// powMod64 is the uint64 machine-word fast path for the a^m mod n ladder,
// square-and-multiply in the same shape as go-gao's PrimeField.Pow, but
// widening through mulMod64 so it stays correct for any modulus up to
// 2^64-1, not just ones whose square fits in 63 bits.
func powMod64(base, exp, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod64(result, base, m)
		}
		base = mulMod64(base, base, m)
		exp >>= 1
	}
	return result
}

// gcd64 is the ordinary Euclidean algorithm on machine words, used on the
// fast path to avoid promoting to math/big for the common case where the
// candidate factor and n both fit in a uint64.
func gcd64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

var smallWitnessPrimes = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// isPrimeUint64 is IsPrime's machine-word fast path: the same
// Miller-Rabin structure, but the a^d mod n ladder runs entirely on
// uint64 via powMod64/mulMod64 instead of math/big, since every n
// FactorPrimePower ever tests here is itself a uint64 cofactor.
func isPrimeUint64(n uint64, reader io.Reader, k int) bool {
	if n < 2 {
		return false
	}
	for _, p := range smallWitnessPrimes {
		if n == p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}

	d := n - 1
	r := 0
	for d&1 == 0 {
		d >>= 1
		r++
	}

	buf := make([]byte, 8)
	for i := 0; i < k; i++ {
		if _, err := io.ReadFull(reader, buf); err != nil {
			return false
		}
		a := binary.BigEndian.Uint64(buf)%(n-3) + 2

		x := powMod64(a, d, n)
		if x == 1 || x == n-1 {
			continue
		}
		composite := true
		for j := 0; j < r-1; j++ {
			x = mulMod64(x, x, n)
			if x == n-1 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}
