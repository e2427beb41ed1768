package numtheory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulMod64MatchesBigInt(t *testing.T) {
	assert := assert.New(t)
	cases := []struct{ a, b, m uint64 }{
		{0, 0, 7},
		{6, 6, 7},
		{1<<63 - 1, 1<<63 - 1, 97},
		{18446744073709551557, 18446744073709551533, 1009},
	}
	for _, tc := range cases {
		got := mulMod64(tc.a, tc.b, tc.m)
		// every modulus here is below 2^32, so the reduced operands'
		// product cannot overflow uint64 even for the wide cases.
		want := (tc.a % tc.m) * (tc.b % tc.m) % tc.m
		assert.Equal(want, got)
		assert.Less(got, tc.m)
	}
}

func TestPowMod64(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(1), powMod64(2, 0, 1009))
	assert.Equal(uint64(15), powMod64(2, 10, 1009))  // 1024 - 1009
	assert.Equal(uint64(1), powMod64(3, 1008, 1009)) // Fermat's little theorem, 1009 prime
}

func TestGcd64(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(6), gcd64(54, 24))
	assert.Equal(uint64(1), gcd64(17, 5))
	assert.Equal(uint64(5), gcd64(0, 5))
}
