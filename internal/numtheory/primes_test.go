package numtheory_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skaipi/hyperelliptic/internal/numtheory"
)

func TestIsPrimeSmallValues(t *testing.T) {
	assert := assert.New(t)
	src := numtheory.NewDeterministicSource(1)

	composites := []int64{0, 1, 4, 6, 8, 9, 10, 15, 100}
	for _, n := range composites {
		assert.False(numtheory.IsPrime(big.NewInt(n), src, numtheory.DefaultMillerRabinRounds), "expected %d to be composite", n)
	}

	primes := []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 97, 1009}
	for _, n := range primes {
		assert.True(numtheory.IsPrime(big.NewInt(n), src, numtheory.DefaultMillerRabinRounds), "expected %d to be prime", n)
	}
}

func TestIsPrimeNegative(t *testing.T) {
	src := numtheory.NewDeterministicSource(2)
	assert.False(t, numtheory.IsPrime(big.NewInt(-7), src, numtheory.DefaultMillerRabinRounds))
}

func TestIsPrimeLargeMersenne(t *testing.T) {
	// 2^31 - 1, a known Mersenne prime.
	n := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 31), big.NewInt(1))
	src := numtheory.NewDeterministicSource(3)
	assert.True(t, numtheory.IsPrime(n, src, numtheory.DefaultMillerRabinRounds))
}
