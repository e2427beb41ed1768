package numtheory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skaipi/hyperelliptic/internal/numtheory"
)

func TestFactorPrimePower(t *testing.T) {
	assert := assert.New(t)
	src := numtheory.NewDeterministicSource(7)

	cases := []struct {
		n    uint64
		want []uint64
	}{
		{2, []uint64{2}},
		{12, []uint64{2, 2, 3}},
		{360, []uint64{2, 2, 2, 3, 3, 5}},
		{97, []uint64{97}},
		{1024, []uint64{2, 2, 2, 2, 2, 2, 2, 2, 2, 2}},
	}

	for _, tc := range cases {
		got, err := numtheory.FactorPrimePower(tc.n, src)
		assert.NoError(err)
		assert.Equal(tc.want, got, "factoring %d", tc.n)
	}
}

func TestFactorPrimePowerRejectsSmallN(t *testing.T) {
	src := numtheory.NewDeterministicSource(9)
	_, err := numtheory.FactorPrimePower(1, src)
	assert.Error(t, err)
}

func TestFactorPrimePowerReconstructsProduct(t *testing.T) {
	assert := assert.New(t)
	src := numtheory.NewDeterministicSource(11)
	for _, n := range []uint64{2, 3, 4, 9, 30, 210, 1001, 9973} {
		factors, err := numtheory.FactorPrimePower(n, src)
		assert.NoError(err)
		product := uint64(1)
		for _, f := range factors {
			product *= f
		}
		assert.Equal(n, product)
	}
}
