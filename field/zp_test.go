package field_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skaipi/hyperelliptic/field"
	"github.com/Skaipi/hyperelliptic/internal/numtheory"
)

func mustField(t *testing.T, p int64) *field.Field {
	t.Helper()
	f, err := field.NewFieldInt64(p)
	assert.NoError(t, err)
	return f
}

func TestNewFieldRejectsComposite(t *testing.T) {
	_, err := field.NewFieldInt64(12)
	assert.ErrorIs(t, err, field.ErrNotPrime)
}

func TestArithmeticMod11(t *testing.T) {
	assert := assert.New(t)
	f := mustField(t, 11)

	a := f.ElemInt64(7)
	b := f.ElemInt64(9)

	assert.Equal(f.ElemInt64(5), a.Add(b)) // 7+9=16=5 mod 11
	assert.Equal(f.ElemInt64(9), a.Sub(b)) // 7-9=-2=9 mod 11
	assert.Equal(f.ElemInt64(8), a.Mul(b)) // 63 mod 11 = 8

	inv, err := a.Inverse()
	assert.NoError(err)
	assert.Equal(f.One(), a.Mul(inv))
}

func TestDivideByZero(t *testing.T) {
	f := mustField(t, 11)
	zero := f.Zero()
	_, err := zero.Inverse()
	assert.ErrorIs(t, err, field.ErrDivideByZero)
}

func TestLegendreAndQuadraticResidue(t *testing.T) {
	assert := assert.New(t)
	f := mustField(t, 11)

	// Quadratic residues mod 11: 1, 3, 4, 5, 9.
	residues := map[int64]bool{1: true, 3: true, 4: true, 5: true, 9: true, 2: false, 6: false, 7: false, 8: false, 10: false}
	for v, want := range residues {
		e := f.ElemInt64(v)
		assert.Equal(want, e.IsQuadraticResidue(), "value %d", v)
	}
}

func TestSqrtMod11(t *testing.T) {
	assert := assert.New(t)
	f := mustField(t, 11)

	e := f.ElemInt64(5)
	root, err := e.Sqrt()
	assert.NoError(err)
	assert.Equal(e, root.Mul(root))

	_, err = f.ElemInt64(2).Sqrt()
	assert.ErrorIs(err, field.ErrNoSquareRoot)
}

func TestCrossFieldOperationPanics(t *testing.T) {
	f1 := mustField(t, 11)
	f2 := mustField(t, 13)
	a := f1.ElemInt64(3)
	b := f2.ElemInt64(4)
	assert.Panics(t, func() { a.Add(b) })
}

func TestGetElementsEnumeratesWholeField(t *testing.T) {
	f := mustField(t, 7)
	var seen []field.Elem
	for e := range f.GetElements() {
		seen = append(seen, e)
	}
	assert.Len(t, seen, 7)
}

func TestGeneratorRejectsOversizedPrime(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 200)
	huge, err := nextPrimeAbove(huge)
	assert.NoError(t, err)
	f, err := field.NewField(huge)
	assert.NoError(t, err)
	_, err = f.Generator()
	assert.ErrorIs(t, err, field.ErrGeneratorPrimeTooLarge)
}

// nextPrimeAbove walks upward from n (forced odd) until Miller-Rabin
// accepts, for use in TestGeneratorRejectsOversizedPrime.
func nextPrimeAbove(n *big.Int) (*big.Int, error) {
	candidate := new(big.Int).Set(n)
	if candidate.Bit(0) == 0 {
		candidate.Add(candidate, big.NewInt(1))
	}
	src := numtheory.NewDeterministicSource(42)
	for !numtheory.IsPrime(candidate, src, numtheory.DefaultMillerRabinRounds) {
		candidate.Add(candidate, big.NewInt(2))
	}
	return candidate, nil
}
