package extfield_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skaipi/hyperelliptic/extfield"
	"github.com/Skaipi/hyperelliptic/field"
	"github.com/Skaipi/hyperelliptic/internal/numtheory"
)

// buildGF3squared constructs F_9 = F_3[x]/(x^2 + 1), since x^2+1 has no root
// in F_3 (the squares mod 3 are {0,1}), making it irreducible.
func buildGF3squared(t *testing.T) *extfield.Field {
	t.Helper()
	base, err := field.NewFieldInt64(3)
	assert.NoError(t, err)
	modulus := field.NewPoly(base, []field.Elem{base.One(), base.Zero(), base.One()}, "a")
	ext, err := extfield.New(base, modulus)
	assert.NoError(t, err)
	return ext
}

func TestExtFieldRejectsReducibleModulus(t *testing.T) {
	base, err := field.NewFieldInt64(3)
	assert.NoError(t, err)
	// x^2 - 1 = (x-1)(x+1), reducible over F_3.
	modulus := field.NewPoly(base, []field.Elem{base.One(), base.Zero(), base.ElemInt64(-1)}, "a")
	_, err = extfield.New(base, modulus)
	assert.ErrorIs(t, err, extfield.ErrNotIrreducible)
}

func TestExtFieldArithmetic(t *testing.T) {
	assert := assert.New(t)
	gf9 := buildGF3squared(t)

	a := gf9.Element([]field.Elem{gf9.Base().ElemInt64(1), gf9.Base().ElemInt64(2)}) // a + 2
	b := gf9.Element([]field.Elem{gf9.Base().ElemInt64(2), gf9.Base().ElemInt64(1)}) // 2a + 1

	sum := a.Add(b)
	assert.False(sum.IsZero())

	inv, err := a.Inverse()
	assert.NoError(err)
	assert.Equal(gf9.One(), a.Mul(inv))
}

func TestExtFieldSqrt(t *testing.T) {
	assert := assert.New(t)
	gf9 := buildGF3squared(t)
	src := numtheory.NewDeterministicSource(5)

	e, err := gf9.RandElement(src)
	assert.NoError(err)
	sq := e.Mul(e)
	if sq.IsZero() {
		return
	}
	root, err := sq.Sqrt(src)
	assert.NoError(err)
	assert.Equal(sq, root.Mul(root))
}

func TestExtFieldGetElementsCoversWholeField(t *testing.T) {
	gf9 := buildGF3squared(t)
	var count int
	for range gf9.GetElements() {
		count++
	}
	assert.Equal(t, 9, count)
}

func TestExtFieldCrossFieldPanics(t *testing.T) {
	gf9a := buildGF3squared(t)
	base5, err := field.NewFieldInt64(5)
	assert.NoError(t, err)
	modulus5 := field.NewPoly(base5, []field.Elem{base5.One(), base5.Zero(), base5.ElemInt64(2)}, "a")
	gf25, err := extfield.New(base5, modulus5)
	assert.NoError(t, err)

	a := gf9a.Zero()
	b := gf25.Zero()
	assert.Panics(t, func() { a.Add(b) })
}
