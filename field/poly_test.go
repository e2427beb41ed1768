package field_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skaipi/hyperelliptic/field"
)

// poly11 builds a polynomial over the given field f from descending-degree
// int64 coefficients, e.g. poly11(t, f, 1, 7, 6) for x^2 + 7x + 6.
func poly11(t *testing.T, f *field.Field, coeffs ...int64) field.Poly[field.Elem] {
	t.Helper()
	es := make([]field.Elem, len(coeffs))
	for i, c := range coeffs {
		es[i] = f.ElemInt64(c)
	}
	return field.NewPoly(f, es, "x")
}

func TestPolyGCD(t *testing.T) {
	assert := assert.New(t)
	f := mustField(t, 11)

	a := poly11(t, f, 1, 7, 6) // x^2 + 7x + 6
	b := poly11(t, f, 1, 6, 5) // x^2 + 6x + 5
	g, err := a.GCD(b)
	assert.NoError(err)
	assert.True(g.Equal(poly11(t, f, 1, 1))) // x + 1

	c := poly11(t, f, 1, 4, 1, 4) // x^3 + 4x^2 + x + 4
	d := poly11(t, f, 1, 0, 1)    // x^2 + 1
	g2, err := c.GCD(d)
	assert.NoError(err)
	assert.True(g2.Equal(d))
}

func TestPolyXGCDSatisfiesBezout(t *testing.T) {
	assert := assert.New(t)
	f := mustField(t, 11)

	a := poly11(t, f, 1, 7, 6)
	b := poly11(t, f, 1, 6, 5)
	d, s, tt, err := a.XGCD(b)
	assert.NoError(err)

	lhs := s.Mul(a).Add(tt.Mul(b))
	assert.True(lhs.Equal(d))
}

func TestDivModSatisfiesInvariant(t *testing.T) {
	assert := assert.New(t)
	f := mustField(t, 11)

	a := poly11(t, f, 1, 4, 1, 4)
	b := poly11(t, f, 1, 0, 1)
	q, r, err := a.DivMod(b)
	assert.NoError(err)
	assert.True(r.IsZero() || r.Degree() < b.Degree())
	assert.True(q.Mul(b).Add(r).Equal(a))
}

func TestDivModByZero(t *testing.T) {
	f := mustField(t, 11)
	a := poly11(t, f, 1, 0)
	zero := poly11(t, f, 0)
	_, _, err := a.DivMod(zero)
	assert.ErrorIs(t, err, field.ErrDivideByZero)
}

func TestFactorCubedAndSquared(t *testing.T) {
	assert := assert.New(t)
	f := mustField(t, 11)

	xsq1 := poly11(t, f, 1, 0, 1)      // x^2 + 1
	xplus4 := poly11(t, f, 1, 4)       // x + 4
	cubed, err := xsq1.Pow(big.NewInt(3), nil)
	assert.NoError(err)
	squared, err := xplus4.Pow(big.NewInt(2), nil)
	assert.NoError(err)
	product := cubed.Mul(squared)

	factors, err := product.Factor()
	assert.NoError(err)

	var xsq1Mult, xplus4Mult int
	for _, fac := range factors {
		switch {
		case fac.Poly.Equal(xsq1):
			xsq1Mult += fac.Multiplicity
		case fac.Poly.Equal(xplus4):
			xplus4Mult += fac.Multiplicity
		default:
			t.Fatalf("unexpected factor %s", fac.Poly.String())
		}
	}
	assert.Equal(3, xsq1Mult)
	assert.Equal(2, xplus4Mult)
}

func TestIsIrreducibleOverF2(t *testing.T) {
	assert := assert.New(t)
	f := mustField(t, 2)

	// x^8 + x^4 + x^3 + x^2 + 1
	p1 := poly11(t, f, 1, 0, 0, 0, 1, 1, 1, 0, 1)
	ok, err := p1.IsIrreducible()
	assert.NoError(err)
	assert.True(ok)

	// x^8 + x^4 + x^3 + x + 1
	p2 := poly11(t, f, 1, 0, 0, 0, 1, 1, 0, 1, 1)
	ok, err = p2.IsIrreducible()
	assert.NoError(err)
	assert.True(ok)

	// x^7 + x^5 + x^3, not irreducible (divisible by x^3)
	p3 := poly11(t, f, 1, 0, 1, 0, 1, 0, 0, 0)
	ok, err = p3.IsIrreducible()
	assert.NoError(err)
	assert.False(ok)
}

func TestDerivative(t *testing.T) {
	assert := assert.New(t)
	f := mustField(t, 11)
	p := poly11(t, f, 3, 2, 1, 5) // 3x^3 + 2x^2 + x + 5
	d := p.Derivative()
	assert.True(d.Equal(poly11(t, f, 9, 4, 1))) // 9x^2 + 4x + 1
}

func TestPolyCrossFieldPanics(t *testing.T) {
	f1 := mustField(t, 11)
	f2 := mustField(t, 13)
	a := poly11(t, f1, 1, 0)
	b := poly11(t, f2, 1, 1)
	assert.Panics(t, func() { a.Add(b) })
}

func TestPolyString(t *testing.T) {
	f := mustField(t, 11)
	p := poly11(t, f, 1, 7, 6)
	assert.Equal(t, "x^2 + 7x + 6", p.String())

	zero := poly11(t, f, 0)
	assert.Equal(t, "0", zero.String())
}
