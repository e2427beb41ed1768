package extfield

import (
	"errors"
	"io"
	"math/big"

	"github.com/Skaipi/hyperelliptic/field"
)

// ErrNoSquareRoot is returned by Sqrt when the element is a quadratic
// non-residue of F_{p^m} (spec.md §7).
var ErrNoSquareRoot = errors.New("extfield: no square root exists")

// Elem is a residue-class element of F_{p^m}, represented as a reduced
// polynomial of degree < m over the base field (spec.md §3).
type Elem struct {
	field *Field
	poly  field.Poly[field.Elem]
}

func (e Elem) Field() *Field                   { return e.field }
func (e Elem) Poly() field.Poly[field.Elem]      { return e.poly }
func (e Elem) String() string                    { return e.poly.String() }
func (e Elem) WrapInString() bool                { return true }
func (e Elem) IsZero() bool                      { return e.poly.IsZero() }

func mustSameExtField(a, b *Field) {
	if !a.Equal(b) {
		panic(&field.CrossAlgebraError{Msg: "extfield: elements belong to different extension fields"})
	}
}

func (e Elem) Add(other Elem) Elem {
	mustSameExtField(e.field, other.field)
	return e.field.reduce(e.poly.Add(other.poly))
}

func (e Elem) Sub(other Elem) Elem {
	mustSameExtField(e.field, other.field)
	return e.field.reduce(e.poly.Sub(other.poly))
}

func (e Elem) Mul(other Elem) Elem {
	mustSameExtField(e.field, other.field)
	return e.field.reduce(e.poly.Mul(other.poly))
}

func (e Elem) Neg() Elem { return e.field.reduce(e.poly.Neg()) }

func (e Elem) Equal(other Elem) bool {
	if !e.field.Equal(other.field) {
		return false
	}
	return e.poly.Equal(other.poly)
}

// Inverse computes e^-1 via the extended Euclidean algorithm against the
// field's irreducible modulus (spec.md §4.4; original_source's
// GF_Polynomial.inverse).
func (e Elem) Inverse() (Elem, error) {
	if e.IsZero() {
		return Elem{}, field.ErrDivideByZero
	}
	d, s, _, err := e.poly.XGCD(e.field.modulus)
	if err != nil {
		return Elem{}, err
	}
	if d.Degree() != 0 {
		return Elem{}, errors.New("extfield: element has no inverse")
	}
	return e.field.reduce(s), nil
}

func (e Elem) Div(other Elem) (Elem, error) {
	mustSameExtField(e.field, other.field)
	inv, err := other.Inverse()
	if err != nil {
		return Elem{}, err
	}
	return e.Mul(inv), nil
}

// Pow computes e^exp, supporting negative exponents via Inverse.
func (e Elem) Pow(exp *big.Int) (Elem, error) {
	if exp.Sign() < 0 {
		inv, err := e.Inverse()
		if err != nil {
			return Elem{}, err
		}
		return inv.Pow(new(big.Int).Neg(exp))
	}
	result := e.field.One()
	base := e
	n := new(big.Int).Set(exp)
	zero := big.NewInt(0)
	for n.Cmp(zero) > 0 {
		if n.Bit(0) == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n.Rsh(n, 1)
	}
	return result, nil
}

// Legendre returns e^((q-1)/2) (spec.md §4.4).
func (e Elem) Legendre() Elem {
	exp := new(big.Int).Sub(e.field.q, big.NewInt(1))
	exp.Rsh(exp, 1)
	r, _ := e.Pow(exp)
	return r
}

func (e Elem) IsQuadraticResidue() bool {
	if e.IsZero() {
		return true
	}
	return e.Legendre().Equal(e.field.One())
}

// Sqrt implements Tonelli-Shanks over F_{p^m} (spec.md §4.4). Unlike the
// prime-field version, the non-residue search must sample uniformly at
// random rather than increment deterministically, since there's no
// total order on F_{p^m} to increment through.
func (e Elem) Sqrt(reader io.Reader) (Elem, error) {
	if !e.IsQuadraticResidue() {
		return Elem{}, ErrNoSquareRoot
	}
	if e.IsZero() {
		return e.field.Zero(), nil
	}
	if e.field.Characteristic().Cmp(big.NewInt(2)) == 0 {
		exp := new(big.Int).Div(e.field.q, big.NewInt(2))
		return e.Pow(exp)
	}

	q := new(big.Int).Sub(e.field.q, big.NewInt(1))
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}
	if s == 1 {
		exp := new(big.Int).Add(e.field.q, big.NewInt(1))
		exp.Rsh(exp, 2)
		return e.Pow(exp)
	}

	z, err := e.field.RandElement(reader)
	if err != nil {
		return Elem{}, err
	}
	for z.IsQuadraticResidue() {
		z, err = e.field.RandElement(reader)
		if err != nil {
			return Elem{}, err
		}
	}

	c, _ := z.Pow(q)
	t, _ := e.Pow(q)
	rExp := new(big.Int).Add(q, big.NewInt(1))
	rExp.Rsh(rExp, 1)
	r, _ := e.Pow(rExp)
	m := s
	one := e.field.One()

	for !t.Equal(one) {
		i := 1
		ti, _ := t.Pow(big.NewInt(1 << uint(i)))
		for !ti.Equal(one) {
			i++
			ti, _ = t.Pow(new(big.Int).Lsh(big.NewInt(1), uint(i)))
		}
		b, _ := c.Pow(new(big.Int).Lsh(big.NewInt(1), uint(m-i-1)))
		r = r.Mul(b)
		c = b.Mul(b)
		t = t.Mul(c)
		m = i
	}
	return r, nil
}
