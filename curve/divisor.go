package curve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Skaipi/hyperelliptic/field"
)

var ErrNotFRational = errors.New("curve: divisor has non-F-rational points in its support")

// Divisor is a reduced semi-reduced divisor in Mumford representation
// (u, v), with deg(u) <= g, deg(v) < deg(u), and u | v^2 + vh - f
// (spec.md §3, §4.6).
type Divisor[E field.Element[E]] struct {
	c    *HC[E]
	u, v field.Poly[E]
}

// NewDivisor trusts its input satisfies the Mumford invariant (spec.md
// §4.6: "created by the constructor, trusted input" — no runtime
// verification here, matching the core's external-interface contract).
func (c *HC[E]) NewDivisor(u, v field.Poly[E]) *Divisor[E] {
	return &Divisor[E]{c: c, u: u, v: v}
}

func (c *HC[E]) ZeroDivisor() *Divisor[E] {
	return &Divisor[E]{
		c: c,
		u: field.NewPoly[E](c.f, []E{c.f.One()}, "x"),
		v: field.NewPoly[E](c.f, []E{c.f.Zero()}, "x"),
	}
}

func (d *Divisor[E]) Curve() *HC[E]   { return d.c }
func (d *Divisor[E]) U() field.Poly[E] { return d.u }
func (d *Divisor[E]) V() field.Poly[E] { return d.v }

func (d *Divisor[E]) Equal(o *Divisor[E]) bool {
	if d.c != o.c {
		return false
	}
	return d.u.Equal(o.u) && d.v.Equal(o.v)
}

func (d *Divisor[E]) IsZero() bool { return d.Equal(d.c.ZeroDivisor()) }

func (d *Divisor[E]) String() string {
	return fmt.Sprintf("D: %s | %s", d.u.String(), d.v.String())
}

func mustSameCurve[E field.Element[E]](a, b *Divisor[E]) {
	if a.c != b.c {
		panic(&field.CrossAlgebraError{Msg: "curve: divisors belong to different curves"})
	}
}

func dedupPoints[E field.Element[E]](points []Point[E]) []Point[E] {
	var out []Point[E]
	for _, p := range points {
		dup := false
		for _, q := range out {
			if p.Equal(q) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// DivisorFromPoints builds the Mumford representation of the divisor
// sum(P_i) - deg*infinity from a list of affine points: u is the product
// of (x - x_i) counted with multiplicity, and v is the Lagrange
// interpolant through the distinct points (spec.md §4.6;
// original_source/src/hyperelliptic/hyperelliptic.py's Divisor.from_points).
func (c *HC[E]) DivisorFromPoints(points []Point[E]) (*Divisor[E], error) {
	var finite []Point[E]
	for _, p := range points {
		if !p.IsInfinity() {
			finite = append(finite, p)
		}
	}

	u := field.NewPoly[E](c.f, []E{c.f.One()}, "x")
	for _, p := range finite {
		factor := field.NewPoly[E](c.f, []E{c.f.One(), p.x.Neg()}, "x")
		u = u.Mul(factor)
	}

	unique := dedupPoints(finite)
	xs := make([]E, len(unique))
	ys := make([]E, len(unique))
	for i, p := range unique {
		xs[i] = p.x
		ys[i] = p.y
	}

	var v field.Poly[E]
	var err error
	if len(unique) == 0 {
		v = field.NewPoly[E](c.f, []E{c.f.Zero()}, "x")
	} else {
		v, err = field.Interpolate[E](c.f, xs, ys)
		if err != nil {
			return nil, err
		}
	}
	v, err = v.Mod(u)
	if err != nil {
		return nil, err
	}
	return &Divisor[E]{c: c, u: u, v: v}, nil
}

// Points recovers the affine points in the divisor's support by
// factoring u and evaluating v at each root, padding with infinity up to
// the curve's genus (spec.md §4.6).
func (d *Divisor[E]) Points() ([]Point[E], error) {
	factors, err := d.u.Factor()
	if err != nil {
		return nil, err
	}
	degreeCovered := 0
	for _, fac := range factors {
		degreeCovered += fac.Poly.Degree() * fac.Multiplicity
	}
	if degreeCovered < d.u.Degree() {
		return nil, ErrNotFRational
	}

	var points []Point[E]
	for _, fac := range factors {
		if fac.Poly.Degree() != 1 {
			return nil, ErrNotFRational
		}
		coeffs := fac.Poly.Coeffs() // [1, -root]
		root := coeffs[1].Neg()
		for k := 0; k < fac.Multiplicity; k++ {
			y := d.v.Eval(root)
			p := NewPoint(root, y)
			if !d.c.isOnCurve(p) {
				p = d.c.PointInverse(p)
			}
			points = append(points, p)
		}
	}
	for len(points) < d.c.g {
		points = append(points, Infinity[E]())
	}
	return points, nil
}

// Add implements Cantor's algorithm: composition followed by reduction
// to a divisor of degree <= g (spec.md §4.6;
// original_source/src/hyperelliptic/hyperelliptic.py's Divisor.__add__).
func (d *Divisor[E]) Add(other *Divisor[E]) (*Divisor[E], error) {
	mustSameCurve(d, other)
	c := d.c
	if d.IsZero() {
		return other, nil
	}
	if other.IsZero() {
		return d, nil
	}

	d1, e1, e2, err := d.u.XGCD(other.u)
	if err != nil {
		return nil, err
	}
	vSum := d.v.Add(other.v).Add(c.h)
	dd, c1, c2, err := d1.XGCD(vSum)
	if err != nil {
		return nil, err
	}

	s1 := c1.Mul(e1)
	s2 := c1.Mul(e2)
	s3 := c2

	dSquared := dd.Mul(dd)
	uNumerator := d.u.Mul(other.u)
	u, rem, err := uNumerator.DivMod(dSquared)
	if err != nil {
		return nil, err
	}
	if !rem.IsZero() {
		return nil, errors.New("curve: cantor composition invariant violated: d^2 does not divide u1*u2")
	}

	vNumerator := s1.Mul(d.u).Mul(other.v).
		Add(s2.Mul(other.u).Mul(d.v)).
		Add(s3.Mul(d.v.Mul(other.v).Add(c.fpoly)))
	vQuot, err := vNumerator.FloorDiv(dd)
	if err != nil {
		return nil, err
	}
	v, err := vQuot.Mod(u)
	if err != nil {
		return nil, err
	}

	return c.reduce(&Divisor[E]{c: c, u: u, v: v})
}

// reduce repeatedly applies Cantor's reduction step until deg(u) <= g,
// then normalizes u to monic (spec.md §4.6).
func (c *HC[E]) reduce(d *Divisor[E]) (*Divisor[E], error) {
	u, v := d.u, d.v
	for u.Degree() > c.g {
		numerator := c.fpoly.Sub(v.Mul(c.h)).Sub(v.Mul(v))
		newU, rem, err := numerator.DivMod(u)
		if err != nil {
			return nil, err
		}
		if !rem.IsZero() {
			return nil, errors.New("curve: reduction invariant violated: u does not divide f - vh - v^2")
		}
		newV, err := c.h.Neg().Sub(v).Mod(newU)
		if err != nil {
			return nil, err
		}
		u, v = newU, newV
	}
	monicU, err := u.ToMonic()
	if err != nil {
		return nil, err
	}
	return &Divisor[E]{c: c, u: monicU, v: v}, nil
}

// Neg returns (u, -v - h mod u) (spec.md §4.6).
func (d *Divisor[E]) Neg() (*Divisor[E], error) {
	neg := d.v.Neg().Sub(d.c.h)
	v, err := neg.Mod(d.u)
	if err != nil {
		return nil, err
	}
	return &Divisor[E]{c: d.c, u: d.u, v: v}, nil
}

// Mul computes n*D via double-and-add, using Go's static typing to
// enforce the scalar-must-be-an-integer invariant spec.md §7 calls
// TypeMismatch (the compiler rejects anything but *big.Int here).
func (d *Divisor[E]) Mul(n *big.Int) (*Divisor[E], error) {
	if n.Sign() < 0 {
		negD, err := d.Neg()
		if err != nil {
			return nil, err
		}
		return negD.Mul(new(big.Int).Neg(n))
	}
	result := d.c.ZeroDivisor()
	base := d
	exp := new(big.Int).Set(n)
	zero := big.NewInt(0)
	var err error
	for exp.Cmp(zero) > 0 {
		if exp.Bit(0) == 1 {
			result, err = result.Add(base)
			if err != nil {
				return nil, err
			}
		}
		base, err = base.Add(base)
		if err != nil {
			return nil, err
		}
		exp.Rsh(exp, 1)
	}
	return result, nil
}

func (d *Divisor[E]) MulInt64(n int64) (*Divisor[E], error) { return d.Mul(big.NewInt(n)) }
