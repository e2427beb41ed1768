package field

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/exp/slices"
)

// Poly is a univariate polynomial over any Element-conforming coefficient
// type, stored most-significant-coefficient-first with leading zeros
// stripped (spec.md §4.3). go-gao's field.Polynomial stores coefficients
// least-significant-first; this port follows spec.md's explicit
// big-endian convention instead, generalized to an arbitrary finite
// field via the Element/FiniteField traits (spec.md §9).
type Poly[E Element[E]] struct {
	f      FiniteField[E]
	symbol string
	coeff  []E
}

// NewPoly builds a polynomial from coefficients in descending-degree
// order, stripping leading zeros. An empty slice is treated as the zero
// polynomial.
func NewPoly[E Element[E]](f FiniteField[E], coeff []E, symbol string) Poly[E] {
	if symbol == "" {
		symbol = "x"
	}
	return Poly[E]{f: f, symbol: symbol, coeff: strip(f, coeff)}
}

// strip drops leading zero coefficients, using x/exp/slices.IndexFunc to
// find the first nonzero one rather than hand-rolling the scan (go-gao
// leans on x/exp/slices the same way for its coefficient-list bookkeeping).
func strip[E Element[E]](f FiniteField[E], coeff []E) []E {
	if len(coeff) == 0 {
		return []E{f.Zero()}
	}
	i := slices.IndexFunc(coeff[:len(coeff)-1], func(e E) bool { return !e.IsZero() })
	if i == -1 {
		return []E{coeff[len(coeff)-1]}
	}
	return slices.Clone(coeff[i:])
}

func (p Poly[E]) Field() FiniteField[E] { return p.f }
func (p Poly[E]) Symbol() string        { return p.symbol }
func (p Poly[E]) Degree() int           { return len(p.coeff) - 1 }
func (p Poly[E]) Leading() E            { return p.coeff[0] }

func (p Poly[E]) IsZero() bool { return len(p.coeff) == 1 && p.coeff[0].IsZero() }

func (p Poly[E]) IsMonic() bool { return p.Leading().Equal(p.f.One()) }

// Coeffs returns a defensive copy of the coefficients, descending degree first.
func (p Poly[E]) Coeffs() []E {
	out := make([]E, len(p.coeff))
	copy(out, p.coeff)
	return out
}

func mustSamePolyField[E Element[E]](a, b Poly[E]) {
	if a.f.ID() != b.f.ID() {
		panic(&CrossAlgebraError{Msg: "field: polynomial operands belong to different fields"})
	}
}

func zeroPoly[E Element[E]](f FiniteField[E], symbol string) Poly[E] {
	return NewPoly(f, []E{f.Zero()}, symbol)
}

func onePoly[E Element[E]](f FiniteField[E], symbol string) Poly[E] {
	return NewPoly(f, []E{f.One()}, symbol)
}

func (p Poly[E]) DivScalar(c E) (Poly[E], error) {
	if c.IsZero() {
		return Poly[E]{}, ErrDivideByZero
	}
	inv, err := c.Inverse()
	if err != nil {
		return Poly[E]{}, err
	}
	out := make([]E, len(p.coeff))
	for i, v := range p.coeff {
		out[i] = v.Mul(inv)
	}
	return NewPoly(p.f, out, p.symbol), nil
}

func (p Poly[E]) MulScalar(c E) Poly[E] {
	out := make([]E, len(p.coeff))
	for i, v := range p.coeff {
		out[i] = v.Mul(c)
	}
	return NewPoly(p.f, out, p.symbol)
}

// ToMonic divides by the leading coefficient so the result is monic.
func (p Poly[E]) ToMonic() (Poly[E], error) {
	if p.IsMonic() {
		return p, nil
	}
	return p.DivScalar(p.Leading())
}

func (p Poly[E]) Add(q Poly[E]) Poly[E] {
	mustSamePolyField(p, q)
	size := len(p.coeff)
	if len(q.coeff) > size {
		size = len(q.coeff)
	}
	zero := p.f.Zero()
	out := make([]E, size)
	for i := range out {
		out[i] = zero
	}
	pOff := size - len(p.coeff)
	qOff := size - len(q.coeff)
	for i, v := range p.coeff {
		out[pOff+i] = out[pOff+i].Add(v)
	}
	for i, v := range q.coeff {
		out[qOff+i] = out[qOff+i].Add(v)
	}
	return NewPoly(p.f, out, p.symbol)
}

func (p Poly[E]) Neg() Poly[E] {
	out := make([]E, len(p.coeff))
	for i, v := range p.coeff {
		out[i] = v.Neg()
	}
	return NewPoly(p.f, out, p.symbol)
}

func (p Poly[E]) Sub(q Poly[E]) Poly[E] {
	mustSamePolyField(p, q)
	return p.Add(q.Neg())
}

// Mul computes the schoolbook product in O(deg(p)*deg(q)).
func (p Poly[E]) Mul(q Poly[E]) Poly[E] {
	mustSamePolyField(p, q)
	if p.IsZero() || q.IsZero() {
		return zeroPoly(p.f, p.symbol)
	}
	n := len(p.coeff) + len(q.coeff) - 1
	zero := p.f.Zero()
	out := make([]E, n)
	for i := range out {
		out[i] = zero
	}
	da := len(p.coeff) - 1
	db := len(q.coeff) - 1
	for i, a := range p.coeff {
		if a.IsZero() {
			continue
		}
		degI := da - i
		for j, b := range q.coeff {
			degJ := db - j
			idx := n - 1 - (degI + degJ)
			out[idx] = out[idx].Add(a.Mul(b))
		}
	}
	return NewPoly(p.f, out, p.symbol)
}

// shiftPoly multiplies p by x^shift (appends `shift` trailing zero coefficients).
func shiftPoly[E Element[E]](p Poly[E], shift int) Poly[E] {
	if shift == 0 {
		return p
	}
	zero := p.f.Zero()
	out := make([]E, len(p.coeff)+shift)
	copy(out, p.coeff)
	for i := len(p.coeff); i < len(out); i++ {
		out[i] = zero
	}
	return NewPoly(p.f, out, p.symbol)
}

// DivMod implements Euclidean long division (spec.md §4.3, "Modern
// Computer Algebra" Algorithm 2.5, same citation as go-gao's LongDiv).
func (p Poly[E]) DivMod(d Poly[E]) (q, r Poly[E], err error) {
	mustSamePolyField(p, d)
	if d.IsZero() {
		return Poly[E]{}, Poly[E]{}, ErrDivideByZero
	}
	if p.Degree() < d.Degree() {
		return zeroPoly(p.f, p.symbol), p, nil
	}
	leadInv, err := d.Leading().Inverse()
	if err != nil {
		return Poly[E]{}, Poly[E]{}, err
	}

	qCoeff := make([]E, p.Degree()-d.Degree()+1)
	zero := p.f.Zero()
	for i := range qCoeff {
		qCoeff[i] = zero
	}

	rem := p
	for !rem.IsZero() && rem.Degree() >= d.Degree() {
		shift := rem.Degree() - d.Degree()
		coef := rem.Leading().Mul(leadInv)
		qCoeff[len(qCoeff)-1-shift] = coef
		rem = rem.Sub(shiftPoly(d, shift).MulScalar(coef))
	}
	return NewPoly(p.f, qCoeff, p.symbol), rem, nil
}

func (p Poly[E]) FloorDiv(d Poly[E]) (Poly[E], error) {
	q, _, err := p.DivMod(d)
	return q, err
}

func (p Poly[E]) Mod(d Poly[E]) (Poly[E], error) {
	_, r, err := p.DivMod(d)
	return r, err
}

// GCD returns the monic greatest common divisor via the Euclidean algorithm.
func (p Poly[E]) GCD(q Poly[E]) (Poly[E], error) {
	mustSamePolyField(p, q)
	r1, r0 := p, q
	for !r0.IsZero() {
		_, rem, err := r1.DivMod(r0)
		if err != nil {
			return Poly[E]{}, err
		}
		r1, r0 = r0, rem
	}
	return r1.ToMonic()
}

// XGCD returns (gcd, s, t) such that s*p + t*q = gcd, with gcd monic
// (spec.md §4.3; the recursive shape of go-gao's
// field.PartialExtendedEuclidean, generalized to a generic Element and
// made iterative like polyring.go's PartialExtendedEuclidean).
func (p Poly[E]) XGCD(q Poly[E]) (gcd, s, t Poly[E], err error) {
	mustSamePolyField(p, q)
	r1, r0 := p, q
	s1, s0 := onePoly(p.f, p.symbol), zeroPoly(p.f, p.symbol)
	t1, t0 := zeroPoly(p.f, p.symbol), onePoly(p.f, p.symbol)

	for !r0.IsZero() {
		quot, rem, e := r1.DivMod(r0)
		if e != nil {
			return Poly[E]{}, Poly[E]{}, Poly[E]{}, e
		}
		r1, r0 = r0, rem
		s1, s0 = s0, s1.Sub(quot.Mul(s0))
		t1, t0 = t0, t1.Sub(quot.Mul(t0))
	}

	if !r1.IsMonic() {
		lead := r1.Leading()
		if r1, err = r1.DivScalar(lead); err != nil {
			return Poly[E]{}, Poly[E]{}, Poly[E]{}, err
		}
		if s1, err = s1.DivScalar(lead); err != nil {
			return Poly[E]{}, Poly[E]{}, Poly[E]{}, err
		}
		if t1, err = t1.DivScalar(lead); err != nil {
			return Poly[E]{}, Poly[E]{}, Poly[E]{}, err
		}
	}
	return r1, s1, t1, nil
}

// Pow computes p^e; if mod is non-nil, every intermediate is reduced
// modulo it (spec.md §4.3's modular exponentiation context).
func (p Poly[E]) Pow(e *big.Int, mod *Poly[E]) (Poly[E], error) {
	if e.Sign() < 0 {
		return Poly[E]{}, errors.New("field: polynomial exponent must be nonnegative")
	}
	result := onePoly(p.f, p.symbol)
	base := p
	exp := new(big.Int).Set(e)
	zero := big.NewInt(0)
	for exp.Cmp(zero) > 0 {
		if exp.Bit(0) == 1 {
			result = result.Mul(base)
			if mod != nil {
				r, err := result.Mod(*mod)
				if err != nil {
					return Poly[E]{}, err
				}
				result = r
			}
		}
		base = base.Mul(base)
		if mod != nil {
			r, err := base.Mod(*mod)
			if err != nil {
				return Poly[E]{}, err
			}
			base = r
		}
		exp.Rsh(exp, 1)
	}
	return result, nil
}

// Derivative computes the formal derivative: coefficient of x^i (i > 0)
// becomes i*coeff, folded through the field's characteristic via
// repeated doubling so it's correct in positive characteristic too.
func (p Poly[E]) Derivative() Poly[E] {
	if p.Degree() <= 0 {
		return zeroPoly(p.f, p.symbol)
	}
	deg := p.Degree()
	out := make([]E, len(p.coeff)-1)
	for i := 0; i < len(p.coeff)-1; i++ {
		out[i] = mulByInt(p.coeff[i], deg-i)
	}
	return NewPoly(p.f, out, p.symbol)
}

// mulByInt computes n*c via Russian-peasant doubling, which folds
// correctly in any characteristic.
func mulByInt[E Element[E]](c E, n int) E {
	result := c.Sub(c) // additive identity without needing a FiniteField reference
	base := c
	for n > 0 {
		if n&1 == 1 {
			result = result.Add(base)
		}
		base = base.Add(base)
		n >>= 1
	}
	return result
}

// Eval evaluates p(x) via Horner's method.
func (p Poly[E]) Eval(x E) E {
	result := p.f.Zero()
	for _, c := range p.coeff {
		result = result.Mul(x).Add(c)
	}
	return result
}

func (p Poly[E]) Equal(q Poly[E]) bool {
	if p.f.ID() != q.f.ID() {
		return false
	}
	if len(p.coeff) != len(q.coeff) {
		return false
	}
	for i := range p.coeff {
		if !p.coeff[i].Equal(q.coeff[i]) {
			return false
		}
	}
	return true
}

// String renders terms in descending degree, omitting a coefficient of 1
// on non-constant terms and printing x^1 as plain x, matching
// original_source/src/hyperelliptic/polynomial.py's Polynomial.__str__
// (spec.md §6).
func (p Poly[E]) String() string {
	allZero := true
	for _, c := range p.coeff {
		if !c.IsZero() {
			allZero = false
			break
		}
	}
	if allZero {
		return "0"
	}

	last := p.Degree()
	var sb strings.Builder
	for i, c := range p.coeff {
		if c.IsZero() {
			continue
		}
		switch {
		case i == last:
			if last != 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(c.String())
		case i == 0:
			sb.WriteString(p.nthTerm(c, last-i))
		default:
			sb.WriteString(" + ")
			sb.WriteString(p.nthTerm(c, last-i))
		}
	}
	return sb.String()
}

func (p Poly[E]) nthTerm(c E, deg int) string {
	expr := p.symbol
	if deg != 1 {
		expr += fmt.Sprintf("^%d", deg)
	}
	if c.Equal(p.f.One()) {
		return expr
	}
	return p.wrapCoeff(c) + expr
}

func (p Poly[E]) wrapCoeff(c E) string {
	if w, ok := any(c).(Wrapper); ok && w.WrapInString() {
		return "(" + c.String() + ")"
	}
	return c.String()
}
