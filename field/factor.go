package field

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"golang.org/x/exp/slices"

	"github.com/Skaipi/hyperelliptic/internal/numtheory"
)

// Factor pairs an irreducible polynomial with its multiplicity in a
// factorization (spec.md §4.3.1).
type Factor[E Element[E]] struct {
	Poly         Poly[E]
	Multiplicity int
}

func iModNonZero(i int, p *big.Int) bool {
	return new(big.Int).Mod(big.NewInt(int64(i)), p).Sign() != 0
}

// SquareFreeFactors implements Yun's algorithm, recursing through the
// Frobenius inverse when the remaining cofactor is itself a perfect
// p-th power (spec.md §4.3.1; original_source/src/hyperelliptic/ring_polynomial.py's
// square_free_factors).
func (p Poly[E]) SquareFreeFactors() ([]Factor[E], error) {
	if p.IsZero() {
		return nil, errors.New("field: cannot factor the zero polynomial")
	}
	f := p.f
	charP := f.Characteristic()

	c, err := p.GCD(p.Derivative())
	if err != nil {
		return nil, err
	}
	w, err := p.FloorDiv(c)
	if err != nil {
		return nil, err
	}

	one := onePoly(f, p.symbol)
	var factors []Factor[E]
	i := 1
	for !w.Equal(one) {
		y, err := w.GCD(c)
		if err != nil {
			return nil, err
		}
		fac, err := w.FloorDiv(y)
		if err != nil {
			return nil, err
		}
		if !fac.Equal(one) && iModNonZero(i, charP) {
			factors = append(factors, Factor[E]{Poly: fac, Multiplicity: i})
		}
		w = y
		c, err = c.FloorDiv(y)
		if err != nil {
			return nil, err
		}
		i++
	}

	if !c.Equal(one) {
		coeffs := c.Coeffs()
		reducedCoeffs := make([]E, len(coeffs))
		for idx, co := range coeffs {
			reducedCoeffs[idx] = f.FrobeniusInverse(co)
		}
		reduced := NewPoly(f, reducedCoeffs, p.symbol)
		sub, err := reduced.SquareFreeFactors()
		if err != nil {
			return nil, err
		}
		factors = append(factors, sub...)
	}
	return factors, nil
}

type distinctDegreeFactor[E Element[E]] struct {
	poly   Poly[E]
	degree int
}

// distinctDegreeFactors groups the factors of a square-free polynomial by
// degree, computing h_{i+1} = h_i^p mod P incrementally (spec.md §4.3.1).
func (p Poly[E]) distinctDegreeFactors() ([]distinctDegreeFactor[E], error) {
	f := p.f
	charP := f.Characteristic()
	one := onePoly(f, p.symbol)
	x := NewPoly(f, []E{f.One(), f.Zero()}, p.symbol)

	poly := p
	h, err := x.Pow(charP, &poly)
	if err != nil {
		return nil, err
	}

	var result []distinctDegreeFactor[E]
	limit := p.Degree() / 2
	for i := 1; i <= limit; i++ {
		g, err := poly.GCD(h.Sub(x))
		if err != nil {
			return nil, err
		}
		if !g.Equal(one) {
			result = append(result, distinctDegreeFactor[E]{poly: g, degree: i})
			q, err := poly.FloorDiv(g)
			if err != nil {
				return nil, err
			}
			poly = q
			h, err = h.Mod(poly)
			if err != nil {
				return nil, err
			}
		}
		if i < limit {
			h, err = h.Pow(charP, &poly)
			if err != nil {
				return nil, err
			}
		}
	}
	if !poly.Equal(one) {
		result = append(result, distinctDegreeFactor[E]{poly: poly, degree: poly.Degree()})
	}
	return result, nil
}

// equalDegreeFactors splits a product of degree-`deg` irreducibles via
// Cantor-Zassenhaus (spec.md §4.3.1).
func (p Poly[E]) equalDegreeFactors(deg int, reader io.Reader) ([]Poly[E], error) {
	f := p.f
	charP := f.Characteristic()
	one := onePoly(f, p.symbol)
	target := p.Degree() / deg
	factors := []Poly[E]{p}

	for len(factors) < target {
		randPoly, err := f.RandPoly(deg, reader)
		if err != nil {
			return nil, err
		}
		g, err := p.GCD(randPoly)
		if err != nil {
			return nil, err
		}
		if g.Equal(one) {
			exp := new(big.Int).Exp(charP, big.NewInt(int64(deg)), nil)
			exp.Sub(exp, big.NewInt(1))
			exp.Rsh(exp, 1)
			powd, err := randPoly.Pow(exp, &p)
			if err != nil {
				return nil, err
			}
			g, err = powd.Sub(one).Mod(p)
			if err != nil {
				return nil, err
			}
		}

		var next []Poly[E]
		for _, fac := range factors {
			if fac.Degree() <= deg {
				next = append(next, fac)
				continue
			}
			delta, err := g.GCD(fac)
			if err != nil {
				return nil, err
			}
			if !delta.Equal(one) && !delta.Equal(fac) {
				quot, err := fac.FloorDiv(delta)
				if err != nil {
					return nil, err
				}
				next = append(next, delta, quot)
			} else {
				next = append(next, fac)
			}
		}
		factors = next
	}
	return factors, nil
}

// Factor fully factors p, composing square-free decomposition,
// distinct-degree factorization and equal-degree factorization (spec.md
// §4.3.1; original_source/src/hyperelliptic/ring_polynomial.py's factors()).
func (p Poly[E]) Factor() ([]Factor[E], error) {
	sqfree, err := p.SquareFreeFactors()
	if err != nil {
		return nil, err
	}
	var result []Factor[E]
	for _, sf := range sqfree {
		ddFactors, err := sf.Poly.distinctDegreeFactors()
		if err != nil {
			return nil, err
		}
		for _, dd := range ddFactors {
			irreducibles, err := dd.poly.equalDegreeFactors(dd.degree, rand.Reader)
			if err != nil {
				return nil, err
			}
			for _, irr := range irreducibles {
				result = append(result, Factor[E]{Poly: irr, Multiplicity: sf.Multiplicity})
			}
		}
	}
	return result, nil
}

// IsIrreducible implements Rabin's test (spec.md §4.3.1;
// original_source/src/hyperelliptic/ring_polynomial.py's is_irreducible),
// factoring the degree via internal/numtheory.FactorPrimePower.
func (p Poly[E]) IsIrreducible() (bool, error) {
	if p.Degree() <= 0 {
		return false, nil
	}
	f := p.f
	charP := f.Characteristic()

	degFactors, err := numtheory.FactorPrimePower(uint64(p.Degree()), rand.Reader)
	if err != nil {
		return false, err
	}
	// Dedup the degree quotients with x/exp/slices.Contains rather than a
	// map, since Go map iteration order is randomized and the
	// prevH/prevQ incremental-exponent step below needs them strictly
	// increasing (sorted with x/exp/slices.Sort right after).
	var quotients []int
	for _, q := range degFactors {
		quotient := p.Degree() / int(q)
		if !slices.Contains(quotients, quotient) {
			quotients = append(quotients, quotient)
		}
	}
	slices.Sort(quotients)

	x := NewPoly(f, []E{f.One(), f.Zero()}, p.symbol)
	one := onePoly(f, p.symbol)
	prevH, prevQ := x, 0

	for _, quotient := range quotients {
		exp := new(big.Int).Exp(charP, big.NewInt(int64(quotient-prevQ)), nil)
		h, err := prevH.Pow(exp, &p)
		if err != nil {
			return false, err
		}
		rem, err := h.Sub(x).Mod(p)
		if err != nil {
			return false, err
		}
		g, err := p.GCD(rem)
		if err != nil {
			return false, err
		}
		if !g.Equal(one) {
			return false, nil
		}
		prevH, prevQ = h, quotient
	}

	exp := new(big.Int).Exp(charP, big.NewInt(int64(p.Degree()-prevQ)), nil)
	h, err := prevH.Pow(exp, &p)
	if err != nil {
		return false, err
	}
	rem, err := h.Sub(x).Mod(p)
	if err != nil {
		return false, err
	}
	return rem.IsZero(), nil
}
