// Package extfield implements the extension field F_{p^m} = F_p[x]/(m(x))
// (spec.md §3, §4.4).
package extfield

import (
	"errors"
	"io"
	"iter"
	"math/big"

	"github.com/Skaipi/hyperelliptic/field"
)

var (
	ErrNotBaseField   = errors.New("extfield: modulus must be defined over the given base field")
	ErrNotIrreducible = errors.New("extfield: modulus is not irreducible")
)

// Field is F_{p^m}, built from a prime field and an irreducible monic
// modulus polynomial (spec.md §3).
type Field struct {
	base    *field.Field
	modulus field.Poly[field.Elem]
	m       int
	q       *big.Int
}

// New validates that modulus is defined over base and is irreducible
// (spec.md §4.4), then constructs F_{p^m}.
func New(base *field.Field, modulus field.Poly[field.Elem]) (*Field, error) {
	if modulus.Field().ID() != base.ID() {
		return nil, ErrNotBaseField
	}
	ok, err := modulus.IsIrreducible()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotIrreducible
	}
	monicModulus, err := modulus.ToMonic()
	if err != nil {
		return nil, err
	}
	m := monicModulus.Degree()
	q := new(big.Int).Exp(base.Prime(), big.NewInt(int64(m)), nil)
	return &Field{base: base, modulus: monicModulus, m: m, q: q}, nil
}

func (f *Field) Base() *field.Field                { return f.base }
func (f *Field) Degree() int                        { return f.m }
func (f *Field) Modulus() field.Poly[field.Elem]     { return f.modulus }
func (f *Field) Order() *big.Int                    { return new(big.Int).Set(f.q) }
func (f *Field) Characteristic() *big.Int            { return f.base.Characteristic() }
func (f *Field) ID() string {
	return "GF:" + f.base.Prime().String() + ":" + f.modulus.String()
}
func (f *Field) Equal(other *Field) bool { return f.ID() == other.ID() }
func (f *Field) String() string {
	return "Galois Field mod " + f.base.Prime().String() + " mod " + f.modulus.String()
}

func (f *Field) Zero() Elem {
	return Elem{field: f, poly: field.NewPoly[field.Elem](f.base, []field.Elem{f.base.Zero()}, "a")}
}

func (f *Field) One() Elem {
	return Elem{field: f, poly: field.NewPoly[field.Elem](f.base, []field.Elem{f.base.One()}, "a")}
}

// Element constructs a residue-class element from coefficients in
// descending degree order, reducing modulo the field's modulus.
func (f *Field) Element(coeffs []field.Elem) Elem {
	p := field.NewPoly[field.Elem](f.base, coeffs, "a")
	return f.reduce(p)
}

func (f *Field) reduce(p field.Poly[field.Elem]) Elem {
	r, err := p.Mod(f.modulus)
	if err != nil {
		// the modulus is irreducible (degree >= 1), so reduction can never divide by zero
		panic(err)
	}
	return Elem{field: f, poly: r}
}

func (f *Field) RandElement(reader io.Reader) (Elem, error) {
	coeffs := make([]field.Elem, f.m)
	for i := range coeffs {
		e, err := f.base.RandElement(reader)
		if err != nil {
			return Elem{}, err
		}
		coeffs[i] = e
	}
	return f.Element(coeffs), nil
}

func (f *Field) FrobeniusInverse(c Elem) Elem {
	exp := new(big.Int).Exp(f.base.Prime(), big.NewInt(int64(f.m-1)), nil)
	r, _ := c.Pow(exp)
	return r
}

func (f *Field) IsQuadraticResidue(e Elem) bool { return e.IsQuadraticResidue() }

func (f *Field) Sqrt(e Elem, reader io.Reader) (Elem, error) { return e.Sqrt(reader) }

func (f *Field) RandPoly(deg int, reader io.Reader) (field.Poly[Elem], error) {
	coeffs := make([]Elem, deg+1)
	for i := range coeffs {
		e, err := f.RandElement(reader)
		if err != nil {
			return field.Poly[Elem]{}, err
		}
		coeffs[i] = e
	}
	return field.NewPoly[Elem](f, coeffs, "x"), nil
}

func (f *Field) RandIrreduciblePoly(deg int, reader io.Reader) (field.Poly[Elem], error) {
	for {
		coeffs := make([]Elem, deg+1)
		coeffs[0] = f.One()
		for i := 1; i <= deg; i++ {
			e, err := f.RandElement(reader)
			if err != nil {
				return field.Poly[Elem]{}, err
			}
			coeffs[i] = e
		}
		p := field.NewPoly[Elem](f, coeffs, "x")
		ok, err := p.IsIrreducible()
		if err != nil {
			return field.Poly[Elem]{}, err
		}
		if ok {
			return p, nil
		}
	}
}

// GetElements lazily enumerates every one of the q = p^m elements by
// walking all degree-<m coefficient tuples directly as a mixed-radix
// counter, rather than assuming x generates F_{p^m}^* (spec.md §9's
// Open Question on GaloisField.get_elements; resolved per SPEC_FULL.md §4
// item 2).
func (f *Field) GetElements() iter.Seq[Elem] {
	return func(yield func(Elem) bool) {
		p := f.base.Prime()
		digits := make([]*big.Int, f.m)
		for i := range digits {
			digits[i] = big.NewInt(0)
		}
		total := f.Order()
		count := big.NewInt(0)
		for count.Cmp(total) < 0 {
			coeffs := make([]field.Elem, f.m)
			for i, v := range digits {
				coeffs[i] = f.base.Elem(v)
			}
			if !yield(f.Element(coeffs)) {
				return
			}
			for i := f.m - 1; i >= 0; i-- {
				digits[i].Add(digits[i], big.NewInt(1))
				if digits[i].Cmp(p) < 0 {
					break
				}
				digits[i].SetInt64(0)
			}
			count.Add(count, big.NewInt(1))
		}
	}
}
