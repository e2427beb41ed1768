package field

import (
	"crypto/rand"
	"errors"
	"io"
	"iter"
	"math/big"

	"github.com/tuneinsight/lattigo/v6/ring"

	"github.com/Skaipi/hyperelliptic/internal/numtheory"
)

var (
	// ErrNotPrime is returned by NewField when the modulus fails Miller-Rabin.
	ErrNotPrime = errors.New("field: modulus is not prime")
	// ErrDivideByZero covers both scalar and polynomial division by zero
	// (spec.md §7).
	ErrDivideByZero = errors.New("field: division by zero")
	// ErrNoSquareRoot is returned by Sqrt when the element is a
	// quadratic non-residue (spec.md §7).
	ErrNoSquareRoot = errors.New("field: no square root exists")
	// ErrGeneratorPrimeTooLarge mirrors go-gao's maxBitUsage restriction:
	// Generator only hands primes of at most maxGeneratorBits (63) bits to
	// lattigo's ring.PrimitiveRoot.
	ErrGeneratorPrimeTooLarge = errors.New("field: prime exceeds 63 bits, cannot compute a generator")
)

// maxGeneratorBits is go-gao's maxBitUsage, carried over verbatim: the
// ceiling on prime size ring.PrimitiveRoot can handle.
const maxGeneratorBits = 63

// Field is the prime field Z_p (spec.md §3). Two Fields are equal iff
// their primes are equal.
type Field struct {
	p *big.Int
}

// NewField builds Z_p, verifying p is prime via Miller-Rabin (spec.md §4.1).
func NewField(p *big.Int) (*Field, error) {
	if !numtheory.IsPrime(p, rand.Reader, numtheory.DefaultMillerRabinRounds) {
		return nil, ErrNotPrime
	}
	return &Field{p: new(big.Int).Set(p)}, nil
}

// NewFieldInt64 is a convenience constructor for small test primes.
func NewFieldInt64(p int64) (*Field, error) {
	return NewField(big.NewInt(p))
}

func (f *Field) Prime() *big.Int { return new(big.Int).Set(f.p) }

func (f *Field) Equal(other *Field) bool { return f.p.Cmp(other.p) == 0 }

func (f *Field) String() string { return "Finite Field mod " + f.p.String() }

// Elem reduces n into the canonical representative in [0, p).
func (f *Field) Elem(n *big.Int) Elem {
	v := new(big.Int).Mod(n, f.p)
	return Elem{field: f, value: v}
}

func (f *Field) ElemInt64(n int64) Elem { return f.Elem(big.NewInt(n)) }

func (f *Field) Zero() Elem { return Elem{field: f, value: big.NewInt(0)} }
func (f *Field) One() Elem  { return Elem{field: f, value: big.NewInt(1)} }

func (f *Field) Characteristic() *big.Int { return f.Prime() }
func (f *Field) Degree() int              { return 1 }
func (f *Field) ID() string               { return "Zp:" + f.p.String() }

func (f *Field) RandElement(reader io.Reader) (Elem, error) {
	v, err := rand.Int(reader, f.p)
	if err != nil {
		return Elem{}, err
	}
	return Elem{field: f, value: v}, nil
}

func (f *Field) FrobeniusInverse(c Elem) Elem { return c } // p^(m-1) = p^0 = 1 for m=1

func (f *Field) IsQuadraticResidue(e Elem) bool { return e.IsQuadraticResidue() }

func (f *Field) Sqrt(e Elem, _ io.Reader) (Elem, error) { return e.Sqrt() }

// Generator returns a primitive root of F_p^*, for primes of at most 63
// bits (go-gao's NewPrimeField restricts ring.PrimitiveRoot the same
// way). Nothing else in this module calls it, and element enumeration
// does not depend on it; unlike go-gao, the prime itself is still
// arbitrary precision, so this is an optional capability rather than a
// constructor requirement.
func (f *Field) Generator() (uint64, error) {
	if f.p.BitLen() > maxGeneratorBits {
		return 0, ErrGeneratorPrimeTooLarge
	}
	g, _, err := ring.PrimitiveRoot(f.p.Uint64(), nil)
	if err != nil {
		return 0, err
	}
	return g, nil
}

// GetElements lazily walks 0..p-1 (spec.md §9).
func (f *Field) GetElements() iter.Seq[Elem] {
	return func(yield func(Elem) bool) {
		v := big.NewInt(0)
		for v.Cmp(f.p) < 0 {
			if !yield(Elem{field: f, value: new(big.Int).Set(v)}) {
				return
			}
			v.Add(v, big.NewInt(1))
		}
	}
}

// Elem is a canonical residue value in Z_p (spec.md §3).
type Elem struct {
	field *Field
	value *big.Int
}

func (e Elem) Field() *Field   { return e.field }
func (e Elem) Value() *big.Int { return new(big.Int).Set(e.value) }

func mustSameField(a, b *Field) {
	if !a.Equal(b) {
		panic(&CrossAlgebraError{Msg: "field: elements belong to different fields (mod " + a.p.String() + " vs mod " + b.p.String() + ")"})
	}
}

func (e Elem) Add(other Elem) Elem {
	mustSameField(e.field, other.field)
	v := new(big.Int).Add(e.value, other.value)
	v.Mod(v, e.field.p)
	return Elem{field: e.field, value: v}
}

func (e Elem) Sub(other Elem) Elem {
	mustSameField(e.field, other.field)
	v := new(big.Int).Sub(e.value, other.value)
	v.Mod(v, e.field.p)
	return Elem{field: e.field, value: v}
}

func (e Elem) Mul(other Elem) Elem {
	mustSameField(e.field, other.field)
	v := new(big.Int).Mul(e.value, other.value)
	v.Mod(v, e.field.p)
	return Elem{field: e.field, value: v}
}

func (e Elem) Neg() Elem {
	if e.value.Sign() == 0 {
		return e
	}
	v := new(big.Int).Sub(e.field.p, e.value)
	return Elem{field: e.field, value: v}
}

func (e Elem) Inverse() (Elem, error) {
	if e.value.Sign() == 0 {
		return Elem{}, ErrDivideByZero
	}
	v := new(big.Int).ModInverse(e.value, e.field.p)
	return Elem{field: e.field, value: v}, nil
}

func (e Elem) Div(other Elem) (Elem, error) {
	mustSameField(e.field, other.field)
	inv, err := other.Inverse()
	if err != nil {
		return Elem{}, err
	}
	return e.Mul(inv), nil
}

// Pow computes e^exp, supporting negative exponents via Inverse.
func (e Elem) Pow(exp *big.Int) Elem {
	if exp.Sign() < 0 {
		inv, err := e.Inverse()
		if err != nil {
			panic(err)
		}
		return inv.Pow(new(big.Int).Neg(exp))
	}
	v := new(big.Int).Exp(e.value, exp, e.field.p)
	return Elem{field: e.field, value: v}
}

func (e Elem) PowInt64(exp int64) Elem { return e.Pow(big.NewInt(exp)) }

func (e Elem) Cmp(other Elem) int {
	mustSameField(e.field, other.field)
	return e.value.Cmp(other.value)
}

func (e Elem) Equal(other Elem) bool {
	if !e.field.Equal(other.field) {
		return false
	}
	return e.value.Cmp(other.value) == 0
}

func (e Elem) IsZero() bool { return e.value.Sign() == 0 }

func (e Elem) String() string { return e.value.String() }

// Legendre returns e^((p-1)/2): 1 for a nonzero residue, -1 (i.e. p-1)
// for a non-residue, 0 for zero (spec.md §4.2).
func (e Elem) Legendre() Elem {
	exp := new(big.Int).Sub(e.field.p, big.NewInt(1))
	exp.Rsh(exp, 1)
	return e.Pow(exp)
}

func (e Elem) IsQuadraticResidue() bool {
	if e.IsZero() {
		return true
	}
	return e.Legendre().value.Cmp(big.NewInt(1)) == 0
}

// Sqrt implements Tonelli-Shanks (spec.md §4.2). The non-residue search
// increments deterministically from 1, so no randomness is needed here
// (unlike extfield.Elem.Sqrt, which must sample uniformly).
func (e Elem) Sqrt() (Elem, error) {
	if !e.IsQuadraticResidue() {
		return Elem{}, ErrNoSquareRoot
	}
	if e.IsZero() {
		return e.field.Zero(), nil
	}
	p := e.field.p
	q := new(big.Int).Sub(p, big.NewInt(1))
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}
	if s == 1 {
		exp := new(big.Int).Add(p, big.NewInt(1))
		exp.Rsh(exp, 2)
		return e.Pow(exp), nil
	}

	z := e.field.One()
	for z.IsQuadraticResidue() {
		z = z.Add(e.field.One())
	}

	c := z.Pow(q)
	t := e.Pow(q)
	rExp := new(big.Int).Add(q, big.NewInt(1))
	rExp.Rsh(rExp, 1)
	r := e.Pow(rExp)
	m := s
	one := big.NewInt(1)

	for t.value.Cmp(one) != 0 {
		i := 1
		ti := t.Pow(big.NewInt(1 << uint(i)))
		for ti.value.Cmp(one) != 0 {
			i++
			ti = t.Pow(new(big.Int).Lsh(big.NewInt(1), uint(i)))
		}
		b := c.Pow(new(big.Int).Lsh(big.NewInt(1), uint(m-i-1)))
		r = r.Mul(b)
		c = b.Mul(b)
		t = t.Mul(c)
		m = i
	}
	return r, nil
}
