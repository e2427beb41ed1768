package field

import (
	"io"
	"iter"
	"math/big"
)

// Element is the algebra trait that Poly is generic over (spec.md §9's
// design note on generalizing the coefficient ring instead of hard-coding
// Z_p). Both field.Elem and extfield.Elem satisfy it. Add, Sub, Mul and
// Neg never return an error (only Inverse does, for zero): an operand
// from a mismatched parent algebra is a
// programmer error, not a recoverable condition, and is reported loudly
// by panicking with a *CrossAlgebraError (spec.md §7) — the same contract
// go-gao's DensePolyRing enforces via its preOpVerification panics.
type Element[E any] interface {
	Add(E) E
	Sub(E) E
	Mul(E) E
	Neg() E
	Inverse() (E, error)
	IsZero() bool
	Equal(E) bool
	String() string
}

// FiniteField supplies everything a generic Poly[E] or a factorization
// routine needs beyond pure Element arithmetic: the field's identity
// elements, its characteristic and extension degree (for the Frobenius
// step in Yun's square-free decomposition), randomness, and element
// enumeration. Implemented by *Field (for E = Elem) and by
// extfield.Field (for E = extfield.Elem).
type FiniteField[E Element[E]] interface {
	Zero() E
	One() E

	// Characteristic returns the prime p such that p*1 = 0.
	Characteristic() *big.Int

	// Degree returns the extension degree m (1 for a prime field).
	Degree() int

	// ID uniquely identifies this algebra for cross-field equality checks
	// at the polynomial level (spec.md §7's CrossAlgebra error).
	ID() string

	RandElement(reader io.Reader) (E, error)
	RandPoly(deg int, reader io.Reader) (Poly[E], error)
	RandIrreduciblePoly(deg int, reader io.Reader) (Poly[E], error)

	// FrobeniusInverse raises c to p^(m-1); for a prime field (m=1) this
	// is the identity, and for an extension field it recovers a p-th
	// root when c is known to be a perfect p-th power (spec.md §4.3.1).
	FrobeniusInverse(c E) E

	IsQuadraticResidue(e E) bool
	Sqrt(e E, reader io.Reader) (E, error)

	// GetElements lazily enumerates every element of the field exactly
	// once (spec.md §9's "generators vs eager lists" note).
	GetElements() iter.Seq[E]
}

// Wrapper lets Poly's String method decide whether a coefficient type
// should be parenthesized in a non-trivial term: prime-field coefficients
// print bare, extension-field coefficients are wrapped (spec.md §6).
type Wrapper interface {
	WrapInString() bool
}

// CrossAlgebraError reports an operation between elements, polynomials,
// or curve objects that belong to different parent algebras (spec.md §7).
type CrossAlgebraError struct {
	Msg string
}

func (e *CrossAlgebraError) Error() string { return e.Msg }
