// Package curve implements imaginary hyperelliptic curves and their
// Jacobian's divisor group in Mumford representation (spec.md §3, §4.5,
// §4.6).
package curve

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/Skaipi/hyperelliptic/field"
)

var (
	ErrFNotMonic                   = errors.New("curve: f must be monic")
	ErrFEvenDegree                 = errors.New("curve: degree of f must be odd")
	ErrHDegreeTooLarge             = errors.New("curve: degree of h exceeds the genus")
	ErrHNonzero                    = errors.New("curve: h must be zero (even-characteristic curves are out of scope)")
	ErrEvenCharacteristic          = errors.New("curve: even-characteristic fields are not supported")
	ErrNotSmooth                   = errors.New("curve: curve is singular")
	ErrRandomPointRetriesExceeded  = errors.New("curve: exceeded retries while sampling a random point")
)

// Point is an affine point (x, y) on a curve, or the distinguished point
// at infinity (spec.md §3).
type Point[E field.Element[E]] struct {
	x, y     E
	infinity bool
}

func Infinity[E field.Element[E]]() Point[E] { return Point[E]{infinity: true} }

func NewPoint[E field.Element[E]](x, y E) Point[E] { return Point[E]{x: x, y: y} }

func (p Point[E]) IsInfinity() bool { return p.infinity }
func (p Point[E]) X() E             { return p.x }
func (p Point[E]) Y() E             { return p.y }

func (p Point[E]) Equal(o Point[E]) bool {
	if p.infinity || o.infinity {
		return p.infinity == o.infinity
	}
	return p.x.Equal(o.x) && p.y.Equal(o.y)
}

func (p Point[E]) String() string {
	if p.infinity {
		return "infinity"
	}
	return fmt.Sprintf("(%s, %s)", p.x.String(), p.y.String())
}

// HC is an imaginary hyperelliptic curve y^2 + h(x)y = f(x) of genus g
// over a finite field F (spec.md §3, §4.5). Non-goals (spec.md §1):
// even-characteristic curves are out of scope, so the constructor
// requires char(F) != 2 and h = 0.
type HC[E field.Element[E]] struct {
	f           field.FiniteField[E]
	h, fpoly    field.Poly[E]
	g           int
	checkSmooth bool
}

type Option[E field.Element[E]] func(*HC[E])

// WithSmoothnessCheck enables the optional check that the curve has no
// repeated roots (spec.md §9's Open Question: not enforced by default).
func WithSmoothnessCheck[E field.Element[E]]() Option[E] {
	return func(c *HC[E]) { c.checkSmooth = true }
}

// New validates f is monic of odd degree 2g+1, h has degree <= g, and
// constructs the curve (spec.md §3, §4.5).
func New[E field.Element[E]](f field.FiniteField[E], h, fpoly field.Poly[E], opts ...Option[E]) (*HC[E], error) {
	if f.Characteristic().Cmp(big.NewInt(2)) == 0 {
		return nil, ErrEvenCharacteristic
	}
	if !fpoly.IsMonic() {
		return nil, ErrFNotMonic
	}
	if fpoly.Degree()%2 == 0 {
		return nil, ErrFEvenDegree
	}
	g := fpoly.Degree() / 2
	if h.Degree() > g {
		return nil, ErrHDegreeTooLarge
	}
	if !h.IsZero() {
		return nil, ErrHNonzero
	}

	c := &HC[E]{f: f, h: h, fpoly: fpoly, g: g}
	for _, opt := range opts {
		opt(c)
	}
	if c.checkSmooth {
		if err := c.verifySmooth(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *HC[E]) Field() field.FiniteField[E] { return c.f }
func (c *HC[E]) H() field.Poly[E]            { return c.h }
func (c *HC[E]) F() field.Poly[E]            { return c.fpoly }
func (c *HC[E]) Genus() int                  { return c.g }

func (c *HC[E]) String() string {
	return fmt.Sprintf("C: y^2 + (%s)y = %s", c.h.String(), c.fpoly.String())
}

// verifySmooth checks that the discriminant h^2 + 4f is square-free,
// which for an odd-characteristic, h=0 curve reduces to "f has no
// repeated roots" (spec.md §9's Open Question; opt-in, not enforced by
// the core constructor).
func (c *HC[E]) verifySmooth() error {
	one := c.f.One()
	two := one.Add(one)
	four := two.Add(two)
	d := c.h.Mul(c.h).Add(c.fpoly.MulScalar(four))
	if d.IsZero() {
		return ErrNotSmooth
	}
	g, err := d.GCD(d.Derivative())
	if err != nil {
		return err
	}
	if g.Degree() > 0 {
		return ErrNotSmooth
	}
	return nil
}

// pointFromX tries to lift x to a point on the curve by testing whether
// the discriminant h(x)^2 + 4f(x) is a quadratic residue (spec.md §4.5).
func (c *HC[E]) pointFromX(x E, reader io.Reader) (Point[E], bool, error) {
	hx := c.h.Eval(x)
	fx := c.fpoly.Eval(x)
	one := c.f.One()
	two := one.Add(one)
	four := two.Add(two)
	disc := hx.Mul(hx).Add(four.Mul(fx))

	if !c.f.IsQuadraticResidue(disc) {
		return Point[E]{}, false, nil
	}
	s, err := c.f.Sqrt(disc, reader)
	if err != nil {
		return Point[E]{}, false, err
	}
	twoInv, err := two.Inverse()
	if err != nil {
		return Point[E]{}, false, err
	}
	y := hx.Neg().Add(s).Mul(twoInv)
	return NewPoint(x, y), true, nil
}

func (c *HC[E]) isOnCurve(p Point[E]) bool {
	if p.IsInfinity() {
		return true
	}
	lhs := p.y.Mul(p.y).Add(c.h.Eval(p.x).Mul(p.y))
	rhs := c.fpoly.Eval(p.x)
	return lhs.Equal(rhs)
}

// PointInverse returns (x, -y - h(x)), the negation of a point under the
// curve's hyperelliptic involution (spec.md §4.5).
func (c *HC[E]) PointInverse(p Point[E]) Point[E] {
	if p.IsInfinity() {
		return p
	}
	return NewPoint(p.x, p.y.Neg().Sub(c.h.Eval(p.x)))
}

// GetAllPoints enumerates every affine point plus infinity (spec.md §4.5).
func (c *HC[E]) GetAllPoints(reader io.Reader) ([]Point[E], error) {
	result := []Point[E]{Infinity[E]()}
	for x := range c.f.GetElements() {
		p, ok, err := c.pointFromX(x, reader)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		inv := c.PointInverse(p)
		result = append(result, p)
		if !p.Equal(inv) {
			result = append(result, inv)
		}
	}
	return result, nil
}

// GetRandomPoint samples a uniformly random affine point, excluding
// infinity (spec.md §9's Open Question, resolved per
// original_source/src/hyperelliptic/hyperelliptic.py's HC.get_random_point:
// x is drawn only from the affine range, never landing on infinity).
func (c *HC[E]) GetRandomPoint(reader io.Reader) (Point[E], error) {
	const maxAttempts = 10000
	for i := 0; i < maxAttempts; i++ {
		x, err := c.f.RandElement(reader)
		if err != nil {
			return Point[E]{}, err
		}
		p, ok, err := c.pointFromX(x, reader)
		if err != nil {
			return Point[E]{}, err
		}
		if !ok {
			continue
		}
		coin := make([]byte, 1)
		if _, err := io.ReadFull(reader, coin); err != nil {
			return Point[E]{}, err
		}
		if coin[0]&1 == 1 {
			p = c.PointInverse(p)
		}
		return p, nil
	}
	return Point[E]{}, ErrRandomPointRetriesExceeded
}

// GetRandomDivisor builds a random reduced divisor by sampling g affine
// points whose inverses aren't already present (spec.md §6;
// original_source/src/hyperelliptic/hyperelliptic.py's HC.get_random_divisor).
func (c *HC[E]) GetRandomDivisor(reader io.Reader) (*Divisor[E], error) {
	points := make([]Point[E], 0, c.g)
	for len(points) < c.g {
		p, err := c.GetRandomPoint(reader)
		if err != nil {
			return nil, err
		}
		inv := c.PointInverse(p)
		dup := false
		for _, existing := range points {
			if existing.Equal(inv) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		points = append(points, p)
	}
	return c.DivisorFromPoints(points)
}
