package field

import "errors"

var (
	ErrInterpolationSizeMismatch = errors.New("field: interpolation points/values size mismatch")
	ErrInterpolationNonUniqueXs  = errors.New("field: interpolation x values must be unique")
)

// Interpolate returns the unique polynomial of degree < len(xs) passing
// through each (xs[i], ys[i]), via Lagrange interpolation (spec.md
// §4.6's Divisor.from_points construction of v). Adapted from go-gao's
// field.Interpolator.Interpolate, generalized from uint64 PrimeField
// elements to an arbitrary Element/FiniteField pair and from O(n) fast
// division by linear factors (mDivMi) to the same technique expressed
// generically: build m(x) = prod(x - x_i), divide out each factor in
// O(n), then scale and sum.
func Interpolate[E Element[E]](f FiniteField[E], xs, ys []E) (Poly[E], error) {
	if len(xs) != len(ys) {
		return Poly[E]{}, ErrInterpolationSizeMismatch
	}
	if hasDuplicateX(xs) {
		return Poly[E]{}, ErrInterpolationNonUniqueXs
	}

	miSlice := make([]Poly[E], len(xs))
	for i, x := range xs {
		miSlice[i] = NewPoly(f, []E{f.One(), x.Neg()}, "x")
	}

	m := onePoly(f, "x")
	for _, mi := range miSlice {
		m = m.Mul(mi)
	}

	sum := zeroPoly(f, "x")
	for i, mi := range miSlice {
		qi, err := divByLinear(m, mi)
		if err != nil {
			return Poly[E]{}, err
		}
		s := qi.Eval(xs[i])
		sInv, err := s.Inverse()
		if err != nil {
			return Poly[E]{}, err
		}
		li := qi.MulScalar(sInv).MulScalar(ys[i])
		sum = sum.Add(li)
	}
	return sum, nil
}

// divByLinear divides m by the monic linear factor (x - root) via
// synthetic division, exploiting the zero remainder to avoid full long
// division (go-gao's mDivMi).
func divByLinear[E Element[E]](m, linear Poly[E]) (Poly[E], error) {
	root := linear.coeff[1].Neg() // linear = [1, -root]
	coeff := m.Coeffs()
	n := len(coeff)
	q := make([]E, n-1)
	q[0] = coeff[0]
	for i := 1; i < n-1; i++ {
		q[i] = coeff[i].Add(q[i-1].Mul(root))
	}
	return NewPoly(m.f, q, m.symbol), nil
}

func hasDuplicateX[E Element[E]](xs []E) bool {
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			if xs[i].Equal(xs[j]) {
				return true
			}
		}
	}
	return false
}
