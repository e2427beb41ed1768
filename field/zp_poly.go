package field

import "io"

// RandPoly returns a random polynomial of degree <= deg (spec.md §4.3's
// rand_poly): every coefficient, including the leading one, is sampled
// uniformly, so the actual degree may come out lower if the leading
// draw is zero.
func (f *Field) RandPoly(deg int, reader io.Reader) (Poly[Elem], error) {
	coeff := make([]Elem, deg+1)
	for i := range coeff {
		e, err := f.RandElement(reader)
		if err != nil {
			return Poly[Elem]{}, err
		}
		coeff[i] = e
	}
	return NewPoly[Elem](f, coeff, "x"), nil
}

// RandIrreduciblePoly draws monic random polynomials of exact degree deg
// until one passes IsIrreducible (spec.md §4.3's rand_irreducible_poly).
func (f *Field) RandIrreduciblePoly(deg int, reader io.Reader) (Poly[Elem], error) {
	for {
		coeff := make([]Elem, deg+1)
		coeff[0] = f.One()
		for i := 1; i <= deg; i++ {
			e, err := f.RandElement(reader)
			if err != nil {
				return Poly[Elem]{}, err
			}
			coeff[i] = e
		}
		p := NewPoly[Elem](f, coeff, "x")
		ok, err := p.IsIrreducible()
		if err != nil {
			return Poly[Elem]{}, err
		}
		if ok {
			return p, nil
		}
	}
}
