package curve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skaipi/hyperelliptic/curve"
	"github.com/Skaipi/hyperelliptic/field"
	"github.com/Skaipi/hyperelliptic/internal/numtheory"
)

func buildCurve(t *testing.T) (*field.Field, *curve.HC[field.Elem]) {
	t.Helper()
	f, err := field.NewFieldInt64(11)
	assert.NoError(t, err)
	// f(x) = x^5 + 3x^3 + 7x^2 + x + 2
	fpoly := field.NewPoly(f, []field.Elem{
		f.One(), f.Zero(), f.ElemInt64(3), f.ElemInt64(7), f.ElemInt64(1), f.ElemInt64(2),
	}, "x")
	h := field.NewPoly(f, []field.Elem{f.Zero()}, "x")
	c, err := curve.New[field.Elem](f, h, fpoly)
	assert.NoError(t, err)
	return f, c
}

func TestCurveRejectsNonMonicF(t *testing.T) {
	f, err := field.NewFieldInt64(11)
	assert.NoError(t, err)
	fpoly := field.NewPoly(f, []field.Elem{f.ElemInt64(2), f.Zero(), f.One()}, "x")
	h := field.NewPoly(f, []field.Elem{f.Zero()}, "x")
	_, err = curve.New[field.Elem](f, h, fpoly)
	assert.ErrorIs(t, err, curve.ErrFNotMonic)
}

func TestCurveRejectsEvenDegreeF(t *testing.T) {
	f, err := field.NewFieldInt64(11)
	assert.NoError(t, err)
	fpoly := field.NewPoly(f, []field.Elem{f.One(), f.Zero(), f.One()}, "x")
	h := field.NewPoly(f, []field.Elem{f.Zero()}, "x")
	_, err = curve.New[field.Elem](f, h, fpoly)
	assert.ErrorIs(t, err, curve.ErrFEvenDegree)
}

func TestCurveRejectsNonzeroH(t *testing.T) {
	f, err := field.NewFieldInt64(11)
	assert.NoError(t, err)
	fpoly := field.NewPoly(f, []field.Elem{f.One(), f.Zero(), f.Zero(), f.One()}, "x")
	h := field.NewPoly(f, []field.Elem{f.One()}, "x")
	_, err = curve.New[field.Elem](f, h, fpoly)
	assert.ErrorIs(t, err, curve.ErrHNonzero)
}

func TestGetAllPointsMatchesSpecExample(t *testing.T) {
	assert := assert.New(t)
	f, c := buildCurve(t)
	src := numtheory.NewDeterministicSource(1)

	points, err := c.GetAllPoints(src)
	assert.NoError(err)
	assert.Len(points, 14)

	want := []struct{ x, y int64 }{
		{1, 6}, {1, 5}, {2, 0}, {4, 6}, {4, 5}, {6, 7}, {6, 4},
		{7, 7}, {7, 4}, {9, 7}, {9, 4}, {10, 2}, {10, 9},
	}
	var infinities int
	for _, p := range points {
		if p.IsInfinity() {
			infinities++
			continue
		}
		found := false
		for _, w := range want {
			if p.X().Equal(f.ElemInt64(w.x)) && p.Y().Equal(f.ElemInt64(w.y)) {
				found = true
				break
			}
		}
		assert.True(found, "unexpected point %s", p.String())
	}
	assert.Equal(1, infinities)
}

func TestPointInverseInvolution(t *testing.T) {
	_, c := buildCurve(t)
	src := numtheory.NewDeterministicSource(2)
	p, err := c.GetRandomPoint(src)
	assert.NoError(t, err)
	inv := c.PointInverse(p)
	assert.Equal(t, p, c.PointInverse(inv))
}
