package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skaipi/hyperelliptic/field"
)

func TestInterpolatePassesThroughPoints(t *testing.T) {
	assert := assert.New(t)
	f := mustField(t, 11)

	xs := []field.Elem{f.ElemInt64(1), f.ElemInt64(2), f.ElemInt64(3)}
	ys := []field.Elem{f.ElemInt64(5), f.ElemInt64(9), f.ElemInt64(3)}

	p, err := field.Interpolate[field.Elem](f, xs, ys)
	assert.NoError(err)
	for i, x := range xs {
		assert.Equal(ys[i], p.Eval(x))
	}
}

func TestInterpolateSizeMismatch(t *testing.T) {
	f := mustField(t, 11)
	xs := []field.Elem{f.ElemInt64(1), f.ElemInt64(2)}
	ys := []field.Elem{f.ElemInt64(5)}
	_, err := field.Interpolate[field.Elem](f, xs, ys)
	assert.ErrorIs(t, err, field.ErrInterpolationSizeMismatch)
}

func TestInterpolateDuplicateXs(t *testing.T) {
	f := mustField(t, 11)
	xs := []field.Elem{f.ElemInt64(1), f.ElemInt64(1)}
	ys := []field.Elem{f.ElemInt64(5), f.ElemInt64(9)}
	_, err := field.Interpolate[field.Elem](f, xs, ys)
	assert.ErrorIs(t, err, field.ErrInterpolationNonUniqueXs)
}
