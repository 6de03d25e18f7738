package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	a := New(1, 2)
	b := New(3, -4)

	assert.Equal(t, New(4, -2), a.Add(b))
	assert.Equal(t, New(-2, 6), a.Sub(b))
	assert.Equal(t, New(-1, -2), a.Negate())
	assert.Equal(t, New(2.5, 5), a.Scale(2.5))
	assert.Equal(t, -5.0, a.Dot(b))
	assert.Equal(t, -10.0, a.Cross(b))
	assert.Equal(t, New(-2, 1), a.Orthogonal())
}

func TestRotateAboutPivot(t *testing.T) {
	v := New(2, 1)
	pivot := New(1, 1)

	assert.True(t, v.Rotate(math.Pi/2, pivot).Equal(New(1, 2)))
	assert.True(t, v.Rotate(math.Pi, pivot).Equal(New(0, 1)))
	assert.True(t, v.Rotate(2*math.Pi, pivot).Equal(v))
	assert.True(t, New(1, 0).Rotate(math.Pi/2, Zero).Equal(New(0, 1)))
}

func TestNormalize(t *testing.T) {
	n := New(3, 4).Normalize()
	assert.InDelta(t, 1.0, n.Norm(), 1e-12)
	assert.True(t, n.Equal(New(0.6, 0.8)))

	assert.Equal(t, Zero, Zero.Normalize())
}

func TestDistanceAndEquality(t *testing.T) {
	assert.InDelta(t, 5.0, New(0, 0).Distance(New(3, 4)), 1e-12)
	assert.True(t, New(1, 1).Equal(New(1+5e-5, 1)))
	assert.False(t, New(1, 1).Equal(New(1+2e-4, 1)))
}

func TestIsClose(t *testing.T) {
	assert.True(t, New(1000, 0).IsClose(New(1000.05, 0), 1e-4))
	assert.False(t, New(1000, 0).IsClose(New(1001, 0), 1e-4))
	assert.True(t, New(0, 0).IsClose(New(5e-5, 0), 1e-9))
}
