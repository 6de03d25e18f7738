package collision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/physics/body"
)

func square(at vector.Vector) polygon.Polygon {
	p := polygon.Rectangle(2, 2)
	p.Translate(at)
	return p
}

func TestFindOverlappingSquares(t *testing.T) {
	a := square(vector.Zero)
	b := square(vector.New(1.5, 0.2))

	res := Find(a, b)
	require.True(t, res.Collided)
	assert.InDelta(t, 0.5, res.Depth, 1e-12)
	assert.True(t, res.Axis.Equal(vector.New(1, 0)), "axis %v", res.Axis)
	assert.InDelta(t, 1, res.Axis.Norm(), 1e-12)

	rev := Find(b, a)
	require.True(t, rev.Collided)
	assert.True(t, rev.Axis.Equal(vector.New(-1, 0)), "axis %v", rev.Axis)
	assert.InDelta(t, res.Depth, rev.Depth, 1e-12)
}

func TestFindVerticalOverlap(t *testing.T) {
	res := Find(square(vector.Zero), square(vector.New(-0.3, -1.9)))
	require.True(t, res.Collided)
	assert.InDelta(t, 0.1, res.Depth, 1e-9)
	assert.True(t, res.Axis.Equal(vector.New(0, -1)), "axis %v", res.Axis)
}

func TestFindSeparatedShapes(t *testing.T) {
	tests := []struct {
		name string
		a, b polygon.Polygon
	}{
		{"squares apart on x", square(vector.Zero), square(vector.New(3, 0))},
		{"squares apart on y", square(vector.Zero), square(vector.New(0.5, -2.5))},
		{"triangle beside square", polygon.Triangle(2), square(vector.New(4, 1))},
		// Bounding boxes overlap but the hypotenuse separates them.
		{"triangle diagonal gap", polygon.Polygon{
			vector.New(0, 0), vector.New(2, 0), vector.New(0, 2),
		}, square(vector.New(2.2, 2.2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Find(tt.a, tt.b).Collided)
			assert.False(t, Find(tt.b, tt.a).Collided)
		})
	}
}

func TestFindTriangleInsideSquare(t *testing.T) {
	big := polygon.Rectangle(10, 10)
	tri := polygon.Triangle(1)
	res := Find(big, tri)
	require.True(t, res.Collided)
	assert.Greater(t, res.Depth, 0.0)
}

func TestFindTouchingEdges(t *testing.T) {
	res := Find(square(vector.Zero), square(vector.New(2, 0)))
	assert.True(t, res.Collided)
	assert.InDelta(t, 0, res.Depth, 1e-12)
}

func TestFindSkipsDuplicateVertices(t *testing.T) {
	a := polygon.Polygon{
		vector.New(-1, -1), vector.New(-1, -1), vector.New(1, -1), vector.New(1, 1), vector.New(-1, 1),
	}
	res := Find(a, square(vector.New(1, 0)))
	require.True(t, res.Collided)
	assert.False(t, math.IsNaN(res.Axis.X))
	assert.InDelta(t, 1, res.Depth, 1e-12)
}

func TestCheckUsesBoundingCircles(t *testing.T) {
	a := body.MustNew(polygon.Circle(1), 1, body.Black)
	b := body.MustNew(polygon.Circle(1), 1, body.Black)

	b.SetCentroid(vector.New(2.5, 0))
	assert.False(t, BoundsOverlap(a, b))
	assert.False(t, Check(a, b).Collided)

	b.SetCentroid(vector.New(1.5, 0))
	assert.True(t, BoundsOverlap(a, b))
	res := Check(a, b)
	require.True(t, res.Collided)
	assert.Greater(t, res.Axis.X, 0.9)

	// A corner of the rotated square pokes into the circle.
	c := body.MustNew(polygon.Rectangle(2, 2), 1, body.Black)
	c.SetCentroid(vector.New(2.3, 0))
	c.SetRotation(math.Pi / 4)
	assert.True(t, Check(a, c).Collided)
}
