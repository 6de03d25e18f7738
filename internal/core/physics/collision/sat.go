package collision

import (
	"math"

	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/pkg/generic"
)

// Result describes the outcome of a narrow-phase test.
//
// When Collided is set, Axis is the unit normal of the minimum translation
// vector, oriented from the first shape towards the second, and Depth is the
// overlap along it.
type Result struct {
	Collided bool
	Axis     vector.Vector
	Depth    float64
}

var axes = generic.NewSlicePool[vector.Vector](2 * polygon.CircleResolution)

// Find runs the separating axis test on two convex polygons. Concave input
// gives unspecified results.
func Find(a, b polygon.Polygon) Result {
	buf := axes.Get()
	defer axes.Put(buf)

	*buf = appendNormals(*buf, a)
	*buf = appendNormals(*buf, b)

	best := Result{Depth: math.Inf(1)}
	for _, axis := range *buf {
		minA, maxA := project(a, axis)
		minB, maxB := project(b, axis)
		if maxA < minB || maxB < minA {
			return Result{}
		}

		overlap := math.Min(maxB-minA, maxA-minB)
		if overlap < best.Depth {
			best.Depth = overlap
			best.Axis = axis
		}
	}
	if math.IsInf(best.Depth, 1) {
		return Result{}
	}

	if best.Axis.Dot(mean(b).Sub(mean(a))) < 0 {
		best.Axis = best.Axis.Negate()
	}
	best.Collided = true
	return best
}

// BoundsOverlap is the bounding-circle reject: it reports false when the
// centroids are further apart than the sum of the bounding radii.
func BoundsOverlap(a, b *body.Body) bool {
	reach := a.BoundingRadius() + b.BoundingRadius()
	return a.Centroid().Sub(b.Centroid()).NormSquared() <= reach*reach
}

// Check runs the bounding-circle reject followed by Find on the bodies'
// world shapes.
func Check(a, b *body.Body) Result {
	if !BoundsOverlap(a, b) {
		return Result{}
	}
	return Find(a.Vertices(), b.Vertices())
}

// appendNormals appends the unit normal of every non-degenerate edge of p.
func appendNormals(dst []vector.Vector, p polygon.Polygon) []vector.Vector {
	for i := range p {
		edge := p.Edge(i)
		if edge.IsZero() {
			continue
		}
		dst = append(dst, edge.Orthogonal().Normalize())
	}
	return dst
}

func project(p polygon.Polygon, axis vector.Vector) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range p {
		d := v.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

func mean(p polygon.Polygon) vector.Vector {
	var sum vector.Vector
	for _, v := range p {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(p)))
}
