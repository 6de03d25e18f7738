package polygon

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeusync/physics2d/internal/core/geometry/vector"
)

// ErrDegenerate is returned for polygons whose area or centroid is undefined.
var ErrDegenerate = errors.New("degenerate polygon")

// Polygon is an ordered vertex sequence with consistent winding.
// Self-intersecting polygons are not supported.
type Polygon []vector.Vector

// New copies the given vertices into a new polygon.
func New(vertices ...vector.Vector) Polygon {
	p := make(Polygon, len(vertices))
	copy(p, vertices)
	return p
}

func (p Polygon) Clone() Polygon {
	return New(p...)
}

// Edge returns the vector from vertex i to vertex i+1, wrapping around.
func (p Polygon) Edge(i int) vector.Vector {
	return p[(i+1)%len(p)].Sub(p[i])
}

// SignedArea is positive for counter-clockwise winding.
func (p Polygon) SignedArea() float64 {
	var sum float64
	n := len(p)
	for i := 0; i < n; i++ {
		sum += p[i].Cross(p[(i+1)%n])
	}
	return 0.5 * sum
}

func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Validate reports ErrDegenerate when the polygon has fewer than three
// vertices or zero area.
func (p Polygon) Validate() error {
	if len(p) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrDegenerate, len(p))
	}
	if p.SignedArea() == 0 {
		return fmt.Errorf("%w: zero area", ErrDegenerate)
	}
	return nil
}

// Centroid returns the area-weighted centroid.
func (p Polygon) Centroid() (vector.Vector, error) {
	if err := p.Validate(); err != nil {
		return vector.Zero, err
	}
	area := p.SignedArea()
	var x, y float64
	n := len(p)
	for i := 0; i < n; i++ {
		a, b := p[i], p[(i+1)%n]
		cross := a.Cross(b)
		x += (a.X + b.X) * cross
		y += (a.Y + b.Y) * cross
	}
	return vector.New(x/(6*area), y/(6*area)), nil
}

// Translate shifts every vertex by v in place.
func (p Polygon) Translate(v vector.Vector) {
	for i := range p {
		p[i] = p[i].Add(v)
	}
}

// Rotate rotates every vertex by angle about pivot in place.
func (p Polygon) Rotate(angle float64, pivot vector.Vector) {
	p.Translate(pivot.Negate())
	for i := range p {
		p[i] = p[i].Rotate(angle, vector.Zero)
	}
	p.Translate(pivot)
}

// BoundingRadius is the largest distance from center to any vertex.
func (p Polygon) BoundingRadius(center vector.Vector) float64 {
	var r float64
	for _, v := range p {
		r = math.Max(r, v.Distance(center))
	}
	return r
}

// Contains reports whether point lies inside the polygon (even-odd rule).
func (p Polygon) Contains(point vector.Vector) bool {
	inside := false
	n := len(p)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > point.Y) != (b.Y > point.Y) &&
			point.X < (b.X-a.X)*(point.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the axis-aligned min and max corners.
func (p Polygon) Bounds() (min, max vector.Vector) {
	if len(p) == 0 {
		return vector.Zero, vector.Zero
	}
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}
