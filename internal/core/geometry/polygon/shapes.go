package polygon

import (
	"math"

	"github.com/zeusync/physics2d/internal/core/geometry/vector"
)

// CircleResolution is the number of vertices used to approximate curves.
const CircleResolution = 50

// Circle approximates a circle of radius r centred on the origin.
func Circle(r float64) Polygon {
	return RegularPolygon(CircleResolution, r)
}

// RegularPolygon returns n vertices on a circle of radius r, starting at (0, r).
func RegularPolygon(n int, r float64) Polygon {
	p := make(Polygon, 0, n)
	top := vector.New(0, r)
	for i := 0; i < n; i++ {
		p = append(p, top.Rotate(2*math.Pi*float64(i)/float64(n), vector.Zero))
	}
	return p
}

// Rectangle returns a w x h rectangle centred on the origin, counter-clockwise.
func Rectangle(w, h float64) Polygon {
	hw, hh := w/2, h/2
	return Polygon{
		vector.New(-hw, -hh),
		vector.New(hw, -hh),
		vector.New(hw, hh),
		vector.New(-hw, hh),
	}
}

// Star returns an n-pointed star with outer radius r and inner radius r/2.
// The result is concave for n >= 3.
func Star(n int, r float64) Polygon {
	p := make(Polygon, 0, 2*n)
	outer := vector.New(0, r)
	inner := vector.New(0, r/2)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		p = append(p,
			outer.Rotate(angle, vector.Zero),
			inner.Rotate(angle+math.Pi/float64(n), vector.Zero),
		)
	}
	return p
}

// Lemniscate traces the lemniscate of Bernoulli with half-width r between the
// given parameter angles.
func Lemniscate(r, minAngle, maxAngle float64) Polygon {
	p := make(Polygon, 0, CircleResolution)
	step := (maxAngle - minAngle) / CircleResolution
	for i := 0; i < CircleResolution; i++ {
		t := minAngle + step*float64(i)
		sin, cos := math.Sincos(t)
		d := 1 + sin*sin
		p = append(p, vector.New(r*cos/d, r*sin*cos/d))
	}
	return p
}

// Triangle returns an isosceles triangle with base a and height a.
func Triangle(a float64) Polygon {
	return Polygon{
		vector.New(0, 0),
		vector.New(a, 0),
		vector.New(a/2, a),
	}
}

// Oval approximates an ellipse with semi-axes a and b.
func Oval(a, b float64) Polygon {
	p := make(Polygon, 0, CircleResolution)
	for i := 0; i < CircleResolution; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / CircleResolution)
		p = append(p, vector.New(a*cos, b*sin))
	}
	return p
}
