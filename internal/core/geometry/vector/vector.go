package vector

import "math"

// Epsilon is the absolute tolerance used by Equal.
const Epsilon = 1e-4

// Vector is an immutable 2D value in world or body-local coordinates.
type Vector struct {
	X, Y float64
}

// Zero is the origin.
var Zero = Vector{}

func New(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector) Negate() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z-component of the 3D cross product.
func (v Vector) Cross(o Vector) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Orthogonal returns v rotated by +90 degrees.
func (v Vector) Orthogonal() Vector {
	return Vector{X: -v.Y, Y: v.X}
}

// Rotate rotates v counter-clockwise by angle radians about pivot.
func (v Vector) Rotate(angle float64, pivot Vector) Vector {
	d := v.Sub(pivot)
	sin, cos := math.Sincos(angle)
	return Vector{
		X: pivot.X + d.X*cos - d.Y*sin,
		Y: pivot.Y + d.X*sin + d.Y*cos,
	}
}

func (v Vector) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector) NormSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector in the direction of v.
// A zero-length input yields Zero; callers that need a direction must guard.
func (v Vector) Normalize() Vector {
	n := v.Norm()
	if n == 0 {
		return Zero
	}
	return Vector{X: v.X / n, Y: v.Y / n}
}

func (v Vector) Distance(o Vector) float64 {
	return v.Sub(o).Norm()
}

// Angle returns the absolute angle of v measured from the positive x axis.
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Equal reports whether v and o are within Epsilon of each other.
func (v Vector) Equal(o Vector) bool {
	return v.Distance(o) < Epsilon
}

// IsClose compares component-wise with a tolerance relative to the larger
// magnitude, falling back to Epsilon near zero.
func (v Vector) IsClose(o Vector, rel float64) bool {
	return isClose(v.X, o.X, rel) && isClose(v.Y, o.Y, rel)
}

func isClose(a, b, rel float64) bool {
	diff := math.Abs(a - b)
	if diff < Epsilon {
		return true
	}
	return diff <= rel*math.Max(math.Abs(a), math.Abs(b))
}
