package body

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
)

// Body is a rigid polygon with mass, velocity and accumulated force and impulse.
//
// The shape is kept in body-local coordinates (centroid at the origin,
// orientation zero) and placed in the world by the centroid and orientation.
// World vertices are rebuilt lazily after the transform changes.
//
// A mass of zero marks decoration that is never integrated on its own;
// math.Inf(1) marks an immovable body. A Body is not safe for concurrent use.
type Body struct {
	id    uuid.UUID
	local polygon.Polygon
	world polygon.Polygon
	stale bool

	mass        float64
	color       Color
	centroid    vector.Vector
	velocity    vector.Vector
	orientation float64
	radius      float64

	force   vector.Vector
	impulse vector.Vector

	info    Info
	removed bool

	parent *Body
	parts  []*Body
}

// Option configures a Body at construction time.
type Option func(*Body)

func WithInfo(info Info) Option {
	return func(b *Body) { b.info = info }
}

func WithVelocity(v vector.Vector) Option {
	return func(b *Body) { b.velocity = v }
}

func WithRotation(angle float64) Option {
	return func(b *Body) { b.orientation = angle }
}

// New creates a body from a world-space shape. The shape is copied; the body's
// centroid is the shape's geometric centroid.
func New(shape polygon.Polygon, mass float64, color Color, opts ...Option) (*Body, error) {
	if math.IsNaN(mass) || mass < 0 {
		return nil, fmt.Errorf("%w: mass %v", ErrInvalidBody, mass)
	}
	centroid, err := shape.Centroid()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDegenerateGeometry, err)
	}

	local := shape.Clone()
	local.Translate(centroid.Negate())

	b := &Body{
		id:       uuid.New(),
		local:    local,
		mass:     mass,
		color:    color,
		centroid: centroid,
		radius:   local.BoundingRadius(vector.Zero),
		stale:    true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// MustNew is like New but panics on invalid arguments.
func MustNew(shape polygon.Polygon, mass float64, color Color, opts ...Option) *Body {
	b, err := New(shape, mass, color, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Body) ID() uuid.UUID { return b.id }

func (b *Body) Mass() float64 { return b.mass }

func (b *Body) Color() Color { return b.color }

func (b *Body) SetColor(c Color) { b.color = c }

func (b *Body) Info() Info { return b.info }

func (b *Body) SetInfo(info Info) { b.info = info }

func (b *Body) Centroid() vector.Vector { return b.centroid }

func (b *Body) Velocity() vector.Vector { return b.velocity }

func (b *Body) SetVelocity(v vector.Vector) { b.velocity = v }

func (b *Body) Rotation() float64 { return b.orientation }

func (b *Body) Force() vector.Vector { return b.force }

func (b *Body) Impulse() vector.Vector { return b.impulse }

// BoundingRadius is the largest distance from the centroid to a vertex.
func (b *Body) BoundingRadius() float64 { return b.radius }

// IsImmovable reports whether the body has infinite mass.
func (b *Body) IsImmovable() bool { return math.IsInf(b.mass, 1) }

// Shape returns a copy of the world-space polygon.
func (b *Body) Shape() polygon.Polygon {
	return b.worldShape().Clone()
}

// worldShape returns the cached world polygon; callers must not mutate it.
func (b *Body) worldShape() polygon.Polygon {
	if b.stale {
		if b.world == nil {
			b.world = make(polygon.Polygon, len(b.local))
		}
		sin, cos := math.Sincos(b.orientation)
		for i, v := range b.local {
			b.world[i] = vector.New(
				b.centroid.X+v.X*cos-v.Y*sin,
				b.centroid.Y+v.X*sin+v.Y*cos,
			)
		}
		b.stale = false
	}
	return b.world
}

// Vertices exposes the cached world polygon without copying. The slice is
// only valid until the body next moves and must be treated as read-only.
func (b *Body) Vertices() polygon.Polygon {
	return b.worldShape()
}

// Translate moves the body and all of its parts by v.
func (b *Body) Translate(v vector.Vector) {
	b.centroid = b.centroid.Add(v)
	b.stale = true
	for _, p := range b.parts {
		p.Translate(v)
	}
}

// SetCentroid moves the body so its centroid is x.
func (b *Body) SetCentroid(x vector.Vector) {
	b.Translate(x.Sub(b.centroid))
}

// SetRotation sets the absolute orientation. Parts are carried around the
// body's centroid.
func (b *Body) SetRotation(angle float64) {
	delta := angle - b.orientation
	b.orientation = angle
	b.stale = true
	for _, p := range b.parts {
		p.rotateAbout(delta, b.centroid)
	}
}

func (b *Body) rotateAbout(delta float64, pivot vector.Vector) {
	b.centroid = b.centroid.Rotate(delta, pivot)
	b.orientation += delta
	b.stale = true
	for _, p := range b.parts {
		p.rotateAbout(delta, pivot)
	}
}

func (b *Body) AddForce(f vector.Vector) {
	b.force = b.force.Add(f)
}

func (b *Body) AddImpulse(j vector.Vector) {
	b.impulse = b.impulse.Add(j)
}

// Tick integrates the accumulated force and impulse over dt, averaging the old
// and new velocity for the displacement, then clears the accumulators.
// Bodies with zero mass, and anchored parts, only move when their owner does.
func (b *Body) Tick(dt float64) {
	defer b.clearAccumulators()
	switch {
	case b.mass == 0 || b.parent != nil:
		return
	case b.IsImmovable():
		// Forces on a wall may be infinite themselves; only explicit velocity moves it.
		if !b.velocity.IsZero() {
			b.Translate(b.velocity.Scale(dt))
		}
		return
	}

	inv := 1 / b.mass
	acceleration := b.force.Scale(inv)
	dv := b.impulse.Scale(inv)

	old := b.velocity
	b.velocity = old.Add(dv).Add(acceleration.Scale(dt))
	avg := old.Add(b.velocity).Scale(0.5)

	b.Translate(avg.Scale(dt))
}

func (b *Body) clearAccumulators() {
	b.force = vector.Zero
	b.impulse = vector.Zero
}

// Remove flags the body, and every part it owns, for removal at the next sweep.
func (b *Body) Remove() {
	b.removed = true
	for _, p := range b.parts {
		p.Remove()
	}
}

func (b *Body) IsRemoved() bool { return b.removed }

// AddAnchor makes part a rigidly attached child of b.
func (b *Body) AddAnchor(part *Body) error {
	if part.parent != nil {
		return fmt.Errorf("%w: %s", ErrAnchorOwned, part.id)
	}
	for a := b; a != nil; a = a.parent {
		if a == part {
			return fmt.Errorf("%w: %s", ErrAnchorCycle, part.id)
		}
	}
	part.parent = b
	b.parts = append(b.parts, part)
	return nil
}

// Parts returns the bodies directly anchored to b.
func (b *Body) Parts() []*Body {
	out := make([]*Body, len(b.parts))
	copy(out, b.parts)
	return out
}

// Parent returns the owner of an anchored body, or nil for a root.
func (b *Body) Parent() *Body { return b.parent }

// Walk visits b and then every descendant part depth-first.
func (b *Body) Walk(fn func(*Body)) {
	fn(b)
	for _, p := range b.parts {
		p.Walk(fn)
	}
}

// KineticEnergy is ½mv²; infinite and zero masses report zero.
func (b *Body) KineticEnergy() float64 {
	if b.mass == 0 || b.IsImmovable() {
		return 0
	}
	return 0.5 * b.mass * b.velocity.NormSquared()
}

// Momentum is m·v; infinite and zero masses report zero.
func (b *Body) Momentum() vector.Vector {
	if b.mass == 0 || b.IsImmovable() {
		return vector.Zero
	}
	return b.velocity.Scale(b.mass)
}

func (b *Body) String() string {
	return fmt.Sprintf("body(%s %s m=%g c=(%.3f,%.3f))", KindOf(b), b.id.String()[:8], b.mass, b.centroid.X, b.centroid.Y)
}
