package forces

import (
	"github.com/zeusync/physics2d/internal/core/physics/body"
)

// Arity is the number of bodies a creator acts on per invocation.
type Arity int

const (
	Unary    Arity = 1
	Pairwise Arity = 2
)

// DefaultMinDistance is the distance below which Newtonian gravity is
// suppressed.
const DefaultMinDistance = 5

// Creator applies forces or impulses to a group of Arity bodies. It is run
// once per tick for every group in the bundle it is registered with.
//
// The set of creators is closed: Gravity, Spring, Drag, Collision and Func.
type Creator interface {
	Name() string
	Arity() Arity
	Apply(c Contacts, group []*body.Body)
	creator()
}

// Releaser is implemented by creators holding state to release when their
// bundle is torn down.
type Releaser interface {
	Release()
}

// Gravity is Newtonian attraction between two bodies.
type Gravity struct {
	G           float64
	MinDistance float64
}

func (Gravity) Name() string { return "gravity" }

func (Gravity) Arity() Arity { return Pairwise }

func (g Gravity) Apply(_ Contacts, group []*body.Body) {
	a, b := group[0], group[1]
	d := b.Centroid().Sub(a.Centroid())
	dist := d.Norm()
	if dist <= g.MinDistance || dist == 0 {
		return
	}
	f := d.Scale(g.G * a.Mass() * b.Mass() / (dist * dist * dist))
	a.AddForce(f)
	b.AddForce(f.Negate())
}

// Spring is a zero rest length Hookean spring between two centroids.
type Spring struct {
	K float64
}

func (Spring) Name() string { return "spring" }

func (Spring) Arity() Arity { return Pairwise }

func (s Spring) Apply(_ Contacts, group []*body.Body) {
	a, b := group[0], group[1]
	f := b.Centroid().Sub(a.Centroid()).Scale(s.K)
	a.AddForce(f)
	b.AddForce(f.Negate())
}

// Drag is linear velocity damping.
type Drag struct {
	Gamma float64
}

func (Drag) Name() string { return "drag" }

func (Drag) Arity() Arity { return Unary }

func (d Drag) Apply(_ Contacts, group []*body.Body) {
	b := group[0]
	b.AddForce(b.Velocity().Scale(-d.Gamma))
}

// Func is an ad hoc creator.
type Func struct {
	Label string
	N     Arity
	Fn    func(c Contacts, group []*body.Body)
	// OnRelease, when set, runs once when the bundle is torn down.
	OnRelease func()
}

func (f Func) Name() string {
	if f.Label == "" {
		return "func"
	}
	return f.Label
}

func (f Func) Arity() Arity {
	if f.N == 0 {
		return Unary
	}
	return f.N
}

func (f Func) Apply(c Contacts, group []*body.Body) {
	if f.Fn != nil {
		f.Fn(c, group)
	}
}

func (f Func) Release() {
	if f.OnRelease != nil {
		f.OnRelease()
	}
}

func (Gravity) creator()   {}
func (Spring) creator()    {}
func (Drag) creator()      {}
func (Func) creator()      {}
func (*Collision) creator() {}
