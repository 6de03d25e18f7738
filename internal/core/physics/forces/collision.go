package forces

import (
	"math"

	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
)

// DefaultBias is added to the general-case impulse coefficient so that
// near-zero impulses still separate the bodies.
const DefaultBias = 0.01

// Contacts is the per-pair contact memory a scene provides to collision
// creators.
type Contacts interface {
	// Swap records whether a and b touch on this tick and returns whether
	// they touched on the previous one.
	Swap(a, b *body.Body, touching bool) bool
	// Begin is called on every handled rising edge.
	Begin(a, b *body.Body, res collision.Result)
}

// Trigger selects when a collision handler fires.
type Trigger uint8

const (
	// TriggerEnter fires once when a pair starts touching.
	TriggerEnter Trigger = iota
	// TriggerWhileTouching fires on every tick the pair overlaps.
	TriggerWhileTouching
)

// Handler reacts to a detected collision. res.Axis points from a towards b.
type Handler interface {
	Handle(a, b *body.Body, res collision.Result)
}

type HandlerFunc func(a, b *body.Body, res collision.Result)

func (f HandlerFunc) Handle(a, b *body.Body, res collision.Result) { f(a, b, res) }

// Collision detects contact between two bodies and dispatches to Handler.
type Collision struct {
	Handler Handler
	Trigger Trigger
	// OnContact runs on every overlapping tick, before Handler.
	OnContact func(a, b *body.Body, res collision.Result)
}

func (*Collision) Name() string { return "collision" }

func (*Collision) Arity() Arity { return Pairwise }

func (c *Collision) Apply(contacts Contacts, group []*body.Body) {
	a, b := group[0], group[1]
	res := collision.Check(a, b)
	was := contacts.Swap(a, b, res.Collided)
	if !res.Collided {
		return
	}

	if c.OnContact != nil {
		c.OnContact(a, b, res)
	}
	if was && c.Trigger == TriggerEnter {
		return
	}
	if !was {
		contacts.Begin(a, b, res)
	}
	if c.Handler != nil {
		c.Handler.Handle(a, b, res)
	}
}

// Release forwards to the handler when it holds resources.
func (c *Collision) Release() {
	if r, ok := c.Handler.(Releaser); ok {
		r.Release()
	}
}

// PhysicsHandler resolves a collision with a normal impulse.
type PhysicsHandler struct {
	// Restitution is in [0, 1]: 1 is perfectly elastic, 0 perfectly inelastic.
	Restitution float64
	Bias        float64
}

// NewPhysicsHandler returns a resolver with the default bias.
func NewPhysicsHandler(restitution float64) PhysicsHandler {
	return PhysicsHandler{Restitution: restitution, Bias: DefaultBias}
}

func (h PhysicsHandler) Handle(a, b *body.Body, res collision.Result) {
	axis := res.Axis
	u1 := axis.Dot(a.Velocity())
	u2 := axis.Dot(b.Velocity())
	m1, m2 := a.Mass(), b.Mass()
	k := (1 + h.Restitution) * (u2 - u1)

	infA, infB := math.IsInf(m1, 1), math.IsInf(m2, 1)
	switch {
	case infA && infB:
	case infA:
		b.AddImpulse(axis.Scale(-m2 * k))
	case infB:
		a.AddImpulse(axis.Scale(m1 * k))
	case m1+m2 == 0:
	default:
		j := m1*m2/(m1+m2)*k + h.Bias
		a.AddImpulse(axis.Scale(j))
		b.AddImpulse(axis.Scale(-j))
	}
}

// DestroyBoth removes both bodies.
var DestroyBoth = HandlerFunc(func(a, b *body.Body, _ collision.Result) {
	a.Remove()
	b.Remove()
})
