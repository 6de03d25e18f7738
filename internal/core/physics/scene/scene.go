package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/forces"
)

// Scene owns a set of bodies and the force bundles acting on them, and
// advances them in fixed steps. A Scene is not safe for concurrent use.
type Scene struct {
	name     string
	bodies   []*body.Body
	bundles  []*Bundle
	contacts *contactMap
	session  Session

	bus    bus.EventBus
	logger log.Log

	nextBundle uint64
	ticks      uint64
	elapsed    float64
	pair       [2]*body.Body
}

type Option func(*Scene)

// WithBus publishes scene events to b.
func WithBus(b bus.EventBus) Option {
	return func(s *Scene) { s.bus = b }
}

func WithLogger(l log.Log) Option {
	return func(s *Scene) { s.logger = l }
}

func WithName(name string) Option {
	return func(s *Scene) { s.name = name }
}

func New(opts ...Option) *Scene {
	s := &Scene{name: "scene"}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Provide()
	}
	s.logger = s.logger.With(log.String("scene", s.name))
	s.contacts = newContactMap(s.contactBegin)
	return s
}

func (s *Scene) Name() string { return s.name }

// Bus is the bus events are published to, or nil.
func (s *Scene) Bus() bus.EventBus { return s.bus }

// Session returns the mutable game session.
func (s *Scene) Session() *Session { return &s.session }

func (s *Scene) TickCount() uint64 { return s.ticks }

// Elapsed is the simulated time in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// AddBody adds b and every part anchored to it. Parts must not be added
// separately.
func (s *Scene) AddBody(b *body.Body) {
	b.Walk(func(part *body.Body) {
		s.bodies = append(s.bodies, part)
	})
}

func (s *Scene) Len() int { return len(s.bodies) }

// Body returns the i-th body. It panics if i is out of range.
func (s *Scene) Body(i int) *body.Body { return s.bodies[i] }

func (s *Scene) Bodies() []*body.Body {
	out := make([]*body.Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *Scene) BodyByID(id uuid.UUID) (*body.Body, error) {
	for _, b := range s.bodies {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBodyNotFound, id)
}

// Bundles returns the live bundles.
func (s *Scene) Bundles() []*Bundle {
	out := make([]*Bundle, len(s.bundles))
	copy(out, s.bundles)
	return out
}

// AddBundle registers creator against bodies. Unary creators need at least
// one body, pairwise creators at least two.
func (s *Scene) AddBundle(creator forces.Creator, bodies ...*body.Body) (*Bundle, error) {
	arity := creator.Arity()
	if arity != forces.Unary && arity != forces.Pairwise {
		return nil, fmt.Errorf("%w: %s has arity %d", ErrBundleArity, creator.Name(), arity)
	}
	if len(bodies) < int(arity) {
		return nil, fmt.Errorf("%w: %s needs %d bodies, got %d", ErrBundleArity, creator.Name(), arity, len(bodies))
	}
	for _, b := range bodies {
		if b == nil {
			return nil, fmt.Errorf("%w: nil body in %s bundle", ErrBodyNotFound, creator.Name())
		}
	}

	s.nextBundle++
	bn := &Bundle{
		id:      s.nextBundle,
		creator: creator,
		bodies:  append([]*body.Body(nil), bodies...),
	}
	bn.contacts = &contactView{m: s.contacts, bundle: bn.id}
	s.bundles = append(s.bundles, bn)
	return bn, nil
}

func (s *Scene) mustAdd(creator forces.Creator, bodies ...*body.Body) *Bundle {
	bn, err := s.AddBundle(creator, bodies...)
	if err != nil {
		panic(err)
	}
	return bn
}

func (s *Scene) CreateNewtonianGravity(g float64, a, b *body.Body) *Bundle {
	return s.mustAdd(forces.Gravity{G: g, MinDistance: forces.DefaultMinDistance}, a, b)
}

func (s *Scene) CreateSpring(k float64, a, b *body.Body) *Bundle {
	return s.mustAdd(forces.Spring{K: k}, a, b)
}

func (s *Scene) CreateDrag(gamma float64, b *body.Body) *Bundle {
	return s.mustAdd(forces.Drag{Gamma: gamma}, b)
}

// CreateCollision calls handler once each time a and b start touching.
func (s *Scene) CreateCollision(handler forces.Handler, a, b *body.Body) *Bundle {
	return s.mustAdd(&forces.Collision{Handler: handler}, a, b)
}

func (s *Scene) CreatePhysicsCollision(restitution float64, a, b *body.Body) *Bundle {
	return s.CreateCollision(forces.NewPhysicsHandler(restitution), a, b)
}

func (s *Scene) CreateDestructiveCollision(a, b *body.Body) *Bundle {
	return s.CreateCollision(forces.DestroyBoth, a, b)
}

// Tick advances the scene by dt seconds: every live bundle runs, removed
// bodies and their bundles are swept, the remaining bodies integrate and stale
// contact state is dropped. Anchored parts only have their accumulators cleared.
func (s *Scene) Tick(dt float64) {
	s.ticks++
	s.contacts.tick = s.ticks

	for _, bn := range s.bundles {
		if bn.dead || bn.touchesRemoved() {
			continue
		}
		s.apply(bn)
	}

	s.sweep()

	for _, b := range s.bodies {
		b.Tick(dt)
	}

	s.contacts.prune()
	s.elapsed += dt
}

// Step runs substeps ticks of dt/substeps each.
func (s *Scene) Step(dt float64, substeps int) {
	if substeps < 1 {
		substeps = 1
	}
	h := dt / float64(substeps)
	for range substeps {
		s.Tick(h)
	}
}

// Reset removes every body and bundle. The session is kept.
func (s *Scene) Reset() {
	for _, b := range s.bodies {
		b.Remove()
	}
	s.sweep()
	s.contacts.reset()
	s.ticks = 0
	s.elapsed = 0
}

func (s *Scene) apply(bn *Bundle) {
	c, group := bn.creator, bn.bodies
	switch c.Arity() {
	case forces.Unary:
		for j, b := range group {
			if b.IsRemoved() {
				continue
			}
			c.Apply(bn.contacts, group[j:j+1])
		}
	case forces.Pairwise:
		n := len(group)
		for j := range bn.pairs() {
			a, b := group[j], group[(j+1)%n]
			if a.IsRemoved() || b.IsRemoved() {
				continue
			}
			if j+1 < n {
				c.Apply(bn.contacts, group[j:j+2])
				continue
			}
			s.pair = [2]*body.Body{a, b}
			c.Apply(bn.contacts, s.pair[:])
			s.pair = [2]*body.Body{}
		}
	}
}

func (s *Scene) sweep() {
	removed := 0
	for _, b := range s.bodies {
		if b.IsRemoved() {
			removed++
		}
	}
	if removed == 0 {
		return
	}

	kept := s.bundles[:0]
	for _, bn := range s.bundles {
		if !bn.touchesRemoved() {
			kept = append(kept, bn)
			continue
		}
		s.teardown(bn)
	}
	clear(s.bundles[len(kept):])
	s.bundles = kept

	alive := s.bodies[:0]
	for _, b := range s.bodies {
		if !b.IsRemoved() {
			alive = append(alive, b)
			continue
		}
		s.drop(b)
	}
	clear(s.bodies[len(alive):])
	s.bodies = alive
}

func (s *Scene) teardown(bn *Bundle) {
	bn.dead = true
	s.contacts.forget(bn.id)
	if r, ok := bn.creator.(forces.Releaser); ok {
		r.Release()
	}
	s.logger.Debug("bundle removed",
		log.String("creator", bn.creator.Name()),
		log.Int("bodies", len(bn.bodies)),
		log.Uint64("tick", s.ticks),
	)
	s.publish(EventBundleRemoved, BundleEvent{Creator: bn.creator.Name(), Bodies: len(bn.bodies), Tick: s.ticks})
}

func (s *Scene) drop(b *body.Body) {
	if td, ok := b.Info().(body.Teardown); ok {
		td.Teardown()
	}
	s.logger.Debug("body removed",
		log.Stringer("kind", body.KindOf(b)),
		log.String("id", b.ID().String()),
		log.Vec("at", b.Centroid()),
	)
	s.publish(EventBodyRemoved, BodyEvent{Body: b, Tick: s.ticks})
}

func (s *Scene) contactBegin(a, b *body.Body, res collision.Result) {
	s.publish(EventContactBegin, ContactEvent{A: a, B: b, Result: res, Tick: s.ticks})
}

func (s *Scene) publish(eventType string, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(bus.NewEvent(eventType, s.name, data)); err != nil {
		s.logger.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
