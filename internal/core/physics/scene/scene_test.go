package scene

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/forces"
)

func newScene(opts ...Option) *Scene {
	return New(append([]Option{WithLogger(log.Nop())}, opts...)...)
}

func disc(s *Scene, at vector.Vector, mass float64) *body.Body {
	b := body.MustNew(polygon.Circle(1), mass, body.White)
	b.SetCentroid(at)
	s.AddBody(b)
	return b
}

type recorder struct {
	events map[string][]bus.Event
}

func record(t *testing.T, b bus.EventBus, types ...string) *recorder {
	t.Helper()
	r := &recorder{events: map[string][]bus.Event{}}
	for _, typ := range types {
		_, err := b.Subscribe(typ, func(e bus.Event) error {
			r.events[e.Type()] = append(r.events[e.Type()], e)
			return nil
		})
		require.NoError(t, err)
	}
	return r
}

func TestSpringTracksCosine(t *testing.T) {
	if testing.Short() {
		t.Skip("long integration")
	}
	const (
		dt    = 1e-6
		steps = 1_000_000
	)
	for _, tc := range []struct{ m, k, a float64 }{
		{m: 5, k: 2, a: 3},
		{m: 15, k: 1, a: 10},
	} {
		s := newScene()
		anchor := disc(s, vector.Zero, math.Inf(1))
		mass := disc(s, vector.New(tc.a, 0), tc.m)
		s.CreateSpring(tc.k, mass, anchor)

		omega := math.Sqrt(tc.k / tc.m)
		for i := 1; i <= steps; i++ {
			s.Tick(dt)
			if i%1000 == 0 {
				want := tc.a * math.Cos(omega*float64(i)*dt)
				require.InDelta(t, want, mass.Centroid().X, 1e-6, "m=%v k=%v step %d", tc.m, tc.k, i)
				require.InDelta(t, 0, mass.Centroid().Y, 1e-9)
			}
		}
		assert.True(t, anchor.Centroid().Equal(vector.Zero))
	}
}

func TestDragEnergyNeverIncreases(t *testing.T) {
	steps := 1_000_000
	if testing.Short() {
		steps = 10_000
	}
	for _, tc := range []struct{ m, gamma float64 }{
		{m: 2, gamma: 0.7},
		{m: 0.5, gamma: 3},
	} {
		s := newScene()
		b := disc(s, vector.Zero, tc.m)
		b.SetVelocity(vector.New(3, 4))
		s.CreateDrag(tc.gamma, b)

		prev := b.KineticEnergy()
		for i := 0; i < steps; i++ {
			s.Tick(1e-6)
			ke := b.KineticEnergy()
			require.LessOrEqual(t, ke, prev, "step %d", i)
			prev = ke
		}
		assert.Less(t, prev, 0.5*tc.m*25)
	}
}

func TestGravityConservesEnergy(t *testing.T) {
	if testing.Short() {
		t.Skip("long integration")
	}
	const (
		g  = 1.0
		m  = 2e5
		dt = 1e-6
	)
	s := newScene()
	a := disc(s, vector.Zero, m)
	b := disc(s, vector.New(100, 0), m)
	s.CreateNewtonianGravity(g, a, b)

	energy := func() float64 {
		r := a.Centroid().Distance(b.Centroid())
		return -g*m*m/r + a.KineticEnergy() + b.KineticEnergy()
	}
	initial := energy()
	prevDist := a.Centroid().Distance(b.Centroid())

	for i := 0; i < 1_000_000; i++ {
		s.Tick(dt)
		d := a.Centroid().Distance(b.Centroid())
		require.Less(t, d, prevDist, "step %d", i)
		prevDist = d
		if i%1000 == 0 {
			require.InEpsilon(t, initial, energy(), 1e-4, "step %d", i)
		}
	}
	assert.Less(t, prevDist, 90.0)
	assert.InEpsilon(t, initial, energy(), 1e-4)
}

func TestCollisionFiresOncePerContact(t *testing.T) {
	events := bus.New()
	s := newScene(WithBus(events))
	rec := record(t, events, EventContactBegin)

	floor := body.MustNew(polygon.Rectangle(100, 2), math.Inf(1), body.Gray)
	s.AddBody(floor)
	ball := disc(s, vector.New(0, 1.5), 1)

	var fired int
	s.CreateCollision(forces.HandlerFunc(func(a, b *body.Body, res collision.Result) {
		fired++
		assert.Same(t, floor, a)
		assert.Same(t, ball, b)
		assert.InDelta(t, 1, res.Axis.Y, 1e-9)
	}), floor, ball)

	for range 100 {
		s.Tick(0.01)
	}
	assert.Equal(t, 1, fired)

	ball.SetCentroid(vector.New(0, 10))
	s.Tick(0.01)
	ball.SetCentroid(vector.New(0, 1.5))
	s.Tick(0.01)
	s.Tick(0.01)
	assert.Equal(t, 2, fired)

	require.Len(t, rec.events[EventContactBegin], 2)
	ev := rec.events[EventContactBegin][1].Data().(ContactEvent)
	assert.Same(t, ball, ev.B)
	assert.Equal(t, s.Name(), rec.events[EventContactBegin][1].Source())
}

func TestBallBouncesOffWall(t *testing.T) {
	s := newScene()
	wall := body.MustNew(polygon.Rectangle(2, 100), math.Inf(1), body.Gray)
	s.AddBody(wall)
	ball := disc(s, vector.New(3, 0), 1)
	ball.SetVelocity(vector.New(-10, 2))
	s.CreatePhysicsCollision(1, wall, ball)

	for range 30 {
		s.Tick(0.01)
	}
	assert.InDelta(t, 10, ball.Velocity().X, 1e-9)
	assert.InDelta(t, 2, ball.Velocity().Y, 1e-9)
	assert.Equal(t, vector.Zero, wall.Velocity())
	assert.True(t, wall.Centroid().Equal(vector.Zero))
}

func TestPairingWrapsAroundRing(t *testing.T) {
	s := newScene()
	a := disc(s, vector.Zero, 1)
	b := disc(s, vector.New(10, 0), 1)
	c := disc(s, vector.New(0, 10), 1)

	var pairs [][2]*body.Body
	counter := forces.Func{N: forces.Pairwise, Fn: func(_ forces.Contacts, g []*body.Body) {
		pairs = append(pairs, [2]*body.Body{g[0], g[1]})
	}}

	_, err := s.AddBundle(counter, a, b)
	require.NoError(t, err)
	s.Tick(0)
	require.Len(t, pairs, 1)
	assert.Equal(t, [2]*body.Body{a, b}, pairs[0])

	s2 := newScene()
	for _, bd := range []*body.Body{a, b, c} {
		s2.AddBody(bd)
	}
	pairs = nil
	_, err = s2.AddBundle(counter, a, b, c)
	require.NoError(t, err)
	s2.Tick(0)
	assert.Equal(t, [][2]*body.Body{{a, b}, {b, c}, {c, a}}, pairs)
}

func TestTwoBodySpringAppliesOnce(t *testing.T) {
	s := newScene()
	a := disc(s, vector.Zero, 1)
	b := disc(s, vector.New(10, 0), 1)
	s.CreateSpring(1, a, b)

	s.Tick(0.1)
	assert.InDelta(t, 1, a.Velocity().X, 1e-12)
	assert.InDelta(t, -1, b.Velocity().X, 1e-12)
}

func TestSweepTearsDownBundles(t *testing.T) {
	events := bus.New()
	s := newScene(WithBus(events), WithName("sweep"))
	rec := record(t, events, EventBodyRemoved, EventBundleRemoved)

	exit := disc(s, vector.New(50, 50), 0)
	portal := &body.Portal{Exit: exit, Direction: vector.New(1, 0)}
	a := disc(s, vector.Zero, 1)
	a.SetInfo(portal)
	b := disc(s, vector.New(5, 0), 1)
	c := disc(s, vector.New(-5, 0), 1)

	var released int
	spring := s.CreateSpring(1, a, b)
	_, err := s.AddBundle(forces.Func{
		N:         forces.Pairwise,
		OnRelease: func() { released++ },
	}, a, c)
	require.NoError(t, err)
	drag := s.CreateDrag(1, c)

	a.Remove()
	s.Tick(0.01)

	assert.Equal(t, 3, s.Len())
	assert.False(t, spring.IsAlive())
	assert.True(t, drag.IsAlive())
	assert.Len(t, s.Bundles(), 1)
	assert.Equal(t, 1, released)
	assert.Nil(t, portal.Exit)
	assert.Equal(t, vector.Zero, b.Velocity(), "spring torn down before integration")

	require.Len(t, rec.events[EventBodyRemoved], 1)
	assert.Same(t, a, rec.events[EventBodyRemoved][0].Data().(BodyEvent).Body)
	assert.Len(t, rec.events[EventBundleRemoved], 2)
	assert.Equal(t, "sweep", rec.events[EventBundleRemoved][0].Source())

	_, err = s.BodyByID(a.ID())
	assert.ErrorIs(t, err, ErrBodyNotFound)
	got, err := s.BodyByID(b.ID())
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestRemovalSkipsLaterBundles(t *testing.T) {
	s := newScene()
	a := disc(s, vector.Zero, 1)
	b := disc(s, vector.New(1, 0), 1)

	s.CreateDestructiveCollision(a, b)
	var calls int
	_, err := s.AddBundle(forces.Func{N: forces.Pairwise, Fn: func(forces.Contacts, []*body.Body) {
		calls++
	}}, a, b)
	require.NoError(t, err)

	s.Tick(0.01)
	assert.Zero(t, calls)
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Bundles())
	assert.Zero(t, s.contacts.len())
}

func TestContactStateIsPruned(t *testing.T) {
	s := newScene()
	a := disc(s, vector.Zero, 1)
	b := disc(s, vector.New(1, 0), 1)
	s.CreateCollision(forces.HandlerFunc(func(*body.Body, *body.Body, collision.Result) {}), a, b)

	s.Tick(0)
	assert.Equal(t, 1, s.contacts.len())

	b.SetCentroid(vector.New(10, 0))
	s.Tick(0)
	assert.Zero(t, s.contacts.len())
	assert.Empty(t, s.contacts.touching)
}

func TestSeparateBundlesKeepSeparateContacts(t *testing.T) {
	s := newScene()
	a := disc(s, vector.Zero, 1)
	b := disc(s, vector.New(1, 0), 1)

	var first, second int
	s.CreateCollision(forces.HandlerFunc(func(*body.Body, *body.Body, collision.Result) { first++ }), a, b)
	s.CreateCollision(forces.HandlerFunc(func(*body.Body, *body.Body, collision.Result) { second++ }), b, a)

	s.Tick(0)
	s.Tick(0)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestAnchoredPartsMoveWithOwner(t *testing.T) {
	s := newScene()
	owner := body.MustNew(polygon.Circle(1), 1, body.White, body.WithVelocity(vector.New(1, 0)))
	part := body.MustNew(polygon.Rectangle(1, 1), 1, body.Red, body.WithVelocity(vector.New(0, 50)))
	part.SetCentroid(vector.New(0, 3))
	require.NoError(t, owner.AddAnchor(part))
	s.AddBody(owner)
	require.Equal(t, 2, s.Len())

	s.Tick(1)
	assert.True(t, part.Centroid().Equal(vector.New(1, 3)))

	owner.Remove()
	s.Tick(1)
	assert.Zero(t, s.Len())
}

func TestAnchoredPartAccumulatorsReset(t *testing.T) {
	s := newScene()
	owner := body.MustNew(polygon.Circle(1), 1, body.White)
	part := body.MustNew(polygon.Rectangle(1, 1), 1, body.Red)
	part.SetCentroid(vector.New(0, 3))
	require.NoError(t, owner.AddAnchor(part))
	s.AddBody(owner)

	part.AddForce(vector.New(5, 0))
	part.AddImpulse(vector.New(0, 2))
	s.Tick(0.1)

	assert.True(t, part.Force().IsZero())
	assert.True(t, part.Impulse().IsZero())
	assert.True(t, part.Centroid().Equal(vector.New(0, 3)))
}

func TestAddBundleValidates(t *testing.T) {
	s := newScene()
	a := disc(s, vector.Zero, 1)

	_, err := s.AddBundle(forces.Spring{K: 1}, a)
	assert.ErrorIs(t, err, ErrBundleArity)

	_, err = s.AddBundle(forces.Func{N: 3}, a, a, a)
	assert.ErrorIs(t, err, ErrBundleArity)

	_, err = s.AddBundle(forces.Drag{Gamma: 1}, nil)
	assert.ErrorIs(t, err, ErrBodyNotFound)

	assert.Panics(t, func() { s.Body(5) })
	_, err = s.BodyByID(uuid.New())
	assert.ErrorIs(t, err, ErrBodyNotFound)
}

func TestStepResetAndSession(t *testing.T) {
	s := newScene()
	b := disc(s, vector.Zero, 1)
	b.SetVelocity(vector.New(2, 0))
	s.CreateDrag(0, b)

	s.Step(1, 4)
	assert.Equal(t, uint64(4), s.TickCount())
	assert.InDelta(t, 1, s.Elapsed(), 1e-12)
	assert.True(t, b.Centroid().Equal(vector.New(2, 0)))

	s.Session().Score = 3
	assert.True(t, s.Session().Settle(StateWon))
	assert.False(t, s.Session().Settle(StateLost))

	s.Reset()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Bundles())
	assert.Zero(t, s.TickCount())
	assert.Equal(t, Session{Score: 3, State: StateWon}, *s.Session())
	assert.Equal(t, "won", s.Session().State.String())
}
