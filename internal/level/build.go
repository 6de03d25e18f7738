package level

import (
	"fmt"
	"math"

	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/forces"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
)

const (
	BallRadius = 10
	BallMass   = 10
	HoleRadius = 30
	PowerSize  = 50
	// FrameThickness is the width of the grass walls around the bounds.
	FrameThickness = 1000
	// DefaultGravity is the downward acceleration applied to the ball.
	DefaultGravity = 3500
)

// Course is a level built into a scene.
type Course struct {
	Level *Level
	Ball  *body.Body
	Hole  *body.Body
	Start vector.Vector
}

type Option func(*builder)

// WithGravity sets the downward acceleration of the ball. Zero disables it.
func WithGravity(g float64) Option {
	return func(b *builder) { b.gravity = g }
}

type builder struct {
	s       *scene.Scene
	ball    *body.Body
	gravity float64
}

// Build adds lvl to s. The ball is always the first body added, so it is
// body 0 of an empty scene.
func Build(s *scene.Scene, lvl *Level, opts ...Option) (*Course, error) {
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	b := &builder{s: s, gravity: DefaultGravity}
	for _, opt := range opts {
		opt(b)
	}

	course := &Course{Level: lvl}
	for _, o := range lvl.Objects {
		if o.Type == TypeBall {
			course.Start = o.Pos()
		}
	}
	b.ball = body.MustNew(polygon.Circle(BallRadius), BallMass, body.White, body.WithInfo(body.Ball{}))
	b.ball.SetCentroid(course.Start)
	s.AddBody(b.ball)
	course.Ball = b.ball

	for _, o := range lvl.Background {
		if err := b.background(o); err != nil {
			return nil, err
		}
	}
	if err := b.frame(lvl.Bounds); err != nil {
		return nil, err
	}
	for i, o := range lvl.Objects {
		hole, err := b.object(o)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, o.Type, err)
		}
		if hole != nil {
			course.Hole = hole
		}
	}

	if b.gravity != 0 {
		g := vector.New(0, -b.gravity)
		_, err := s.AddBundle(forces.Func{
			Label: "uniform_gravity",
			Fn: func(_ forces.Contacts, group []*body.Body) {
				group[0].AddForce(g.Scale(group[0].Mass()))
			},
		}, b.ball)
		if err != nil {
			return nil, err
		}
	}
	return course, nil
}

func (b *builder) background(o Object) error {
	color := map[ObjectType]body.Color{
		TypeSky:      SkyColor,
		TypeMountain: MountainColor,
		TypeSnow:     SnowColor,
	}[o.Type]
	bg, err := body.New(toPolygon(o.Shape), math.Inf(1), color, body.WithInfo(body.Background{}))
	if err != nil {
		return err
	}
	b.s.AddBody(bg)
	return nil
}

// frame walls the bounds in with grass on all four sides.
func (b *builder) frame(bounds Bounds) error {
	w, h, t := bounds.Width, bounds.Height, float64(FrameThickness)
	walls := []struct {
		size, at vector.Vector
	}{
		{vector.New(t, h+2*t), vector.New(-t/2, h/2)},
		{vector.New(t, h+2*t), vector.New(w+t/2, h/2)},
		{vector.New(w+2*t, t), vector.New(w/2, h+t/2)},
		{vector.New(w+2*t, t), vector.New(w/2, -t/2)},
	}
	for _, wall := range walls {
		shape := polygon.Rectangle(wall.size.X, wall.size.Y)
		shape.Translate(wall.at)
		if _, err := b.terrain(shape, GrassColor, body.Grass{}, grass()); err != nil {
			return err
		}
	}
	return nil
}

// object builds one level object. It returns the hole body for HOLE.
func (b *builder) object(o Object) (*body.Body, error) {
	switch o.Type {
	case TypeBall:
		return nil, nil
	case TypeHole:
		return b.hole(o.Pos())
	case TypeGrass:
		_, err := b.terrain(toPolygon(o.Shape), GrassColor, body.Grass{}, grass())
		return nil, err
	case TypeCircleGrass:
		shape := polygon.Circle(o.Radius)
		shape.Translate(o.Pos())
		_, err := b.terrain(shape, GrassColor, body.Grass{}, grass())
		return nil, err
	case TypeWater:
		_, err := b.terrain(toPolygon(o.Shape), WaterColor, body.Water{}, finish(b.s.Session(), scene.StateLost))
		return nil, err
	case TypeSand:
		_, err := b.terrain(toPolygon(o.Shape), SandColor, body.Sand{}, sand())
		return nil, err
	case TypePower:
		shape := polygon.Star(5, PowerSize)
		shape.Translate(o.Pos())
		_, err := b.terrain(shape, body.Pastel(), body.Boost{Factor: BoostFactor}, boost())
		return nil, err
	case TypeTeleport:
		return nil, b.portal(o)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownObject, o.Type)
	}
}

// terrain adds an immovable body and a collision bundle pairing it with the
// ball.
func (b *builder) terrain(shape polygon.Polygon, color body.Color, info body.Info, c forces.Creator) (*body.Body, error) {
	t, err := body.New(shape, math.Inf(1), color, body.WithInfo(info))
	if err != nil {
		return nil, err
	}
	b.s.AddBody(t)
	if _, err := b.s.AddBundle(c, b.ball, t); err != nil {
		return nil, err
	}
	return t, nil
}

// hole adds the cup with a flag pole and a pennant anchored to it.
func (b *builder) hole(at vector.Vector) (*body.Body, error) {
	const r = HoleRadius
	cup := body.MustNew(polygon.Circle(r), math.Inf(1), body.Gray, body.WithInfo(body.Hole{}))

	pole := body.MustNew(polygon.Rectangle(r/5, 3*r), 0, body.Black)
	pole.SetCentroid(vector.New(0, r))
	flag := body.MustNew(polygon.RegularPolygon(3, r), 0, body.Red)
	flag.SetRotation(math.Pi / 6)
	flag.SetCentroid(vector.New(0.6*r, 3.2*r))
	if err := cup.AddAnchor(pole); err != nil {
		return nil, err
	}
	if err := cup.AddAnchor(flag); err != nil {
		return nil, err
	}
	cup.Translate(at)

	b.s.AddBody(cup)
	if _, err := b.s.AddBundle(finish(b.s.Session(), scene.StateWon), b.ball, cup); err != nil {
		return nil, err
	}
	return cup, nil
}

func (b *builder) portal(o Object) error {
	exit, err := body.New(toPolygon(o.Out), math.Inf(1), PortalOut, body.WithInfo(&body.Portal{}))
	if err != nil {
		return err
	}
	b.s.AddBody(exit)
	_, err = b.terrain(toPolygon(o.Shape), PortalIn, &body.Portal{Exit: exit, Direction: o.Direction.Vector()}, teleport())
	return err
}
