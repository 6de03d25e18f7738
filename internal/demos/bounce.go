package demos

import (
	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
)

const (
	bounceSpin   = 2.5
	bounceRadius = 50
)

var bounceSize = vector.New(1000, 500)

// Bounce is a spinning star ricocheting elastically inside four walls.
type Bounce struct {
	star *body.Body
}

func (*Bounce) Name() string { return "bounce" }

func (*Bounce) Bounds() (vector.Vector, vector.Vector) { return vector.Zero, bounceSize }

func (d *Bounce) Build(s *scene.Scene) error {
	shape := polygon.Star(5, bounceRadius)
	shape.Translate(bounceSize.Scale(0.5))
	d.star = body.MustNew(shape, 1, body.RGB(117, 199, 234), body.WithVelocity(vector.New(400, 300)))
	s.AddBody(d.star)

	for _, w := range box(bounceSize, 100) {
		s.AddBody(w)
		s.CreatePhysicsCollision(1, d.star, w)
	}
	return nil
}

func (d *Bounce) Update(_ *scene.Scene, dt float64) error {
	d.star.SetRotation(d.star.Rotation() + bounceSpin*dt)
	return nil
}

func (*Bounce) Control(*scene.Scene, Control) error { return nil }
