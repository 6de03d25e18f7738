package demos

import (
	"math"

	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
)

const (
	coils         = 40
	coilMass      = 1
	coilAmplitude = 100
	coilSpeed     = 10
	springK       = 25
	// maxGamma is the drag on the last coil; drag grows linearly from zero.
	maxGamma = 10.0
)

var dampingSize = vector.New(1000, 500)

// Damping is a row of masses on springs to fixed anchors, each with a
// stronger drag than the one before.
type Damping struct {
	coils []*body.Body
}

func (*Damping) Name() string { return "damping" }

func (*Damping) Bounds() (vector.Vector, vector.Vector) { return vector.Zero, dampingSize }

func (d *Damping) Build(s *scene.Scene) error {
	radius := dampingSize.X / (coils + 1) / 2
	rest := dampingSize.Y / 2
	d.coils = d.coils[:0]

	for i := range coils {
		phase := math.Cos(2 * math.Pi * float64(i) / coils)
		x := dampingSize.X / (coils - 1) * float64(i)

		coil := body.MustNew(polygon.Circle(radius), coilMass, body.Pastel(),
			body.WithVelocity(vector.New(0, -coilSpeed*phase)))
		coil.SetCentroid(vector.New(x, coilAmplitude*phase+rest))

		anchor := body.MustNew(polygon.Circle(radius/4), math.Inf(1), body.Gray)
		anchor.SetCentroid(vector.New(x, rest))

		s.AddBody(anchor)
		s.AddBody(coil)
		s.CreateSpring(springK, coil, anchor)
		s.CreateDrag(maxGamma/coils*float64(i), coil)
		d.coils = append(d.coils, coil)
	}
	return nil
}

func (*Damping) Update(*scene.Scene, float64) error { return nil }

func (*Damping) Control(*scene.Scene, Control) error { return nil }
