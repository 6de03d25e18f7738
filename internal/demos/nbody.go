package demos

import (
	"math"
	"math/rand/v2"

	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
)

const (
	nBodies    = 50
	nbodyG     = 20
	minRadius  = 5
	maxRadius  = 25
	nbodyDense = 1
)

var nbodySize = vector.New(1000, 500)

// NBody scatters four-pointed stars at rest and lets them attract each other
// pairwise.
type NBody struct {
	rng *rand.Rand
	n   int
}

func (*NBody) Name() string { return "gravity" }

func (*NBody) Bounds() (vector.Vector, vector.Vector) { return vector.Zero, nbodySize }

func (d *NBody) Build(s *scene.Scene) error {
	n := d.n
	if n == 0 {
		n = nBodies
	}
	stars := make([]*body.Body, 0, n)
	for range n {
		r := minRadius + d.rng.Float64()*(maxRadius-minRadius)
		star := body.MustNew(polygon.Star(4, r), nbodyDense*math.Pi*r*r,
			body.Color{R: d.rng.Float64(), G: d.rng.Float64(), B: d.rng.Float64()},
			body.WithInfo(body.GravityWell{}))
		star.SetCentroid(vector.New(d.rng.Float64()*nbodySize.X, d.rng.Float64()*nbodySize.Y))
		s.AddBody(star)
		stars = append(stars, star)
	}
	for i, a := range stars {
		for _, b := range stars[i+1:] {
			s.CreateNewtonianGravity(nbodyG, a, b)
		}
	}
	return nil
}

func (*NBody) Update(*scene.Scene, float64) error { return nil }

func (*NBody) Control(*scene.Scene, Control) error { return nil }
