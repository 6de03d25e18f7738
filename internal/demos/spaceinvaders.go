package demos

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
)

const (
	invaderRows    = 3
	invaderCols    = 7
	invaderRadius  = 30.0
	invaderSpacing = 75.0
	invaderSpeed   = 60.0
	// invaderDrop is how far the formation steps down at each wall.
	invaderDrop  = 70.0
	invaderMass  = 10
	shipY        = 40.0
	shipSpeed    = 300.0
	bulletWidth  = 10
	bulletHeight = 20
	bulletSpeed  = 500.0
	// fireInterval is the time in seconds between two invader shots.
	fireInterval = 1.0
)

var invadersSize = vector.New(750, 1000)

// SpaceInvaders is an oval ship firing up at a formation of invaders that
// sweeps from wall to wall and steps down at each one. A random invader fires
// back once a second. A bullet and whatever it hits are both destroyed. The
// round restarts when the ship is lost or the formation is gone.
type SpaceInvaders struct {
	ship   *body.Body
	rng    *rand.Rand
	logger log.Log
	clock  float64
	rounds int
}

func (*SpaceInvaders) Name() string { return "spaceinvaders" }

func (*SpaceInvaders) Bounds() (vector.Vector, vector.Vector) { return vector.Zero, invadersSize }

func (d *SpaceInvaders) Build(s *scene.Scene) error {
	d.clock = 0
	d.ship = body.MustNew(polygon.Oval(invaderRadius, invaderRadius/2), invaderMass, body.Yellow,
		body.WithInfo(body.Paddle{}))
	d.ship.SetCentroid(vector.New(invadersSize.X/2, shipY))
	s.AddBody(d.ship)

	for i := range invaderRows {
		c := colorful.Hsv(300-60*float64(i), 0.7, 0.9)
		for j := range invaderCols {
			invader := body.MustNew(polygon.RegularPolygon(6, invaderRadius), invaderMass,
				body.Color{R: c.R, G: c.G, B: c.B},
				body.WithInfo(body.Invader{}), body.WithVelocity(vector.New(invaderSpeed, 0)))
			invader.SetCentroid(vector.New(40+invaderSpacing*float64(j), invadersSize.Y-40-70*float64(i)))
			s.AddBody(invader)
		}
	}
	return nil
}

func (d *SpaceInvaders) Update(s *scene.Scene, dt float64) error {
	invaders := invadersOf(s)
	if d.ship.IsRemoved() || len(invaders) == 0 || landed(invaders) {
		d.rounds++
		d.logger.Info("round over",
			log.Int("round", d.rounds),
			log.Int("invaders_left", len(invaders)),
			log.Bool("ship_lost", len(invaders) > 0),
		)
		s.Reset()
		return d.Build(s)
	}

	if turning(invaders) {
		for _, inv := range invaders {
			inv.SetVelocity(vector.New(-inv.Velocity().X, 0))
			inv.Translate(vector.New(0, -invaderDrop))
		}
	}

	for _, b := range s.Bodies() {
		if body.KindOf(b) != body.KindBullet {
			continue
		}
		if y := b.Centroid().Y; y < 0 || y > invadersSize.Y {
			b.Remove()
		}
	}

	x, v := d.ship.Centroid().X, d.ship.Velocity().X
	if (x-invaderRadius <= 0 && v < 0) || (x+invaderRadius >= invadersSize.X && v > 0) {
		d.ship.SetVelocity(vector.Zero)
	}

	d.clock += dt
	if d.clock >= fireInterval {
		d.clock -= fireInterval
		shooter := invaders[d.rng.IntN(len(invaders))]
		d.fire(s, shooter.Centroid(), true)
	}
	return nil
}

// Control moves the ship. Release stops it and fires.
func (d *SpaceInvaders) Control(s *scene.Scene, c Control) error {
	switch c {
	case ControlLeft:
		d.ship.SetVelocity(vector.New(-shipSpeed, 0))
	case ControlRight:
		d.ship.SetVelocity(vector.New(shipSpeed, 0))
	case ControlRelease:
		d.ship.SetVelocity(vector.Zero)
		if !d.ship.IsRemoved() {
			d.fire(s, d.ship.Centroid().Add(vector.New(0, 5)), false)
		}
	}
	return nil
}

// fire launches a bullet from at. Hostile bullets fly down at the ship, the
// others fly up at every invader still alive.
func (d *SpaceInvaders) fire(s *scene.Scene, at vector.Vector, hostile bool) *body.Body {
	v, color := vector.New(0, bulletSpeed), body.White
	if hostile {
		v, color = vector.New(0, -bulletSpeed), body.Red
	}
	bullet := body.MustNew(polygon.Rectangle(bulletWidth, bulletHeight), invaderMass, color,
		body.WithInfo(body.Bullet{Hostile: hostile}), body.WithVelocity(v))
	bullet.SetCentroid(at)
	s.AddBody(bullet)

	if hostile {
		s.CreateDestructiveCollision(bullet, d.ship)
		return bullet
	}
	for _, inv := range invadersOf(s) {
		s.CreateDestructiveCollision(bullet, inv)
	}
	return bullet
}

func invadersOf(s *scene.Scene) []*body.Body {
	var out []*body.Body
	for _, b := range s.Bodies() {
		if body.KindOf(b) == body.KindInvader && !b.IsRemoved() {
			out = append(out, b)
		}
	}
	return out
}

// turning reports whether any invader has reached the wall it is moving
// towards.
func turning(invaders []*body.Body) bool {
	for _, inv := range invaders {
		x, v := inv.Centroid().X, inv.Velocity().X
		if (x >= invadersSize.X-invaderRadius && v > 0) || (x <= invaderRadius && v < 0) {
			return true
		}
	}
	return false
}

// landed reports whether an invader has come down to the ship's row.
func landed(invaders []*body.Body) bool {
	for _, inv := range invaders {
		if inv.Centroid().Y-invaderRadius <= shipY+invaderRadius/2 {
			return true
		}
	}
	return false
}
