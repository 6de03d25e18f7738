package demos

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/forces"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
)

const (
	blockRows    = 3
	blockCols    = 10
	blockWidth   = 63.0
	blockHeight  = 25
	paddleY      = 20
	paddleSpeed  = 700
	breakoutBall = 6
	breakoutMass = 10
	// blockLives is the number of hits a block takes before it breaks.
	blockLives = 2
)

var breakoutSize = vector.New(750, 750)

// Breakout is a paddle, a ball and rows of blocks that grey on the first hit
// and break on the second. The round restarts when the ball drops out or the
// last block breaks.
type Breakout struct {
	paddle *body.Body
	ball   *body.Body
	logger log.Log
	rounds int
}

func (*Breakout) Name() string { return "breakout" }

func (*Breakout) Bounds() (vector.Vector, vector.Vector) { return vector.Zero, breakoutSize }

func (d *Breakout) Build(s *scene.Scene) error {
	d.paddle = body.MustNew(polygon.Rectangle(blockWidth, blockHeight), math.Inf(1), body.Pastel(),
		body.WithInfo(body.Paddle{}))
	d.paddle.SetCentroid(vector.New(breakoutSize.X/2, paddleY))
	s.AddBody(d.paddle)

	d.ball = body.MustNew(polygon.Circle(breakoutBall), breakoutMass, body.White,
		body.WithInfo(body.Ball{}), body.WithVelocity(vector.New(150, 200)))
	d.ball.SetCentroid(d.paddle.Centroid().Add(vector.New(blockWidth/2, 50)))
	s.AddBody(d.ball)
	s.CreatePhysicsCollision(1, d.ball, d.paddle)

	for i := range blockRows {
		for j := range blockCols {
			hue := 360 * float64(j) / blockCols
			c := colorful.Hsv(hue, 0.6, 0.95)
			block := body.MustNew(polygon.Rectangle(blockWidth, blockHeight), math.Inf(1),
				body.Color{R: c.R, G: c.G, B: c.B}, body.WithInfo(&body.Block{}))
			block.SetCentroid(vector.New(50+72*float64(j), breakoutSize.Y-45-40*float64(i)))
			s.AddBody(block)
			s.CreatePhysicsCollision(1, d.ball, block)
			s.CreateCollision(forces.HandlerFunc(crack), d.ball, block)
		}
	}

	// the floor is left open
	for _, w := range box(breakoutSize, 20) {
		if w.Centroid().Y < 0 {
			continue
		}
		s.AddBody(w)
		s.CreatePhysicsCollision(1, d.ball, w)
	}
	return nil
}

// crack greys a block on its first hit and removes it on the last.
func crack(_, block *body.Body, _ collision.Result) {
	b, ok := block.Info().(*body.Block)
	if !ok {
		return
	}
	b.Hits++
	if b.Hits >= blockLives {
		block.Remove()
		return
	}
	block.SetColor(body.Gray)
}

func (d *Breakout) Update(s *scene.Scene, _ float64) error {
	if d.ball.Centroid().Y <= 0 || blocksLeft(s) == 0 {
		d.rounds++
		d.logger.Info("round over",
			log.Int("round", d.rounds),
			log.Int("blocks_left", blocksLeft(s)),
		)
		s.Reset()
		return d.Build(s)
	}

	x, v := d.paddle.Centroid().X, d.paddle.Velocity().X
	if (x-blockWidth/2 <= 0 && v < 0) || (x+blockWidth/2 >= breakoutSize.X && v > 0) {
		d.paddle.SetVelocity(vector.Zero)
	}
	return nil
}

func (d *Breakout) Control(_ *scene.Scene, c Control) error {
	switch c {
	case ControlLeft:
		d.paddle.SetVelocity(vector.New(-paddleSpeed, 0))
	case ControlRight:
		d.paddle.SetVelocity(vector.New(paddleSpeed, 0))
	case ControlRelease:
		d.paddle.SetVelocity(vector.Zero)
	}
	return nil
}

func blocksLeft(s *scene.Scene) int {
	n := 0
	for _, b := range s.Bodies() {
		if body.KindOf(b) == body.KindBlock {
			n++
		}
	}
	return n
}
