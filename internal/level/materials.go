package level

import (
	"math"

	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/forces"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
)

const (
	GrassRestitution = 0.7
	// RollThreshold is the normal speed below which a ball stops bouncing on
	// grass and rolls along it instead.
	RollThreshold = 100
	BoostFactor   = 1.5
)

var (
	SkyColor      = body.Color{R: .651, G: .914, B: .953}
	MountainColor = body.Color{R: .294, G: .431, B: .318}
	SnowColor     = body.Color{R: .717, G: .968, B: .960}
	GrassColor    = body.Color{R: .278, G: .722, B: .408}
	SandColor     = body.Color{R: .761, G: .698, B: .502}
	WaterColor    = body.Color{R: .196, G: .666, B: .8117}
	PortalIn      = body.Color{R: .1, G: .913, B: .886}
	PortalOut     = body.Color{R: 1, G: .6, B: .2}
)

// roll turns a slow approach into a roll: the normal component of the
// ball's velocity is dropped and the ball is lifted out of the surface.
func roll(ball, _ *body.Body, res collision.Result) {
	v := ball.Velocity()
	if math.Abs(v.Dot(res.Axis)) >= RollThreshold {
		return
	}
	tangent := res.Axis.Orthogonal()
	ball.SetVelocity(tangent.Scale(v.Dot(tangent)))
	ball.Translate(res.Axis.Scale(-res.Depth))
}

func grass() forces.Creator {
	return &forces.Collision{
		Handler:   forces.NewPhysicsHandler(GrassRestitution),
		OnContact: roll,
	}
}

// sand stops the ball on every tick it is in the sand.
func sand() forces.Creator {
	return &forces.Collision{
		Trigger: forces.TriggerWhileTouching,
		Handler: forces.HandlerFunc(func(ball, _ *body.Body, _ collision.Result) {
			ball.SetVelocity(vector.Zero)
		}),
	}
}

// finish ends the round with st the first time the ball touches the target.
func finish(session *scene.Session, st scene.State) forces.Creator {
	return &forces.Collision{
		Handler: forces.HandlerFunc(func(ball, _ *body.Body, _ collision.Result) {
			if session.Settle(st) {
				ball.SetVelocity(vector.Zero)
			}
		}),
	}
}

func boost() forces.Creator {
	return &forces.Collision{
		Handler: forces.HandlerFunc(func(ball, pad *body.Body, _ collision.Result) {
			factor := BoostFactor
			if b, ok := pad.Info().(body.Boost); ok && b.Factor > 0 {
				factor = b.Factor
			}
			ball.SetVelocity(ball.Velocity().Scale(factor))
		}),
	}
}

// teleport moves the ball to the portal's exit and launches it with the
// portal's direction as its new velocity.
func teleport() forces.Creator {
	return &forces.Collision{
		Handler: forces.HandlerFunc(func(ball, portal *body.Body, _ collision.Result) {
			p, ok := portal.Info().(*body.Portal)
			if !ok || p.Exit == nil || p.Exit.IsRemoved() {
				return
			}
			ball.SetCentroid(p.Exit.Centroid())
			ball.SetVelocity(p.Direction)
		}),
	}
}
