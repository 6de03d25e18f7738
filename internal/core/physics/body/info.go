package body

import "github.com/zeusync/physics2d/internal/core/geometry/vector"

// Kind tags the domain role of a body.
type Kind uint8

const (
	KindNone Kind = iota
	KindBall
	KindHole
	KindSand
	KindGrass
	KindWater
	KindBoost
	KindPortal
	KindBackground
	KindGravityWell
	KindBlock
	KindPaddle
	KindInvader
	KindBullet
)

var kindNames = [...]string{
	KindNone:        "none",
	KindBall:        "ball",
	KindHole:        "hole",
	KindSand:        "sand",
	KindGrass:       "grass",
	KindWater:       "water",
	KindBoost:       "boost",
	KindPortal:      "portal",
	KindBackground:  "background",
	KindGravityWell: "gravity_well",
	KindBlock:       "block",
	KindPaddle:      "paddle",
	KindInvader:     "invader",
	KindBullet:      "bullet",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Info is the typed payload attached to a body. The set of variants is closed.
type Info interface {
	Kind() Kind
	info()
}

// Teardown is implemented by payloads that hold resources to release when the
// owning body is swept from a scene.
type Teardown interface {
	Teardown()
}

type (
	Ball        struct{}
	Hole        struct{}
	Sand        struct{}
	Grass       struct{}
	Water       struct{}
	Background  struct{}
	GravityWell struct{}
	Paddle      struct{}
	Invader     struct{}

	// Boost scales the speed of whatever touches it.
	Boost struct {
		Factor float64
	}

	// Portal sends a ball to Exit, launching it along Direction.
	Portal struct {
		Exit      *Body
		Direction vector.Vector
	}

	// Block is a breakable brick; Hits counts the hits it has absorbed.
	Block struct {
		Hits int
	}

	// Bullet is a shot; Hostile ones are fired at the player.
	Bullet struct {
		Hostile bool
	}
)

func (Ball) Kind() Kind        { return KindBall }
func (Hole) Kind() Kind        { return KindHole }
func (Sand) Kind() Kind        { return KindSand }
func (Grass) Kind() Kind       { return KindGrass }
func (Water) Kind() Kind       { return KindWater }
func (Background) Kind() Kind  { return KindBackground }
func (GravityWell) Kind() Kind { return KindGravityWell }
func (Paddle) Kind() Kind      { return KindPaddle }
func (Invader) Kind() Kind     { return KindInvader }
func (Bullet) Kind() Kind      { return KindBullet }
func (Boost) Kind() Kind       { return KindBoost }
func (*Portal) Kind() Kind     { return KindPortal }
func (*Block) Kind() Kind      { return KindBlock }

func (Ball) info()        {}
func (Hole) info()        {}
func (Sand) info()        {}
func (Grass) info()       {}
func (Water) info()       {}
func (Background) info()  {}
func (GravityWell) info() {}
func (Paddle) info()      {}
func (Invader) info()     {}
func (Bullet) info()      {}
func (Boost) info()       {}
func (*Portal) info()     {}
func (*Block) info()      {}

// Teardown unlinks the portal from its exit.
func (p *Portal) Teardown() {
	p.Exit = nil
}

// KindOf returns the kind of b's payload, or KindNone.
func KindOf(b *Body) Kind {
	if b == nil || b.info == nil {
		return KindNone
	}
	return b.info.Kind()
}
