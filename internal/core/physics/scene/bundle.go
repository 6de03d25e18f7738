package scene

import (
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/forces"
)

// Bundle binds a force creator to an ordered list of bodies.
type Bundle struct {
	id       uint64
	creator  forces.Creator
	bodies   []*body.Body
	contacts *contactView
	dead     bool
}

func (b *Bundle) Creator() forces.Creator { return b.creator }

func (b *Bundle) Bodies() []*body.Body {
	out := make([]*body.Body, len(b.bodies))
	copy(out, b.bodies)
	return out
}

// IsAlive reports whether the bundle is still registered with its scene.
func (b *Bundle) IsAlive() bool { return !b.dead }

func (b *Bundle) touchesRemoved() bool {
	for _, bd := range b.bodies {
		if bd.IsRemoved() {
			return true
		}
	}
	return false
}

// pairs is the number of pairwise groups: a ring over the bodies, except that
// two bodies form a single pair.
func (b *Bundle) pairs() int {
	if len(b.bodies) == 2 {
		return 1
	}
	return len(b.bodies)
}
