package scene

import (
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
)

// Event types published on the scene bus.
const (
	EventContactBegin  = "contact.begin"
	EventBodyRemoved   = "body.removed"
	EventBundleRemoved = "bundle.removed"
)

// ContactEvent is the payload of EventContactBegin.
type ContactEvent struct {
	A, B   *body.Body
	Result collision.Result
	Tick   uint64
}

// BodyEvent is the payload of EventBodyRemoved.
type BodyEvent struct {
	Body *body.Body
	Tick uint64
}

// BundleEvent is the payload of EventBundleRemoved.
type BundleEvent struct {
	Creator string
	Bodies  int
	Tick    uint64
}
