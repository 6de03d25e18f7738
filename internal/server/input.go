package server

import (
	"fmt"

	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
	"github.com/zeusync/physics2d/internal/demos"
)

// Op names an input operation sent by a client.
type Op string

const (
	OpSetVelocity Op = "set_velocity"
	OpAddForce    Op = "add_force"
	OpAddImpulse  Op = "add_impulse"
	OpTranslate   Op = "translate"
	OpControl     Op = "control"
)

// Input is a client message. Body indexes the scene's bodies in insertion
// order and X, Y carry the vector argument.
type Input struct {
	Op      Op      `json:"op"`
	Body    int     `json:"body"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Control string  `json:"control,omitempty"`
}

// Validate checks what can be checked without the scene.
func (in Input) Validate() error {
	switch in.Op {
	case OpSetVelocity, OpAddForce, OpAddImpulse, OpTranslate:
		if in.Body < 0 {
			return fmt.Errorf("%w: negative body index %d", ErrInvalidMessage, in.Body)
		}
	case OpControl:
		if demos.ParseControl(in.Control) == demos.ControlNone {
			return fmt.Errorf("%w: unknown control %q", ErrInvalidMessage, in.Control)
		}
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidMessage, in.Op)
	}
	return nil
}

// apply runs on the tick goroutine only.
func (in Input) apply(s *scene.Scene, d demos.Demo) error {
	if in.Op == OpControl {
		if d == nil {
			return fmt.Errorf("%w: no demo to control", ErrInvalidMessage)
		}
		return d.Control(s, demos.ParseControl(in.Control))
	}
	if in.Body >= s.Len() {
		return fmt.Errorf("%w: body %d out of range [0,%d)", ErrInvalidMessage, in.Body, s.Len())
	}

	b, v := s.Body(in.Body), vector.New(in.X, in.Y)
	switch in.Op {
	case OpSetVelocity:
		b.SetVelocity(v)
	case OpAddForce:
		b.AddForce(v)
	case OpAddImpulse:
		b.AddImpulse(v)
	case OpTranslate:
		b.Translate(v)
	}
	return nil
}

// reply is sent back to a single client when its input is rejected.
type reply struct {
	Error string `json:"error"`
}
