package demos

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
	"github.com/zeusync/physics2d/internal/level"
)

var ErrUnknownDemo = errors.New("unknown demo")

// Control is a player command forwarded from a keyboard or a network client.
type Control uint8

const (
	ControlNone Control = iota
	ControlLeft
	ControlRight
	// ControlRelease stops whatever the player is moving.
	ControlRelease
	// ControlContinue advances a finished round.
	ControlContinue
	ControlRestart
)

var controlNames = map[string]Control{
	"left":     ControlLeft,
	"right":    ControlRight,
	"release":  ControlRelease,
	"continue": ControlContinue,
	"restart":  ControlRestart,
}

// ParseControl maps a control name to a Control. Unknown names give
// ControlNone.
func ParseControl(s string) Control { return controlNames[s] }

// Demo populates a scene and drives it between ticks.
type Demo interface {
	Name() string
	// Bounds is the world rectangle a viewer should show.
	Bounds() (min, max vector.Vector)
	Build(s *scene.Scene) error
	// Update runs before every tick.
	Update(s *scene.Scene, dt float64) error
	Control(s *scene.Scene, c Control) error
}

type options struct {
	seed   uint64
	levels []*level.Level
	logger log.Log
}

type Option func(*options)

// WithSeed fixes the random layout of the demos that have one.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLevels replaces the built-in golf courses.
func WithLevels(levels ...*level.Level) Option {
	return func(o *options) { o.levels = levels }
}

func WithLogger(l log.Log) Option {
	return func(o *options) { o.logger = l }
}

var registry = map[string]func(o *options) Demo{
	"bounce":        func(*options) Demo { return &Bounce{} },
	"breakout":      func(o *options) Demo { return &Breakout{logger: o.logger} },
	"damping":       func(*options) Demo { return &Damping{} },
	"gravity":       func(o *options) Demo { return &NBody{rng: o.rng()} },
	"golf":          func(o *options) Demo { return &Golf{levels: o.levels, logger: o.logger} },
	"spaceinvaders": func(o *options) Demo { return &SpaceInvaders{rng: o.rng(), logger: o.logger} },
}

func (o *options) rng() *rand.Rand {
	return rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
}

// Names lists the registered demos in alphabetical order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

func New(name string, opts ...Option) (Demo, error) {
	o := &options{seed: 1}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.Provide()
	}
	o.logger = o.logger.Named(name)

	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDemo, name)
	}
	return mk(o), nil
}

// wall is an immovable w x h rectangle centred on at.
func wall(w, h float64, at vector.Vector) *body.Body {
	shape := polygon.Rectangle(w, h)
	shape.Translate(at)
	return body.MustNew(shape, math.Inf(1), body.Gray)
}

// box returns the four walls of thickness t enclosing the rectangle
// [0, size.X] x [0, size.Y].
func box(size vector.Vector, t float64) []*body.Body {
	return []*body.Body{
		wall(t, size.Y+2*t, vector.New(-t/2, size.Y/2)),
		wall(t, size.Y+2*t, vector.New(size.X+t/2, size.Y/2)),
		wall(size.X+2*t, t, vector.New(size.X/2, -t/2)),
		wall(size.X+2*t, t, vector.New(size.X/2, size.Y+t/2)),
	}
}
