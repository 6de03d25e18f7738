package demos

import (
	"fmt"

	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
	"github.com/zeusync/physics2d/internal/level"
)

var (
	shotVelocity = vector.New(1000, 1000)
	// shotLift raises the ball off the ground before a shot so the launch
	// is not eaten by the contact it is resting in.
	shotLift = vector.New(0, 10)
)

// Golf plays a sequence of levels. Every shot costs a point; winning a level
// and continuing loads the next one until none are left.
type Golf struct {
	levels []*level.Level
	course *level.Course
	logger log.Log
}

func (*Golf) Name() string { return "golf" }

func (g *Golf) Bounds() (vector.Vector, vector.Vector) {
	if g.course != nil {
		b := g.course.Level.Bounds
		return vector.Zero, vector.New(b.Width, b.Height)
	}
	return vector.Zero, vector.New(2000, 1000)
}

func (g *Golf) count() int {
	if len(g.levels) > 0 {
		return len(g.levels)
	}
	return level.Count()
}

func (g *Golf) load(n int) (*level.Level, error) {
	if len(g.levels) == 0 {
		return level.Builtin(n)
	}
	if n < 1 || n > len(g.levels) {
		return nil, fmt.Errorf("%w: %d of %d", level.ErrNoSuchLevel, n, len(g.levels))
	}
	return g.levels[n-1], nil
}

// Build loads the session's current level, starting at the first.
func (g *Golf) Build(s *scene.Scene) error {
	session := s.Session()
	if session.Level == 0 {
		session.Level = 1
	}
	lvl, err := g.load(session.Level)
	if err != nil {
		return err
	}
	course, err := level.Build(s, lvl)
	if err != nil {
		return fmt.Errorf("build level %d: %w", session.Level, err)
	}
	g.course = course
	g.logger.Info("level loaded", log.Int("level", session.Level), log.String("name", lvl.Name))
	return nil
}

func (*Golf) Update(*scene.Scene, float64) error { return nil }

func (g *Golf) Control(s *scene.Scene, c Control) error {
	session := s.Session()
	switch c {
	case ControlLeft, ControlRight:
		if session.State != scene.StatePlaying || g.course == nil {
			return nil
		}
		v := shotVelocity
		if c == ControlLeft {
			v.X = -v.X
		}
		g.course.Ball.Translate(shotLift)
		g.course.Ball.SetVelocity(v)
		session.Score++
	case ControlContinue:
		switch session.State {
		case scene.StateWon:
			if session.Level >= g.count() {
				session.State = scene.StateFinished
				g.logger.Info("course finished", log.Int("score", session.Score))
				return nil
			}
			session.Level++
			return g.restart(s)
		case scene.StateLost:
			return g.restart(s)
		}
	case ControlRestart:
		if session.State == scene.StateFinished {
			session.Level = 1
		}
		return g.restart(s)
	}
	return nil
}

func (g *Golf) restart(s *scene.Scene) error {
	session := s.Session()
	s.Reset()
	session.Score = 0
	session.State = scene.StatePlaying
	return g.Build(s)
}
