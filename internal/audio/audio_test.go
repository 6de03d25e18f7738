package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/config"
	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
)

func testConfig() config.AudioConfig {
	return config.AudioConfig{
		Enabled:    true,
		SampleRate: 8000,
		ToneHz:     440,
		CueLength:  config.Duration(10 * time.Millisecond),
	}
}

func drain(t *testing.T, p *Player, c Cue) [][2]float64 {
	t.Helper()
	s, err := p.Stream(c)
	require.NoError(t, err)

	var out [][2]float64
	buf := make([][2]float64, 64)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	require.NoError(t, s.Err())
	return out
}

func TestCueLengthAndLevel(t *testing.T) {
	p := New(testConfig(), log.Nop())
	perNote := 80 // 10ms at 8kHz

	for c, ratios := range notes {
		samples := drain(t, p, c)
		assert.Len(t, samples, perNote*len(ratios), "cue %s", c)
		for _, s := range samples {
			require.LessOrEqual(t, math.Abs(s[0]), 0.5+1e-9)
			require.Equal(t, s[0], s[1])
		}
	}
}

func TestStreamErrors(t *testing.T) {
	cfg := testConfig()
	cfg.ToneHz = 5000 // above Nyquist for 8kHz
	p := New(cfg, log.Nop())
	_, err := p.Stream(CueBounce)
	assert.Error(t, err)

	_, err = p.Stream(Cue(99))
	assert.Error(t, err)
	assert.Equal(t, "unknown", Cue(99).String())
}

func TestPlayWithoutSpeakerOnlyCounts(t *testing.T) {
	p := New(testConfig(), log.Nop())
	p.Play(CueWin)
	p.Play(CueWin)
	assert.Equal(t, 2, p.Count(CueWin))
	assert.Zero(t, p.Count(CueLose))
	p.Close()
}

func TestSubscribe(t *testing.T) {
	b := bus.New()
	p := New(testConfig(), log.Nop())
	subs, err := p.Subscribe(b)
	require.NoError(t, err)
	require.Len(t, subs, 2)

	square := func(info body.Info) *body.Body {
		return body.MustNew(polygon.Rectangle(1, 1), 1, body.White, body.WithInfo(info))
	}
	ball := square(body.Ball{})

	for _, tc := range []struct {
		other *body.Body
		want  Cue
	}{
		{square(&body.Portal{}), CuePortal},
		{square(body.Hole{}), CueWin},
		{square(body.Water{}), CueLose},
		{square(body.Grass{}), CueBounce},
	} {
		require.NoError(t, b.Publish(bus.NewEvent(scene.EventContactBegin, "test", scene.ContactEvent{A: ball, B: tc.other})))
		assert.Equal(t, 1, p.Count(tc.want), "cue %s", tc.want)
	}

	require.NoError(t, b.Publish(bus.NewEvent(scene.EventBodyRemoved, "test", scene.BodyEvent{Body: square(&body.Block{})})))
	require.NoError(t, b.Publish(bus.NewEvent(scene.EventBodyRemoved, "test", scene.BodyEvent{Body: ball})))
	assert.Equal(t, 1, p.Count(CueBreak))

	for _, s := range subs {
		require.NoError(t, b.Unsubscribe(s))
	}
	require.NoError(t, b.Publish(bus.NewEvent(scene.EventContactBegin, "test", scene.ContactEvent{A: ball, B: ball})))
	assert.Equal(t, 1, p.Count(CueBounce))
}

func TestSceneContactsPlayCues(t *testing.T) {
	b := bus.New()
	p := New(testConfig(), log.Nop())
	_, err := p.Subscribe(b)
	require.NoError(t, err)

	s := scene.New(scene.WithBus(b))
	ball := body.MustNew(polygon.Circle(1), 1, body.White, body.WithVelocity(vector.New(1, 0)))
	wall := body.MustNew(polygon.Rectangle(1, 4), math.Inf(1), body.Gray)
	wall.SetCentroid(vector.New(1.2, 0))
	s.AddBody(ball)
	s.AddBody(wall)
	s.CreatePhysicsCollision(1, ball, wall)

	s.Tick(0.01)
	s.Tick(0.01)
	assert.Equal(t, 1, p.Count(CueBounce))
}
