package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/zeusync/physics2d/internal/core/config"
	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
)

// Cue is a short sound effect.
type Cue uint8

const (
	CueBounce Cue = iota
	CueBreak
	CuePortal
	CueWin
	CueLose
)

var cueNames = [...]string{"bounce", "break", "portal", "win", "lose"}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// notes are frequency ratios over the base tone, played in sequence.
var notes = map[Cue][]float64{
	CueBounce: {1},
	CueBreak:  {0.5},
	CuePortal: {1, 1.5, 2},
	CueWin:    {1, 1.25, 1.5, 2},
	CueLose:   {1, 0.75, 0.5},
}

// Player turns scene events into cues. Until Start succeeds it only counts
// cues, so a machine without an audio device runs silently.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	tone    float64
	length  time.Duration
	volume  float64
	mixer   *beep.Mixer
	started bool
	counts  map[Cue]int
	logger  log.Log
}

func New(cfg config.AudioConfig, logger log.Log) *Player {
	if logger == nil {
		logger = log.Provide()
	}
	return &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		tone:   cfg.ToneHz,
		length: cfg.CueLength.Std(),
		volume: -1,
		mixer:  &beep.Mixer{},
		counts: make(map[Cue]int),
		logger: logger.Named("audio"),
	}
}

// Start opens the speaker. Callers treat a failure as "no sound".
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
}

// Stream builds the samples of c.
func (p *Player) Stream(c Cue) (beep.Streamer, error) {
	ratios, ok := notes[c]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", c)
	}
	n := p.rate.N(p.length)
	parts := make([]beep.Streamer, 0, len(ratios))
	for _, r := range ratios {
		tone, err := generators.SineTone(p.rate, p.tone*r)
		if err != nil {
			return nil, fmt.Errorf("cue %s: %w", c, err)
		}
		parts = append(parts, beep.Take(n, tone))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: p.volume}, nil
}

// Play queues c on the speaker.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[c]++
	if !p.started {
		return
	}
	s, err := p.Stream(c)
	if err != nil {
		p.logger.Warn("cue dropped", log.Stringer("cue", c), log.Error(err))
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Count reports how often c was requested.
func (p *Player) Count(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[c]
}

// Subscribe plays a cue for every new contact and every broken block.
func (p *Player) Subscribe(b bus.EventBus) ([]bus.Subscription, error) {
	contact, err := b.Subscribe(scene.EventContactBegin, func(e bus.Event) error {
		if ev, ok := e.Data().(scene.ContactEvent); ok {
			p.Play(contactCue(ev.B))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	removed, err := b.Subscribe(scene.EventBodyRemoved, func(e bus.Event) error {
		if ev, ok := e.Data().(scene.BodyEvent); ok && body.KindOf(ev.Body) == body.KindBlock {
			p.Play(CueBreak)
		}
		return nil
	})
	if err != nil {
		_ = contact.Cancel()
		return nil, err
	}
	return []bus.Subscription{contact, removed}, nil
}

func contactCue(other *body.Body) Cue {
	switch body.KindOf(other) {
	case body.KindPortal:
		return CuePortal
	case body.KindHole:
		return CueWin
	case body.KindWater:
		return CueLose
	default:
		return CueBounce
	}
}
