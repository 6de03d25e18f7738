package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/physics2d/internal/core/config"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/demos"
	"github.com/zeusync/physics2d/internal/injector"
	"github.com/zeusync/physics2d/internal/render"
)

func main() {
	path := flag.String("config", "", "YAML or JSON configuration file")
	demo := flag.String("demo", "", "demo to run, overrides simulation.demo")
	mute := flag.Bool("mute", false, "disable sound")
	logFile := flag.String("log", os.DevNull, "log file; the terminal is busy drawing")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *path, *demo, *logFile, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path, demo, logFile string, mute bool) error {
	cfg, err := injector.ProvideConfig(injector.ConfigPath(path))
	if err != nil {
		return err
	}
	if demo != "" {
		cfg.Simulation.Demo = demo
	}
	if len(cfg.Log.Output) == 0 {
		cfg.Log.Output = []string{logFile}
	}
	if mute {
		cfg.Audio.Enabled = false
	}

	app, err := injector.InitializeAppWith(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	player := injector.ProvideAudio(cfg, app.Logger)
	if cfg.Audio.Enabled {
		if err := player.Start(); err != nil {
			// non-fatal, the demo runs silent
			app.Logger.Warn("Audio disabled", log.Error(err))
		} else {
			defer player.Close()
		}
	}
	subs, err := player.Subscribe(app.Bus)
	if err != nil {
		return err
	}
	defer func() {
		for _, sub := range subs {
			_ = app.Bus.Unsubscribe(sub)
		}
	}()

	return loop(ctx, app, screen)
}

func loop(ctx context.Context, app *injector.App, screen tcell.Screen) error {
	cfg := app.Config
	lo, hi := frame(app.Demo, cfg)
	term := render.NewTerminal(screen, lo, hi)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	tick := time.NewTicker(time.Duration(cfg.Dt() * float64(time.Second)))
	defer tick.Stop()
	draw := time.NewTicker(time.Second / time.Duration(cfg.Render.FPS))
	defer draw.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quit(ev) {
					return nil
				}
				if c := control(ev); c != demos.ControlNone {
					if err := app.Demo.Control(app.Scene, c); err != nil {
						return err
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-tick.C:
			if err := app.Demo.Update(app.Scene, cfg.Dt()); err != nil {
				return err
			}
			app.Scene.Step(cfg.Dt(), cfg.Simulation.Substeps)

		case <-draw.C:
			term.SetBounds(frame(app.Demo, cfg))
			if err := term.Render(render.Capture(app.Scene)); err != nil {
				return err
			}
		}
	}
}

// frame pads the demo's bounds by the configured margin.
func frame(d demos.Demo, cfg *config.Config) (vector.Vector, vector.Vector) {
	lo, hi := d.Bounds()
	m := vector.New(cfg.Render.Margin, cfg.Render.Margin)
	return lo.Sub(m), hi.Add(m)
}

func quit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// control maps arrow keys, a/d, space, enter and r to demo controls.
func control(ev *tcell.EventKey) demos.Control {
	switch ev.Key() {
	case tcell.KeyLeft:
		return demos.ControlLeft
	case tcell.KeyRight:
		return demos.ControlRight
	case tcell.KeyDown:
		return demos.ControlRelease
	case tcell.KeyEnter:
		return demos.ControlContinue
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			return demos.ControlLeft
		case 'd':
			return demos.ControlRight
		case ' ':
			return demos.ControlRelease
		case 'r':
			return demos.ControlRestart
		}
	}
	return demos.ControlNone
}
