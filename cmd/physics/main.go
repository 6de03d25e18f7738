package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/zeusync/physics2d/internal/core/config"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
	"github.com/zeusync/physics2d/internal/demos"
	"github.com/zeusync/physics2d/internal/injector"
)

var errUsage = errors.New("usage: physics run|bench|serve|demos [-config file] [-demo name] [-duration d]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "physics: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	path := fs.String("config", "", "YAML or JSON configuration file")
	demo := fs.String("demo", "", "demo to run, overrides simulation.demo")
	duration := fs.Duration("duration", 0, "simulated time, overrides simulation.duration")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd == "demos" {
		_, err := fmt.Fprintln(stdout, strings.Join(demos.Names(), "\n"))
		return err
	}

	cfg, err := injector.ProvideConfig(injector.ConfigPath(*path))
	if err != nil {
		return err
	}
	if *demo != "" {
		cfg.Simulation.Demo = *demo
	}
	if *duration > 0 {
		cfg.Simulation.Duration = config.Duration(*duration)
	}

	switch cmd {
	case "run":
		app, err := injector.InitializeAppWith(cfg)
		if err != nil {
			return err
		}
		sum, err := headless(ctx, app)
		if err != nil {
			return err
		}
		app.Logger.Info("Run finished",
			log.Int("steps", sum.Steps),
			log.Float64("elapsed", sum.Elapsed),
			log.Int("bodies", sum.Bodies),
			log.Int("score", sum.Session.Score),
			log.Stringer("state", sum.Session.State),
		)
		_, err = fmt.Fprintf(stdout, "%s: %d steps, %.2fs simulated, %d bodies\n",
			cfg.Simulation.Demo, sum.Steps, sum.Elapsed, sum.Bodies)
		return err

	case "bench":
		logger := injector.ProvideLogger(cfg)
		results, err := bench(ctx, cfg, logger)
		if err != nil {
			return err
		}
		for _, r := range results {
			if _, err := fmt.Fprintf(stdout, "%-12s %6d steps %10s %12.0f steps/s\n",
				r.Scene, r.Steps, r.Took.Round(time.Microsecond), r.Rate()); err != nil {
				return err
			}
		}
		return nil

	case "serve":
		app, err := injector.InitializeAppWith(cfg)
		if err != nil {
			return err
		}
		return injector.ProvideServer(cfg, app.Scene, app.Demo, app.Logger).Run(ctx)

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// Summary describes a finished headless run.
type Summary struct {
	Steps   int
	Elapsed float64
	Bodies  int
	Session scene.Session
}

// headless steps the scene as fast as possible for the configured duration.
// A zero duration runs in real time until ctx is cancelled.
func headless(ctx context.Context, app *injector.App) (Summary, error) {
	cfg := app.Config
	dt := cfg.Dt()
	var sum Summary

	if d := cfg.Simulation.Duration.Std(); d > 0 {
		steps := int(math.Round(d.Seconds() / dt))
		for ; sum.Steps < steps; sum.Steps++ {
			if sum.Steps%1024 == 0 && ctx.Err() != nil {
				break
			}
			if err := step(app.Demo, app.Scene, cfg); err != nil {
				return sum, err
			}
			sum.Elapsed += dt
		}
	} else {
		ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
		defer ticker.Stop()
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
			}
			if err := step(app.Demo, app.Scene, cfg); err != nil {
				return sum, err
			}
			sum.Steps++
			sum.Elapsed += dt
		}
	}

	sum.Bodies = app.Scene.Len()
	sum.Session = *app.Scene.Session()
	return sum, nil
}

func step(d demos.Demo, s *scene.Scene, cfg *config.Config) error {
	dt := cfg.Dt()
	if err := d.Update(s, dt); err != nil {
		return fmt.Errorf("update %s: %w", d.Name(), err)
	}
	s.Step(dt, cfg.Simulation.Substeps)
	return nil
}
