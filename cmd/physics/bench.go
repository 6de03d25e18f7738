package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/zeusync/physics2d/internal/core/config"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
	"github.com/zeusync/physics2d/internal/demos"
	"github.com/zeusync/physics2d/internal/level"
	"github.com/zeusync/physics2d/pkg/concurrent"
)

const defaultBenchDuration = 10 * time.Second

type benchResult struct {
	Scene string
	Steps int
	Took  time.Duration
}

func (r benchResult) Rate() float64 {
	if r.Took <= 0 {
		return 0
	}
	return float64(r.Steps) / r.Took.Seconds()
}

// bench builds Simulation.Scenes independent copies of the configured demo,
// each with its own seed, and steps them in parallel.
func bench(ctx context.Context, cfg *config.Config, logger log.Log) ([]benchResult, error) {
	d := cfg.Simulation.Duration.Std()
	if d <= 0 {
		d = defaultBenchDuration
	}
	steps := int(math.Round(d.Seconds() / cfg.Dt()))

	opts := []demos.Option{demos.WithLogger(logger)}
	if cfg.Simulation.Level != "" {
		lvl, err := level.LoadFile(cfg.Simulation.Level)
		if err != nil {
			return nil, fmt.Errorf("load level %s: %w", cfg.Simulation.Level, err)
		}
		opts = append(opts, demos.WithLevels(lvl))
	}

	seeds := make([]uint64, cfg.Simulation.Scenes)
	for i := range seeds {
		seeds[i] = uint64(i + 1)
	}
	return concurrent.Map(ctx, seeds, 0, func(ctx context.Context, seed uint64) (benchResult, error) {
		dm, err := demos.New(cfg.Simulation.Demo, append([]demos.Option{demos.WithSeed(seed)}, opts...)...)
		if err != nil {
			return benchResult{}, err
		}
		name := fmt.Sprintf("%s-%d", dm.Name(), seed-1)
		s := scene.New(scene.WithName(name), scene.WithLogger(logger))
		if err := dm.Build(s); err != nil {
			return benchResult{}, fmt.Errorf("build %s: %w", name, err)
		}

		start := time.Now()
		for n := range steps {
			if n%1024 == 0 && ctx.Err() != nil {
				return benchResult{}, ctx.Err()
			}
			if err := step(dm, s, cfg); err != nil {
				return benchResult{}, err
			}
		}
		res := benchResult{Scene: name, Steps: steps, Took: time.Since(start)}
		logger.Debug("Bench scene finished", log.String("scene", name), log.Duration("took", res.Took))
		return res, nil
	})
}
