package injector

import (
	"fmt"

	"github.com/google/wire"

	"github.com/zeusync/physics2d/internal/audio"
	"github.com/zeusync/physics2d/internal/core/config"
	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
	"github.com/zeusync/physics2d/internal/demos"
	"github.com/zeusync/physics2d/internal/level"
	"github.com/zeusync/physics2d/internal/server"
)

// ConfigPath names the configuration file. Empty selects the defaults.
type ConfigPath string

// App is everything a runner needs to drive one demo scene.
type App struct {
	Config *config.Config
	Logger log.Log
	Bus    bus.EventBus
	Demo   demos.Demo
	Scene  *scene.Scene
}

// SceneSet builds an App from an already loaded configuration.
var SceneSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideDemo,
	ProvideScene,
	wire.Struct(new(App), "*"),
)

var CoreSet = wire.NewSet(ProvideConfig, SceneSet)

var ServerSet = wire.NewSet(CoreSet, ProvideServer)

var AudioSet = wire.NewSet(ProvideConfig, ProvideLogger, ProvideAudio)

func ProvideConfig(path ConfigPath) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFile(string(path))
}

func ProvideLogger(cfg *config.Config) log.Log {
	return log.New(cfg.LogLevel(), log.Options{Encoding: cfg.Log.Encoding, Output: cfg.Log.Output})
}

// ProvideBus returns a bus with a log observer, so Metrics are collected.
func ProvideBus(logger log.Log) bus.EventBus {
	b := bus.New()
	b.AddObserver(bus.NewLogObserver(logger))
	return b
}

func ProvideDemo(cfg *config.Config, logger log.Log) (demos.Demo, error) {
	opts := []demos.Option{demos.WithLogger(logger)}
	if cfg.Simulation.Level != "" {
		lvl, err := level.LoadFile(cfg.Simulation.Level)
		if err != nil {
			return nil, fmt.Errorf("load level %s: %w", cfg.Simulation.Level, err)
		}
		opts = append(opts, demos.WithLevels(lvl))
	}
	return demos.New(cfg.Simulation.Demo, opts...)
}

// ProvideScene builds d into a fresh scene publishing to b.
func ProvideScene(d demos.Demo, b bus.EventBus, logger log.Log) (*scene.Scene, error) {
	s := scene.New(scene.WithName(d.Name()), scene.WithBus(b), scene.WithLogger(logger))
	if err := d.Build(s); err != nil {
		return nil, fmt.Errorf("build %s: %w", d.Name(), err)
	}
	return s, nil
}

func ProvideServer(cfg *config.Config, s *scene.Scene, d demos.Demo, logger log.Log) *server.Server {
	return server.NewServer(cfg, s, d, logger)
}

func ProvideAudio(cfg *config.Config, logger log.Log) *audio.Player {
	return audio.New(cfg.Audio, logger)
}
