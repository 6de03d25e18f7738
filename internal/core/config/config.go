package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/physics2d/internal/core/observability/log"
)

// Config is the root configuration shared by the runner, the demo and the
// websocket server.
type Config struct {
	Log        LogConfig        `json:"log" yaml:"log"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	Render     RenderConfig     `json:"render" yaml:"render"`
	Audio      AudioConfig      `json:"audio" yaml:"audio"`
}

type LogConfig struct {
	Level    string `json:"level" yaml:"level"`
	Encoding string `json:"encoding" yaml:"encoding"`
	// Output lists zap sink URLs or file paths; empty means stderr.
	Output []string `json:"output" yaml:"output"`
}

type SimulationConfig struct {
	// Demo names the scene builder: bounce, breakout, damping, gravity, golf or
	// spaceinvaders.
	Demo string `json:"demo" yaml:"demo"`
	// TickRate is the number of fixed steps per simulated second.
	TickRate int `json:"tick_rate" yaml:"tick_rate"`
	Substeps int `json:"substeps" yaml:"substeps"`
	// Duration bounds a headless run; zero runs until interrupted.
	Duration Duration `json:"duration" yaml:"duration"`
	// Level is a golf level file; empty selects the built-in course.
	Level string `json:"level" yaml:"level"`
	// Scenes is the number of independent scenes a benchmark runs in parallel.
	Scenes int `json:"scenes" yaml:"scenes"`
}

type ServerConfig struct {
	ListenAddr   string   `json:"listen_addr" yaml:"listen_addr"`
	SnapshotRate int      `json:"snapshot_rate" yaml:"snapshot_rate"`
	MaxClients   int      `json:"max_clients" yaml:"max_clients"`
	WriteTimeout Duration `json:"write_timeout" yaml:"write_timeout"`
	ReadLimit    int64    `json:"read_limit" yaml:"read_limit"`
	InputBuffer  int      `json:"input_buffer" yaml:"input_buffer"`
	// Token, when set, must be passed as the token query parameter.
	Token string `json:"token" yaml:"token"`
}

type RenderConfig struct {
	// Margin is the world-space padding drawn around a demo's bounds.
	Margin float64 `json:"margin" yaml:"margin"`
	FPS    int     `json:"fps" yaml:"fps"`
}

type AudioConfig struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	SampleRate int      `json:"sample_rate" yaml:"sample_rate"`
	ToneHz     float64  `json:"tone_hz" yaml:"tone_hz"`
	CueLength  Duration `json:"cue_length" yaml:"cue_length"`
}

// Default returns a configuration that passes Validate.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Encoding: "json"},
		Simulation: SimulationConfig{
			Demo:     "bounce",
			TickRate: 120,
			Substeps: 4,
			Scenes:   4,
		},
		Server: ServerConfig{
			ListenAddr:   "127.0.0.1:8080",
			SnapshotRate: 30,
			MaxClients:   64,
			WriteTimeout: Duration(5 * time.Second),
			ReadLimit:    4096,
			InputBuffer:  256,
		},
		Render: RenderConfig{Margin: 10, FPS: 30},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			ToneHz:     660,
			CueLength:  Duration(60 * time.Millisecond),
		},
	}
}

// Dt is the length of one fixed step in seconds.
func (c *Config) Dt() float64 {
	return 1 / float64(c.Simulation.TickRate)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.LevelInfo
	}
	return lvl
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	_, err := log.ParseLevel(c.Log.Level)
	check(err == nil, "log.level %q", c.Log.Level)
	check(c.Log.Encoding == "json" || c.Log.Encoding == "console", "log.encoding %q", c.Log.Encoding)

	check(c.Simulation.TickRate > 0, "simulation.tick_rate must be positive, got %d", c.Simulation.TickRate)
	check(c.Simulation.Substeps > 0, "simulation.substeps must be positive, got %d", c.Simulation.Substeps)
	check(c.Simulation.Duration >= 0, "simulation.duration must not be negative")
	check(c.Simulation.Scenes > 0, "simulation.scenes must be positive, got %d", c.Simulation.Scenes)

	check(c.Server.ListenAddr != "", "server.listen_addr is empty")
	check(c.Server.SnapshotRate > 0, "server.snapshot_rate must be positive, got %d", c.Server.SnapshotRate)
	check(c.Server.MaxClients > 0, "server.max_clients must be positive, got %d", c.Server.MaxClients)
	check(c.Server.WriteTimeout > 0, "server.write_timeout must be positive, got %s", c.Server.WriteTimeout)
	check(c.Server.ReadLimit > 0, "server.read_limit must be positive, got %d", c.Server.ReadLimit)
	check(c.Server.InputBuffer > 0, "server.input_buffer must be positive, got %d", c.Server.InputBuffer)

	check(c.Render.Margin >= 0, "render.margin must not be negative, got %v", c.Render.Margin)
	check(c.Render.FPS > 0, "render.fps must be positive, got %d", c.Render.FPS)

	if c.Audio.Enabled {
		check(c.Audio.SampleRate > 0, "audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
		check(c.Audio.ToneHz > 0, "audio.tone_hz must be positive, got %v", c.Audio.ToneHz)
	}
	return errors.Join(errs...)
}

// LoadYAML decodes YAML on top of Default and validates the result.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml config: %w", err)
	}
	return c, c.Validate()
}

// LoadJSON decodes JSON on top of Default and validates the result.
func LoadJSON(r io.Reader) (*Config, error) {
	c := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json config: %w", err)
	}
	return c, c.Validate()
}

// LoadFile picks the decoder from the file extension.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".json":
		return LoadJSON(f)
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q", ErrInvalidConfig, ext)
	}
}
