package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/observability/log"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.InDelta(t, 1.0/120, c.Dt(), 1e-12)
	assert.Equal(t, log.LevelInfo, c.LogLevel())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	src := `
log:
  level: debug
simulation:
  demo: golf
  tick_rate: 60
  duration: 2s
server:
  write_timeout: 250ms
`
	c, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, log.LevelDebug, c.LogLevel())
	assert.Equal(t, "golf", c.Simulation.Demo)
	assert.Equal(t, 60, c.Simulation.TickRate)
	assert.Equal(t, 2*time.Second, c.Simulation.Duration.Std())
	assert.Equal(t, 250*time.Millisecond, c.Server.WriteTimeout.Std())
	// untouched fields keep their defaults
	assert.Equal(t, 4, c.Simulation.Substeps)
	assert.Equal(t, "127.0.0.1:8080", c.Server.ListenAddr)
}

func TestLoadJSON(t *testing.T) {
	c, err := LoadJSON(strings.NewReader(`{"render":{"margin":5,"fps":60},"audio":{"enabled":false}}`))
	require.NoError(t, err)
	assert.Equal(t, 5.0, c.Render.Margin)
	assert.Equal(t, 60, c.Render.FPS)
	assert.False(t, c.Audio.Enabled)

	_, err = LoadJSON(strings.NewReader(`{"bogus":1}`))
	require.Error(t, err)

	_, err = LoadJSON(strings.NewReader(`{"server":{"write_timeout":5}}`))
	require.Error(t, err)
}

func TestEmptyDocumentYieldsDefaults(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestValidateJoinsErrors(t *testing.T) {
	c := Default()
	c.Log.Level = "loud"
	c.Simulation.TickRate = 0
	c.Render.Margin = -1
	c.Server.WriteTimeout = 0

	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	msg := err.Error()
	assert.Contains(t, msg, "log.level")
	assert.Contains(t, msg, "simulation.tick_rate")
	assert.Contains(t, msg, "render.margin")
	assert.Contains(t, msg, "server.write_timeout")

	c = Default()
	c.Audio.Enabled = false
	c.Audio.SampleRate = 0
	assert.NoError(t, c.Validate(), "audio settings are ignored when disabled")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "physics.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("simulation:\n  scenes: 8\n"), 0o600))
	c, err := LoadFile(yml)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Simulation.Scenes)

	js := filepath.Join(dir, "physics.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"simulation":{"substeps":2}}`), 0o600))
	c, err = LoadFile(js)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Simulation.Substeps)

	txt := filepath.Join(dir, "physics.toml")
	require.NoError(t, os.WriteFile(txt, nil, 0o600))
	_, err = LoadFile(txt)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
