package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutPath(t *testing.T) {
	t.Setenv("GAME_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
world:
  seed: 99
  height: 256
  tick_rate: 10
storage:
  backend: badger
  path: /tmp/mobs
mobs:
  species: [cow]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.World.Seed)
	assert.Equal(t, 256, cfg.World.Height)
	assert.Equal(t, 64, cfg.World.SeaLevel)
	assert.Equal(t, 10, cfg.World.GetTickRate())
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, []string{"cow"}, cfg.Mobs.Species)
	assert.Equal(t, "voxel-sim", cfg.Observability.ServiceName)
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  seed: 7\n"), 0o644))
	t.Setenv("GAME_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.World.Seed)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: mongo\n"), 0o644))

	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.World.Height = 100
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))

	cfg = Default()
	cfg.World.SeaLevel = 500
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("GAME_METRICS_PORT", "9100")
	t.Setenv("GAME_TICK_RATE", "")

	obs := ObservabilityConfig{}
	assert.Equal(t, 9100, obs.GetMetricsPort())
	obs.MetricsPort = 2200
	assert.Equal(t, 2200, obs.GetMetricsPort())

	w := WorldConfig{}
	assert.Equal(t, 20, w.GetTickRate())

	t.Setenv("GAME_METRICS_PORT", "nope")
	assert.Equal(t, 2112, (&ObservabilityConfig{}).GetMetricsPort())
}

func TestDurations(t *testing.T) {
	e := EventBusConfig{Retention: 2}
	assert.Equal(t, 2*time.Hour, e.RetentionDuration())

	s := StorageConfig{}
	assert.Equal(t, time.Minute, s.SaveInterval())
	s.SaveEverySecs = 5
	assert.Equal(t, 5*time.Second, s.SaveInterval())
}
