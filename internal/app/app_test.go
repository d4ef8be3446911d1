package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/annel0/voxel-sim/internal/config"
	"github.com/annel0/voxel-sim/internal/eventbus"
	"github.com/annel0/voxel-sim/internal/storage"
	worldentity "github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Observability.MetricsPort = -1
	cfg.Logging.Dir = t.TempDir()
	cfg.Mobs.SpawnCount = 6
	cfg.Mobs.SpawnRadius = 8
	return cfg
}

func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	return a
}

func TestNewSpawnsMobs(t *testing.T) {
	a := newApp(t, testConfig(t))
	defer a.Close(context.Background())

	assert.Equal(t, 6, a.World().Entities().Count())

	counts := make(map[worldentity.Species]int)
	a.World().Entities().Each(func(mob *worldentity.Mob) {
		counts[mob.Species()]++
		assert.GreaterOrEqual(t, mob.Position().X(), -8.0)
		assert.LessOrEqual(t, mob.Position().X(), 9.0)
	})
	assert.Equal(t, 2, counts[worldentity.SpeciesCow])
	assert.Equal(t, 2, counts[worldentity.SpeciesSheep])
	assert.Equal(t, 1, counts[worldentity.SpeciesChicken])
	assert.Equal(t, 1, counts[worldentity.SpeciesPig])
}

func TestNewRejectsUnknownSpecies(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mobs.Species = []string{"dragon"}

	_, err := New(context.Background(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSaveAndRestoreWithBadger(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Backend = "badger"
	cfg.Storage.Path = t.TempDir()
	ctx := context.Background()

	a := newApp(t, cfg)
	for i := 0; i < 10; i++ {
		require.NoError(t, a.World().Tick(ctx))
	}
	want := make(map[uint64]storage.MobRecord)
	a.World().Entities().Each(func(mob *worldentity.Mob) {
		want[mob.ID()] = storage.RecordFromMob(mob)
	})
	require.NoError(t, a.Close(ctx))

	cfg.Mobs.SpawnCount = 0
	restored := newApp(t, cfg)
	defer restored.Close(ctx)

	require.Equal(t, len(want), restored.World().Entities().Count())
	restored.World().Entities().Each(func(mob *worldentity.Mob) {
		assert.Equal(t, want[mob.ID()], storage.RecordFromMob(mob))
	})
}

func TestSaveDeletesRemovedMobs(t *testing.T) {
	a := newApp(t, testConfig(t))
	ctx := context.Background()
	defer a.Close(ctx)

	require.NoError(t, a.Save(ctx))
	require.True(t, a.World().RemoveMob(1))
	require.NoError(t, a.Save(ctx))

	_, found, err := a.Repo().Load(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	recs, err := a.Repo().LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 5)
}

func TestRunTicksUntilCancelled(t *testing.T) {
	a := newApp(t, testConfig(t))
	defer a.Close(context.Background())

	var started atomic.Int32
	_, err := a.Bus().Subscribe(context.Background(), eventbus.Filter{Types: []string{eventbus.EventWorldStarted}},
		func(context.Context, *eventbus.Envelope) { started.Add(1) })
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, a.Run(ctx))

	assert.Greater(t, a.World().CurrentTick(), uint64(0))
	assert.Eventually(t, func() bool { return started.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestMetricsRegistered(t *testing.T) {
	a := newApp(t, testConfig(t))
	defer a.Close(context.Background())

	require.NoError(t, a.World().Tick(context.Background()))

	families, err := a.Registry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["eventbus_messages_inflight"])
	assert.True(t, names["voxelsim_world_tick_duration_seconds"])
	assert.True(t, names["voxelsim_mobs_alive"])
}
