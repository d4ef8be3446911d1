package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(id uint64) MobRecord {
	return MobRecord{
		ID:       id,
		Species:  "cow",
		Position: mgl64.Vec3{float64(id) + 0.5, 64, -3.25},
		Yaw:      45,
		Home:     mgl64.Vec3{0, 64, 0},
	}
}

// runRepoSuite проверяет общий контракт MobRepo
func runRepoSuite(t *testing.T, repo MobRepo) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		rec := sampleRecord(10)
		rec.NoAI = true
		rec.LeashHolder = 3
		require.NoError(t, repo.Save(ctx, rec))

		got, found, err := repo.Load(ctx, 10)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, rec, got)
	})

	t.Run("Load missing", func(t *testing.T) {
		_, found, err := repo.Load(ctx, 999)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("BatchSave and LoadAll ordered", func(t *testing.T) {
		require.NoError(t, repo.BatchSave(ctx, []MobRecord{sampleRecord(300), sampleRecord(2), sampleRecord(45)}))

		all, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		ids := make([]uint64, 0, len(all))
		for _, rec := range all {
			ids = append(ids, rec.ID)
		}
		assert.Equal(t, []uint64{2, 10, 45, 300}, ids)
	})

	t.Run("Invalid batch is rejected", func(t *testing.T) {
		err := repo.BatchSave(ctx, []MobRecord{sampleRecord(7), {ID: 0, Species: "cow"}})
		assert.Error(t, err)
		_, found, err := repo.Load(ctx, 7)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 2))
		_, found, err := repo.Load(ctx, 2)
		require.NoError(t, err)
		assert.False(t, found)

		err = repo.Delete(ctx, 2)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestMemoryMobRepo(t *testing.T) {
	repo := NewMemoryMobRepo()
	runRepoSuite(t, repo)
	assert.Equal(t, 3, repo.Count())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, repo.Save(ctx, sampleRecord(1)), context.Canceled)
}

func TestBadgerMobRepoInMemory(t *testing.T) {
	repo, err := NewBadgerMobRepo("")
	require.NoError(t, err)
	defer repo.Close()

	runRepoSuite(t, repo)
}

func TestBadgerMobRepoPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewBadgerMobRepo(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sampleRecord(5)))
	require.NoError(t, repo.Close())
	require.NoError(t, repo.Close())

	_, _, err = repo.Load(ctx, 5)
	assert.Error(t, err)

	reopened, err := NewBadgerMobRepo(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, found, err := reopened.Load(ctx, 5)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, sampleRecord(5), got)
}

func TestRedisMobRepo(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR не задан")
	}

	ctx := context.Background()
	repo, err := NewRedisMobRepo(ctx, &RedisConfig{Addr: addr, DB: 15, KeyPrefix: "test:mob:"})
	require.NoError(t, err)
	defer repo.Close()
	defer repo.client.FlushDB(ctx)

	runRepoSuite(t, repo)
}

func TestCodecRoundTrip(t *testing.T) {
	var c recordCodec
	defer c.Close()

	rec := sampleRecord(77)
	rec.Sitting = true
	rec.Owner = 9
	data, err := c.Encode(rec)
	require.NoError(t, err)

	got, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = c.Decode([]byte("not zstd"))
	assert.Error(t, err)
}

func TestRecordFromMob(t *testing.T) {
	m := entity.NewMob(4, entity.SpeciesSheep, mgl64.Vec3{1, 65, 2}, entity.WithImmobile(true))
	m.SetYaw(90)
	m.LeashTo(8)
	m.SetOwner(2)
	m.SetSitting(true)

	rec := RecordFromMob(m)
	assert.Equal(t, MobRecord{
		ID:          4,
		Species:     "sheep",
		Position:    mgl64.Vec3{1, 65, 2},
		Yaw:         90,
		NoAI:        true,
		Home:        mgl64.Vec3{1, 65, 2},
		LeashHolder: 8,
		Owner:       2,
		Sitting:     true,
	}, rec)

	restored, err := rec.ToMob()
	require.NoError(t, err)
	assert.Equal(t, rec, RecordFromMob(restored))

	_, err = MobRecord{ID: 1, Species: "dragon"}.ToMob()
	assert.Error(t, err)
}
