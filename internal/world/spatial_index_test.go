package world

import (
	"testing"

	worldentity "github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestSpatialIndexQueryAcrossCells(t *testing.T) {
	si := NewSpatialIndex(16)
	a := worldentity.NewMob(3, worldentity.SpeciesCow, mgl64.Vec3{-1, 64, -1})
	b := worldentity.NewMob(1, worldentity.SpeciesPig, mgl64.Vec3{1, 64, 1})
	c := worldentity.NewMob(2, worldentity.SpeciesSheep, mgl64.Vec3{50, 64, 50})
	si.Insert(a)
	si.Insert(b)
	si.Insert(c)

	got := si.QueryRange(mgl64.Vec3{0, 64, 0}, 3)
	assert.Equal(t, []*worldentity.Mob{b, a}, got)
	assert.Equal(t, 3, si.GetEntityCount())
	assert.Equal(t, 3, si.GetCellCount())
}

func TestSpatialIndexUpdateAndRemove(t *testing.T) {
	si := NewSpatialIndex(0)
	mob := worldentity.NewMob(1, worldentity.SpeciesCow, mgl64.Vec3{1, 64, 1})
	si.Insert(mob)

	mob.SetPosition(mgl64.Vec3{40, 64, 40})
	si.Update(mob)
	assert.Empty(t, si.QueryRange(mgl64.Vec3{0, 64, 0}, 5))
	assert.Len(t, si.QueryRange(mgl64.Vec3{40, 64, 40}, 1), 1)
	assert.Equal(t, 1, si.GetCellCount())

	si.Remove(mob.ID())
	assert.Equal(t, 0, si.GetEntityCount())
	assert.Equal(t, 0, si.GetCellCount())
	assert.Contains(t, si.GetStats(), "0 entities")
}
