package world

import (
	"testing"

	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(777, 128, 64).GenerateChunk(vec.Vec2{X: 2, Z: -3})
	b := NewGenerator(777, 128, 64).GenerateChunk(vec.Vec2{X: 2, Z: -3})

	for y := 0; y < 128; y++ {
		for x := 0; x < ChunkSize; x++ {
			pos := vec.Vec3{X: x, Y: y, Z: 5}
			idA, metaA := a.GetBlock(pos)
			idB, metaB := b.GetBlock(pos)
			require.Equal(t, idA, idB)
			require.Equal(t, metaA, metaB)
		}
	}
}

func TestGeneratorColumns(t *testing.T) {
	g := NewGenerator(42, 128, 64)
	coords := vec.Vec2{X: 0, Z: 0}
	chunk := g.GenerateChunk(coords)
	origin := coords.Origin()

	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			bottom, _ := chunk.GetBlock(vec.Vec3{X: x, Y: 0, Z: z})
			assert.Equal(t, block.BedrockBlockID, bottom)

			surface := g.SurfaceHeight(origin.X+x, origin.Z+z)
			assert.GreaterOrEqual(t, surface, 1)
			assert.LessOrEqual(t, surface, 120)

			top, _ := chunk.GetBlock(vec.Vec3{X: x, Y: surface, Z: z})
			assert.NotEqual(t, block.AirBlockID, top)

			if surface < g.SeaLevel {
				water, _ := chunk.GetBlock(vec.Vec3{X: x, Y: g.SeaLevel, Z: z})
				assert.Equal(t, block.WaterBlockID, water)
				assert.Equal(t, BiomeOcean, g.BiomeAt(origin.X+x, origin.Z+z))
			}
		}
	}
}

func TestWorldUsesGenerator(t *testing.T) {
	w := New(42)
	assert.Equal(t, block.BedrockBlockID, w.BlockAt(vec.Vec3{X: 5, Y: 0, Z: 5}).ID())

	surface := w.Generator().SurfaceHeight(5, 5)
	assert.NotEqual(t, block.AirBlockID, w.BlockAt(vec.Vec3{X: 5, Y: surface, Z: 5}).ID())
}

func TestBiomeNames(t *testing.T) {
	assert.Equal(t, "forest", BiomeForest.String())
	assert.Equal(t, "ocean", BiomeOcean.String())
	assert.Equal(t, "unknown", BiomeType(99).String())
}
