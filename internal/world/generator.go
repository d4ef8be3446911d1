package world

import (
	"math/rand"

	"github.com/annel0/voxel-sim/internal/util"
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
	"github.com/annel0/voxel-sim/internal/world/block/implementations"
)

// BiomeType представляет тип биома
type BiomeType int

const (
	BiomePlains BiomeType = iota
	BiomeDesert
	BiomeForest
	BiomeMountains
	BiomeOcean
)

// String возвращает имя биома
func (b BiomeType) String() string {
	switch b {
	case BiomePlains:
		return "plains"
	case BiomeDesert:
		return "desert"
	case BiomeForest:
		return "forest"
	case BiomeMountains:
		return "mountains"
	case BiomeOcean:
		return "ocean"
	default:
		return "unknown"
	}
}

// Константы генерации
const (
	terrainAmplitude = 32   // Разброс высоты поверхности
	MountainStart    = 0.72 // Выше - горы
	snowLine         = 14   // Высота над уровнем моря, с которой горы покрыты льдом
	dirtDepth        = 3    // Толщина слоя земли
	coalChance       = 0.02
	graniteChance    = 0.05
)

// Generator генерирует ландшафт мира
type Generator struct {
	Seed          int64   // Сид для генерации шума
	Height        int     // Высота мира
	SeaLevel      int     // Уровень моря
	NoiseScale    float64 // Масштаб основного шума (высота)
	BiomeScale    float64 // Масштаб шума биомов
	ForestDensity float64 // Плотность лесов (от 0 до 1)

	heightNoise *util.Noise
	biomeNoise  *util.Noise
}

// NewGenerator создаёт новый генератор мира
func NewGenerator(seed int64, height, seaLevel int) *Generator {
	return &Generator{
		Seed:          seed,
		Height:        height,
		SeaLevel:      seaLevel,
		NoiseScale:    0.02, // Настройка сглаженности ландшафта
		BiomeScale:    0.01, // Настройка размера биомов
		ForestDensity: 0.05,
		heightNoise:   util.NewNoise(seed),
		biomeNoise:    util.NewNoise(seed + 42),
	}
}

// SurfaceHeight возвращает высоту поверхности колонки
func (g *Generator) SurfaceHeight(x, z int) int {
	h := g.heightNoise.Noise2D(float64(x)*g.NoiseScale, float64(z)*g.NoiseScale)
	surface := g.SeaLevel - terrainAmplitude/2 + int(h*terrainAmplitude)
	if h > MountainStart {
		// Горы поднимаются круче
		surface += int((h - MountainStart) * terrainAmplitude * 2)
	}
	if surface < 1 {
		surface = 1
	}
	if limit := g.Height - 8; surface > limit {
		surface = limit
	}
	return surface
}

// BiomeAt определяет биом колонки
func (g *Generator) BiomeAt(x, z int) BiomeType {
	h := g.heightNoise.Noise2D(float64(x)*g.NoiseScale, float64(z)*g.NoiseScale)
	if g.SurfaceHeight(x, z) < g.SeaLevel {
		return BiomeOcean
	}
	if h > MountainStart {
		return BiomeMountains
	}

	biomeValue := g.biomeNoise.Noise2D(float64(x)*g.BiomeScale, float64(z)*g.BiomeScale)
	switch {
	case biomeValue < 0.35:
		return BiomeDesert
	case biomeValue > 0.65:
		return BiomeForest
	default:
		return BiomePlains
	}
}

// GenerateChunk генерирует чанк по его координатам
func (g *Generator) GenerateChunk(coords vec.Vec2) *Chunk {
	chunk := NewChunk(coords, g.Height)

	// Для каждого чанка создаем уникальный сид на основе глобального сида и координат
	chunkSeed := g.Seed + int64(coords.X*31) + int64(coords.Z*17)
	rng := rand.New(rand.NewSource(chunkSeed))

	origin := coords.Origin()
	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			wx, wz := origin.X+x, origin.Z+z
			surface := g.SurfaceHeight(wx, wz)
			biome := g.BiomeAt(wx, wz)

			g.fillColumn(chunk, x, z, surface, biome, rng)
			g.decorate(chunk, x, z, surface, biome, rng)
		}
	}
	return chunk
}

// fillColumn заполняет колонку: бедрок, камень с рудой, земля, поверхность, вода
func (g *Generator) fillColumn(chunk *Chunk, x, z, surface int, biome BiomeType, rng *rand.Rand) {
	chunk.fill(vec.Vec3{X: x, Y: 0, Z: z}, block.BedrockBlockID, 0)

	for y := 1; y <= surface; y++ {
		pos := vec.Vec3{X: x, Y: y, Z: z}
		switch {
		case y == surface:
			chunk.fill(pos, g.surfaceBlock(surface, biome), 0)
		case y > surface-dirtDepth && biome != BiomeMountains:
			chunk.fill(pos, block.DirtBlockID, 0)
		default:
			r := rng.Float64()
			switch {
			case r < coalChance:
				chunk.fill(pos, block.CoalOreBlockID, 0)
			case r < coalChance+graniteChance:
				chunk.fill(pos, block.StoneBlockID, implementations.StoneGranite)
			default:
				chunk.fill(pos, block.StoneBlockID, implementations.StoneNormal)
			}
		}
	}

	for y := surface + 1; y <= g.SeaLevel; y++ {
		chunk.fill(vec.Vec3{X: x, Y: y, Z: z}, block.WaterBlockID, 0)
	}
}

// surfaceBlock возвращает верхний блок колонки для биома
func (g *Generator) surfaceBlock(surface int, biome BiomeType) block.BlockID {
	switch biome {
	case BiomeOcean:
		return block.DirtBlockID
	case BiomeMountains:
		if surface >= g.SeaLevel+snowLine {
			return block.IceBlockID
		}
		return block.StoneBlockID
	default:
		return block.GrassBlockID
	}
}

// decorate добавляет деревья и кактусы
func (g *Generator) decorate(chunk *Chunk, x, z, surface int, biome BiomeType, rng *rand.Rand) {
	switch {
	case biome == BiomeForest && rng.Float64() < 0.15: // 15% шанс дерева в лесу
		g.placeTree(chunk, x, z, surface, rng)
	case biome == BiomePlains && rng.Float64() < g.ForestDensity:
		g.placeTree(chunk, x, z, surface, rng)
	case biome == BiomeDesert && rng.Float64() < 0.02: // 2% шанс кактуса
		height := 1 + rng.Intn(3)
		for y := 1; y <= height; y++ {
			chunk.fill(vec.Vec3{X: x, Y: surface + y, Z: z}, block.CactusBlockID, 0)
		}
	}
}

// placeTree ставит ствол дерева высотой 4-6 блоков
func (g *Generator) placeTree(chunk *Chunk, x, z, surface int, rng *rand.Rand) {
	wood := implementations.WoodOak
	if rng.Intn(4) == 0 {
		wood = implementations.WoodBirch
	}
	trunk := block.MustNew(block.LogBlockID, wood)

	height := 4 + rng.Intn(3)
	for y := 1; y <= height; y++ {
		chunk.fill(vec.Vec3{X: x, Y: surface + y, Z: z}, block.LogBlockID, trunk.Damage())
	}
}
