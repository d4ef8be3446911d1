package world

import (
	"sync"

	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
)

// ChunkSize сторона чанка в блоках
const ChunkSize = 16

// Chunk представляет колонку мира 16x16 блоков на всю высоту
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в мире

	height int
	ids    []block.BlockID
	meta   []uint8

	ChangeCounter int          // Счетчик изменений после генерации
	Mu            sync.RWMutex // Мьютекс для безопасного доступа
}

// NewChunk создаёт пустой чанк (воздух) с указанными координатами и высотой
func NewChunk(coords vec.Vec2, height int) *Chunk {
	size := ChunkSize * ChunkSize * height
	return &Chunk{
		Coords:  coords,
		height:  height,
		ids:     make([]block.BlockID, size),
		meta:    make([]uint8, size),
	}
}

// Height возвращает высоту чанка
func (c *Chunk) Height() int {
	return c.height
}

// InBounds проверяет, что локальная позиция лежит внутри чанка
func (c *Chunk) InBounds(local vec.Vec3) bool {
	return local.X >= 0 && local.X < ChunkSize &&
		local.Z >= 0 && local.Z < ChunkSize &&
		local.Y >= 0 && local.Y < c.height
}

func (c *Chunk) index(local vec.Vec3) int {
	return (local.Y*ChunkSize+local.Z)*ChunkSize + local.X
}

// GetBlock возвращает ID и meta блока. Вне чанка возвращается воздух.
func (c *Chunk) GetBlock(local vec.Vec3) (block.BlockID, uint8) {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	if !c.InBounds(local) {
		return block.AirBlockID, 0
	}
	i := c.index(local)
	return c.ids[i], c.meta[i]
}

// SetBlock записывает блок и увеличивает счётчик изменений
func (c *Chunk) SetBlock(local vec.Vec3, id block.BlockID, meta uint8) bool {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	if !c.InBounds(local) {
		return false
	}
	i := c.index(local)
	c.ids[i] = id
	c.meta[i] = meta
	c.ChangeCounter++
	return true
}

// fill записывает блок без учёта изменений, используется генератором
func (c *Chunk) fill(local vec.Vec3, id block.BlockID, meta uint8) {
	if !c.InBounds(local) {
		return
	}
	i := c.index(local)
	c.ids[i] = id
	c.meta[i] = meta
}

// HighestBlock возвращает Y самого верхнего непустого блока колонки или -1
func (c *Chunk) HighestBlock(x, z int) int {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	if x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize {
		return -1
	}
	for y := c.height - 1; y >= 0; y-- {
		if c.ids[c.index(vec.Vec3{X: x, Y: y, Z: z})] != block.AirBlockID {
			return y
		}
	}
	return -1
}
