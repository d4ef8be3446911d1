package world

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/go-gl/mathgl/mgl64"
)

// SpatialIndex представляет пространственный индекс для быстрого поиска мобов.
// Мобы раскладываются по ячейкам сетки XZ по позиции ног.
type SpatialIndex struct {
	cellSize float64
	cells    map[cellKey]map[uint64]*entity.Mob
	entities map[uint64]cellKey
	mu       sync.RWMutex
}

// cellKey представляет ключ ячейки в пространственной сетке
type cellKey struct {
	x, z int
}

// NewSpatialIndex создаёт новый пространственный индекс
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = ChunkSize // Размер чанка по умолчанию
	}

	return &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[uint64]*entity.Mob),
		entities: make(map[uint64]cellKey),
	}
}

func (si *SpatialIndex) keyFor(pos mgl64.Vec3) cellKey {
	return cellKey{
		x: int(math.Floor(pos.X() / si.cellSize)),
		z: int(math.Floor(pos.Z() / si.cellSize)),
	}
}

// Insert добавляет моба в индекс
func (si *SpatialIndex) Insert(mob *entity.Mob) {
	si.mu.Lock()
	defer si.mu.Unlock()
	si.insertLocked(mob)
}

func (si *SpatialIndex) insertLocked(mob *entity.Mob) {
	key := si.keyFor(mob.Position())
	cell, ok := si.cells[key]
	if !ok {
		cell = make(map[uint64]*entity.Mob)
		si.cells[key] = cell
	}
	cell[mob.ID()] = mob
	si.entities[mob.ID()] = key
}

// Update переносит моба в ячейку его текущей позиции
func (si *SpatialIndex) Update(mob *entity.Mob) {
	si.mu.Lock()
	defer si.mu.Unlock()

	old, exists := si.entities[mob.ID()]
	if exists && old == si.keyFor(mob.Position()) {
		return
	}
	if exists {
		si.removeLocked(mob.ID(), old)
	}
	si.insertLocked(mob)
}

// Remove удаляет моба из индекса
func (si *SpatialIndex) Remove(entityID uint64) {
	si.mu.Lock()
	defer si.mu.Unlock()

	if key, exists := si.entities[entityID]; exists {
		si.removeLocked(entityID, key)
	}
}

func (si *SpatialIndex) removeLocked(entityID uint64, key cellKey) {
	delete(si.entities, entityID)
	if cell, exists := si.cells[key]; exists {
		delete(cell, entityID)
		if len(cell) == 0 {
			delete(si.cells, key)
		}
	}
}

// QueryRange возвращает мобов в радиусе от точки, упорядоченных по ID
func (si *SpatialIndex) QueryRange(center mgl64.Vec3, radius float64) []*entity.Mob {
	minKey := si.keyFor(center.Sub(mgl64.Vec3{radius, 0, radius}))
	maxKey := si.keyFor(center.Add(mgl64.Vec3{radius, 0, radius}))
	radiusSq := radius * radius

	si.mu.RLock()
	var result []*entity.Mob
	for x := minKey.x; x <= maxKey.x; x++ {
		for z := minKey.z; z <= maxKey.z; z++ {
			for _, mob := range si.cells[cellKey{x: x, z: z}] {
				if mob.Position().Sub(center).LenSqr() <= radiusSq {
					result = append(result, mob)
				}
			}
		}
	}
	si.mu.RUnlock()

	slices.SortFunc(result, func(a, b *entity.Mob) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		}
		return 0
	})
	return result
}

// GetCellCount возвращает количество активных ячеек
func (si *SpatialIndex) GetCellCount() int {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return len(si.cells)
}

// GetEntityCount возвращает количество индексированных мобов
func (si *SpatialIndex) GetEntityCount() int {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return len(si.entities)
}

// GetStats возвращает статистику индекса
func (si *SpatialIndex) GetStats() string {
	si.mu.RLock()
	defer si.mu.RUnlock()

	maxPerCell := 0
	for _, cell := range si.cells {
		if len(cell) > maxPerCell {
			maxPerCell = len(cell)
		}
	}

	avg := 0.0
	if len(si.cells) > 0 {
		avg = float64(len(si.entities)) / float64(len(si.cells))
	}
	return fmt.Sprintf("SpatialIndex Stats: %d entities, %d cells, avg %.2f entities/cell, max %d entities/cell",
		len(si.entities), len(si.cells), avg, maxPerCell)
}
