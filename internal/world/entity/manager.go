package entity

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrEntityExists возвращается при повторном добавлении сущности с тем же ID
var ErrEntityExists = errors.New("entity: сущность с таким ID уже существует")

// EntityManager хранит живых мобов мира
type EntityManager struct {
	mobs         map[uint64]*Mob // Хранилище всех мобов
	order        []uint64        // ID по возрастанию, порядок тика
	nextEntityID uint64          // Счетчик для генерации ID
	mu           sync.RWMutex
}

// NewEntityManager создаёт новый менеджер сущностей
func NewEntityManager() *EntityManager {
	return &EntityManager{
		mobs:         make(map[uint64]*Mob),
		nextEntityID: 1,
	}
}

// NextID резервирует следующий свободный ID
func (em *EntityManager) NextID() uint64 {
	em.mu.Lock()
	defer em.mu.Unlock()

	id := em.nextEntityID
	em.nextEntityID++
	return id
}

// AddEntity добавляет уже созданного моба.
// Счётчик ID сдвигается, если ID выбран внешним кодом.
func (em *EntityManager) AddEntity(mob *Mob) error {
	em.mu.Lock()
	defer em.mu.Unlock()

	if _, exists := em.mobs[mob.ID()]; exists {
		return fmt.Errorf("%w: %d", ErrEntityExists, mob.ID())
	}

	em.mobs[mob.ID()] = mob
	idx, _ := slices.BinarySearch(em.order, mob.ID())
	em.order = slices.Insert(em.order, idx, mob.ID())

	if mob.ID() >= em.nextEntityID {
		em.nextEntityID = mob.ID() + 1
	}
	return nil
}

// DespawnEntity удаляет моба
func (em *EntityManager) DespawnEntity(entityID uint64) bool {
	em.mu.Lock()
	defer em.mu.Unlock()

	if _, exists := em.mobs[entityID]; !exists {
		return false
	}

	delete(em.mobs, entityID)
	if idx, found := slices.BinarySearch(em.order, entityID); found {
		em.order = slices.Delete(em.order, idx, idx+1)
	}
	return true
}

// GetEntity возвращает моба по ID
func (em *EntityManager) GetEntity(entityID uint64) (*Mob, bool) {
	em.mu.RLock()
	defer em.mu.RUnlock()

	mob, exists := em.mobs[entityID]
	return mob, exists
}

// Each обходит мобов в порядке возрастания ID.
// Обход идёт по снимку, поэтому fn может добавлять и удалять мобов.
func (em *EntityManager) Each(fn func(mob *Mob)) {
	em.mu.RLock()
	snapshot := make([]*Mob, 0, len(em.order))
	for _, id := range em.order {
		snapshot = append(snapshot, em.mobs[id])
	}
	em.mu.RUnlock()

	for _, mob := range snapshot {
		fn(mob)
	}
}

// Count возвращает число мобов
func (em *EntityManager) Count() int {
	em.mu.RLock()
	defer em.mu.RUnlock()
	return len(em.mobs)
}

// GetStats возвращает статистику по мобам
func (em *EntityManager) GetStats() map[string]interface{} {
	em.mu.RLock()
	defer em.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["total_entities"] = len(em.mobs)

	active := 0
	leashed := 0
	species := make(map[string]int)
	for _, mob := range em.mobs {
		if !mob.Immobile() && mob.Alive() {
			active++
		}
		if _, ok := mob.LeashHolder(); ok {
			leashed++
		}
		species[mob.Species().String()]++
	}
	stats["active_entities"] = active
	stats["leashed_entities"] = leashed
	stats["species"] = species

	return stats
}
