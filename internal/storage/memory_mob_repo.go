package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryMobRepo реализует MobRepo в памяти.
// Используется как fallback, когда внешнее хранилище недоступно,
// или для CI/локальной разработки.
// ВНИМАНИЕ: Данные теряются при перезапуске сервера!
type MemoryMobRepo struct {
	mu   sync.RWMutex
	data map[uint64]MobRecord
}

// NewMemoryMobRepo создает новый репозиторий мобов в памяти.
func NewMemoryMobRepo() *MemoryMobRepo {
	return &MemoryMobRepo{
		data: make(map[uint64]MobRecord),
	}
}

// Save сохраняет моба в памяти.
func (r *MemoryMobRepo) Save(ctx context.Context, rec MobRecord) error {
	if err := rec.validate(); err != nil {
		return err
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[rec.ID] = rec
	return nil
}

// Load загружает моба из памяти.
func (r *MemoryMobRepo) Load(ctx context.Context, id uint64) (MobRecord, bool, error) {
	if err := checkContext(ctx); err != nil {
		return MobRecord{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.data[id]
	return rec, exists, nil
}

// LoadAll возвращает все записи по возрастанию ID.
func (r *MemoryMobRepo) LoadAll(ctx context.Context) ([]MobRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := make([]MobRecord, 0, len(r.data))
	for _, rec := range r.data {
		recs = append(recs, rec)
	}
	sortByID(recs)
	return recs, nil
}

// Delete удаляет моба из памяти.
func (r *MemoryMobRepo) Delete(ctx context.Context, id uint64) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[id]; !exists {
		return fmt.Errorf("%w: моб %d", ErrNotFound, id)
	}

	delete(r.data, id)
	return nil
}

// BatchSave сохраняет нескольких мобов в памяти.
func (r *MemoryMobRepo) BatchSave(ctx context.Context, recs []MobRecord) error {
	if len(recs) == 0 {
		return nil // Нечего сохранять
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	// Валидация всех записей перед сохранением
	for _, rec := range recs {
		if err := rec.validate(); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range recs {
		r.data[rec.ID] = rec
	}
	return nil
}

// Count возвращает количество сохраненных мобов (для отладки).
func (r *MemoryMobRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Close ничего не делает
func (r *MemoryMobRepo) Close() error { return nil }

func sortByID(recs []MobRecord) {
	slices.SortFunc(recs, func(a, b MobRecord) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
