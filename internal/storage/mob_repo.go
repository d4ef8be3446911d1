package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrNotFound возвращается, когда запись моба отсутствует
var ErrNotFound = errors.New("storage: запись не найдена")

// MobRecord сохраняемое состояние моба
type MobRecord struct {
	ID          uint64     `json:"id"`
	Species     string     `json:"species"`
	Position    mgl64.Vec3 `json:"position"`
	Yaw         float64    `json:"yaw"`
	NoAI        bool       `json:"no_ai"`
	Home        mgl64.Vec3 `json:"home"`
	LeashHolder uint64     `json:"leash_holder,omitempty"`
	Owner       uint64     `json:"owner,omitempty"`
	Sitting     bool       `json:"sitting,omitempty"`
}

// MobRepo определяет интерфейс для сохранения и загрузки мобов.
type MobRepo interface {
	// Save сохраняет моба, перезаписывая прежнюю запись
	Save(ctx context.Context, rec MobRecord) error

	// Load загружает моба; false, если записи нет
	Load(ctx context.Context, id uint64) (MobRecord, bool, error)

	// LoadAll возвращает все записи по возрастанию ID
	LoadAll(ctx context.Context) ([]MobRecord, error)

	// Delete удаляет запись; ErrNotFound, если её нет
	Delete(ctx context.Context, id uint64) error

	// BatchSave сохраняет несколько мобов одной операцией (для автосохранения)
	BatchSave(ctx context.Context, recs []MobRecord) error

	Close() error
}

// RecordFromMob снимает сохраняемое состояние моба
func RecordFromMob(m *entity.Mob) MobRecord {
	rec := MobRecord{
		ID:       m.ID(),
		Species:  m.Species().String(),
		Position: m.Position(),
		Yaw:      m.Yaw(),
		NoAI:     m.Immobile(),
		Home:     m.Home(),
		Owner:    m.Owner(),
		Sitting:  m.Sitting(),
	}
	if holder, ok := m.LeashHolder(); ok {
		rec.LeashHolder = holder
	}
	return rec
}

// ToMob восстанавливает моба из записи
func (r MobRecord) ToMob(opts ...entity.MobOption) (*entity.Mob, error) {
	species, err := entity.ParseSpecies(r.Species)
	if err != nil {
		return nil, fmt.Errorf("моб %d: %w", r.ID, err)
	}

	opts = append([]entity.MobOption{
		entity.WithImmobile(r.NoAI),
		entity.WithHome(r.Home),
	}, opts...)
	m := entity.NewMob(r.ID, species, r.Position, opts...)
	m.SetYaw(r.Yaw)
	m.SetOwner(r.Owner)
	m.SetSitting(r.Sitting)
	if r.LeashHolder != 0 {
		m.LeashTo(r.LeashHolder)
	}
	return m, nil
}

// validate проверяет запись перед сохранением
func (r MobRecord) validate() error {
	if r.ID == 0 {
		return fmt.Errorf("недействительный ID моба: %d", r.ID)
	}
	if r.Species == "" {
		return fmt.Errorf("моб %d: не указан вид", r.ID)
	}
	return nil
}

// checkContext проверяет контекст на отмену
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
