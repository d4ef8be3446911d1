package entity

import (
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// BehaviorPool выбирает и выполняет не более одного активного поведения за тик
type BehaviorPool interface {
	SelectAndRun()
}

// Navigator ведёт сущность по пути к цели
type Navigator interface {
	// Update продвигает сущность по текущему пути
	Update()

	// IsClearBetweenPoints проверяет прямую видимость между точками
	IsClearBetweenPoints(a, b mgl64.Vec3) bool

	// TryMoveTo строит путь к цели; false, если цель недостижима
	TryMoveTo(target mgl64.Vec3, speed float64) bool
}

// MoveHelper поворачивает сущность к текущей точке пути
type MoveHelper interface {
	Update()
}

// JumpHelper решает, нужно ли прыгать в этом тике
type JumpHelper interface {
	ShouldJumpNow() bool
}

// SoundEvent описывает позиционированный звук сущности
type SoundEvent struct {
	Sound    string     `json:"sound"`
	Position mgl64.Vec3 `json:"position"`
	EntityID uint64     `json:"entity_id"`
	Species  string     `json:"species"`
}

// SoundSink принимает звуковые события
type SoundSink interface {
	Emit(event SoundEvent)
}

// WorldAPI предоставляет сущностям доступ к миру
type WorldAPI interface {
	// BlockAt возвращает материализованный блок; пустые клетки возвращаются как воздух
	BlockAt(pos vec.Vec3) *block.State

	// SetBlock ставит блок и инвалидирует геометрию клетки и соседей
	SetBlock(pos vec.Vec3, state *block.State) error

	// FrictionOf возвращает трение поверхности блока
	FrictionOf(state *block.State) float64

	// LiquidClassOf возвращает класс жидкости блока
	LiquidClassOf(state *block.State) block.LiquidClass

	// EntityByID ищет живую сущность по идентификатору
	EntityByID(id uint64) (*Mob, bool)

	// Sounds возвращает приёмник звуков
	Sounds() SoundSink
}

// Brain объединяет ИИ-помощников сущности
type Brain struct {
	Targets    BehaviorPool // выбор цели, выполняется первым
	Behaviors  BehaviorPool // передвижение
	Navigator  Navigator
	MoveHelper MoveHelper
	JumpHelper JumpHelper
}

// idleBrain возвращает мозг, который ничего не делает
func idleBrain() Brain {
	return Brain{
		Targets:    idle{},
		Behaviors:  idle{},
		Navigator:  idle{},
		MoveHelper: idle{},
		JumpHelper: idle{},
	}
}

type idle struct{}

func (idle) SelectAndRun()                             {}
func (idle) Update()                                   {}
func (idle) IsClearBetweenPoints(_, _ mgl64.Vec3) bool { return true }
func (idle) TryMoveTo(mgl64.Vec3, float64) bool        { return false }
func (idle) ShouldJumpNow() bool                       { return false }
