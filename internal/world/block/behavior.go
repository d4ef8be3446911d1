package block

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// LiquidClass классифицирует блок как среду для движения сущностей
type LiquidClass uint8

const (
	LiquidNone  LiquidClass = iota // Не жидкость
	LiquidWater                    // Класс A (вода)
	LiquidLava                     // Класс B (лава)
)

// String возвращает строковое представление класса жидкости
func (c LiquidClass) String() string {
	switch c {
	case LiquidWater:
		return "water"
	case LiquidLava:
		return "lava"
	default:
		return "none"
	}
}

// DynamicState хранит изменяемое состояние конкретного блока (ориентация, возраст, форма).
// Биты, которые возвращает WriteMeta, обязаны укладываться в StateBitmask типа.
type DynamicState interface {
	WriteMeta() uint8
	ReadMeta(meta uint8)
}

// NoState используется типами без динамического состояния
type NoState struct{}

func (NoState) WriteMeta() uint8 { return 0 }
func (NoState) ReadMeta(uint8)   {}

// Behavior определяет поведение типа блока. Реализации регистрируются по ID
// и обычно встраивают Base, переопределяя только отличающиеся свойства.
type Behavior interface {
	ID() BlockID
	Name() string

	// StateBitmask возвращает биты meta, зарезервированные под динамическое состояние
	StateBitmask() uint8
	// NewDynamicState создаёт пустое динамическое состояние для нового экземпляра
	NewDynamicState() DynamicState

	Hardness() float64
	ToolType() ToolType
	ToolHarvestLevel() int
	Friction() float64
	Liquid() LiquidClass
	Solid() bool
	Transparent() bool
	Replaceable() bool
	LightLevel() int

	AffectedBySilkTouch() bool
	XPDropAmount() int

	// LocalBoxes возвращает коллизионные боксы в локальных координатах блока.
	// Пустой результат означает отсутствие коллизии.
	LocalBoxes(st DynamicState) []cube.BBox

	DropsForCompatibleTool(s *State, t Tool) []ItemStack
	SilkTouchDrops(s *State, t Tool) []ItemStack
}

// Base реализует поведение блока по умолчанию
type Base struct{}

func (Base) StateBitmask() uint8           { return 0 }
func (Base) NewDynamicState() DynamicState { return NoState{} }
func (Base) Hardness() float64             { return 10 }
func (Base) ToolType() ToolType            { return ToolTypeNone }
func (Base) ToolHarvestLevel() int         { return 0 }
func (Base) Friction() float64             { return 0.6 }
func (Base) Liquid() LiquidClass           { return LiquidNone }
func (Base) Solid() bool                   { return true }
func (Base) Transparent() bool             { return false }
func (Base) Replaceable() bool             { return false }
func (Base) LightLevel() int               { return 0 }
func (Base) AffectedBySilkTouch() bool     { return true }
func (Base) XPDropAmount() int             { return 0 }
func (Base) LocalBoxes(DynamicState) []cube.BBox {
	return []cube.BBox{FullCube()}
}

// DropsForCompatibleTool возвращает сам блок как предмет
func (Base) DropsForCompatibleTool(s *State, _ Tool) []ItemStack {
	return []ItemStack{s.Item()}
}

// SilkTouchDrops возвращает сам блок как предмет
func (Base) SilkTouchDrops(s *State, _ Tool) []ItemStack {
	return []ItemStack{s.Item()}
}

// FullCube возвращает единичный куб
func FullCube() cube.BBox {
	return cube.Box(0, 0, 0, 1, 1, 1)
}

// unknownBehavior используется для незарегистрированных ID
type unknownBehavior struct {
	Base
	id BlockID
}

func (b unknownBehavior) ID() BlockID  { return b.id }
func (b unknownBehavior) Name() string { return "Unknown" }
