package implementations

import (
	"github.com/annel0/voxel-sim/internal/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// LiquidState хранит уровень растекания и признак падающего потока
type LiquidState struct {
	Decay   uint8 // 0 - источник, 7 - самый тонкий слой
	Falling bool
}

// WriteMeta кодирует состояние жидкости в биты 0x7 и 0x8
func (s *LiquidState) WriteMeta() uint8 {
	meta := s.Decay & 0x07
	if s.Falling {
		meta |= 0x08
	}
	return meta
}

// ReadMeta восстанавливает состояние жидкости
func (s *LiquidState) ReadMeta(meta uint8) {
	s.Decay = meta & 0x07
	s.Falling = meta&0x08 != 0
}

// liquid содержит общие свойства всех жидкостей
type liquid struct {
	block.Base
}

func (liquid) StateBitmask() uint8                 { return 0x0F }
func (liquid) NewDynamicState() block.DynamicState { return &LiquidState{} }
func (liquid) Hardness() float64                   { return 100 }
func (liquid) Solid() bool                         { return false }
func (liquid) Transparent() bool                   { return true }
func (liquid) Replaceable() bool                   { return true }

// LocalBoxes возвращает пустой набор: жидкость не останавливает движение
func (liquid) LocalBoxes(block.DynamicState) []cube.BBox {
	return nil
}

// DropsForCompatibleTool: жидкость ничего не роняет
func (liquid) DropsForCompatibleTool(*block.State, block.Tool) []block.ItemStack {
	return nil
}

// SilkTouchDrops: жидкость ничего не роняет
func (liquid) SilkTouchDrops(*block.State, block.Tool) []block.ItemStack {
	return nil
}

// WaterBehavior реализует поведение воды (класс жидкости A)
type WaterBehavior struct {
	liquid
}

func (WaterBehavior) ID() block.BlockID         { return block.WaterBlockID }
func (WaterBehavior) Name() string              { return "Water" }
func (WaterBehavior) Liquid() block.LiquidClass { return block.LiquidWater }

// LavaBehavior реализует поведение лавы (класс жидкости B)
type LavaBehavior struct {
	liquid
}

func (LavaBehavior) ID() block.BlockID         { return block.LavaBlockID }
func (LavaBehavior) Name() string              { return "Lava" }
func (LavaBehavior) Liquid() block.LiquidClass { return block.LiquidLava }
func (LavaBehavior) LightLevel() int           { return 15 }
