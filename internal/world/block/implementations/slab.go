package implementations

import (
	"github.com/annel0/voxel-sim/internal/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// Материалы полублока (вариант, биты 0x7)
const (
	SlabStone uint8 = iota
	SlabSandstone
	SlabWooden
	SlabCobblestone
	SlabBrick
	SlabStoneBrick
	SlabQuartz
	SlabNetherBrick
)

// SlabState хранит положение полублока в клетке
type SlabState struct {
	Top bool
}

// WriteMeta кодирует верхнюю половину битом 0x8
func (s *SlabState) WriteMeta() uint8 {
	if s.Top {
		return 0x08
	}
	return 0
}

// ReadMeta восстанавливает положение полублока
func (s *SlabState) ReadMeta(meta uint8) {
	s.Top = meta&0x08 != 0
}

// SlabBehavior реализует поведение полублока
type SlabBehavior struct {
	block.Base
}

func (SlabBehavior) ID() block.BlockID                   { return block.SlabBlockID }
func (SlabBehavior) Name() string                        { return "Slab" }
func (SlabBehavior) StateBitmask() uint8                 { return 0x08 }
func (SlabBehavior) NewDynamicState() block.DynamicState { return &SlabState{} }
func (SlabBehavior) Hardness() float64                   { return 2 }
func (SlabBehavior) ToolType() block.ToolType            { return block.ToolTypePickaxe }
func (SlabBehavior) ToolHarvestLevel() int               { return 1 }
func (SlabBehavior) Transparent() bool                   { return true }

// LocalBoxes возвращает нижнюю или верхнюю половину куба
func (SlabBehavior) LocalBoxes(st block.DynamicState) []cube.BBox {
	if s, ok := st.(*SlabState); ok && s.Top {
		return []cube.BBox{cube.Box(0, 0.5, 0, 1, 1, 1)}
	}
	return []cube.BBox{cube.Box(0, 0, 0, 1, 0.5, 1)}
}
