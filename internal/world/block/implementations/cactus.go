package implementations

import (
	"github.com/annel0/voxel-sim/internal/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// CactusState хранит возраст кактуса (биты 0xF)
type CactusState struct {
	Age uint8
}

func (s *CactusState) WriteMeta() uint8    { return s.Age & 0x0F }
func (s *CactusState) ReadMeta(meta uint8) { s.Age = meta & 0x0F }

// CactusBehavior описывает кактус. Его коллизия уже клетки на 1/16 с каждой
// стороны и ниже на 1/16, поэтому сущность, стоящая вплотную, касается его.
type CactusBehavior struct {
	block.Base
}

func (CactusBehavior) ID() block.BlockID                   { return block.CactusBlockID }
func (CactusBehavior) Name() string                        { return "Cactus" }
func (CactusBehavior) StateBitmask() uint8                 { return 0x0F }
func (CactusBehavior) NewDynamicState() block.DynamicState { return &CactusState{} }
func (CactusBehavior) Hardness() float64                   { return 0.4 }
func (CactusBehavior) Transparent() bool                   { return true }

// LocalBoxes возвращает суженный бокс кактуса
func (CactusBehavior) LocalBoxes(block.DynamicState) []cube.BBox {
	const inset = 1.0 / 16
	return []cube.BBox{cube.Box(inset, 0, inset, 1-inset, 1-inset, 1-inset)}
}
