package implementations

import (
	"github.com/annel0/voxel-sim/internal/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// AirBehavior реализует поведение пустой клетки
type AirBehavior struct {
	block.Base
}

func (AirBehavior) ID() block.BlockID { return block.AirBlockID }
func (AirBehavior) Name() string      { return "Air" }
func (AirBehavior) Hardness() float64 { return -1 }
func (AirBehavior) Solid() bool       { return false }
func (AirBehavior) Transparent() bool { return true }
func (AirBehavior) Replaceable() bool { return true }

// LocalBoxes возвращает пустой набор: сквозь воздух проходят и лучи, и сущности
func (AirBehavior) LocalBoxes(block.DynamicState) []cube.BBox {
	return nil
}
