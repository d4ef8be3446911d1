package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// IceBehavior реализует скользкий лёд
type IceBehavior struct {
	block.Base
}

func (IceBehavior) ID() block.BlockID        { return block.IceBlockID }
func (IceBehavior) Name() string             { return "Ice" }
func (IceBehavior) Hardness() float64        { return 0.5 }
func (IceBehavior) ToolType() block.ToolType { return block.ToolTypePickaxe }
func (IceBehavior) Friction() float64        { return 0.98 }
func (IceBehavior) Transparent() bool        { return true }

// DropsForCompatibleTool: лёд выпадает только с шёлковым касанием
func (IceBehavior) DropsForCompatibleTool(*block.State, block.Tool) []block.ItemStack {
	return nil
}
