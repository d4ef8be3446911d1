package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// CoalOreBehavior реализует угольную руду
type CoalOreBehavior struct {
	block.Base
}

func (CoalOreBehavior) ID() block.BlockID        { return block.CoalOreBlockID }
func (CoalOreBehavior) Name() string             { return "Coal Ore" }
func (CoalOreBehavior) Hardness() float64        { return 3 }
func (CoalOreBehavior) ToolType() block.ToolType { return block.ToolTypePickaxe }
func (CoalOreBehavior) ToolHarvestLevel() int    { return 1 }
func (CoalOreBehavior) XPDropAmount() int        { return 1 }

// DropsForCompatibleTool возвращает уголь
func (CoalOreBehavior) DropsForCompatibleTool(*block.State, block.Tool) []block.ItemStack {
	return []block.ItemStack{{ID: block.CoalItemID, Count: 1}}
}
