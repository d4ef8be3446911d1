package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// DirtBehavior реализует поведение блока земли
type DirtBehavior struct {
	block.Base
}

func (DirtBehavior) ID() block.BlockID        { return block.DirtBlockID }
func (DirtBehavior) Name() string             { return "Dirt" }
func (DirtBehavior) Hardness() float64        { return 0.5 }
func (DirtBehavior) ToolType() block.ToolType { return block.ToolTypeShovel }

// GrassBehavior реализует поведение блока травы
type GrassBehavior struct {
	block.Base
}

func (GrassBehavior) ID() block.BlockID        { return block.GrassBlockID }
func (GrassBehavior) Name() string             { return "Grass" }
func (GrassBehavior) Hardness() float64        { return 0.6 }
func (GrassBehavior) ToolType() block.ToolType { return block.ToolTypeShovel }

// DropsForCompatibleTool: без шёлкового касания трава превращается в землю
func (GrassBehavior) DropsForCompatibleTool(*block.State, block.Tool) []block.ItemStack {
	return []block.ItemStack{{ID: int(block.DirtBlockID), Count: 1}}
}
