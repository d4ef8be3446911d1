package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// Варианты камня
const (
	StoneNormal uint8 = iota
	StoneGranite
	StonePolishedGranite
	StoneDiorite
	StonePolishedDiorite
	StoneAndesite
	StonePolishedAndesite
)

// StoneBehavior реализует поведение блока камня
type StoneBehavior struct {
	block.Base
}

func (StoneBehavior) ID() block.BlockID        { return block.StoneBlockID }
func (StoneBehavior) Name() string             { return "Stone" }
func (StoneBehavior) Hardness() float64        { return 1.5 }
func (StoneBehavior) ToolType() block.ToolType { return block.ToolTypePickaxe }
func (StoneBehavior) ToolHarvestLevel() int    { return 1 }

// DropsForCompatibleTool: обычный камень превращается в булыжник, остальные варианты выпадают как есть
func (StoneBehavior) DropsForCompatibleTool(s *block.State, _ block.Tool) []block.ItemStack {
	if s.Variant() == StoneNormal {
		return []block.ItemStack{{ID: int(block.CobblestoneBlockID), Count: 1}}
	}
	return []block.ItemStack{s.Item()}
}

// CobblestoneBehavior реализует поведение булыжника
type CobblestoneBehavior struct {
	block.Base
}

func (CobblestoneBehavior) ID() block.BlockID        { return block.CobblestoneBlockID }
func (CobblestoneBehavior) Name() string             { return "Cobblestone" }
func (CobblestoneBehavior) Hardness() float64        { return 2 }
func (CobblestoneBehavior) ToolType() block.ToolType { return block.ToolTypePickaxe }
func (CobblestoneBehavior) ToolHarvestLevel() int    { return 1 }

// BedrockBehavior реализует неразрушаемое основание мира
type BedrockBehavior struct {
	block.Base
}

func (BedrockBehavior) ID() block.BlockID { return block.BedrockBlockID }
func (BedrockBehavior) Name() string      { return "Bedrock" }
func (BedrockBehavior) Hardness() float64 { return -1 }
