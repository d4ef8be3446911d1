package item

import (
	"testing"

	"github.com/annel0/voxel-sim/internal/world/block"
	_ "github.com/annel0/voxel-sim/internal/world/block/implementations"
	"github.com/stretchr/testify/assert"
)

func TestTool_MiningEfficiency(t *testing.T) {
	stone := block.MustNew(block.StoneBlockID, 0)
	dirt := block.MustNew(block.DirtBlockID, 0)

	pickaxe := NewTool(block.ToolTypePickaxe, TierIron)
	assert.Equal(t, 6.0, pickaxe.MiningEfficiency(stone))
	assert.Equal(t, 1.0, pickaxe.MiningEfficiency(dirt), "чужой блок добывается как рукой")

	fast := NewTool(block.ToolTypePickaxe, TierIron)
	fast.Enchantments[block.EnchantmentEfficiency] = 2
	assert.Equal(t, 6.0+5, fast.MiningEfficiency(stone))

	assert.Equal(t, 1.0, Hand().MiningEfficiency(stone))
}

func TestTool_HarvestLevel(t *testing.T) {
	assert.Equal(t, 0, Hand().BlockToolHarvestLevel())
	assert.Equal(t, 4, NewTool(block.ToolTypeAxe, TierDiamond).BlockToolHarvestLevel())
	assert.Equal(t, block.ToolTypeShovel, NewTool(block.ToolTypeShovel, TierGold).BlockToolType())
}

func TestTool_Enchantments(t *testing.T) {
	tool := NewTool(block.ToolTypePickaxe, TierStone, block.EnchantmentSilkTouch)
	assert.True(t, tool.HasEnchantment(block.EnchantmentSilkTouch))
	assert.False(t, tool.HasEnchantment(block.EnchantmentFortune))
	assert.False(t, Hand().HasEnchantment(block.EnchantmentSilkTouch))
}
