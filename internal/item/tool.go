package item

import "github.com/annel0/voxel-sim/internal/world/block"

// Tier уровень материала инструмента
type Tier struct {
	Name         string
	HarvestLevel int
	Efficiency   float64
}

// Уровни инструментов
var (
	TierWood    = Tier{Name: "wooden", HarvestLevel: 1, Efficiency: 2}
	TierGold    = Tier{Name: "golden", HarvestLevel: 1, Efficiency: 12}
	TierStone   = Tier{Name: "stone", HarvestLevel: 2, Efficiency: 4}
	TierIron    = Tier{Name: "iron", HarvestLevel: 3, Efficiency: 6}
	TierDiamond = Tier{Name: "diamond", HarvestLevel: 4, Efficiency: 8}
)

// Tool описывает инструмент в руке
type Tool struct {
	Type         block.ToolType
	Tier         Tier
	Enchantments map[block.Enchantment]int // Зачарование -> уровень
}

// NewTool создаёт инструмент указанного типа и уровня
func NewTool(toolType block.ToolType, tier Tier, enchantments ...block.Enchantment) *Tool {
	t := &Tool{
		Type:         toolType,
		Tier:         tier,
		Enchantments: make(map[block.Enchantment]int, len(enchantments)),
	}
	for _, e := range enchantments {
		t.Enchantments[e] = 1
	}
	return t
}

// Hand возвращает пустую руку
func Hand() *Tool {
	return &Tool{Type: block.ToolTypeNone}
}

// BlockToolType возвращает категорию инструмента
func (t *Tool) BlockToolType() block.ToolType {
	return t.Type
}

// BlockToolHarvestLevel возвращает уровень добычи; рука и не-инструменты дают 0
func (t *Tool) BlockToolHarvestLevel() int {
	if t.Type == block.ToolTypeNone {
		return 0
	}
	return t.Tier.HarvestLevel
}

// MiningEfficiency возвращает множитель скорости добычи блока.
// Бонус уровня и зачарования применяются, только если инструмент подходит блоку.
func (t *Tool) MiningEfficiency(s *block.State) float64 {
	efficiency := 1.0
	if t.Type != block.ToolTypeNone && s.Behavior().ToolType()&t.Type != 0 {
		efficiency = t.Tier.Efficiency
		if level := t.Enchantments[block.EnchantmentEfficiency]; level > 0 {
			efficiency += float64(level*level + 1)
		}
	}
	return efficiency
}

// HasEnchantment проверяет наличие зачарования
func (t *Tool) HasEnchantment(e block.Enchantment) bool {
	return t.Enchantments[e] > 0
}
