package block

// ToolType битовая маска категорий инструментов
type ToolType uint8

const (
	ToolTypeNone    ToolType = 0
	ToolTypeSword   ToolType = 1 << 0
	ToolTypeShovel  ToolType = 1 << 1
	ToolTypePickaxe ToolType = 1 << 2
	ToolTypeAxe     ToolType = 1 << 3
	ToolTypeShears  ToolType = 1 << 4
)

// Enchantment идентификатор зачарования инструмента
type Enchantment uint8

const (
	EnchantmentEfficiency Enchantment = 15
	EnchantmentSilkTouch  Enchantment = 16
	EnchantmentFortune    Enchantment = 18
)

// Tool описывает инструмент, которым ломают блок
type Tool interface {
	// BlockToolType возвращает категории, к которым относится инструмент
	BlockToolType() ToolType
	// BlockToolHarvestLevel возвращает уровень добычи инструмента
	BlockToolHarvestLevel() int
	// MiningEfficiency возвращает множитель скорости добычи, ожидается > 0
	MiningEfficiency(s *State) float64
	HasEnchantment(e Enchantment) bool
}

// ItemStack описывает выпавший предмет
type ItemStack struct {
	ID    int   `json:"id"`
	Meta  uint8 `json:"meta"`
	Count int   `json:"count"`
}
