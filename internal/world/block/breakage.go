package block

import (
	"errors"
	"fmt"
)

// ErrInvalidEfficiency возвращается, когда инструмент сообщает неположительную эффективность
var ErrInvalidEfficiency = errors.New("block: некорректная эффективность инструмента")

// IsBreakable сообщает, можно ли вообще сломать блок
func (s *State) IsBreakable(_ Tool) bool {
	return s.Hardness() >= 0
}

// IsCompatibleWithTool проверяет, подходит ли инструмент для добычи блока
func (s *State) IsCompatibleWithTool(t Tool) bool {
	if s.Hardness() < 0 {
		return false
	}

	toolType := s.behavior.ToolType()
	harvestLevel := s.behavior.ToolHarvestLevel()
	return toolType == ToolTypeNone || harvestLevel == 0 ||
		(toolType&t.BlockToolType() != 0 && t.BlockToolHarvestLevel() >= harvestLevel)
}

// BreakTime возвращает время разрушения блока в секундах
func (s *State) BreakTime(t Tool) (float64, error) {
	base := s.Hardness()
	if s.IsCompatibleWithTool(t) {
		base *= 1.5
	} else {
		base *= 5
	}

	efficiency := t.MiningEfficiency(s)
	if efficiency <= 0 {
		return 0, fmt.Errorf("%w: %v для %s", ErrInvalidEfficiency, efficiency, s.Name())
	}

	return base / efficiency, nil
}

// Drops возвращает предметы, выпадающие при разрушении блока инструментом
func (s *State) Drops(t Tool) []ItemStack {
	if !s.IsCompatibleWithTool(t) {
		return nil
	}
	if s.behavior.AffectedBySilkTouch() && t.HasEnchantment(EnchantmentSilkTouch) {
		return s.behavior.SilkTouchDrops(s, t)
	}
	return s.behavior.DropsForCompatibleTool(s, t)
}

// XPDropForTool возвращает количество опыта за разрушение блока
func (s *State) XPDropForTool(t Tool) int {
	if t.HasEnchantment(EnchantmentSilkTouch) || !s.IsCompatibleWithTool(t) {
		return 0
	}
	return s.behavior.XPDropAmount()
}
