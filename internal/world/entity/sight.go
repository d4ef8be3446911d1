package entity

// CanSeeEntity проверяет прямую видимость цели.
// Результат запоминается до конца тика.
func (m *Mob) CanSeeEntity(target *Mob) bool {
	id := target.ID()
	if _, ok := m.seen[id]; ok {
		return true
	}
	if _, ok := m.unseen[id]; ok {
		return false
	}

	visible := m.brain.Navigator.IsClearBetweenPoints(m.EyePosition(), target.EyePosition())
	if visible {
		m.seen[id] = struct{}{}
	} else {
		m.unseen[id] = struct{}{}
	}
	return visible
}

func (m *Mob) clearSightCache() {
	clear(m.seen)
	clear(m.unseen)
}
