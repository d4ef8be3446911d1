package entity

import (
	"github.com/annel0/voxel-sim/internal/physics"
)

// Пороги поводка в блоках, сравнение строгое
const (
	LeashFollowDistance = 4.0  // дальше моб идёт к держателю
	LeashPullDistance   = 6.0  // дальше действует притяжение
	LeashBreakDistance  = 10.0 // дальше поводок рвётся
	leashFollowSpeed    = 1.0
)

// LeashResult описывает итог проверки поводка за тик
type LeashResult struct {
	Detached  bool // поводок отвязан
	DropLeash bool // поводок нужно выбросить предметом
}

// LeashTo привязывает моба к держателю
func (m *Mob) LeashTo(holder uint64) {
	m.leashHolder = holder
	m.leashed = true
}

// Unleash отвязывает моба без выброса поводка
func (m *Mob) Unleash() {
	m.leashHolder = 0
	m.leashed = false
}

// LeashHolder возвращает держателя поводка
func (m *Mob) LeashHolder() (uint64, bool) {
	return m.leashHolder, m.leashed
}

func (m *Mob) updateLeash(w WorldAPI) LeashResult {
	if !m.leashed {
		return LeashResult{}
	}

	holder, ok := w.EntityByID(m.leashHolder)
	if !ok || !holder.Alive() {
		return m.detachLeash(true)
	}

	delta := holder.Position().Sub(m.pos)
	f := delta.Len()

	if m.owner != 0 && m.sitting {
		if f > LeashBreakDistance {
			return m.detachLeash(true)
		}
		return LeashResult{}
	}

	if f > LeashFollowDistance {
		m.brain.Navigator.TryMoveTo(holder.Position(), leashFollowSpeed)
	}
	if f > LeashPullDistance {
		m.motion = m.motion.Add(physics.LeashPull(delta, f))
	}
	if f > LeashBreakDistance {
		return m.detachLeash(true)
	}
	return LeashResult{}
}

func (m *Mob) detachLeash(drop bool) LeashResult {
	m.Unleash()
	return LeashResult{Detached: true, DropLeash: drop}
}
