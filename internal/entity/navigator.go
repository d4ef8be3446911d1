package entity

import (
	"math"

	"github.com/annel0/voxel-sim/internal/vec"
	worldentity "github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/cube/trace"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	maxPathDistance = 16.0 // дальше цели не принимаются
	arrivalDistance = 0.5
	stuckTicks      = 60 // тиков без продвижения до сброса пути
	kneeHeight      = 0.5
)

// StraightNavigator ведёт моба по прямой без обхода препятствий.
// Цель, недостижимая по прямой, отклоняется сразу.
type StraightNavigator struct {
	mob   *worldentity.Mob
	world worldentity.WorldAPI
	move  *MoveHelper

	target  mgl64.Vec3
	speed   float64
	active  bool
	lastPos mgl64.Vec3
	stalled int
}

// NewStraightNavigator создаёт навигатор для моба
func NewStraightNavigator(mob *worldentity.Mob, world worldentity.WorldAPI, move *MoveHelper) *StraightNavigator {
	return &StraightNavigator{mob: mob, world: world, move: move}
}

// TryMoveTo задаёт новую цель; false, если цель слишком далеко или путь закрыт
func (n *StraightNavigator) TryMoveTo(target mgl64.Vec3, speed float64) bool {
	from := n.mob.Position()
	if target.Sub(from).Len() > maxPathDistance {
		return false
	}

	knee := mgl64.Vec3{0, kneeHeight, 0}
	if !n.IsClearBetweenPoints(from.Add(knee), target.Add(knee)) {
		return false
	}

	n.target = target
	n.speed = speed
	n.active = true
	n.lastPos = from
	n.stalled = 0
	return true
}

// Update продвигает моба к цели
func (n *StraightNavigator) Update() {
	if !n.active {
		return
	}

	pos := n.mob.Position()
	d := n.target.Sub(pos)
	if math.Hypot(d.X(), d.Z()) < arrivalDistance {
		n.Stop()
		return
	}

	if pos.Sub(n.lastPos).LenSqr() < 1e-6 {
		n.stalled++
		if n.stalled >= stuckTicks {
			n.Stop()
			return
		}
	} else {
		n.stalled = 0
		n.lastPos = pos
	}

	n.move.SetWantedPosition(n.target, n.speed)
}

// Stop сбрасывает текущий путь
func (n *StraightNavigator) Stop() {
	n.active = false
	n.stalled = 0
}

// NoPath сообщает, что активного пути нет
func (n *StraightNavigator) NoPath() bool {
	return !n.active
}

// Target возвращает текущую цель
func (n *StraightNavigator) Target() (mgl64.Vec3, bool) {
	return n.target, n.active
}

// IsClearBetweenPoints обходит все клетки, через которые проходит отрезок
// (воксельный обход Amanatides-Woo), и ищет пересечение с геометрией блоков.
func (n *StraightNavigator) IsClearBetweenPoints(a, b mgl64.Vec3) bool {
	if a.ApproxEqual(b) {
		return true
	}

	clear := true
	trace.TraverseBlocks(a, b, func(pos cube.Pos) bool {
		if _, hit := n.world.BlockAt(vec.FromPos(pos)).CalculateIntercept(a, b); hit {
			clear = false
		}
		return clear
	})
	return clear
}
