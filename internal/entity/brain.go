package entity

import (
	worldentity "github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/go-gl/mathgl/mgl64"
)

// World расширяет WorldAPI поиском соседей
type World interface {
	worldentity.WorldAPI
	EntitiesInRange(center mgl64.Vec3, radius float64) []*worldentity.Mob
}

const (
	wanderSpeed    = 1.0
	watchRadius    = 8.0
	prioritySwim   = 0
	priorityWatch  = 1
	priorityEat    = 5
	priorityWander = 6
	priorityLook   = 8
)

// NewDefaultBrain собирает стандартный ИИ животного и подключает его к мобу
func NewDefaultBrain(mob *worldentity.Mob, world World) worldentity.Brain {
	jump := &JumpHelper{}
	move := NewMoveHelper(mob, jump)
	nav := NewStraightNavigator(mob, world, move)

	behaviors := NewPool()
	behaviors.Add(prioritySwim, NewSwimBehavior(mob, world, jump))
	switch mob.Species() {
	case worldentity.SpeciesCow, worldentity.SpeciesSheep:
		behaviors.Add(priorityEat, NewEatGrassBehavior(mob, world))
	}
	behaviors.Add(priorityWander, NewWanderBehavior(mob, nav, wanderSpeed))
	behaviors.Add(priorityLook, NewLookAroundBehavior(mob))

	targets := NewPool()
	targets.Add(priorityWatch, NewFindNearestMobBehavior(mob, world, watchRadius))

	brain := worldentity.Brain{
		Targets:    targets,
		Behaviors:  behaviors,
		Navigator:  nav,
		MoveHelper: move,
		JumpHelper: jump,
	}
	mob.SetBrain(brain)
	return brain
}
