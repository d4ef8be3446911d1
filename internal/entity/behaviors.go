package entity

import (
	"math"

	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
	worldentity "github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/go-gl/mathgl/mgl64"
)

// === Поведения передвижения ===

// SwimBehavior держит моба на поверхности жидкости
type SwimBehavior struct {
	mob   *worldentity.Mob
	world worldentity.WorldAPI
	jump  *JumpHelper
}

// NewSwimBehavior создаёт поведение плавания
func NewSwimBehavior(mob *worldentity.Mob, world worldentity.WorldAPI, jump *JumpHelper) *SwimBehavior {
	return &SwimBehavior{mob: mob, world: world, jump: jump}
}

func (b *SwimBehavior) ShouldExecute() bool {
	env := b.mob.Environment(b.world)
	return env.InWater || env.InLava
}

func (b *SwimBehavior) ContinueExecuting() bool { return b.ShouldExecute() }
func (b *SwimBehavior) Enter()                  {}
func (b *SwimBehavior) Exit()                   {}

func (b *SwimBehavior) Update() {
	if b.mob.Random().Float64() < 0.8 {
		b.jump.SetJumping()
	}
}

// WanderBehavior изредка уводит моба в случайную точку неподалёку
type WanderBehavior struct {
	mob    *worldentity.Mob
	nav    *StraightNavigator
	speed  float64
	chance int // среднее число тиков между прогулками
	radius int
}

// NewWanderBehavior создаёт поведение блуждания
func NewWanderBehavior(mob *worldentity.Mob, nav *StraightNavigator, speed float64) *WanderBehavior {
	return &WanderBehavior{
		mob:    mob,
		nav:    nav,
		speed:  speed,
		chance: 120,
		radius: 10,
	}
}

func (b *WanderBehavior) ShouldExecute() bool {
	r := b.mob.Random()
	if r.Intn(b.chance) != 0 {
		return false
	}

	pos := b.mob.Position()
	target := mgl64.Vec3{
		pos.X() + float64(r.Intn(2*b.radius+1)-b.radius),
		pos.Y(),
		pos.Z() + float64(r.Intn(2*b.radius+1)-b.radius),
	}
	return b.nav.TryMoveTo(target, b.speed)
}

func (b *WanderBehavior) ContinueExecuting() bool { return !b.nav.NoPath() }
func (b *WanderBehavior) Enter()                  {}
func (b *WanderBehavior) Update()                 {}
func (b *WanderBehavior) Exit()                   { b.nav.Stop() }

// LookAroundBehavior поворачивает голову в случайную сторону
type LookAroundBehavior struct {
	mob   *worldentity.Mob
	dir   mgl64.Vec3
	ticks int
}

// NewLookAroundBehavior создаёт поведение осматривания
func NewLookAroundBehavior(mob *worldentity.Mob) *LookAroundBehavior {
	return &LookAroundBehavior{mob: mob}
}

func (b *LookAroundBehavior) ShouldExecute() bool     { return b.mob.Random().Float64() < 0.02 }
func (b *LookAroundBehavior) ContinueExecuting() bool { return b.ticks > 0 }
func (b *LookAroundBehavior) Exit()                   {}

func (b *LookAroundBehavior) Enter() {
	r := b.mob.Random()
	angle := 2 * math.Pi * r.Float64()
	b.dir = mgl64.Vec3{math.Cos(angle), 0, math.Sin(angle)}
	b.ticks = 20 + r.Intn(20)
}

func (b *LookAroundBehavior) Update() {
	b.ticks--
	look := b.mob.EyePosition().Add(b.dir)
	b.mob.SetLookPosition(&look)
}

// EatGrassBehavior превращает траву под мобом в землю
type EatGrassBehavior struct {
	mob   *worldentity.Mob
	world worldentity.WorldAPI
	timer int
}

const eatGrassTicks = 40

// NewEatGrassBehavior создаёт поведение поедания травы
func NewEatGrassBehavior(mob *worldentity.Mob, world worldentity.WorldAPI) *EatGrassBehavior {
	return &EatGrassBehavior{mob: mob, world: world}
}

func (b *EatGrassBehavior) ShouldExecute() bool {
	if b.mob.Random().Intn(1000) != 0 {
		return false
	}
	return b.world.BlockAt(b.below()).ID() == block.GrassBlockID
}

func (b *EatGrassBehavior) ContinueExecuting() bool { return b.timer > 0 }
func (b *EatGrassBehavior) Enter()                  { b.timer = eatGrassTicks }
func (b *EatGrassBehavior) Exit()                   { b.timer = 0 }

func (b *EatGrassBehavior) Update() {
	b.timer--
	if b.timer != 4 {
		return
	}

	pos := b.below()
	if b.world.BlockAt(pos).ID() != block.GrassBlockID {
		return
	}
	if err := b.world.SetBlock(pos, block.MustNew(block.DirtBlockID, 0)); err != nil {
		logging.Warn("Моб %d не смог съесть траву в %v: %v", b.mob.ID(), pos, err)
	}
}

func (b *EatGrassBehavior) below() vec.Vec3 {
	return vec.Floor(b.mob.Position()).Down()
}

// === Поведения выбора цели ===

// FindNearestMobBehavior выбирает ближайшего видимого моба и смотрит на него
type FindNearestMobBehavior struct {
	mob    *worldentity.Mob
	world  World
	radius float64
	target *worldentity.Mob
	ticks  int
}

// NewFindNearestMobBehavior создаёт поведение поиска цели
func NewFindNearestMobBehavior(mob *worldentity.Mob, world World, radius float64) *FindNearestMobBehavior {
	return &FindNearestMobBehavior{mob: mob, world: world, radius: radius}
}

func (b *FindNearestMobBehavior) ShouldExecute() bool {
	if b.mob.Random().Float64() >= 0.02 {
		return false
	}

	b.target = nil
	best := math.Inf(1)
	for _, other := range b.world.EntitiesInRange(b.mob.Position(), b.radius) {
		if other.ID() == b.mob.ID() || !other.Alive() {
			continue
		}
		dist := other.Position().Sub(b.mob.Position()).LenSqr()
		if dist < best && b.mob.CanSeeEntity(other) {
			b.target, best = other, dist
		}
	}
	return b.target != nil
}

func (b *FindNearestMobBehavior) ContinueExecuting() bool {
	if b.target == nil || !b.target.Alive() || b.ticks <= 0 {
		return false
	}
	return b.target.Position().Sub(b.mob.Position()).Len() <= b.radius
}

func (b *FindNearestMobBehavior) Enter() { b.ticks = 40 + b.mob.Random().Intn(40) }
func (b *FindNearestMobBehavior) Exit()  { b.target = nil }

func (b *FindNearestMobBehavior) Update() {
	b.ticks--
	look := b.target.EyePosition()
	b.mob.SetLookPosition(&look)
}

// Target возвращает текущую цель
func (b *FindNearestMobBehavior) Target() *worldentity.Mob {
	return b.target
}
