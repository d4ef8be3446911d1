package entity

import (
	"math"
	"math/rand"

	"github.com/annel0/voxel-sim/internal/physics"
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	jumpVelocity      = 0.42
	liquidJumpImpulse = 0.39
	jumpCooldown      = 10   // тиков между прыжками с земли
	moveIntentDecay   = 0.98 // затухание намерения движения за тик
	soundRollRange    = 1000
	liquidCheckHeight = 0.4000000238418579 // float32(0.4)
)

// Random источник случайности моба; *rand.Rand подходит
type Random interface {
	Intn(n int) int
	Float64() float64
}

// TickReport описывает, что произошло с мобом за тик
type TickReport struct {
	Ticked bool        // false, если моб неподвижен или мёртв
	Sound  bool        // был издан звук
	Leash  LeashResult // результат проверки поводка
}

// Mob представляет моба с ИИ
type Mob struct {
	id       uint64
	species  Species
	info     SpeciesInfo
	collider *physics.BoxCollider

	pos    mgl64.Vec3
	motion mgl64.Vec3
	yaw    float64 // градусы
	pitch  float64
	home   mgl64.Vec3

	onGround             bool
	collidedHorizontally bool
	immobile             bool
	alive                bool
	health               int

	brain Brain

	seen   map[uint64]struct{}
	unseen map[uint64]struct{}
	lookAt *mgl64.Vec3

	leashHolder uint64
	leashed     bool
	owner       uint64
	sitting     bool

	moveStrafing       float64
	moveForward        float64
	jumping            bool
	jumpTicks          int
	aiMoveSpeed        float64
	jumpMovementFactor float64

	livingSoundTime int
	ticksExisted    int

	rand Random
	fly  physics.FlyingFunc
}

// MobOption настраивает создаваемого моба
type MobOption func(*Mob)

// WithRandom задаёт источник случайности
func WithRandom(r Random) MobOption {
	return func(m *Mob) {
		m.rand = r
	}
}

// WithFlyingFunc подменяет примитив перевода намерения в скорость
func WithFlyingFunc(f physics.FlyingFunc) MobOption {
	return func(m *Mob) {
		m.fly = f
	}
}

// WithImmobile создаёт моба без ИИ
func WithImmobile(immobile bool) MobOption {
	return func(m *Mob) {
		m.immobile = immobile
	}
}

// WithHome задаёт домашнюю точку
func WithHome(home mgl64.Vec3) MobOption {
	return func(m *Mob) {
		m.home = home
	}
}

// NewMob создаёт моба указанного вида в позиции
func NewMob(id uint64, species Species, pos mgl64.Vec3, opts ...MobOption) *Mob {
	info := species.Info()
	m := &Mob{
		id:                 id,
		species:            species,
		info:               info,
		collider:           physics.NewBoxCollider(info.Width, info.Height),
		pos:                pos,
		home:               pos,
		alive:              true,
		health:             info.MaxHealth,
		brain:              idleBrain(),
		seen:               make(map[uint64]struct{}),
		unseen:             make(map[uint64]struct{}),
		aiMoveSpeed:        info.MoveSpeed,
		jumpMovementFactor: physics.JumpMovementFactor,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewSource(int64(id)))
	}
	if m.fly == nil {
		m.fly = m.applyRelative
	}
	return m
}

// SetBrain подключает ИИ-помощников; пустые поля заменяются бездействующими
func (m *Mob) SetBrain(b Brain) {
	fallback := idleBrain()
	if b.Targets == nil {
		b.Targets = fallback.Targets
	}
	if b.Behaviors == nil {
		b.Behaviors = fallback.Behaviors
	}
	if b.Navigator == nil {
		b.Navigator = fallback.Navigator
	}
	if b.MoveHelper == nil {
		b.MoveHelper = fallback.MoveHelper
	}
	if b.JumpHelper == nil {
		b.JumpHelper = fallback.JumpHelper
	}
	m.brain = b
}

// Tick выполняет один тик моба
func (m *Mob) Tick(w WorldAPI) TickReport {
	var report TickReport
	if m.immobile || !m.alive {
		return report
	}

	m.ticksExisted++

	if m.jumpTicks > 0 {
		m.jumpTicks--
	}

	m.brain.Targets.SelectAndRun()
	m.brain.Behaviors.SelectAndRun()
	m.brain.Navigator.Update()
	m.brain.MoveHelper.Update()

	m.clearSightCache()

	if m.lookAt != nil {
		m.faceTowards(*m.lookAt)
		m.lookAt = nil
	}

	m.jumping = m.brain.JumpHelper.ShouldJumpNow()
	env := m.Environment(w)
	if m.jumping {
		switch {
		case env.InWater:
			m.motion[1] += liquidJumpImpulse
		case env.InLava:
			m.motion[1] += liquidJumpImpulse
		case m.onGround && m.jumpTicks == 0:
			m.jump()
			m.motion[1] += physics.Gravity
			m.jumpTicks = jumpCooldown
		}
	}

	m.moveStrafing *= moveIntentDecay
	m.moveForward *= moveIntentDecay
	physics.MoveWithHeading(m, env, m.moveStrafing, m.moveForward)

	report.Leash = m.updateLeash(w)
	report.Sound = m.updateLivingSound(w)
	report.Ticked = true
	return report
}

func (m *Mob) jump() {
	m.motion[1] = jumpVelocity
}

// updateLivingSound накапливает счётчик и иногда издаёт звук.
// После звука счётчик уменьшается на интервал, перебор сохраняется.
func (m *Mob) updateLivingSound(w WorldAPI) bool {
	roll := m.rand.Intn(soundRollRange)
	threshold := m.livingSoundTime
	m.livingSoundTime++
	if roll >= threshold {
		return false
	}

	m.livingSoundTime -= m.info.TalkInterval
	w.Sounds().Emit(SoundEvent{
		Sound:    m.info.LivingSound,
		Position: m.EyePosition(),
		EntityID: m.id,
		Species:  m.info.Name,
	})
	return true
}

// Environment классифицирует окружение моба по миру
func (m *Mob) Environment(w WorldAPI) physics.Environment {
	feet := vec.Floor(m.pos)
	below := w.BlockAt(feet.Down())
	current := w.LiquidClassOf(w.BlockAt(feet))

	edge := m.pos.Add(mgl64.Vec3{0, liquidCheckHeight, 0})
	return physics.Environment{
		InWater:              current == block.LiquidWater,
		InLava:               current == block.LiquidLava,
		OnGround:             m.onGround,
		GroundFriction:       w.FrictionOf(below),
		CollidedHorizontally: m.collidedHorizontally,
		LiquidAbove:          w.LiquidClassOf(w.BlockAt(vec.Floor(edge))) != block.LiquidNone,
	}
}

// faceTowards поворачивает моба к точке
func (m *Mob) faceTowards(target mgl64.Vec3) {
	d := target.Sub(m.EyePosition())
	horizontal := math.Hypot(d.X(), d.Z())
	m.yaw = mgl64.RadToDeg(math.Atan2(-d.X(), d.Z()))
	m.pitch = -mgl64.RadToDeg(math.Atan2(d.Y(), horizontal))
}

func (m *Mob) applyRelative(strafe, forward, speed float64) {
	m.motion = m.motion.Add(physics.MoveRelative(strafe, forward, speed, m.yaw))
}

// ApplyStep переносит результат шага физики на моба
func (m *Mob) ApplyStep(res physics.StepResult, env physics.Environment) {
	m.pos = m.pos.Add(res.Delta)
	m.onGround = res.OnGround
	m.collidedHorizontally = res.CollidedHorizontally

	motion := m.motion
	if res.Delta.X() != motion.X() {
		motion[0] = 0
	}
	if res.CollidedVertically {
		motion[1] = 0
	}
	if res.Delta.Z() != motion.Z() {
		motion[2] = 0
	}
	env.OnGround = m.onGround
	m.motion = physics.ApplyDrag(motion, env)
}

// MoveFlying реализует physics.Body
func (m *Mob) MoveFlying(strafe, forward, speed float64) {
	m.fly(strafe, forward, speed)
}

// CanDespawn сообщает, можно ли убрать моба из мира
func (m *Mob) CanDespawn() bool {
	return !m.immobile && !m.leashed && m.owner == 0
}

// Kill помечает моба мёртвым
func (m *Mob) Kill() {
	m.alive = false
	m.health = 0
}

func (m *Mob) ID() uint64                  { return m.id }
func (m *Mob) Species() Species            { return m.species }
func (m *Mob) Info() SpeciesInfo           { return m.info }
func (m *Mob) Position() mgl64.Vec3        { return m.pos }
func (m *Mob) SetPosition(pos mgl64.Vec3)  { m.pos = pos }
func (m *Mob) Motion() mgl64.Vec3          { return m.motion }
func (m *Mob) SetMotion(motion mgl64.Vec3) { m.motion = motion }
func (m *Mob) Yaw() float64                { return m.yaw }
func (m *Mob) SetYaw(yaw float64)          { m.yaw = yaw }
func (m *Mob) Pitch() float64              { return m.pitch }
func (m *Mob) Home() mgl64.Vec3            { return m.home }
func (m *Mob) OnGround() bool              { return m.onGround }
func (m *Mob) SetOnGround(onGround bool)   { m.onGround = onGround }
func (m *Mob) Immobile() bool              { return m.immobile }
func (m *Mob) SetImmobile(immobile bool)   { m.immobile = immobile }
func (m *Mob) Alive() bool                 { return m.alive }
func (m *Mob) Health() int                 { return m.health }
func (m *Mob) Brain() Brain                { return m.brain }
func (m *Mob) Random() Random              { return m.rand }
func (m *Mob) TicksExisted() int           { return m.ticksExisted }
func (m *Mob) Jumping() bool               { return m.jumping }
func (m *Mob) JumpTicks() int              { return m.jumpTicks }
func (m *Mob) AIMoveSpeed() float64        { return m.aiMoveSpeed }
func (m *Mob) JumpMovementFactor() float64 { return m.jumpMovementFactor }

// SetAIMoveSpeed задаёт текущую скорость ходьбы
func (m *Mob) SetAIMoveSpeed(speed float64) {
	m.aiMoveSpeed = speed
}

// CollidedHorizontally сообщает, упёрся ли моб в стену на прошлом шаге
func (m *Mob) CollidedHorizontally() bool {
	return m.collidedHorizontally
}

// SetMoveIntent задаёт намерение движения (strafe, forward)
func (m *Mob) SetMoveIntent(strafe, forward float64) {
	m.moveStrafing = strafe
	m.moveForward = forward
}

// MoveIntent возвращает текущее намерение движения
func (m *Mob) MoveIntent() (strafe, forward float64) {
	return m.moveStrafing, m.moveForward
}

// SetLookPosition задаёт точку, к которой моб повернётся в следующем тике
func (m *Mob) SetLookPosition(pos *mgl64.Vec3) {
	m.lookAt = pos
}

// EyePosition возвращает позицию глаз
func (m *Mob) EyePosition() mgl64.Vec3 {
	return m.pos.Add(mgl64.Vec3{0, m.info.EyeHeight, 0})
}

// BBox возвращает текущий бокс моба
func (m *Mob) BBox() cube.BBox {
	return m.collider.BBoxAt(m.pos)
}

// Owner возвращает владельца прирученного моба
func (m *Mob) Owner() uint64 { return m.owner }

// SetOwner приручает моба
func (m *Mob) SetOwner(owner uint64) { m.owner = owner }

// Sitting сообщает, сидит ли прирученный моб
func (m *Mob) Sitting() bool { return m.sitting }

// SetSitting сажает или поднимает моба
func (m *Mob) SetSitting(sitting bool) { m.sitting = sitting }
