package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// JumpMovementFactor управляет движением в воздухе
	JumpMovementFactor = 0.02
	// LiquidSpeed базовый коэффициент скорости в жидкости
	LiquidSpeed = 0.02
	// AirFriction коэффициент трения воздуха
	AirFriction = 0.91
	// LiquidEdgeBump вертикальная скорость при упоре в край жидкости
	LiquidEdgeBump = 0.3

	landSpeedBase   = 0.16277136
	maxDepthStrider = 3.0
	minMoveInput    = 1.0e-4
)

// FlyingFunc переводит намерение движения (strafe, forward) и коэффициент скорости
// в приращение скорости с учётом текущего поворота.
type FlyingFunc func(strafe, forward, speed float64)

// Environment описывает окружение сущности на текущий тик
type Environment struct {
	InWater              bool
	InLava               bool
	OnGround             bool
	GroundFriction       float64 // трение блока под ногами
	CollidedHorizontally bool
	LiquidAbove          bool // жидкость в клетке на 0.4 выше ног
	DepthStrider         float64
}

// Body представляет тело, которым управляет интегратор
type Body interface {
	AIMoveSpeed() float64
	JumpMovementFactor() float64
	Motion() mgl64.Vec3
	SetMotion(motion mgl64.Vec3)
	MoveFlying(strafe, forward, speed float64)
}

// MoveWithHeading применяет намерение движения к телу в зависимости от окружения
func MoveWithHeading(b Body, env Environment, strafe, forward float64) {
	switch {
	case env.InWater:
		speed := LiquidSpeed
		depth := math.Min(env.DepthStrider, maxDepthStrider)
		if !env.OnGround {
			depth *= 0.5
		}
		if depth > 0 {
			speed += (b.AIMoveSpeed() - speed) * depth / maxDepthStrider
		}
		b.MoveFlying(strafe, forward, speed)

	case env.InLava:
		b.MoveFlying(strafe, forward, LiquidSpeed)
		if env.CollidedHorizontally && env.LiquidAbove {
			motion := b.Motion()
			motion[1] = LiquidEdgeBump
			b.SetMotion(motion)
		}

	default:
		b.MoveFlying(strafe, forward, SpeedFactor(env, b.AIMoveSpeed(), b.JumpMovementFactor()))
	}
}

// HorizontalDrag возвращает множитель горизонтального трения
func HorizontalDrag(env Environment) float64 {
	if env.OnGround {
		return env.GroundFriction * AirFriction
	}
	return AirFriction
}

// SpeedFactor возвращает коэффициент скорости на суше.
// На земле он зависит от трения блока, в воздухе равен airFactor.
func SpeedFactor(env Environment, moveSpeed, airFactor float64) float64 {
	if !env.OnGround {
		return airFactor
	}
	f := HorizontalDrag(env)
	return landSpeedBase / (f * f * f) * moveSpeed
}

// MoveRelative переводит намерение движения в горизонтальное приращение скорости.
// yawDeg задаётся в градусах, нулевой поворот смотрит вдоль +Z.
func MoveRelative(strafe, forward, speed, yawDeg float64) mgl64.Vec3 {
	f := strafe*strafe + forward*forward
	if f < minMoveInput {
		return mgl64.Vec3{}
	}

	f = math.Max(math.Sqrt(f), 1)
	f = speed / f
	strafe *= f
	forward *= f

	sin, cos := math.Sincos(mgl64.DegToRad(yawDeg))
	return mgl64.Vec3{
		strafe*cos - forward*sin,
		0,
		forward*cos + strafe*sin,
	}
}
