package physics

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Gravity ускорение свободного падения за тик
	Gravity = 0.08
	// VerticalDrag сопротивление воздуха по вертикали
	VerticalDrag = 0.98
	// WaterDrag и LavaDrag сопротивление жидкостей
	WaterDrag = 0.8
	LavaDrag  = 0.5
	// LiquidSink скорость погружения в жидкости
	LiquidSink = 0.02
)

// StepResult результат перемещения бокса с учётом коллизий
type StepResult struct {
	Delta                mgl64.Vec3
	OnGround             bool
	CollidedHorizontally bool
	CollidedVertically   bool
}

// Clip сдвигает бокс на motion, обрезая перемещение по каждой оси о соседние боксы.
// Оси обрабатываются в порядке Y, X, Z.
func Clip(bb cube.BBox, motion mgl64.Vec3, nearby []cube.BBox) StepResult {
	dx, dy, dz := motion[0], motion[1], motion[2]

	for _, other := range nearby {
		dy = bb.YOffset(other, dy)
	}
	bb = bb.Translate(mgl64.Vec3{0, dy, 0})

	for _, other := range nearby {
		dx = bb.XOffset(other, dx)
	}
	bb = bb.Translate(mgl64.Vec3{dx, 0, 0})

	for _, other := range nearby {
		dz = bb.ZOffset(other, dz)
	}

	return StepResult{
		Delta:                mgl64.Vec3{dx, dy, dz},
		OnGround:             motion[1] < 0 && dy != motion[1],
		CollidedHorizontally: dx != motion[0] || dz != motion[2],
		CollidedVertically:   dy != motion[1],
	}
}

// ApplyDrag применяет гравитацию и сопротивление среды к скорости после перемещения
func ApplyDrag(motion mgl64.Vec3, env Environment) mgl64.Vec3 {
	switch {
	case env.InWater:
		motion = motion.Mul(WaterDrag)
		motion[1] -= LiquidSink
	case env.InLava:
		motion = motion.Mul(LavaDrag)
		motion[1] -= LiquidSink
	default:
		motion[1] = (motion[1] - Gravity) * VerticalDrag
		f := HorizontalDrag(env)
		motion[0] *= f
		motion[2] *= f
	}
	return motion
}
