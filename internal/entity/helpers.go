package entity

import (
	"math"

	worldentity "github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	maxTurnPerTick   = 30.0 // градусов за тик
	arrivalDistSq    = 2.5e-7
	stepUpHorizontal = 1.0
)

// JumpHelper хранит однократный флаг прыжка
type JumpHelper struct {
	jumping bool
}

// SetJumping просит моба прыгнуть в ближайшем тике
func (h *JumpHelper) SetJumping() {
	h.jumping = true
}

// ShouldJumpNow возвращает флаг и сбрасывает его
func (h *JumpHelper) ShouldJumpNow() bool {
	jump := h.jumping
	h.jumping = false
	return jump
}

// MoveHelper поворачивает моба к желаемой точке и задаёт намерение идти вперёд
type MoveHelper struct {
	mob    *worldentity.Mob
	jump   *JumpHelper
	wanted mgl64.Vec3
	speed  float64
	update bool
}

// NewMoveHelper создаёт помощника движения для моба
func NewMoveHelper(mob *worldentity.Mob, jump *JumpHelper) *MoveHelper {
	return &MoveHelper{mob: mob, jump: jump}
}

// SetWantedPosition задаёт точку, к которой моб пойдёт в этом тике
func (h *MoveHelper) SetWantedPosition(pos mgl64.Vec3, speed float64) {
	h.wanted = pos
	h.speed = speed
	h.update = true
}

// Update выполняется раз в тик после навигатора.
// Без новой цели намерение не обновляется и затухает само.
func (h *MoveHelper) Update() {
	if !h.update {
		return
	}
	h.update = false

	d := h.wanted.Sub(h.mob.Position())
	horizontalSq := d.X()*d.X() + d.Z()*d.Z()
	if horizontalSq < arrivalDistSq {
		h.mob.SetMoveIntent(0, 0)
		return
	}

	target := mgl64.RadToDeg(math.Atan2(-d.X(), d.Z()))
	h.mob.SetYaw(limitAngle(h.mob.Yaw(), target, maxTurnPerTick))
	h.mob.SetAIMoveSpeed(h.speed * h.mob.Info().MoveSpeed)
	h.mob.SetMoveIntent(0, 1)

	if h.mob.OnGround() && (h.mob.CollidedHorizontally() ||
		(d.Y() > 0 && horizontalSq < stepUpHorizontal)) {
		h.jump.SetJumping()
	}
}

// limitAngle поворачивает from к to не более чем на maxStep градусов
func limitAngle(from, to, maxStep float64) float64 {
	delta := math.Mod(to-from, 360)
	if delta >= 180 {
		delta -= 360
	}
	if delta < -180 {
		delta += 360
	}
	delta = math.Max(-maxStep, math.Min(maxStep, delta))
	return from + delta
}
