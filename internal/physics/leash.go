package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LeashPullStrength множитель квадратичного притяжения поводка
const LeashPullStrength = 0.4

// LeashPull возвращает ускорение к держателю поводка.
// delta направлена от сущности к держателю, distance её длина.
func LeashPull(delta mgl64.Vec3, distance float64) mgl64.Vec3 {
	var pull mgl64.Vec3
	if distance <= 0 {
		return pull
	}
	for i := range pull {
		n := delta[i] / distance
		pull[i] = n * math.Abs(n) * LeashPullStrength
	}
	return pull
}
