package vec

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 представляет целочисленную позицию блока в мире
type Vec3 struct {
	X int
	Y int
	Z int
}

// Floor возвращает блок, содержащий точку
func Floor(p mgl64.Vec3) Vec3 {
	return Vec3{
		X: int(math.Floor(p.X())),
		Y: int(math.Floor(p.Y())),
		Z: int(math.Floor(p.Z())),
	}
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Down возвращает позицию блока снизу
func (v Vec3) Down() Vec3 {
	return Vec3{X: v.X, Y: v.Y - 1, Z: v.Z}
}

// Up возвращает позицию блока сверху
func (v Vec3) Up() Vec3 {
	return Vec3{X: v.X, Y: v.Y + 1, Z: v.Z}
}

// Neighbours возвращает шесть соседних позиций (вниз, вверх, север, юг, запад, восток)
func (v Vec3) Neighbours() [6]Vec3 {
	return [6]Vec3{
		{X: v.X, Y: v.Y - 1, Z: v.Z},
		{X: v.X, Y: v.Y + 1, Z: v.Z},
		{X: v.X, Y: v.Y, Z: v.Z - 1},
		{X: v.X, Y: v.Y, Z: v.Z + 1},
		{X: v.X - 1, Y: v.Y, Z: v.Z},
		{X: v.X + 1, Y: v.Y, Z: v.Z},
	}
}

// Vec3 возвращает угол блока в виде вектора с плавающей точкой
func (v Vec3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Centre возвращает центр блока
func (v Vec3) Centre() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X) + 0.5, float64(v.Y) + 0.5, float64(v.Z) + 0.5}
}

// Pos конвертирует позицию в cube.Pos
func (v Vec3) Pos() cube.Pos {
	return cube.Pos{v.X, v.Y, v.Z}
}

// FromPos конвертирует cube.Pos в позицию
func FromPos(p cube.Pos) Vec3 {
	return Vec3{X: p[0], Y: p[1], Z: p[2]}
}
