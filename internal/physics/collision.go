package physics

import (
	"math"

	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// BoxCollider представляет коллайдер сущности, центрированный по горизонтали
type BoxCollider struct {
	Width  float64 // Ширина в блоках
	Height float64 // Высота в блоках
}

// NewBoxCollider создаёт новый коллайдер с указанными размерами
func NewBoxCollider(width, height float64) *BoxCollider {
	return &BoxCollider{
		Width:  width,
		Height: height,
	}
}

// BBoxAt возвращает бокс коллайдера для позиции ног сущности
func (bc *BoxCollider) BBoxAt(feet mgl64.Vec3) cube.BBox {
	half := bc.Width / 2
	return cube.Box(
		feet.X()-half, feet.Y(), feet.Z()-half,
		feet.X()+half, feet.Y()+bc.Height, feet.Z()+half,
	)
}

// CellsInBox возвращает все клетки сетки, которых касается бокс.
// Порядок обхода детерминирован: Y, затем X, затем Z.
func CellsInBox(bb cube.BBox) []vec.Vec3 {
	minPos, maxPos := bb.Min(), bb.Max()
	minX, maxX := int(math.Floor(minPos.X())), int(math.Floor(maxPos.X()))
	minY, maxY := int(math.Floor(minPos.Y())), int(math.Floor(maxPos.Y()))
	minZ, maxZ := int(math.Floor(minPos.Z())), int(math.Floor(maxPos.Z()))

	cells := make([]vec.Vec3, 0, (maxX-minX+1)*(maxY-minY+1)*(maxZ-minZ+1))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				cells = append(cells, vec.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	return cells
}
