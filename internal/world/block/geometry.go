package block

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/cube/trace"
	"github.com/go-gl/mathgl/mgl64"
)

// CollisionBoxes возвращает коллизионные боксы блока в мировых координатах.
// Результат кэшируется до следующего ReadStateFromWorld.
func (s *State) CollisionBoxes() []cube.BBox {
	if s.collisionBoxes == nil {
		local := s.behavior.LocalBoxes(s.dynamic)
		offset := s.pos.Vec3()

		boxes := make([]cube.BBox, 0, len(local))
		for _, bb := range local {
			boxes = append(boxes, bb.Translate(offset))
		}
		s.collisionBoxes = boxes
	}
	return s.collisionBoxes
}

// BoundingBox возвращает ограничивающий бокс блока.
// false означает, что у блока нет геометрии.
func (s *State) BoundingBox() (cube.BBox, bool) {
	if !s.boundingCached {
		local := s.behavior.LocalBoxes(s.dynamic)
		if len(local) > 0 {
			bb := local[0]
			for _, other := range local[1:] {
				bb = union(bb, other)
			}
			s.boundingBox = bb.Translate(s.pos.Vec3())
			s.hasBoundingBox = true
		}
		s.boundingCached = true
	}
	return s.boundingBox, s.hasBoundingBox
}

// CollidesWith проверяет пересечение бокса с любым коллизионным боксом блока
func (s *State) CollidesWith(bb cube.BBox) bool {
	for _, box := range s.CollisionBoxes() {
		if bb.IntersectsWith(box) {
			return true
		}
	}
	return false
}

// CalculateIntercept находит ближайшее к p1 пересечение отрезка p1-p2 с боксами блока.
// При равных расстояниях побеждает бокс, встретившийся первым.
func (s *State) CalculateIntercept(p1, p2 mgl64.Vec3) (trace.BBoxResult, bool) {
	var (
		hit      trace.BBoxResult
		found    bool
		distance float64
	)

	for _, bb := range s.CollisionBoxes() {
		next, ok := trace.BBoxIntercept(bb, p1, p2)
		if !ok {
			continue
		}

		nextDistance := next.Position().Sub(p1).LenSqr()
		if !found || nextDistance < distance {
			hit, distance, found = next, nextDistance, true
		}
	}

	return hit, found
}

func union(a, b cube.BBox) cube.BBox {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	return cube.Box(
		min(amin.X(), bmin.X()), min(amin.Y(), bmin.Y()), min(amin.Z(), bmin.Z()),
		max(amax.X(), bmax.X()), max(amax.Y(), bmax.Y()), max(amax.Z(), bmax.Z()),
	)
}
