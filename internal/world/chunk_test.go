package world

import (
	"testing"

	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
)

func TestChunkCreateAndGetBlock(t *testing.T) {
	coords := vec.Vec2{X: 5, Z: 10}
	chunk := NewChunk(coords, 32)

	// Проверяем координаты
	if chunk.Coords.X != 5 || chunk.Coords.Z != 10 {
		t.Errorf("Ожидались координаты {5,10}, получено {%d,%d}", chunk.Coords.X, chunk.Coords.Z)
	}

	// Проверяем, что блоки инициализированы как пустые
	pos := vec.Vec3{X: 3, Y: 12, Z: 4}
	id, meta := chunk.GetBlock(pos)
	if id != block.AirBlockID || meta != 0 {
		t.Errorf("Ожидался воздух, получен %d:%d", id, meta)
	}

	// Устанавливаем и проверяем блок
	if !chunk.SetBlock(pos, block.LogBlockID, 0x05) {
		t.Fatal("SetBlock вернул false для позиции внутри чанка")
	}
	id, meta = chunk.GetBlock(pos)
	if id != block.LogBlockID || meta != 0x05 {
		t.Errorf("Ожидался LogBlockID:5, получен %d:%d", id, meta)
	}
}

func TestChunkBounds(t *testing.T) {
	chunk := NewChunk(vec.Vec2{}, 8)

	outside := []vec.Vec3{
		{X: -1, Y: 0, Z: 0},
		{X: 16, Y: 0, Z: 0},
		{X: 0, Y: 8, Z: 0},
		{X: 0, Y: -1, Z: 0},
		{X: 0, Y: 0, Z: 16},
	}
	for _, pos := range outside {
		if chunk.SetBlock(pos, block.StoneBlockID, 0) {
			t.Errorf("SetBlock(%v) должен вернуть false", pos)
		}
		if id, _ := chunk.GetBlock(pos); id != block.AirBlockID {
			t.Errorf("GetBlock(%v) вне чанка должен вернуть воздух", pos)
		}
	}
}

func TestChunkChanges(t *testing.T) {
	chunk := NewChunk(vec.Vec2{}, 8)

	chunk.SetBlock(vec.Vec3{X: 1, Y: 1, Z: 1}, block.StoneBlockID, 0)
	chunk.SetBlock(vec.Vec3{X: 1, Y: 1, Z: 1}, block.DirtBlockID, 0)
	chunk.SetBlock(vec.Vec3{X: 2, Y: 1, Z: 1}, block.DirtBlockID, 0)

	if chunk.ChangeCounter != 3 {
		t.Errorf("Ожидалось 3 изменения, получено %d", chunk.ChangeCounter)
	}

	if chunk.SetBlock(vec.Vec3{X: 1, Y: 8, Z: 1}, block.DirtBlockID, 0) {
		t.Error("Запись вне чанка должна быть отклонена")
	}
	if chunk.ChangeCounter != 3 {
		t.Errorf("Запись вне чанка не должна считаться изменением, получено %d", chunk.ChangeCounter)
	}
}

func TestChunkHighestBlock(t *testing.T) {
	chunk := NewChunk(vec.Vec2{}, 16)

	if y := chunk.HighestBlock(0, 0); y != -1 {
		t.Errorf("Пустая колонка: ожидалось -1, получено %d", y)
	}

	chunk.SetBlock(vec.Vec3{X: 0, Y: 3, Z: 0}, block.StoneBlockID, 0)
	chunk.SetBlock(vec.Vec3{X: 0, Y: 9, Z: 0}, block.GrassBlockID, 0)
	if y := chunk.HighestBlock(0, 0); y != 9 {
		t.Errorf("Ожидалась высота 9, получено %d", y)
	}
}
