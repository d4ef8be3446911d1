package vec

// Vec2 представляет координаты колонки чанка (X, Z)
type Vec2 struct {
	X, Z int
}

// ChunkOf возвращает координаты чанка, содержащего блок
func ChunkOf(pos Vec3) Vec2 {
	return Vec2{X: pos.X >> 4, Z: pos.Z >> 4} // Деление на 16
}

// LocalInChunk возвращает локальные координаты блока внутри чанка
func LocalInChunk(pos Vec3) (x, z int) {
	return pos.X & 0xF, pos.Z & 0xF // Модуль 16
}

// Origin возвращает мировые координаты угла чанка
func (v Vec2) Origin() Vec3 {
	return Vec3{X: v.X << 4, Z: v.Z << 4}
}
