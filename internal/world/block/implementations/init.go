package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// Регистрируем все типы блоков при импорте пакета
func init() {
	// Базовые блоки
	block.Register(AirBehavior{})
	block.Register(StoneBehavior{})
	block.Register(CobblestoneBehavior{})
	block.Register(GrassBehavior{})
	block.Register(DirtBehavior{})
	block.Register(BedrockBehavior{})

	// Жидкости
	block.Register(WaterBehavior{})
	block.Register(LavaBehavior{})

	// Блоки с состоянием и особой геометрией
	block.Register(LogBehavior{})
	block.Register(SlabBehavior{})
	block.Register(CactusBehavior{})
	block.Register(IceBehavior{})

	// Руды
	block.Register(CoalOreBehavior{})
}
