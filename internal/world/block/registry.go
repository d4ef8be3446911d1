package block

var registry = make(map[BlockID]Behavior)

// Register добавляет поведение блока в регистр.
// Повторная регистрация того же ID заменяет поведение.
func Register(behavior Behavior) {
	registry[behavior.ID()] = behavior
}

// Get возвращает поведение для указанного ID.
// Для незарегистрированного ID возвращается поведение по умолчанию.
func Get(id BlockID) Behavior {
	if behavior, exists := registry[id]; exists {
		return behavior
	}
	return unknownBehavior{id: id}
}

// IsRegistered проверяет, зарегистрирован ли ID блока
func IsRegistered(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// BlockID представляет идентификатор типа блока
type BlockID uint16

// Константы ID блоков
const (
	AirBlockID         BlockID = 0
	StoneBlockID       BlockID = 1
	GrassBlockID       BlockID = 2
	DirtBlockID        BlockID = 3
	CobblestoneBlockID BlockID = 4
	BedrockBlockID     BlockID = 7
	WaterBlockID       BlockID = 8
	LavaBlockID        BlockID = 10
	CoalOreBlockID     BlockID = 16
	LogBlockID         BlockID = 17
	SlabBlockID        BlockID = 44
	IceBlockID         BlockID = 79
	CactusBlockID      BlockID = 81
)

// Предметы, которые не являются блоками (начиная с 256)
const (
	CoalItemID = 263
)
