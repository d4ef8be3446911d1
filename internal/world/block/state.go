package block

import (
	"errors"
	"fmt"

	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// ErrConstruction возвращается, когда вариант блока пересекается с маской состояния
var ErrConstruction = errors.New("block: некорректный вариант блока")

// Writer принимает зафиксированное состояние блока обратно в мир
type Writer interface {
	SetBlockRaw(pos vec.Vec3, id BlockID, meta uint8) error
}

// State представляет материализованный блок мира: тип, вариант и динамическое состояние.
// Коллизионная геометрия кэшируется и сбрасывается только через ReadStateFromWorld.
type State struct {
	id        BlockID
	variant   uint8
	name      string
	itemID    int
	hasItemID bool

	behavior Behavior
	dynamic  DynamicState

	pos        vec.Vec3
	positioned bool

	collisionBoxes []cube.BBox // nil, пока не вычислены
	boundingBox    cube.BBox
	hasBoundingBox bool
	boundingCached bool
}

// Option настраивает создаваемый блок
type Option func(*State)

// WithName задаёт запасное имя блока
func WithName(name string) Option {
	return func(s *State) {
		s.name = name
	}
}

// WithItemID задаёт ID предмета, в который превращается блок
func WithItemID(id int) Option {
	return func(s *State) {
		s.itemID = id
		s.hasItemID = true
	}
}

// New создаёт блок указанного типа и варианта.
// Вариант не должен пересекаться с маской состояния типа.
func New(id BlockID, variant uint8, opts ...Option) (*State, error) {
	behavior := Get(id)
	if mask := behavior.StateBitmask(); variant&mask != 0 {
		return nil, fmt.Errorf("%w: вариант 0x%x пересекается с маской состояния 0x%x (id=%d)",
			ErrConstruction, variant, mask, id)
	}

	s := &State{
		id:       id,
		variant:  variant,
		behavior: behavior,
		dynamic:  behavior.NewDynamicState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MustNew создаёт блок и паникует при ошибке конструирования
func MustNew(id BlockID, variant uint8, opts ...Option) *State {
	s, err := New(id, variant, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// FromMeta материализует блок из сохранённого значения meta
func FromMeta(id BlockID, meta uint8) *State {
	mask := Get(id).StateBitmask()
	s := MustNew(id, meta&^mask)
	s.ReadStateFromMeta(meta & mask)
	return s
}

// ID возвращает идентификатор типа блока
func (s *State) ID() BlockID {
	return s.id
}

// Variant возвращает неизменяемый вариант блока
func (s *State) Variant() uint8 {
	return s.variant
}

// Behavior возвращает поведение типа
func (s *State) Behavior() Behavior {
	return s.behavior
}

// Dynamic возвращает динамическое состояние блока
func (s *State) Dynamic() DynamicState {
	return s.dynamic
}

// Name возвращает имя блока
func (s *State) Name() string {
	if s.name != "" {
		return s.name
	}
	return s.behavior.Name()
}

// ItemID возвращает ID предмета для блока
func (s *State) ItemID() int {
	if s.hasItemID {
		return s.itemID
	}
	if s.id > 255 {
		return 255 - int(s.id)
	}
	return int(s.id)
}

// Item возвращает блок в виде предмета
func (s *State) Item() ItemStack {
	return ItemStack{ID: s.ItemID(), Meta: s.variant, Count: 1}
}

// StateBitmask возвращает маску динамического состояния типа
func (s *State) StateBitmask() uint8 {
	return s.behavior.StateBitmask()
}

// WriteStateToMeta проецирует динамическое состояние в биты meta
func (s *State) WriteStateToMeta() uint8 {
	return s.dynamic.WriteMeta()
}

// ReadStateFromMeta восстанавливает динамическое состояние из битов meta
func (s *State) ReadStateFromMeta(meta uint8) {
	s.dynamic.ReadMeta(meta)
}

// Damage возвращает полное значение meta: вариант плюс закодированное состояние
func (s *State) Damage() uint8 {
	stateMeta := s.WriteStateToMeta()
	if mask := s.StateBitmask(); stateMeta&^mask != 0 {
		panic(fmt.Sprintf("block: состояние 0x%x блока %s выходит за маску 0x%x", stateMeta, s.Name(), mask))
	}
	return s.variant | stateMeta
}

// ReadStateFromWorld вызывается при изменении блока или соседней клетки.
// Сбрасывает кэш коллизий и ограничивающего бокса.
func (s *State) ReadStateFromWorld() {
	s.collisionBoxes = nil
	s.boundingCached = false
	s.hasBoundingBox = false
}

// WriteStateToWorld записывает тип и meta блока обратно в мир
func (s *State) WriteStateToWorld(w Writer) error {
	if !s.positioned {
		return fmt.Errorf("block: блок %s не привязан к позиции", s.Name())
	}
	return w.SetBlockRaw(s.pos, s.id, s.Damage())
}

// SetPosition привязывает блок к позиции в мире.
// Кэш геометрии, вычисленный для старой позиции, сбрасывается.
func (s *State) SetPosition(pos vec.Vec3) {
	s.pos = pos
	s.positioned = true
	s.ReadStateFromWorld()
}

// Position возвращает позицию блока
func (s *State) Position() vec.Vec3 {
	return s.pos
}

// Positioned сообщает, привязан ли блок к позиции
func (s *State) Positioned() bool {
	return s.positioned
}

// IsSameType сравнивает тип и вариант
func (s *State) IsSameType(other *State) bool {
	return s.id == other.id && s.variant == other.variant
}

// IsSameState дополнительно сравнивает закодированное динамическое состояние
func (s *State) IsSameState(other *State) bool {
	return s.IsSameType(other) && s.WriteStateToMeta() == other.WriteStateToMeta()
}

// Friction возвращает коэффициент трения поверхности блока
func (s *State) Friction() float64 {
	return s.behavior.Friction()
}

// Liquid возвращает класс жидкости блока
func (s *State) Liquid() LiquidClass {
	return s.behavior.Liquid()
}

// Hardness возвращает твёрдость блока; отрицательное значение означает неразрушаемый блок
func (s *State) Hardness() float64 {
	return s.behavior.Hardness()
}

// BlastResistance возвращает сопротивление взрыву
func (s *State) BlastResistance() float64 {
	return s.Hardness() * 5
}

// IsSolid сообщает, является ли блок твёрдым
func (s *State) IsSolid() bool {
	return s.behavior.Solid()
}

// IsPassable сообщает, можно ли пройти сквозь блок
func (s *State) IsPassable() bool {
	return !s.IsSolid()
}

// IsTransparent сообщает, пропускает ли блок свет
func (s *State) IsTransparent() bool {
	return s.behavior.Transparent()
}

// CanBeReplaced сообщает, можно ли поставить блок поверх этого
func (s *State) CanBeReplaced() bool {
	return s.behavior.Replaceable()
}

// LightLevel возвращает уровень излучаемого света
func (s *State) LightLevel() int {
	return s.behavior.LightLevel()
}

func (s *State) String() string {
	return fmt.Sprintf("Block[%s] (%d:%d)", s.Name(), s.id, s.Damage())
}
