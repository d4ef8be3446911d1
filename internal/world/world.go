package world

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/annel0/voxel-sim/internal/entity"
	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/annel0/voxel-sim/internal/observability"
	"github.com/annel0/voxel-sim/internal/physics"
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
	worldentity "github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrOutOfWorld возвращается при обращении к позиции за пределами высоты мира
	ErrOutOfWorld = errors.New("world: позиция вне мира")
	// ErrUnbreakable возвращается при попытке сломать неразрушимый блок
	ErrUnbreakable = errors.New("world: блок нельзя сломать")
	// ErrEntityExists возвращается при добавлении моба с занятым ID
	ErrEntityExists = worldentity.ErrEntityExists
)

// DefaultHeight высота мира по умолчанию
const DefaultHeight = 128

// World хранит блоки и мобов и выполняет тики симуляции
type World struct {
	seed            int64
	height          int
	generator       *Generator
	customGenerator bool

	chunks map[vec.Vec2]*Chunk
	states map[vec.Vec3]*block.State // Материализованные блоки
	mu     sync.RWMutex

	entities *worldentity.EntityManager
	index    *SpatialIndex

	sounds      worldentity.SoundSink
	metrics     *observability.Metrics
	tracer      trace.Tracer
	log         *logging.Logger
	currentTick uint64
}

// Option настраивает мир
type Option func(*World)

// WithHeight задаёт высоту мира
func WithHeight(height int) Option {
	return func(w *World) {
		w.height = height
	}
}

// WithGenerator подменяет генератор ландшафта; nil оставляет мир пустым
func WithGenerator(g *Generator) Option {
	return func(w *World) {
		w.generator = g
		w.customGenerator = true
	}
}

// WithSounds задаёт приёмник звуков
func WithSounds(sink worldentity.SoundSink) Option {
	return func(w *World) {
		w.sounds = sink
	}
}

// WithMetrics подключает Prometheus-метрики
func WithMetrics(m *observability.Metrics) Option {
	return func(w *World) {
		w.metrics = m
	}
}

// WithLogger задаёт логгер мира
func WithLogger(l *logging.Logger) Option {
	return func(w *World) {
		w.log = l
	}
}

// New создаёт мир с указанным сидом
func New(seed int64, opts ...Option) *World {
	w := &World{
		seed:     seed,
		height:   DefaultHeight,
		chunks:   make(map[vec.Vec2]*Chunk),
		states:   make(map[vec.Vec3]*block.State),
		entities: worldentity.NewEntityManager(),
		index:    NewSpatialIndex(ChunkSize),
		sounds:   discardSounds{},
		tracer:   otel.Tracer(observability.TracerName),
	}
	for _, opt := range opts {
		opt(w)
	}
	if !w.customGenerator {
		w.generator = NewGenerator(seed, w.height, w.height/2)
	}
	if w.log == nil {
		w.log = logging.Default()
	}
	return w
}

// Seed возвращает сид мира
func (w *World) Seed() int64 { return w.seed }

// Height возвращает высоту мира
func (w *World) Height() int { return w.height }

// CurrentTick возвращает номер последнего выполненного тика
func (w *World) CurrentTick() uint64 { return w.currentTick }

// Generator возвращает генератор ландшафта
func (w *World) Generator() *Generator { return w.generator }

func (w *World) inHeight(pos vec.Vec3) bool {
	return pos.Y >= 0 && pos.Y < w.height
}

// chunkLocked возвращает чанк позиции, генерируя его при первом обращении.
// Вызывается под w.mu.
func (w *World) chunkLocked(coords vec.Vec2) *Chunk {
	if c, ok := w.chunks[coords]; ok {
		return c
	}

	var c *Chunk
	if w.generator != nil {
		c = w.generator.GenerateChunk(coords)
	} else {
		c = NewChunk(coords, w.height)
	}
	w.chunks[coords] = c
	w.log.Debug("Чанк %v загружен", coords)
	return c
}

// Chunk возвращает чанк по координатам, генерируя его при необходимости
func (w *World) Chunk(coords vec.Vec2) *Chunk {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chunkLocked(coords)
}

// SurfaceAt возвращает Y верхнего непустого блока колонки или -1
func (w *World) SurfaceAt(x, z int) int {
	pos := vec.Vec3{X: x, Z: z}
	lx, lz := vec.LocalInChunk(pos)
	return w.Chunk(vec.ChunkOf(pos)).HighestBlock(lx, lz)
}

func localPos(pos vec.Vec3) vec.Vec3 {
	x, z := vec.LocalInChunk(pos)
	return vec.Vec3{X: x, Y: pos.Y, Z: z}
}

// BlockAt возвращает материализованный блок позиции.
// Повторные обращения возвращают тот же экземпляр, пока клетка не изменится.
func (w *World) BlockAt(pos vec.Vec3) *block.State {
	if !w.inHeight(pos) {
		air := block.MustNew(block.AirBlockID, 0)
		air.SetPosition(pos)
		return air
	}

	w.mu.RLock()
	s, ok := w.states[pos]
	w.mu.RUnlock()
	if ok {
		return s
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.states[pos]; ok {
		return s
	}

	id, meta := w.chunkLocked(vec.ChunkOf(pos)).GetBlock(localPos(pos))
	s = block.FromMeta(id, meta)
	s.SetPosition(pos)
	w.states[pos] = s
	return s
}

// SetBlock ставит блок и сбрасывает кэш геометрии клетки и шести соседей
func (w *World) SetBlock(pos vec.Vec3, state *block.State) error {
	if !w.inHeight(pos) {
		return fmt.Errorf("%w: %v", ErrOutOfWorld, pos)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.chunkLocked(vec.ChunkOf(pos)).SetBlock(localPos(pos), state.ID(), state.Damage())
	state.SetPosition(pos)
	w.states[pos] = state
	w.invalidateNeighboursLocked(pos, 1)
	return nil
}

// SetBlockRaw записывает тип и meta блока; реализует block.Writer
func (w *World) SetBlockRaw(pos vec.Vec3, id block.BlockID, meta uint8) error {
	if !w.inHeight(pos) {
		return fmt.Errorf("%w: %v", ErrOutOfWorld, pos)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.chunkLocked(vec.ChunkOf(pos)).SetBlock(localPos(pos), id, meta)
	invalidated := 0
	if s, ok := w.states[pos]; ok {
		if s.ID() == id && s.Damage() == meta {
			// Блок записал сам себя, экземпляр остаётся актуальным
			s.ReadStateFromWorld()
		} else {
			delete(w.states, pos)
		}
		invalidated++
	}
	w.invalidateNeighboursLocked(pos, invalidated)
	return nil
}

// invalidateNeighboursLocked сбрасывает кэш соседних материализованных блоков
func (w *World) invalidateNeighboursLocked(pos vec.Vec3, already int) {
	count := already
	for _, n := range pos.Neighbours() {
		if s, ok := w.states[n]; ok {
			s.ReadStateFromWorld()
			count++
		}
	}
	w.metrics.BlocksInvalidated(count)
}

// FrictionOf возвращает трение поверхности блока
func (w *World) FrictionOf(state *block.State) float64 {
	return state.Friction()
}

// LiquidClassOf возвращает класс жидкости блока
func (w *World) LiquidClassOf(state *block.State) block.LiquidClass {
	return state.Liquid()
}

// BreakBlock ломает блок инструментом, заменяя его воздухом.
// Возвращает выпавшие предметы и опыт.
func (w *World) BreakBlock(pos vec.Vec3, tool block.Tool) ([]block.ItemStack, int, error) {
	if !w.inHeight(pos) {
		return nil, 0, fmt.Errorf("%w: %v", ErrOutOfWorld, pos)
	}

	s := w.BlockAt(pos)
	if !s.IsBreakable(tool) {
		return nil, 0, fmt.Errorf("%w: %s в %v", ErrUnbreakable, s, pos)
	}

	drops := s.Drops(tool)
	xp := s.XPDropForTool(tool)
	if err := w.SetBlock(pos, block.MustNew(block.AirBlockID, 0)); err != nil {
		return nil, 0, err
	}
	w.log.Trace("Блок %s в %v сломан: %d предметов, %d опыта", s, pos, len(drops), xp)
	return drops, xp, nil
}

// CollisionBoxes возвращает коллизионные боксы всех блоков, пересекающих бокс
func (w *World) CollisionBoxes(bb cube.BBox) []cube.BBox {
	var boxes []cube.BBox
	for _, cell := range physics.CellsInBox(bb) {
		boxes = append(boxes, w.BlockAt(cell).CollisionBoxes()...)
	}
	return boxes
}

// EntityByID ищет моба по идентификатору
func (w *World) EntityByID(id uint64) (*worldentity.Mob, bool) {
	return w.entities.GetEntity(id)
}

// EntitiesInRange возвращает мобов в радиусе от точки
func (w *World) EntitiesInRange(center mgl64.Vec3, radius float64) []*worldentity.Mob {
	return w.index.QueryRange(center, radius)
}

// Sounds возвращает приёмник звуков
func (w *World) Sounds() worldentity.SoundSink {
	return w.sounds
}

// Entities возвращает менеджер мобов
func (w *World) Entities() *worldentity.EntityManager {
	return w.entities
}

// SpawnMob создаёт моба с новым ID и стандартным ИИ
func (w *World) SpawnMob(species worldentity.Species, pos mgl64.Vec3, opts ...worldentity.MobOption) (*worldentity.Mob, error) {
	mob := worldentity.NewMob(w.entities.NextID(), species, pos, opts...)
	if err := w.AddMob(mob); err != nil {
		return nil, err
	}
	return mob, nil
}

// AddMob добавляет готового моба и подключает ему стандартный ИИ
func (w *World) AddMob(mob *worldentity.Mob) error {
	if err := w.entities.AddEntity(mob); err != nil {
		return err
	}
	entity.NewDefaultBrain(mob, w)
	w.index.Insert(mob)
	w.log.Debug("Моб %d (%s) добавлен в %v", mob.ID(), mob.Species(), mob.Position())
	return nil
}

// RemoveMob удаляет моба из мира
func (w *World) RemoveMob(id uint64) bool {
	if !w.entities.DespawnEntity(id) {
		return false
	}
	w.index.Remove(id)
	return true
}

// Tick выполняет один тик мира: мобы обрабатываются последовательно по возрастанию ID,
// после ИИ каждого моба применяется шаг физики.
func (w *World) Tick(ctx context.Context) error {
	ctx, span := w.tracer.Start(ctx, "world.Tick")
	defer span.End()

	start := time.Now()
	w.currentTick++

	var ticked, detached int
	var dead []uint64
	w.entities.Each(func(mob *worldentity.Mob) {
		if ctx.Err() != nil {
			return
		}

		report := mob.Tick(w)
		if report.Ticked {
			ticked++
			w.step(mob)
		}
		if report.Sound {
			w.metrics.LivingSound(mob.Info().Name)
		}
		if report.Leash.Detached {
			detached++
			w.metrics.LeashDetached(report.Leash.DropLeash)
			w.log.Debug("Поводок моба %d отвязан (drop=%v)", mob.ID(), report.Leash.DropLeash)
		}
		if !mob.Alive() {
			dead = append(dead, mob.ID())
		}
	})

	for _, id := range dead {
		w.RemoveMob(id)
	}

	span.SetAttributes(
		attribute.Int64("world.tick", int64(w.currentTick)),
		attribute.Int("mobs.ticked", ticked),
		attribute.Int("mobs.leash_detached", detached),
	)
	w.metrics.ObserveTick(time.Since(start), ticked, w.entities.Count())
	return ctx.Err()
}

// step перемещает моба на его скорость с учётом коллизий блоков
func (w *World) step(mob *worldentity.Mob) {
	from := mob.Position()
	env := mob.Environment(w)
	bb := mob.BBox()
	motion := mob.Motion()

	res := physics.Clip(bb, motion, w.CollisionBoxes(bb.Extend(motion)))
	mob.ApplyStep(res, env)
	w.index.Update(mob)

	to := mob.Position()
	if from != to {
		logging.LogEntityMovement(mob.ID(), from.X(), from.Y(), from.Z(), to.X(), to.Y(), to.Z())
	}
}

// GetStats возвращает статистику мира
func (w *World) GetStats() map[string]interface{} {
	w.mu.RLock()
	chunks := len(w.chunks)
	states := len(w.states)
	changed := 0
	for _, c := range w.chunks {
		c.Mu.RLock()
		changed += c.ChangeCounter
		c.Mu.RUnlock()
	}
	w.mu.RUnlock()

	stats := w.entities.GetStats()
	stats["tick"] = w.currentTick
	stats["chunks"] = chunks
	stats["cached_blocks"] = states
	stats["changed_blocks"] = changed
	stats["spatial_index"] = w.index.GetStats()
	return stats
}

type discardSounds struct{}

func (discardSounds) Emit(worldentity.SoundEvent) {}
