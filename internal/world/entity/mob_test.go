package entity

import (
	"math/rand"
	"testing"

	"github.com/annel0/voxel-sim/internal/physics"
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
	_ "github.com/annel0/voxel-sim/internal/world/block/implementations"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWorld реализует WorldAPI для тестов
type mockWorld struct {
	blocks map[vec.Vec3]*block.State
	mobs   map[uint64]*Mob
	sounds *mockSink
}

func newMockWorld() *mockWorld {
	return &mockWorld{
		blocks: make(map[vec.Vec3]*block.State),
		mobs:   make(map[uint64]*Mob),
		sounds: &mockSink{},
	}
}

func (w *mockWorld) BlockAt(pos vec.Vec3) *block.State {
	if s, ok := w.blocks[pos]; ok {
		return s
	}
	return block.MustNew(block.AirBlockID, 0)
}

func (w *mockWorld) SetBlock(pos vec.Vec3, s *block.State) error {
	s.SetPosition(pos)
	w.blocks[pos] = s
	return nil
}

func (w *mockWorld) FrictionOf(s *block.State) float64              { return s.Friction() }
func (w *mockWorld) LiquidClassOf(s *block.State) block.LiquidClass { return s.Liquid() }
func (w *mockWorld) Sounds() SoundSink                              { return w.sounds }

func (w *mockWorld) EntityByID(id uint64) (*Mob, bool) {
	m, ok := w.mobs[id]
	return m, ok
}

type mockSink struct {
	events []SoundEvent
	log    *callLog
}

func (s *mockSink) Emit(e SoundEvent) {
	s.events = append(s.events, e)
	if s.log != nil {
		s.log.calls = append(s.log.calls, "sound")
	}
}

// callLog записывает порядок вызовов помощников
type callLog struct {
	calls []string
}

type mockPool struct {
	name string
	log  *callLog
}

func (p *mockPool) SelectAndRun() { p.log.calls = append(p.log.calls, p.name) }

type mockNavigator struct {
	log     *callLog
	clear   bool
	checks  int
	targets []mgl64.Vec3
}

func (n *mockNavigator) Update() { n.log.calls = append(n.log.calls, "navigator") }
func (n *mockNavigator) IsClearBetweenPoints(_, _ mgl64.Vec3) bool {
	n.checks++
	n.log.calls = append(n.log.calls, "sight")
	return n.clear
}
func (n *mockNavigator) TryMoveTo(target mgl64.Vec3, _ float64) bool {
	n.log.calls = append(n.log.calls, "try_move")
	n.targets = append(n.targets, target)
	return true
}

type mockMoveHelper struct{ log *callLog }

func (h *mockMoveHelper) Update() { h.log.calls = append(h.log.calls, "move_helper") }

type mockJumpHelper struct {
	log  *callLog
	jump bool
}

func (h *mockJumpHelper) ShouldJumpNow() bool {
	h.log.calls = append(h.log.calls, "jump_helper")
	return h.jump
}

// fixedRandom всегда возвращает одно и то же значение
type fixedRandom struct{ n int }

func (r fixedRandom) Intn(int) int     { return r.n }
func (r fixedRandom) Float64() float64 { return 0.5 }

type testBrain struct {
	log   *callLog
	nav   *mockNavigator
	jumps *mockJumpHelper
}

func attachTestBrain(m *Mob) testBrain {
	log := &callLog{}
	b := testBrain{
		log:   log,
		nav:   &mockNavigator{log: log, clear: true},
		jumps: &mockJumpHelper{log: log},
	}
	m.SetBrain(Brain{
		Targets:    &mockPool{name: "targets", log: log},
		Behaviors:  &mockPool{name: "behaviors", log: log},
		Navigator:  b.nav,
		MoveHelper: &mockMoveHelper{log: log},
		JumpHelper: b.jumps,
	})
	return b
}

// quietRandom не даёт мобу издавать звуки
var quietRandom = fixedRandom{n: soundRollRange - 1}

func groundedMob(t *testing.T, w *mockWorld, opts ...MobOption) *Mob {
	t.Helper()
	require.NoError(t, w.SetBlock(vec.Vec3{X: 0, Y: 63, Z: 0}, block.MustNew(block.StoneBlockID, 0)))
	opts = append([]MobOption{WithRandom(quietRandom)}, opts...)
	m := NewMob(1, SpeciesCow, mgl64.Vec3{0.5, 64, 0.5}, opts...)
	m.SetOnGround(true)
	w.mobs[m.ID()] = m
	return m
}

func TestTick_OrderOfCollaborators(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w)
	b := attachTestBrain(m)

	report := m.Tick(w)

	assert.True(t, report.Ticked)
	assert.Equal(t, []string{"targets", "behaviors", "navigator", "move_helper", "jump_helper"}, b.log.calls)
}

func TestTick_ImmobileMakesNoCalls(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w, WithImmobile(true), WithRandom(fixedRandom{n: 0}))
	b := attachTestBrain(m)
	m.SetMoveIntent(0, 1)
	m.SetLookPosition(&mgl64.Vec3{10, 64, 10})

	report := m.Tick(w)

	assert.False(t, report.Ticked)
	assert.Empty(t, b.log.calls, "неподвижный моб не должен трогать помощников")
	assert.Empty(t, w.sounds.events, "неподвижный моб не издаёт звуков")
	assert.Equal(t, mgl64.Vec3{}, m.Motion())
	strafe, forward := m.MoveIntent()
	assert.Equal(t, 0.0, strafe)
	assert.Equal(t, 1.0, forward)
}

func TestTick_GroundSpeedFactor(t *testing.T) {
	type flyingCall struct{ strafe, forward, speed float64 }
	var calls []flyingCall

	w := newMockWorld()
	m := groundedMob(t, w, WithFlyingFunc(func(strafe, forward, speed float64) {
		calls = append(calls, flyingCall{strafe, forward, speed})
	}))
	m.SetAIMoveSpeed(0.2)
	m.SetMoveIntent(0, 1)

	m.Tick(w)

	require.Len(t, calls, 1)
	f := 0.6 * 0.91
	assert.InDelta(t, 0.16277136/(f*f*f)*0.2, calls[0].speed, 1e-15)
	assert.Equal(t, 0.0, calls[0].strafe)
	assert.InDelta(t, 0.98, calls[0].forward, 1e-15, "намерение затухает до интегрирования")
}

func TestTick_IceIsSlipperier(t *testing.T) {
	var speed float64
	w := newMockWorld()
	m := groundedMob(t, w, WithFlyingFunc(func(_, _, s float64) { speed = s }))
	require.NoError(t, w.SetBlock(vec.Vec3{X: 0, Y: 63, Z: 0}, block.MustNew(block.IceBlockID, 0)))

	m.Tick(w)

	f := 0.98 * 0.91
	assert.InDelta(t, 0.16277136/(f*f*f)*m.AIMoveSpeed(), speed, 1e-15)
}

func TestTick_GroundJumpArmsCooldown(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w)
	b := attachTestBrain(m)
	b.jumps.jump = true

	m.Tick(w)
	assert.InDelta(t, 0.42+0.08, m.Motion().Y(), 1e-12)
	assert.Equal(t, 10, m.JumpTicks())

	// Пока идёт откат, повторного прыжка нет
	m.SetMotion(mgl64.Vec3{})
	m.Tick(w)
	assert.Equal(t, 0.0, m.Motion().Y())
	assert.Equal(t, 9, m.JumpTicks())
}

func TestTick_LiquidJump(t *testing.T) {
	for _, id := range []block.BlockID{block.WaterBlockID, block.LavaBlockID} {
		w := newMockWorld()
		m := groundedMob(t, w)
		m.SetOnGround(false)
		b := attachTestBrain(m)
		b.jumps.jump = true
		require.NoError(t, w.SetBlock(vec.Vec3{X: 0, Y: 64, Z: 0}, block.MustNew(id, 0)))

		m.Tick(w)
		m.Tick(w)

		assert.InDelta(t, 0.78, m.Motion().Y(), 1e-12, "в жидкости импульс без отката (%d)", id)
		assert.Equal(t, 0, m.JumpTicks())
	}
}

func TestTick_LavaEdgeBump(t *testing.T) {
	w := newMockWorld()
	require.NoError(t, w.SetBlock(vec.Vec3{X: 0, Y: 64, Z: 0}, block.MustNew(block.LavaBlockID, 0)))
	m := NewMob(1, SpeciesCow, mgl64.Vec3{0.5, 64.5, 0.5}, WithRandom(quietRandom))
	m.collidedHorizontally = true
	// Скорость уводит точку проверки в соседнюю клетку с воздухом, проверка её не учитывает
	m.SetMotion(mgl64.Vec3{0.6, 0, 0})

	env := m.Environment(w)
	assert.True(t, env.InLava)
	assert.True(t, env.LiquidAbove, "клетка на 0.4 выше ног берётся по текущим x/z")

	m.Tick(w)
	assert.InDelta(t, physics.LiquidEdgeBump, m.Motion().Y(), 1e-12)
}

func TestTick_LavaEdgeNeedsLiquidAbove(t *testing.T) {
	w := newMockWorld()
	require.NoError(t, w.SetBlock(vec.Vec3{X: 0, Y: 64, Z: 0}, block.MustNew(block.LavaBlockID, 0)))
	m := NewMob(1, SpeciesCow, mgl64.Vec3{0.5, 64.7, 0.5}, WithRandom(quietRandom))
	m.collidedHorizontally = true

	env := m.Environment(w)
	assert.True(t, env.InLava)
	assert.False(t, env.LiquidAbove, "64.7+0.4 попадает в клетку 65")

	m.Tick(w)
	assert.Equal(t, 0.0, m.Motion().Y())
}

func TestTick_LookPositionIsSingleShot(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w)

	eye := m.EyePosition()
	m.SetLookPosition(&mgl64.Vec3{eye.X() + 5, eye.Y(), eye.Z()})
	m.Tick(w)
	assert.InDelta(t, -90.0, m.Yaw(), 1e-9)

	m.SetYaw(0)
	m.Tick(w)
	assert.Equal(t, 0.0, m.Yaw(), "точка взгляда применяется один раз")
}

func TestCanSeeEntity_CachedWithinTick(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w)
	b := attachTestBrain(m)
	other := NewMob(2, SpeciesPig, mgl64.Vec3{5, 64, 5})

	assert.True(t, m.CanSeeEntity(other))
	assert.True(t, m.CanSeeEntity(other))
	assert.Equal(t, 1, b.nav.checks, "повторная проверка берётся из кэша")

	m.Tick(w)
	b.nav.clear = false
	assert.False(t, m.CanSeeEntity(other), "кэш сбрасывается каждый тик")
	assert.False(t, m.CanSeeEntity(other))
	assert.Equal(t, 2, b.nav.checks)
}

func TestLivingSound_SubtractsInterval(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w, WithRandom(fixedRandom{n: 0}))

	// Первый тик: 0 < 0 ложно
	m.Tick(w)
	assert.Empty(t, w.sounds.events)
	assert.Equal(t, 1, m.livingSoundTime)

	// Второй тик: 0 < 1, звук и вычитание интервала
	report := m.Tick(w)
	assert.True(t, report.Sound)
	require.Len(t, w.sounds.events, 1)
	assert.Equal(t, 2-DefaultTalkInterval, m.livingSoundTime, "счётчик уменьшается, а не обнуляется")

	ev := w.sounds.events[0]
	assert.Equal(t, "mob.cow.say", ev.Sound)
	assert.Equal(t, m.ID(), ev.EntityID)
	assert.Equal(t, "cow", ev.Species)
}

func TestLivingSound_AfterBehaviorUpdate(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w, WithRandom(fixedRandom{n: 0}))
	b := attachTestBrain(m)
	w.sounds.log = b.log
	m.livingSoundTime = 1

	report := m.Tick(w)

	assert.True(t, report.Sound)
	assert.Equal(t, []string{"targets", "behaviors", "navigator", "move_helper", "jump_helper", "sound"}, b.log.calls,
		"звук разыгрывается после обновления поведения")
}

func TestLivingSound_CounterInvariant(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w)
	m.rand = rand.New(rand.NewSource(42))

	const ticks = 2000
	for i := 0; i < ticks; i++ {
		m.Tick(w)
	}

	sounds := len(w.sounds.events)
	assert.Greater(t, sounds, 0)
	assert.Equal(t, ticks-sounds*DefaultTalkInterval, m.livingSoundTime)
}

func TestLeash_FollowThresholdIsStrict(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w)
	b := attachTestBrain(m)

	holder := NewMob(2, SpeciesPig, m.Position().Add(mgl64.Vec3{4.0, 0, 0}))
	w.mobs[holder.ID()] = holder
	m.LeashTo(holder.ID())

	report := m.Tick(w)
	assert.NotContains(t, b.log.calls, "try_move", "ровно 4.0 не превышает порог")
	assert.False(t, report.Leash.Detached)

	b.log.calls = nil
	m.SetPosition(mgl64.Vec3{0.5, 64, 0.5})
	holder.SetPosition(m.Position().Add(mgl64.Vec3{4.01, 0, 0}))

	m.Tick(w)
	assert.Contains(t, b.log.calls, "try_move")
	require.Len(t, b.nav.targets, 1)
	assert.Equal(t, holder.Position(), b.nav.targets[0])
}

func TestLeash_PullAndBreak(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w, WithFlyingFunc(func(_, _, _ float64) {}))
	attachTestBrain(m)

	holder := NewMob(2, SpeciesPig, m.Position().Add(mgl64.Vec3{8, 0, 0}))
	w.mobs[holder.ID()] = holder
	m.LeashTo(holder.ID())

	report := m.Tick(w)
	assert.False(t, report.Leash.Detached)
	assert.InDelta(t, 0.4, m.Motion().X(), 1e-12, "квадратичное притяжение по оси")

	m.SetMotion(mgl64.Vec3{})
	holder.SetPosition(m.Position().Add(mgl64.Vec3{10.5, 0, 0}))
	report = m.Tick(w)
	assert.True(t, report.Leash.Detached)
	assert.True(t, report.Leash.DropLeash)
	assert.InDelta(t, 0.4, m.Motion().X(), 1e-12, "притяжение успевает сработать до обрыва")

	_, leashed := m.LeashHolder()
	assert.False(t, leashed)
}

func TestLeash_SittingPetOnlyBreaks(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w, WithFlyingFunc(func(_, _, _ float64) {}))
	b := attachTestBrain(m)
	m.SetOwner(99)
	m.SetSitting(true)

	holder := NewMob(2, SpeciesPig, m.Position().Add(mgl64.Vec3{8, 0, 0}))
	w.mobs[holder.ID()] = holder
	m.LeashTo(holder.ID())

	report := m.Tick(w)
	assert.False(t, report.Leash.Detached)
	assert.NotContains(t, b.log.calls, "try_move")
	assert.Equal(t, 0.0, m.Motion().X())

	holder.SetPosition(m.Position().Add(mgl64.Vec3{11, 0, 0}))
	report = m.Tick(w)
	assert.True(t, report.Leash.Detached)
	assert.True(t, report.Leash.DropLeash)
}

func TestLeash_MissingHolderDetaches(t *testing.T) {
	w := newMockWorld()
	m := groundedMob(t, w)
	m.LeashTo(77)

	report := m.Tick(w)
	assert.True(t, report.Leash.Detached)
}

func TestCanDespawn(t *testing.T) {
	m := NewMob(1, SpeciesSheep, mgl64.Vec3{})
	assert.True(t, m.CanDespawn())

	m.LeashTo(2)
	assert.False(t, m.CanDespawn())
	m.Unleash()

	m.SetOwner(5)
	assert.False(t, m.CanDespawn())
	m.SetOwner(0)

	m.SetImmobile(true)
	assert.False(t, m.CanDespawn())
}

func TestSpecies(t *testing.T) {
	s, err := ParseSpecies("Chicken")
	require.NoError(t, err)
	assert.Equal(t, SpeciesChicken, s)
	assert.Equal(t, 120, s.Info().TalkInterval)

	_, err = ParseSpecies("dragon")
	assert.Error(t, err)

	assert.Len(t, AllSpecies(), 4)
}

func TestEntityManager(t *testing.T) {
	em := NewEntityManager()
	for _, id := range []uint64{5, 2, 9} {
		require.NoError(t, em.AddEntity(NewMob(id, SpeciesCow, mgl64.Vec3{float64(id), 0, 0})))
	}
	assert.ErrorIs(t, em.AddEntity(NewMob(2, SpeciesPig, mgl64.Vec3{})), ErrEntityExists)
	assert.Equal(t, uint64(10), em.NextID())

	var order []uint64
	em.Each(func(m *Mob) { order = append(order, m.ID()) })
	assert.Equal(t, []uint64{2, 5, 9}, order, "обход по возрастанию ID")

	assert.True(t, em.DespawnEntity(5))
	assert.False(t, em.DespawnEntity(5))
	assert.Equal(t, 2, em.Count())

	stats := em.GetStats()
	assert.Equal(t, 2, stats["total_entities"])
}
