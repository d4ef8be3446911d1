package entity

import (
	"slices"
)

// Behavior представляет одно действие ИИ в пуле.
// Жизненный цикл: ShouldExecute → Enter → Update каждый тик, пока ContinueExecuting → Exit.
type Behavior interface {
	ShouldExecute() bool
	ContinueExecuting() bool
	Enter()
	Update()
	Exit()
}

type poolEntry struct {
	priority int
	behavior Behavior
}

// Pool выбирает не более одного поведения за тик.
// Меньшее значение priority означает более высокий приоритет.
type Pool struct {
	entries []poolEntry
	running int // индекс активного поведения или -1
}

// NewPool создаёт пустой пул
func NewPool() *Pool {
	return &Pool{running: -1}
}

// Add регистрирует поведение с приоритетом.
// Поведения с равным приоритетом сохраняют порядок добавления.
func (p *Pool) Add(priority int, behavior Behavior) {
	var current Behavior
	if p.running >= 0 {
		current = p.entries[p.running].behavior
	}

	p.entries = append(p.entries, poolEntry{priority: priority, behavior: behavior})
	slices.SortStableFunc(p.entries, func(a, b poolEntry) int {
		return a.priority - b.priority
	})

	p.running = -1
	for i, e := range p.entries {
		if e.behavior == current {
			p.running = i
		}
	}
}

// SelectAndRun выбирает поведение с наивысшим приоритетом и выполняет его тик.
// Активное поведение вытесняется только более приоритетным.
func (p *Pool) SelectAndRun() {
	next := -1
	for i, e := range p.entries {
		if i == p.running {
			if e.behavior.ContinueExecuting() {
				next = i
				break
			}
			continue
		}
		if e.behavior.ShouldExecute() {
			next = i
			break
		}
	}

	if next != p.running {
		if p.running >= 0 {
			p.entries[p.running].behavior.Exit()
		}
		p.running = next
		if next >= 0 {
			p.entries[next].behavior.Enter()
		}
	}

	if p.running >= 0 {
		p.entries[p.running].behavior.Update()
	}
}

// Running возвращает активное поведение или nil
func (p *Pool) Running() Behavior {
	if p.running < 0 {
		return nil
	}
	return p.entries[p.running].behavior
}

// Len возвращает число зарегистрированных поведений
func (p *Pool) Len() int {
	return len(p.entries)
}
