package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/google/uuid"
)

// Типы событий симуляции
const (
	EventLivingSound  = "LivingSound"
	EventWorldStarted = "WorldStarted"
	EventWorldStopped = "WorldStopped"
)

// soundPriority звуки можно терять при переполнении шины
const soundPriority = 2

// SoundPublisher публикует звуки мобов в шину событий; реализует entity.SoundSink
type SoundPublisher struct {
	ctx    context.Context
	bus    EventBus
	source string
}

// NewSoundPublisher создаёт издателя звуков. ctx ограничивает время жизни публикаций.
func NewSoundPublisher(ctx context.Context, bus EventBus, source string) *SoundPublisher {
	return &SoundPublisher{ctx: ctx, bus: bus, source: source}
}

// Emit публикует звук; ошибки публикации только логируются
func (p *SoundPublisher) Emit(ev entity.SoundEvent) {
	env, err := NewEnvelope(p.source, EventLivingSound, soundPriority, ev)
	if err != nil {
		logging.Warn("Не удалось сериализовать звук моба %d: %v", ev.EntityID, err)
		return
	}
	env.Metadata = map[string]string{"species": ev.Species}

	if err := p.bus.Publish(p.ctx, env); err != nil {
		logging.Warn("Не удалось опубликовать звук моба %d: %v", ev.EntityID, err)
	}
}

// NewEnvelope упаковывает полезную нагрузку в JSON-конверт с новым UUID
func NewEnvelope(source, eventType string, priority int, payload interface{}) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("eventbus: сериализация %s: %w", eventType, err)
	}
	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		EventType: eventType,
		Version:   1,
		Priority:  priority,
		Payload:   data,
	}, nil
}

// DecodeSound извлекает звук из конверта
func DecodeSound(ev *Envelope) (entity.SoundEvent, error) {
	if ev.EventType != EventLivingSound {
		return entity.SoundEvent{}, fmt.Errorf("eventbus: ожидался %s, получен %s", EventLivingSound, ev.EventType)
	}
	var sound entity.SoundEvent
	if err := json.Unmarshal(ev.Payload, &sound); err != nil {
		return entity.SoundEvent{}, fmt.Errorf("eventbus: разбор звука: %w", err)
	}
	return sound, nil
}
