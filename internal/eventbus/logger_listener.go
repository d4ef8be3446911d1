package eventbus

import (
	"context"

	"github.com/annel0/voxel-sim/internal/logging"
)

// StartLoggingListener пишет все события шины в лог компонента eventbus.
// Звуки мобов идут на уровне TRACE, остальные события на DEBUG.
func StartLoggingListener(bus EventBus) (Subscription, error) {
	log := logging.GetBusLogger()
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(_ context.Context, ev *Envelope) {
		if ev.EventType == EventLivingSound {
			log.Trace("%s %s src=%s species=%s", ev.ID, ev.EventType, ev.Source, ev.Metadata["species"])
			return
		}
		log.Debug("%s %s src=%s prio=%d size=%dB", ev.ID, ev.EventType, ev.Source, ev.Priority, len(ev.Payload))
	})
	if err != nil {
		return nil, err
	}
	log.Info("🪵 Журналирование событий шины включено")
	return sub, nil
}
