package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/annel0/voxel-sim/internal/eventbus"
)

const (
	defaultNatsURL = "nats://127.0.0.1:4222"
	timeFormat     = "2006-01-02T15:04:05Z"
)

func main() {
	var (
		natsURL    = flag.String("url", defaultNatsURL, "NATS server URL")
		stream     = flag.String("stream", "SIM_EVENTS", "JetStream stream name")
		command    = flag.String("cmd", "tail", "Command: tail, stats")
		eventTypes = flag.String("types", "", "Event types filter (comma-separated)")
		sources    = flag.String("sources", "", "Source filter (comma-separated)")
		limit      = flag.Int("limit", 0, "Stop after N events (0 = unlimited)")
		window     = flag.Duration("window", 10*time.Second, "Collection window for stats")
	)
	flag.Parse()

	bus, err := eventbus.NewJetStreamBus(*natsURL, *stream, 0)
	if err != nil {
		log.Fatalf("❌ Failed to connect to NATS: %v", err)
	}
	defer bus.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	filter := eventbus.Filter{
		Types:   parseStringList(*eventTypes),
		Sources: parseStringList(*sources),
	}

	switch *command {
	case "tail":
		if err := tailEvents(ctx, bus, filter, *limit); err != nil {
			log.Fatalf("❌ Tail failed: %v", err)
		}
	case "stats":
		if err := showStats(ctx, bus, filter, *window); err != nil {
			log.Fatalf("❌ Stats failed: %v", err)
		}
	default:
		log.Fatalf("❌ Unknown command: %s", *command)
	}
}

// tailEvents печатает события по мере поступления
func tailEvents(ctx context.Context, bus eventbus.EventBus, filter eventbus.Filter, limit int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var seen atomic.Int64
	sub, err := bus.Subscribe(ctx, filter, func(_ context.Context, ev *eventbus.Envelope) {
		fmt.Println(formatEvent(ev))
		if limit > 0 && seen.Add(1) >= int64(limit) {
			cancel()
		}
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	fmt.Printf("📡 Tailing events (types=%v, sources=%v)...\n", filter.Types, filter.Sources)
	<-ctx.Done()
	return nil
}

// showStats считает события по типам за окно
func showStats(ctx context.Context, bus eventbus.EventBus, filter eventbus.Filter, window time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	types := make(chan string, 256)
	sub, err := bus.Subscribe(ctx, filter, func(_ context.Context, ev *eventbus.Envelope) {
		select {
		case types <- ev.EventType:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	byType := make(map[string]int)
	total := 0
	for {
		select {
		case t := <-types:
			byType[t]++
			total++
		case <-ctx.Done():
			fmt.Printf("📊 Events in %v: %d\n", window, total)
			names := make([]string, 0, len(byType))
			for t := range byType {
				names = append(names, t)
			}
			sort.Strings(names)
			for _, t := range names {
				fmt.Printf("   %-16s %d\n", t, byType[t])
			}
			return nil
		}
	}
}

func formatEvent(ev *eventbus.Envelope) string {
	ts := ev.Timestamp.Format(timeFormat)
	if ev.EventType == eventbus.EventLivingSound {
		if sound, err := eventbus.DecodeSound(ev); err == nil {
			p := sound.Position
			return fmt.Sprintf("%s %-12s %s #%d %s at (%.1f, %.1f, %.1f)",
				ts, ev.EventType, sound.Species, sound.EntityID, sound.Sound, p.X(), p.Y(), p.Z())
		}
	}
	return fmt.Sprintf("%s %-12s src=%s %s", ts, ev.EventType, ev.Source, string(ev.Payload))
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
