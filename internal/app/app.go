package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/annel0/voxel-sim/internal/config"
	"github.com/annel0/voxel-sim/internal/eventbus"
	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/annel0/voxel-sim/internal/observability"
	"github.com/annel0/voxel-sim/internal/storage"
	"github.com/annel0/voxel-sim/internal/world"
	worldentity "github.com/annel0/voxel-sim/internal/world/entity"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

const busMetricsInterval = 5 * time.Second

// App собирает мир симуляции вместе с хранилищем, шиной событий и метриками
type App struct {
	cfg *config.Config
	log *logging.Logger

	registry *prometheus.Registry
	metrics  *observability.Metrics
	httpSrv  *http.Server
	sampler  *observability.ProcessSampler
	tracing  func(context.Context) error

	repo       storage.MobRepo
	bus        eventbus.EventBus
	busMetrics *eventbus.MetricsExporter

	world *world.World
	saved map[uint64]struct{} // ID, записанные прошлым сохранением
}

// New инициализирует все подсистемы и наполняет мир мобами.
// Мобы восстанавливаются из хранилища; если оно пусто, создаются новые.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.LogsDir = cfg.Logging.Dir
	level, levelErr := logging.ParseLevel(cfg.Logging.Level)
	logging.GetLoggerManager().SetLevels(level, logging.TRACE)

	a := &App{
		cfg:      cfg,
		log:      logging.GetServerLogger(),
		registry: prometheus.NewRegistry(),
		saved:    make(map[uint64]struct{}),
	}
	if levelErr != nil {
		a.log.Warn("%v, используется INFO", levelErr)
	}
	logging.SetDefaultLogger(a.log)

	if err := a.init(ctx); err != nil {
		if cerr := a.shutdown(context.Background()); cerr != nil {
			a.log.Warn("Ошибка освобождения ресурсов: %v", cerr)
		}
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	obs := a.cfg.Observability
	a.metrics = observability.NewMetrics(a.registry)
	if obs.MetricsPort >= 0 {
		a.httpSrv = observability.StartHTTP(fmt.Sprintf(":%d", obs.GetMetricsPort()), a.registry)
	}

	if obs.Tracing {
		shutdown, err := observability.InitTelemetry(ctx, obs.ServiceName, obs.OTLPEndpoint,
			attribute.Int64("world.seed", a.cfg.World.Seed))
		if err != nil {
			return fmt.Errorf("трассировка: %w", err)
		}
		a.tracing = shutdown
	}

	sampler, err := observability.NewProcessSampler(a.metrics, 0)
	if err != nil {
		a.log.Warn("Метрики процесса недоступны: %v", err)
	} else {
		a.sampler = sampler
	}

	if a.repo, err = openRepo(ctx, a.cfg.Storage); err != nil {
		return err
	}
	a.log.Info("💾 Хранилище мобов: %s", a.cfg.Storage.Backend)

	if a.bus, err = openBus(a.cfg.EventBus); err != nil {
		return err
	}
	eventbus.Init(a.bus)
	if _, err := eventbus.StartLoggingListener(a.bus); err != nil {
		return fmt.Errorf("подписка логгера событий: %w", err)
	}
	a.busMetrics = eventbus.NewMetricsExporter(a.bus, a.registry)
	a.busMetrics.Start(busMetricsInterval)

	wc := a.cfg.World
	a.world = world.New(wc.Seed,
		world.WithHeight(wc.Height),
		world.WithGenerator(world.NewGenerator(wc.Seed, wc.Height, wc.SeaLevel)),
		world.WithSounds(eventbus.NewSoundPublisher(ctx, a.bus, obs.ServiceName)),
		world.WithMetrics(a.metrics),
		world.WithLogger(logging.GetWorldLogger()),
	)
	return a.populate(ctx)
}

func openRepo(ctx context.Context, cfg config.StorageConfig) (storage.MobRepo, error) {
	switch cfg.Backend {
	case "badger":
		repo, err := storage.NewBadgerMobRepo(cfg.Path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case "redis":
		rc := storage.DefaultRedisConfig()
		rc.Addr = cfg.RedisAddr
		rc.DB = cfg.RedisDB
		repo, err := storage.NewRedisMobRepo(ctx, rc)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return storage.NewMemoryMobRepo(), nil
	}
}

func openBus(cfg config.EventBusConfig) (eventbus.EventBus, error) {
	if cfg.URL == "" {
		return eventbus.NewMemoryBus(cfg.Buffer), nil
	}
	bus, err := eventbus.NewJetStreamBus(cfg.URL, cfg.Stream, cfg.RetentionDuration())
	if err != nil {
		return nil, err
	}
	logging.Info("📨 JetStream подключен: %s (stream=%s)", cfg.URL, cfg.Stream)
	return bus, nil
}

// populate восстанавливает мобов или расселяет новых вокруг начала координат
func (a *App) populate(ctx context.Context) error {
	recs, err := a.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("загрузка мобов: %w", err)
	}

	for _, rec := range recs {
		mob, err := rec.ToMob()
		if err != nil {
			a.log.Warn("Пропуск сохранённого моба: %v", err)
			continue
		}
		if err := a.world.AddMob(mob); err != nil {
			a.log.Warn("Моб %d не добавлен: %v", rec.ID, err)
			continue
		}
		a.saved[mob.ID()] = struct{}{}
	}
	if len(recs) > 0 {
		a.log.Info("🐄 Восстановлено мобов: %d", a.world.Entities().Count())
		return nil
	}

	species, err := parseSpecies(a.cfg.Mobs.Species)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(a.cfg.World.Seed))
	radius := a.cfg.Mobs.SpawnRadius
	for i := 0; i < a.cfg.Mobs.SpawnCount; i++ {
		x := rng.Intn(2*radius+1) - radius
		z := rng.Intn(2*radius+1) - radius
		pos := mgl64.Vec3{float64(x) + 0.5, float64(a.world.SurfaceAt(x, z) + 1), float64(z) + 0.5}

		if _, err := a.world.SpawnMob(species[i%len(species)], pos); err != nil {
			return fmt.Errorf("спавн моба: %w", err)
		}
	}
	a.log.Info("🐄 Создано мобов: %d", a.cfg.Mobs.SpawnCount)
	return nil
}

func parseSpecies(names []string) ([]worldentity.Species, error) {
	if len(names) == 0 {
		return worldentity.AllSpecies(), nil
	}
	out := make([]worldentity.Species, 0, len(names))
	for _, name := range names {
		s, err := worldentity.ParseSpecies(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// World возвращает мир симуляции
func (a *App) World() *world.World { return a.world }

// Repo возвращает хранилище мобов
func (a *App) Repo() storage.MobRepo { return a.repo }

// Bus возвращает шину событий
func (a *App) Bus() eventbus.EventBus { return a.bus }

// Registry возвращает реестр метрик
func (a *App) Registry() *prometheus.Registry { return a.registry }

// Run крутит тики мира и автосохранение в одной горутине до отмены контекста
func (a *App) Run(ctx context.Context) error {
	tickRate := a.cfg.World.GetTickRate()
	ticks := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticks.Stop()
	saves := time.NewTicker(a.cfg.Storage.SaveInterval())
	defer saves.Stop()

	if a.sampler != nil {
		go a.sampler.Run(ctx)
	}
	a.publishLifecycle(ctx, eventbus.EventWorldStarted)
	a.log.Info("🌍 Симуляция запущена: seed=%d, tps=%d, мобов=%d",
		a.world.Seed(), tickRate, a.world.Entities().Count())

	for {
		select {
		case <-ctx.Done():
			a.log.Info("🛑 Симуляция остановлена на тике %d", a.world.CurrentTick())
			return nil
		case <-ticks.C:
			if err := a.world.Tick(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("тик %d: %w", a.world.CurrentTick(), err)
			}
		case <-saves.C:
			if err := a.Save(ctx); err != nil {
				a.log.Warn("Автосохранение не удалось: %v", err)
			}
		}
	}
}

// Save записывает всех мобов и удаляет записи исчезнувших.
// Вызывать только из горутины, выполняющей тики.
func (a *App) Save(ctx context.Context) error {
	var recs []storage.MobRecord
	current := make(map[uint64]struct{})
	a.world.Entities().Each(func(mob *worldentity.Mob) {
		recs = append(recs, storage.RecordFromMob(mob))
		current[mob.ID()] = struct{}{}
	})

	if err := a.repo.BatchSave(ctx, recs); err != nil {
		return fmt.Errorf("сохранение мобов: %w", err)
	}
	for id := range a.saved {
		if _, ok := current[id]; ok {
			continue
		}
		if err := a.repo.Delete(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("удаление моба %d: %w", id, err)
		}
	}
	a.saved = current
	a.log.Debug("💾 Сохранено мобов: %d", len(recs))
	return nil
}

func (a *App) publishLifecycle(ctx context.Context, eventType string) {
	ev, err := eventbus.NewEnvelope(a.cfg.Observability.ServiceName, eventType, eventbus.PriorityHigh, map[string]interface{}{
		"seed": a.world.Seed(),
		"tick": a.world.CurrentTick(),
		"mobs": a.world.Entities().Count(),
	})
	if err == nil {
		err = eventbus.Publish(ctx, ev)
	}
	if err != nil {
		a.log.Warn("Событие %s не опубликовано: %v", eventType, err)
	}
}

// Close сохраняет мир и освобождает ресурсы
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Save(ctx); err != nil {
		errs = append(errs, err)
	}
	a.publishLifecycle(ctx, eventbus.EventWorldStopped)
	errs = append(errs, a.shutdown(ctx))
	return errors.Join(errs...)
}

// shutdown закрывает то, что успело открыться
func (a *App) shutdown(ctx context.Context) error {
	var errs []error
	if a.busMetrics != nil {
		a.busMetrics.Stop()
	}
	if a.bus != nil {
		eventbus.Init(nil)
		errs = append(errs, a.bus.Close())
	}
	if a.repo != nil {
		errs = append(errs, a.repo.Close())
	}
	if a.httpSrv != nil {
		errs = append(errs, observability.ShutdownHTTP(ctx, a.httpSrv))
	}
	if a.tracing != nil {
		errs = append(errs, a.tracing(ctx))
	}
	a.log.Info("✅ Ресурсы освобождены")
	errs = append(errs, logging.GetLoggerManager().CloseAll())
	return errors.Join(errs...)
}
