package observability

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voxelsim"

// Metrics содержит Prometheus-метрики симуляции.
// Методы безопасно вызывать на nil.
type Metrics struct {
	tickDuration       prometheus.Histogram
	mobsTicked         prometheus.Counter
	mobsAlive          prometheus.Gauge
	leashDetaches      *prometheus.CounterVec
	blockInvalidations prometheus.Counter
	livingSounds       *prometheus.CounterVec
	processRSS         prometheus.Gauge
	processCPU         prometheus.Gauge
}

// NewMetrics создаёт метрики и регистрирует их в reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "tick_duration_seconds",
			Help:      "Длительность одного тика мира.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		mobsTicked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mobs",
			Name:      "ticked_total",
			Help:      "Сколько раз мобы выполнили тик ИИ.",
		}),
		mobsAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "mobs",
			Name:      "alive",
			Help:      "Количество мобов в мире.",
		}),
		leashDetaches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mobs",
			Name:      "leash_detaches_total",
			Help:      "Отвязанные поводки.",
		}, []string{"drop"}),
		blockInvalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blocks",
			Name:      "cache_invalidations_total",
			Help:      "Сброшенные кэши геометрии блоков.",
		}),
		livingSounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mobs",
			Name:      "living_sounds_total",
			Help:      "Звуки, изданные мобами.",
		}, []string{"species"}),
		processRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "process",
			Name:      "rss_bytes",
			Help:      "Резидентная память процесса.",
		}),
		processCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "process",
			Name:      "cpu_percent",
			Help:      "Загрузка CPU процессом.",
		}),
	}

	reg.MustRegister(
		m.tickDuration, m.mobsTicked, m.mobsAlive, m.leashDetaches,
		m.blockInvalidations, m.livingSounds, m.processRSS, m.processCPU,
	)
	return m
}

// ObserveTick учитывает завершённый тик мира
func (m *Metrics) ObserveTick(d time.Duration, ticked, alive int) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(d.Seconds())
	m.mobsTicked.Add(float64(ticked))
	m.mobsAlive.Set(float64(alive))
}

// LeashDetached учитывает отвязанный поводок
func (m *Metrics) LeashDetached(drop bool) {
	if m == nil {
		return
	}
	m.leashDetaches.WithLabelValues(strconv.FormatBool(drop)).Inc()
}

// BlocksInvalidated учитывает сброс кэша геометрии n блоков
func (m *Metrics) BlocksInvalidated(n int) {
	if m == nil || n == 0 {
		return
	}
	m.blockInvalidations.Add(float64(n))
}

// LivingSound учитывает звук моба
func (m *Metrics) LivingSound(species string) {
	if m == nil {
		return
	}
	m.livingSounds.WithLabelValues(species).Inc()
}

func (m *Metrics) setProcess(rss uint64, cpu float64) {
	if m == nil {
		return
	}
	m.processRSS.Set(float64(rss))
	m.processCPU.Set(cpu)
}

// StartHTTP запускает HTTP-эндпоинт /metrics на указанном адресе (например, ":2112").
// Метод неблокирующий, сервер останавливается через Shutdown.
func StartHTTP(addr string, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return srv
}

// ShutdownHTTP останавливает HTTP-сервер метрик
func ShutdownHTTP(ctx context.Context, srv *http.Server) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
