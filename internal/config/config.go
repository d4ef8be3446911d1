package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: некорректная конфигурация")

// Config корневая структура конфигурации приложения
type Config struct {
	World         WorldConfig         `yaml:"world"`
	Mobs          MobsConfig          `yaml:"mobs"`
	Storage       StorageConfig       `yaml:"storage"`
	EventBus      EventBusConfig      `yaml:"eventbus"`
	Observability ObservabilityConfig `yaml:"observability"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type WorldConfig struct {
	Seed       int64 `yaml:"seed"`
	Height     int   `yaml:"height"`
	SeaLevel   int   `yaml:"sea_level"`
	TickRate   int   `yaml:"tick_rate"`
	ViewRadius int   `yaml:"view_radius"`
}

type MobsConfig struct {
	SpawnCount  int      `yaml:"spawn_count"`
	Species     []string `yaml:"species"`
	SpawnRadius int      `yaml:"spawn_radius"`
}

type StorageConfig struct {
	Backend       string `yaml:"backend"` // memory | badger | redis
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisDB       int    `yaml:"redis_db"`
	SaveEverySecs int    `yaml:"save_every_seconds"`
}

type EventBusConfig struct {
	URL       string `yaml:"url"` // пусто - in-memory шина
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	Buffer    int    `yaml:"buffer"`
}

type ObservabilityConfig struct {
	MetricsPort  int    `yaml:"metrics_port"` // -1 отключает /metrics
	Tracing      bool   `yaml:"tracing"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:       1337,
			Height:     128,
			SeaLevel:   64,
			TickRate:   20,
			ViewRadius: 4,
		},
		Mobs: MobsConfig{
			SpawnCount:  16,
			Species:     []string{"cow", "sheep", "chicken", "pig"},
			SpawnRadius: 32,
		},
		Storage: StorageConfig{
			Backend:       "memory",
			Path:          "data/mobs",
			RedisAddr:     "127.0.0.1:6379",
			SaveEverySecs: 60,
		},
		EventBus: EventBusConfig{
			Stream:    "SIM_EVENTS",
			Retention: 24,
			Buffer:    1024,
		},
		Observability: ObservabilityConfig{
			ServiceName: "voxel-sim",
		},
		Logging: LoggingConfig{
			Level: "INFO",
			Dir:   "logs",
		},
	}
}

// GetMetricsPort возвращает Prometheus метрики порт с поддержкой fallback значений
func (o *ObservabilityConfig) GetMetricsPort() int {
	return getIntWithEnvFallback(o.MetricsPort, "GAME_METRICS_PORT", 2112)
}

// GetTickRate возвращает частоту тиков с поддержкой fallback значений
func (w *WorldConfig) GetTickRate() int {
	return getIntWithEnvFallback(w.TickRate, "GAME_TICK_RATE", 20)
}

// RetentionDuration возвращает время хранения событий
func (e *EventBusConfig) RetentionDuration() time.Duration {
	return time.Duration(e.Retention) * time.Hour
}

// SaveInterval возвращает период сохранения мобов
func (s *StorageConfig) SaveInterval() time.Duration {
	if s.SaveEverySecs <= 0 {
		return time.Minute
	}
	return time.Duration(s.SaveEverySecs) * time.Second
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	// Если значение задано в конфиге и больше 0, используем его
	if configValue > 0 {
		return configValue
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	// Используем дефолтное значение
	return defaultValue
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	switch {
	case c.World.Height <= 0 || c.World.Height%16 != 0:
		return fmt.Errorf("%w: высота мира %d должна быть кратна 16", ErrInvalidConfig, c.World.Height)
	case c.World.SeaLevel <= 0 || c.World.SeaLevel >= c.World.Height:
		return fmt.Errorf("%w: уровень моря %d вне мира", ErrInvalidConfig, c.World.SeaLevel)
	case c.Mobs.SpawnCount < 0:
		return fmt.Errorf("%w: отрицательное число мобов", ErrInvalidConfig)
	case c.Mobs.SpawnRadius < 0:
		return fmt.Errorf("%w: отрицательный радиус спавна", ErrInvalidConfig)
	}

	switch c.Storage.Backend {
	case "memory", "badger", "redis":
	default:
		return fmt.Errorf("%w: неизвестное хранилище %q", ErrInvalidConfig, c.Storage.Backend)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV GAME_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("GAME_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан, используем дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
