package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/go-redis/redis/v8"
)

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string        // Адрес Redis сервера
	Password  string        // Пароль (пустой если не требуется)
	DB        int           // Номер базы данных
	KeyPrefix string        // Префикс для ключей
	TTL       time.Duration // Время жизни записей, 0 - без ограничения
}

// DefaultRedisConfig возвращает конфигурацию по умолчанию
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: "voxel:mob:",
	}
}

// RedisMobRepo хранит мобов в Redis в виде JSON
type RedisMobRepo struct {
	client    redis.UniversalClient
	keyPrefix string
	indexKey  string // множество ID сохранённых мобов
	ttl       time.Duration
}

// NewRedisMobRepo подключается к Redis и проверяет соединение
func NewRedisMobRepo(ctx context.Context, config *RedisConfig) (*RedisMobRepo, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.Info("🔴 Connected to Redis at %s", config.Addr)
	return NewRedisMobRepoWithClient(client, config.KeyPrefix, config.TTL), nil
}

// NewRedisMobRepoWithClient создаёт репозиторий поверх готового клиента
func NewRedisMobRepoWithClient(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisMobRepo {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisConfig().KeyPrefix
	}
	return &RedisMobRepo{
		client:    client,
		keyPrefix: keyPrefix,
		indexKey:  keyPrefix + "ids",
		ttl:       ttl,
	}
}

func (r *RedisMobRepo) key(id uint64) string {
	return r.keyPrefix + strconv.FormatUint(id, 10)
}

// Save сохраняет моба
func (r *RedisMobRepo) Save(ctx context.Context, rec MobRecord) error {
	return r.BatchSave(ctx, []MobRecord{rec})
}

// Load загружает моба
func (r *RedisMobRepo) Load(ctx context.Context, id uint64) (MobRecord, bool, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return MobRecord{}, false, nil // Моб не найден
	} else if err != nil {
		return MobRecord{}, false, fmt.Errorf("failed to get mob %d: %w", id, err)
	}

	var rec MobRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return MobRecord{}, false, fmt.Errorf("failed to unmarshal mob %d: %w", id, err)
	}
	return rec, true, nil
}

// LoadAll возвращает все записи по возрастанию ID
func (r *RedisMobRepo) LoadAll(ctx context.Context) ([]MobRecord, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list mobs: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// Получаем данные пайплайном
	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, r.keyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get mobs: %w", err)
	}

	recs := make([]MobRecord, 0, len(ids))
	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if err == redis.Nil {
			continue // Запись истекла по TTL
		} else if err != nil {
			logging.Warn("⚠️ Failed to get mob %s: %v", ids[i], err)
			continue
		}

		var rec MobRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			logging.Warn("⚠️ Failed to unmarshal mob %s: %v", ids[i], err)
			continue
		}
		recs = append(recs, rec)
	}
	sortByID(recs)
	return recs, nil
}

// Delete удаляет моба
func (r *RedisMobRepo) Delete(ctx context.Context, id uint64) error {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.indexKey, strconv.FormatUint(id, 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete mob %d: %w", id, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: моб %d", ErrNotFound, id)
	}
	return nil
}

// BatchSave записывает мобов одним пайплайном
func (r *RedisMobRepo) BatchSave(ctx context.Context, recs []MobRecord) error {
	if len(recs) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	for _, rec := range recs {
		if err := rec.validate(); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal mob %d: %w", rec.ID, err)
		}
		pipe.Set(ctx, r.key(rec.ID), data, r.ttl)
		pipe.SAdd(ctx, r.indexKey, strconv.FormatUint(rec.ID, 10))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (r *RedisMobRepo) Close() error {
	return r.client.Close()
}
