// internal/services/storage_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/vinyl-storefront/internal/config"
	"github.com/javajoker/vinyl-storefront/internal/models"
)

// CartStorage is the durable key-value store holding serialized carts.
// Load returns nil data when the key has never been written.
type CartStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Ping(ctx context.Context) error
}

// NewCartStorage selects the backend named in the configuration.
func NewCartStorage(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (CartStorage, error) {
	switch cfg.Cart.Backend {
	case config.CartBackendMemory:
		return NewMemoryCartStorage(), nil
	case config.CartBackendRedis:
		if rdb == nil {
			return nil, errors.New("redis cart storage requires a redis client")
		}
		return NewRedisCartStorage(rdb), nil
	case config.CartBackendPostgres:
		if db == nil {
			return nil, errors.New("postgres cart storage requires a database connection")
		}
		return NewDBCartStorage(db), nil
	default:
		return nil, fmt.Errorf("unknown cart backend %q", cfg.Cart.Backend)
	}
}

// MemoryCartStorage keeps carts in process memory. Carts are lost on restart.
type MemoryCartStorage struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func NewMemoryCartStorage() *MemoryCartStorage {
	return &MemoryCartStorage{store: make(map[string][]byte)}
}

func (m *MemoryCartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.store[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryCartStorage) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.store[key] = stored
	return nil
}

func (m *MemoryCartStorage) Ping(ctx context.Context) error {
	return nil
}

// RedisCartStorage stores each cart as a plain string value without expiry.
type RedisCartStorage struct {
	client *redis.Client
}

func NewRedisCartStorage(client *redis.Client) *RedisCartStorage {
	return &RedisCartStorage{client: client}
}

func (r *RedisCartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET %s: %w", key, err)
	}
	return data, nil
}

func (r *RedisCartStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

func (r *RedisCartStorage) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.client.Ping(pingCtx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis ping failed")
		return err
	}
	return nil
}

// DBCartStorage stores carts as rows of the storage_entries table.
type DBCartStorage struct {
	db *gorm.DB
}

func NewDBCartStorage(db *gorm.DB) *DBCartStorage {
	return &DBCartStorage{db: db}
}

func (s *DBCartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var entry models.StorageEntry
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return []byte(entry.Value), nil
}

func (s *DBCartStorage) Save(ctx context.Context, key string, data []byte) error {
	entry := models.StorageEntry{Key: key, Value: string(data)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to upsert storage entry: %w", err)
	}
	return nil
}

func (s *DBCartStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
