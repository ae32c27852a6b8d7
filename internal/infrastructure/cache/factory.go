package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/orderpad/backend/internal/domain/shared"
	"github.com/orderpad/backend/internal/infrastructure/config"
)

// SQLStoreBuilder opens the database-backed store when the sql driver is selected
type SQLStoreBuilder func() (shared.KeyValueStore, error)

// KeyValueStoreFactory creates the override store selected by configuration
type KeyValueStoreFactory struct {
	storeConfig           config.StoreConfig
	redisConfig           config.RedisConfig
	sqlBuilder            SQLStoreBuilder
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// KeyValueStoreFactoryOption is a functional option for configuring the factory
type KeyValueStoreFactoryOption func(*KeyValueStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) KeyValueStoreFactoryOption {
	return func(f *KeyValueStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) KeyValueStoreFactoryOption {
	return func(f *KeyValueStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// WithSQLStore registers the builder used for the sql driver
func WithSQLStore(builder SQLStoreBuilder) KeyValueStoreFactoryOption {
	return func(f *KeyValueStoreFactory) {
		f.sqlBuilder = builder
	}
}

// NewKeyValueStoreFactory creates a new factory
func NewKeyValueStoreFactory(storeCfg config.StoreConfig, redisCfg config.RedisConfig, opts ...KeyValueStoreFactoryOption) *KeyValueStoreFactory {
	f := &KeyValueStoreFactory{
		storeConfig:           storeCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-based store
func (f *KeyValueStoreFactory) CreateRedisStore() (shared.KeyValueStore, error) {
	store, err := NewRedisKeyValueStore(RedisConfig{
		Host:      f.redisConfig.Host,
		Port:      f.redisConfig.Port,
		Password:  f.redisConfig.Password,
		DB:        f.redisConfig.DB,
		KeyPrefix: f.storeConfig.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis store: %w", err)
	}
	return store, nil
}

// CreateInMemoryStore creates an in-memory store.
// WARNING: overrides are lost on restart and not shared across instances.
func (f *KeyValueStoreFactory) CreateInMemoryStore() shared.KeyValueStore {
	return NewInMemoryKeyValueStore()
}

// CreateStore creates the store for the configured driver. A Redis store that
// cannot connect falls back to memory when fallback is allowed.
func (f *KeyValueStoreFactory) CreateStore() (shared.KeyValueStore, error) {
	switch f.storeConfig.Driver {
	case config.StoreDriverMemory, "":
		f.logger.Info("using in-memory override store")
		return f.CreateInMemoryStore(), nil

	case config.StoreDriverSQL:
		if f.sqlBuilder == nil {
			return nil, fmt.Errorf("sql store driver selected but no database is configured")
		}
		store, err := f.sqlBuilder()
		if err != nil {
			return nil, fmt.Errorf("failed to create sql store: %w", err)
		}
		f.logger.Info("using sql override store")
		return store, nil

	case config.StoreDriverRedis:
		store, err := f.CreateRedisStore()
		if err == nil {
			f.logger.Info("using Redis override store", zap.String("addr", f.redisConfig.Addr()))
			return store, nil
		}
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("Redis required for override store but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory override store. "+
			"Setup changes will be lost on restart.",
			zap.Error(err),
		)
		return f.CreateInMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", f.storeConfig.Driver)
	}
}
