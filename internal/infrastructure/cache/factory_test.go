package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/orderpad/backend/internal/domain/shared"
	"github.com/orderpad/backend/internal/infrastructure/config"
)

// unreachableRedis points at a port nothing listens on
var unreachableRedis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

func TestKeyValueStoreFactory_CreateStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		f := NewKeyValueStoreFactory(config.StoreConfig{Driver: config.StoreDriverMemory}, unreachableRedis)
		store, err := f.CreateStore()
		require.NoError(t, err)
		assert.IsType(t, &InMemoryKeyValueStore{}, store)
	})

	t.Run("sql uses builder", func(t *testing.T) {
		want := NewInMemoryKeyValueStore()
		f := NewKeyValueStoreFactory(
			config.StoreConfig{Driver: config.StoreDriverSQL},
			unreachableRedis,
			WithSQLStore(func() (shared.KeyValueStore, error) { return want, nil }),
		)
		store, err := f.CreateStore()
		require.NoError(t, err)
		assert.Same(t, want, store)
	})

	t.Run("sql without builder", func(t *testing.T) {
		f := NewKeyValueStoreFactory(config.StoreConfig{Driver: config.StoreDriverSQL}, unreachableRedis)
		_, err := f.CreateStore()
		assert.Error(t, err)
	})

	t.Run("sql builder error", func(t *testing.T) {
		f := NewKeyValueStoreFactory(
			config.StoreConfig{Driver: config.StoreDriverSQL},
			unreachableRedis,
			WithSQLStore(func() (shared.KeyValueStore, error) { return nil, errors.New("boom") }),
		)
		_, err := f.CreateStore()
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("redis falls back to memory", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := NewKeyValueStoreFactory(
			config.StoreConfig{Driver: config.StoreDriverRedis},
			unreachableRedis,
			WithLogger(zap.New(core)),
		)
		store, err := f.CreateStore()
		require.NoError(t, err)
		assert.IsType(t, &InMemoryKeyValueStore{}, store)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("redis without fallback", func(t *testing.T) {
		f := NewKeyValueStoreFactory(
			config.StoreConfig{Driver: config.StoreDriverRedis},
			unreachableRedis,
			WithInMemoryFallback(false),
		)
		_, err := f.CreateStore()
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		f := NewKeyValueStoreFactory(config.StoreConfig{Driver: "etcd"}, unreachableRedis)
		_, err := f.CreateStore()
		assert.Error(t, err)
	})
}
