package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderpad/backend/internal/domain/shared"
)

func TestInMemoryKeyValueStore(t *testing.T) {
	store := NewInMemoryKeyValueStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, shared.ErrKeyNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a", []byte("1")))
		v, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), v)
	})

	t.Run("values are copied", func(t *testing.T) {
		in := []byte("abc")
		require.NoError(t, store.Put(ctx, "b", in))
		in[0] = 'x'

		out, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(out))

		out[0] = 'y'
		again, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "c", []byte("1")))
		require.NoError(t, store.Delete(ctx, "c"))
		require.NoError(t, store.Delete(ctx, "c"))
		_, err := store.Get(ctx, "c")
		assert.ErrorIs(t, err, shared.ErrKeyNotFound)
	})
}

func TestInMemoryKeyValueStore_Concurrency(t *testing.T) {
	store := NewInMemoryKeyValueStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			_ = store.Put(ctx, key, []byte(key))
			_, _ = store.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Size())
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
	assert.Equal(t, 0, store.Size())
}
