package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Set("collection", "papers"))

	val, ok := store.Get("collection")
	assert.True(t, ok)
	assert.Equal(t, "papers", val)
	assert.Equal(t, "papers", store.GetString("collection"))
}

func TestConfigStore_MissingKey(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Set("a", 7))
	assert.NoError(t, store.Set("b", int64(8)))
	assert.NoError(t, store.Set("c", float64(9)))
	assert.NoError(t, store.Set("d", "not a number"))

	assert.Equal(t, 7, store.GetInt("a"))
	assert.Equal(t, 8, store.GetInt("b"))
	assert.Equal(t, 9, store.GetInt("c"))
	assert.Zero(t, store.GetInt("d"))
}

func TestConfigStore_SaveIsNoOp(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("collection", "library")
			_ = store.GetString("collection")
		}()
	}
	wg.Wait()

	assert.Equal(t, "library", store.GetString("collection"))
}
