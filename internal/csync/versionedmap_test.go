package csync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionedMap_Set(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[string, int]()
	require.Equal(t, uint64(0), vm.Version())

	vm.Set("key1", 42)
	require.Equal(t, uint64(1), vm.Version())

	value, ok := vm.Get("key1")
	require.True(t, ok)
	require.Equal(t, 42, value)
}

func TestVersionedMap_Del(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[string, int]()
	vm.Set("key1", 42)
	initialVersion := vm.Version()

	vm.Del("key1")
	require.Equal(t, initialVersion+1, vm.Version())

	_, ok := vm.Get("key1")
	require.False(t, ok)
}

func TestVersionedMap_Clear(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[string, int]()
	vm.Set("key1", 1)
	vm.Set("key2", 2)
	require.Equal(t, 2, vm.Len())

	initialVersion := vm.Version()
	vm.Clear()
	require.Equal(t, 0, vm.Len())
	require.Equal(t, initialVersion+1, vm.Version())
}

func TestVersionedMap_Seq2(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[string, int]()
	vm.Set("a", 1)
	vm.Set("b", 2)

	got := make(map[string]int)
	for k, v := range vm.Seq2() {
		got[k] = v
	}
	require.Equal(t, map[string]int{"a": 1, "b": 2}, got)
}

func TestVersionedMap_VersionIncrement(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[string, int]()
	initialVersion := vm.Version()

	vm.Set("key1", 42)
	require.Equal(t, initialVersion+1, vm.Version())

	vm.Del("key1")
	require.Equal(t, initialVersion+2, vm.Version())

	// Deleting a non-existent key still increments the version.
	vm.Del("nonexistent")
	require.Equal(t, initialVersion+3, vm.Version())
}

func TestVersionedMap_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[int, int]()
	const numGoroutines = 100
	const numOperations = 100

	initialVersion := vm.Version()

	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range numOperations {
				key := id*numOperations + j
				vm.Set(key, key*2)
				vm.Del(key)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, initialVersion+uint64(numGoroutines*numOperations*2), vm.Version())
	require.Equal(t, 0, vm.Len())
}
