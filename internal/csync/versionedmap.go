// Package csync provides small thread-safe collection types.
package csync

import (
	"iter"
	"maps"
	"sync"
	"sync/atomic"
)

// NewVersionedMap creates a new versioned, thread-safe map.
func NewVersionedMap[K comparable, V any]() *VersionedMap[K, V] {
	return &VersionedMap[K, V]{
		inner: make(map[K]V),
	}
}

// VersionedMap is a thread-safe map that keeps track of its version: every
// mutation bumps a monotonically increasing counter, so callers can cheaply
// detect whether anything changed since they last looked.
type VersionedMap[K comparable, V any] struct {
	mu    sync.RWMutex
	inner map[K]V
	v     atomic.Uint64
}

// Get gets the value for the specified key from the map.
func (m *VersionedMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.inner[key]
	return value, ok
}

// Set sets the value for the specified key in the map and increments the
// version.
func (m *VersionedMap[K, V]) Set(key K, value V) {
	m.mu.Lock()
	m.inner[key] = value
	m.mu.Unlock()
	m.v.Add(1)
}

// Del deletes the specified key from the map and increments the version.
func (m *VersionedMap[K, V]) Del(key K) {
	m.mu.Lock()
	delete(m.inner, key)
	m.mu.Unlock()
	m.v.Add(1)
}

// Clear removes all entries from the map and increments the version.
func (m *VersionedMap[K, V]) Clear() {
	m.mu.Lock()
	clear(m.inner)
	m.mu.Unlock()
	m.v.Add(1)
}

// Seq2 returns an iter.Seq2 that yields key-value pairs from the map.
func (m *VersionedMap[K, V]) Seq2() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.mu.RLock()
		snapshot := maps.Clone(m.inner)
		m.mu.RUnlock()
		for k, v := range snapshot {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Len returns the number of items in the map.
func (m *VersionedMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.inner)
}

// Version returns the current version of the map.
func (m *VersionedMap[K, V]) Version() uint64 {
	return m.v.Load()
}
