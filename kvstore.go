package cheesyblog

import (
	"maps"
	"sync"
)

// KVStore is the persistence sink used by the stores. Values are JSON text.
type KVStore interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// MultiSetter is implemented by stores that can write several keys in one transaction.
type MultiSetter interface {
	SetMany(values map[string]string) error
}

// MemoryKVStore implements KVStore using in-memory storage
type MemoryKVStore struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryKVStore creates a new MemoryKVStore
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{
		values: make(map[string]string),
	}
}

// Get retrieves a value from the store
func (m *MemoryKVStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

// Set stores a value
func (m *MemoryKVStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// SetMany stores all values at once
func (m *MemoryKVStore) SetMany(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	maps.Copy(m.values, values)
	return nil
}

// Clear removes all values
func (m *MemoryKVStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]string)
	return nil
}

// Close closes the store
func (m *MemoryKVStore) Close() error {
	return nil
}

// writeAll writes values through SetMany when the store supports it, one key at a time otherwise
func writeAll(kv KVStore, values map[string]string, order ...string) error {
	if ms, ok := kv.(MultiSetter); ok {
		return ms.SetMany(values)
	}

	for _, key := range order {
		if err := kv.Set(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}
