package kv

import (
	"sort"
	"sync"
)

type memStore struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ Store = (*memStore)(nil) // interface compliance check

// NewMemStore returns a process-local store; state is lost on exit.
func NewMemStore() Store {
	return &memStore{data: make(map[string]string)}
}

func (ms *memStore) Get(key string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	val, ok := ms.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (ms *memStore) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.data[key] = value
	return nil
}

func (ms *memStore) Delete(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.data, key)
	return nil
}

func (ms *memStore) Keys() ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	keys := make([]string, 0, len(ms.data))
	for k := range ms.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
