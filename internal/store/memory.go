package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store with an optional size quota, modelled on a
// browser's localStorage.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
	size    int
	quota   int
}

// NewMemory creates an empty store. quota limits the combined byte length of
// keys and values; zero or less means unlimited.
func NewMemory(quota int) *Memory {
	return &Memory{
		entries: make(map[string]string),
		quota:   quota,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := m.size + len(key) + len(value)
	if old, ok := m.entries[key]; ok {
		size -= len(key) + len(old)
	}
	if m.quota > 0 && size > m.quota {
		return ErrQuotaExceeded
	}

	m.entries[key] = value
	m.size = size
	return nil
}

func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.entries[key]; ok {
		m.size -= len(key) + len(old)
		delete(m.entries, key)
	}
	return nil
}
