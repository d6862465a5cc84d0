package storage

import (
	"context"
	"sync"
)

// Memory is a KV held in process memory. Contents are lost on restart.
type Memory struct {
	data  map[string][]byte
	used  int64
	quota int64
	mu    sync.RWMutex
}

func NewMemory(quota int64) *Memory {
	return &Memory{
		data:  make(map[string][]byte),
		quota: quota,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := int64(len(m.data[key]))
	if err := checkQuota(m.used, current, int64(len(value)), m.quota); err != nil {
		return err
	}

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	m.used += int64(len(value)) - current
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.used -= int64(len(m.data[key]))
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
