package storage

import (
	"context"
	"sync"
)

// MemoryDeviceStore is an in-memory DeviceStore for tests and redis-less
// development.
type MemoryDeviceStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryDeviceStore creates an empty in-memory device store.
func NewMemoryDeviceStore() *MemoryDeviceStore {
	return &MemoryDeviceStore{data: make(map[string]string)}
}

func (s *MemoryDeviceStore) Get(_ context.Context, deviceID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[deviceKey(deviceID, key)]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *MemoryDeviceStore) Set(_ context.Context, deviceID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[deviceKey(deviceID, key)] = value
	return nil
}

func (s *MemoryDeviceStore) Delete(_ context.Context, deviceID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, deviceKey(deviceID, key))
	return nil
}

func (s *MemoryDeviceStore) Clear(_ context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range knownKeys {
		delete(s.data, deviceKey(deviceID, k))
	}
	return nil
}
