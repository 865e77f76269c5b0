package storage

import (
	"context"
	"sync"
)

// MemoryScope is an in-process Scope used in tests and when the kiosk runs
// without a redis backend.
type MemoryScope struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemoryScope returns an empty in-memory scope.
func NewMemoryScope() *MemoryScope {
	return &MemoryScope{entries: make(map[string]string)}
}

// Get returns the stored value or ErrNotFound.
func (s *MemoryScope) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores the value.
func (s *MemoryScope) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

// Remove deletes the key.
func (s *MemoryScope) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Len reports the number of stored entries.
func (s *MemoryScope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
