package storage

import (
	"sync"
)

type InMemoryStorage struct {
	mu   sync.RWMutex
	data map[string]any
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		data: make(map[string]any),
	}
}

func (s *InMemoryStorage) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func (s *InMemoryStorage) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Update applies fn to the current value under key while holding the write
// lock, so read-modify-write sequences do not interleave.
func (s *InMemoryStorage) Update(key string, fn func(current any, exists bool) any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.data[key]
	s.data[key] = fn(current, ok)
}

func (s *InMemoryStorage) All() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make([]any, 0, len(s.data))
	for _, v := range s.data {
		values = append(values, v)
	}
	return values
}

func (s *InMemoryStorage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]any)
}
