package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Entry is what a region keeps per key. Key holds the full, unhashed cache key so that
// a hash collision is detected on read instead of returning a foreign value.
type Entry struct {
	Key     string          `json:"key"`
	Expires time.Time       `json:"expires"`
	Value   json.RawMessage `json:"value"`
}

func (e Entry) expired(now time.Time) bool {
	return !now.Before(e.Expires)
}

type Store interface {
	Get(ctx context.Context, id string) (Entry, bool, error)
	Set(ctx context.Context, id string, e Entry) error
	Delete(ctx context.Context, id string) error
	Purge(ctx context.Context, now time.Time) (int, error)
	Close() error
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryStore() Store {
	return &memoryStore{
		entries: map[string]Entry{},
	}
}

func (s *memoryStore) Get(ctx context.Context, id string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	return e, ok, nil
}

func (s *memoryStore) Set(ctx context.Context, id string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = e
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

func (s *memoryStore) Purge(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, id)
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) Close() error {
	return nil
}
