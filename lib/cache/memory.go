package cache

import (
	"sync"
	"time"
)

// MemoryStore is an ephemeral Store used by tests and one-shot
// invocations that shouldn't touch the filesystem.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]Entry{}}
}

func (s *MemoryStore) Get(key string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	payload := make([]byte, len(entry.Payload))
	copy(payload, entry.Payload)
	entry.Payload = payload
	return entry, nil
}

func (s *MemoryStore) Put(key string, payload []byte, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.entries[key] = Entry{Key: key, Payload: stored, FetchedAt: fetchedAt}
	return nil
}
