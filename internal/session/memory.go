package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    uint64
	expiresAt time.Time
}

// MemoryStore is an in-process Store. It backs tests and the degraded mode
// when Redis is unreachable at startup; sessions do not survive restarts.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore returns an empty in-process store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     clampTTL(ttl),
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID uint64) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{userID: userID, expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *MemoryStore) Resolve(_ context.Context, id string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return 0, ErrNotFound
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, id)
		return 0, ErrNotFound
	}
	// Sliding expiry, same behavior as the Redis store.
	e.expiresAt = s.now().Add(s.ttl)
	s.entries[id] = e
	return e.userID, nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
