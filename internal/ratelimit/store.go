package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store counts requests per (identifier, bucket) key inside fixed windows.
// Increment returns the count after incrementing and the moment the current
// window resets. Implementations must be safe for concurrent use.
type Store interface {
	Increment(ctx context.Context, identifier, bucket string, window time.Duration) (int, time.Time, error)
	Get(ctx context.Context, identifier, bucket string) (int, time.Time, error)
	ResetExpired(ctx context.Context) error
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	windows map[string]*windowEntry
	now     func() time.Time
}

// NewMemoryStore returns an in-process Store. Windows roll over lazily on
// access; ResetExpired sweeps entries left behind by idle keys.
func NewMemoryStore() Store {
	return &memoryStore{
		windows: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

func storeKey(identifier, bucket string) string {
	return identifier + ":" + bucket
}

func (s *memoryStore) Increment(ctx context.Context, identifier, bucket string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := storeKey(identifier, bucket)
	now := s.now()

	entry, ok := s.windows[key]
	if !ok || !now.Before(entry.resetAt) {
		entry = &windowEntry{resetAt: now.Add(window)}
		s.windows[key] = entry
	}
	entry.count++
	return entry.count, entry.resetAt, nil
}

func (s *memoryStore) Get(ctx context.Context, identifier, bucket string) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.windows[storeKey(identifier, bucket)]
	if !ok || !s.now().Before(entry.resetAt) {
		return 0, time.Time{}, nil
	}
	return entry.count, entry.resetAt, nil
}

func (s *memoryStore) ResetExpired(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.windows {
		if !now.Before(entry.resetAt) {
			delete(s.windows, key)
		}
	}
	return nil
}
