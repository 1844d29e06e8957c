package idempotency

import (
	"context"
	"sync"
	"time"
)

const defaultCleanupInterval = 5 * time.Minute

// MemoryStore keeps reservations in process. It suits a single instance and tests.
type MemoryStore struct {
	mu        sync.Mutex
	expiresAt map[string]time.Time
	now       func() time.Time

	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryStore starts a goroutine that drops expired keys every interval; 0 means five
// minutes. Close stops it.
func NewMemoryStore(interval time.Duration) *MemoryStore {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	s := &MemoryStore{
		expiresAt: make(map[string]time.Time),
		now:       time.Now,
		stop:      make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop(interval)

	return s
}

func (s *MemoryStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.expiresAt[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.expiresAt[key] = now.Add(ttl)
	return true, nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.expiresAt, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
	return nil
}

func (s *MemoryStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiresAt)
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, exp := range s.expiresAt {
		if !now.Before(exp) {
			delete(s.expiresAt, key)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
