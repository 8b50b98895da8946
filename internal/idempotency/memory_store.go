package idempotency

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	status    string
	expiresAt time.Time
}

// MemoryStore keeps claims in process memory. It is used when Redis is disabled.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]memoryRecord
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]memoryRecord),
		now:     time.Now,
	}
}

func (s *MemoryStore) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if record, ok := s.records[key]; ok && now.Before(record.expiresAt) {
		return false, nil
	}

	s.records[key] = memoryRecord{status: StatusProcessing, expiresAt: now.Add(ttl)}
	return true, nil
}

func (s *MemoryStore) Status(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok || !s.now().Before(record.expiresAt) {
		return "", nil
	}
	return record.status, nil
}

func (s *MemoryStore) Complete(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = memoryRecord{status: StatusCompleted, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

// Sweep drops expired records and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, record := range s.records {
		if !now.Before(record.expiresAt) {
			delete(s.records, key)
			removed++
		}
	}
	return removed
}
