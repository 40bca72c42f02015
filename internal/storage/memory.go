package storage

import (
	"context"
	"sync"

	"github.com/sevigo/print-relay/internal/core"
)

// memoryStore keeps the most recent records in a fixed-size ring.
type memoryStore struct {
	mu      sync.Mutex
	records []*core.JobRecord
	next    int
	full    bool
}

// NewMemoryStore creates a Store that retains the last capacity records.
func NewMemoryStore(capacity int) Store {
	if capacity <= 0 {
		capacity = MaxListLimit
	}
	return &memoryStore{records: make([]*core.JobRecord, capacity)}
}

func (s *memoryStore) RecordJob(_ context.Context, rec *core.JobRecord) error {
	cp := *rec
	cp.Stages = append([]core.Stage(nil), rec.Stages...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[s.next] = &cp
	s.next = (s.next + 1) % len(s.records)
	if s.next == 0 {
		s.full = true
	}
	return nil
}

func (s *memoryStore) RecentJobs(_ context.Context, limit int) ([]*core.JobRecord, error) {
	limit = ClampLimit(limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.next
	if s.full {
		size = len(s.records)
	}
	if limit > size {
		limit = size
	}

	out := make([]*core.JobRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (s.next - i + len(s.records)) % len(s.records)
		cp := *s.records[idx]
		out = append(out, &cp)
	}
	return out, nil
}
