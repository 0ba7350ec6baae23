package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps the most recent runs in a fixed-size ring buffer.
type MemoryStore struct {
	mu       sync.RWMutex
	runs     []*AnalysisRun
	next     int
	full     bool
	capacity int
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = defaultListLimit
	}
	return &MemoryStore{
		runs:     make([]*AnalysisRun, capacity),
		capacity: capacity,
	}
}

func (m *MemoryStore) RecordRun(_ context.Context, run *AnalysisRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	stored := *run

	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[m.next] = &stored
	m.next = (m.next + 1) % m.capacity
	if m.next == 0 {
		m.full = true
	}
	return nil
}

// ListRuns returns up to limit runs, newest first.
func (m *MemoryStore) ListRuns(_ context.Context, limit int) ([]*AnalysisRun, error) {
	limit = normalizeLimit(limit)

	m.mu.RLock()
	defer m.mu.RUnlock()

	size := m.next
	if m.full {
		size = m.capacity
	}
	if limit > size {
		limit = size
	}
	out := make([]*AnalysisRun, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (m.next - i + m.capacity) % m.capacity
		c := *m.runs[idx]
		out = append(out, &c)
	}
	return out, nil
}

func (m *MemoryStore) GetRun(_ context.Context, id uuid.UUID) (*AnalysisRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.runs {
		if r != nil && r.ID == id {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) Close() error { return nil }
