package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps runs in process memory. It backs the CLI and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*Run
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[uuid.UUID]*Run), now: time.Now}
}

func (s *MemoryStore) CreateRun(_ context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prepare(run, s.now())
	cp := *run
	s.runs[run.ID] = &cp
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id uuid.UUID) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, nil
	}
	cp := *run
	return &cp, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, filter RunFilter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return limitRuns(s.collect(filter), filter.Limit), nil
}

func (s *MemoryStore) GetStats(_ context.Context) (*RunStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return statsOf(s.collect(RunFilter{})), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) collect(filter RunFilter) []*Run {
	var runs []*Run
	for _, run := range s.runs {
		if matches(run, filter) {
			cp := *run
			runs = append(runs, &cp)
		}
	}
	sortNewestFirst(runs)
	return runs
}

func sortNewestFirst(runs []*Run) {
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID.String() < runs[j].ID.String()
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
}

func limitRuns(runs []*Run, limit int) []*Run {
	if limit > 0 && len(runs) > limit {
		return runs[:limit]
	}
	return runs
}
