package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
// The app falls back to it when the sqlite journal cannot be opened.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.RunSummary
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.RunSummary),
	}
}

// SaveRun records a run summary.
func (s *RunStore) SaveRun(_ context.Context, run *domain.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = *run
	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// ListRuns returns recent runs, most recent first.
// A non-positive limit returns every run.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := s.sorted()
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// PruneRuns keeps the most recent 'keep' runs.
func (s *RunStore) PruneRuns(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	runs := s.sorted()
	if keep < 0 {
		keep = 0
	}
	for _, run := range runs[min(keep, len(runs)):] {
		delete(s.runs, run.ID)
	}
	return nil
}

// sorted returns runs newest first (caller must hold lock).
func (s *RunStore) sorted() []domain.RunSummary {
	runs := make([]domain.RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs
}
