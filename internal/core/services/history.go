package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is the number of runs listed when no limit is given.
const DefaultHistoryLimit = 20

// HistoryService exposes the run journal.
type HistoryService struct {
	store driven.RunStore
}

// NewHistoryService creates a history service. A nil store disables history.
func NewHistoryService(store driven.RunStore) *HistoryService {
	return &HistoryService{store: store}
}

// Enabled returns true if runs are being recorded.
func (s *HistoryService) Enabled() bool {
	return s.store != nil
}

// Recent returns the most recent runs, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get retrieves one run by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.RunSummary, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryDisabled
	}
	run, err := s.store.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}
