package driving

import (
	"context"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// HistoryService exposes the run journal.
type HistoryService interface {
	// Enabled returns true if runs are being recorded.
	Enabled() bool

	// Recent returns the most recent runs, newest first.
	// Returns domain.ErrHistoryDisabled when no journal is configured.
	Recent(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// Get retrieves one run by ID.
	Get(ctx context.Context, id string) (*domain.RunSummary, error)
}
