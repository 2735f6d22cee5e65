package driven

import (
	"context"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// RunStore persists the statistics of chunking calls.
// It never stores document text.
type RunStore interface {
	// SaveRun records a run summary.
	SaveRun(ctx context.Context, run *domain.RunSummary) error

	// GetRun retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	GetRun(ctx context.Context, id string) (*domain.RunSummary, error)

	// ListRuns returns recent runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// PruneRuns removes old runs beyond the retention limit.
	// Keeps the most recent 'keep' runs.
	PruneRuns(ctx context.Context, keep int) error
}
