package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

const runColumns = `id, document_id, document_type, confidence, user_id, project_id,
	word_count, total_chunks, avg_quality, high_chunks, medium_chunks, low_chunks,
	duration_ns, created_at`

// SaveRun records a run summary. Saving an existing ID replaces it.
func (s *runStore) SaveRun(ctx context.Context, run *domain.RunSummary) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_id = excluded.document_id,
			document_type = excluded.document_type,
			confidence = excluded.confidence,
			user_id = excluded.user_id,
			project_id = excluded.project_id,
			word_count = excluded.word_count,
			total_chunks = excluded.total_chunks,
			avg_quality = excluded.avg_quality,
			high_chunks = excluded.high_chunks,
			medium_chunks = excluded.medium_chunks,
			low_chunks = excluded.low_chunks,
			duration_ns = excluded.duration_ns,
			created_at = excluded.created_at
	`, run.ID, run.DocumentID, string(run.DocumentType), run.Confidence,
		run.UserID, run.ProjectID, run.WordCount, run.TotalChunks, run.AvgQuality,
		run.Distribution.High, run.Distribution.Medium, run.Distribution.Low,
		int64(run.Duration), run.CreatedAt.UnixNano())

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *runStore) GetRun(ctx context.Context, id string) (*domain.RunSummary, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	return run, nil
}

// ListRuns returns recent runs, most recent first.
// A non-positive limit returns every run.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// PruneRuns removes old runs beyond the retention limit.
// Keeps the most recent 'keep' runs.
func (s *runStore) PruneRuns(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM runs
		WHERE id NOT IN (
			SELECT id FROM runs
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.RunSummary, error) {
	var run domain.RunSummary
	var docType string
	var durationNs, createdAt int64

	if err := row.Scan(&run.ID, &run.DocumentID, &docType, &run.Confidence,
		&run.UserID, &run.ProjectID, &run.WordCount, &run.TotalChunks, &run.AvgQuality,
		&run.Distribution.High, &run.Distribution.Medium, &run.Distribution.Low,
		&durationNs, &createdAt); err != nil {
		return nil, err
	}

	run.DocumentType = domain.DocumentType(docType)
	run.Duration = time.Duration(durationNs)
	run.CreatedAt = time.Unix(0, createdAt).UTC()
	return &run, nil
}
