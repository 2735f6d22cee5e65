package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
)

var errStore = errors.New("store unavailable")

type mockClassifier struct {
	result domain.Classification
	calls  int
}

func (m *mockClassifier) Classify(_ string) domain.Classification {
	m.calls++
	return m.result
}

type mockExtractor struct {
	meta domain.DocumentMetadata
}

func (m *mockExtractor) DocumentMetadata(_ string, _ domain.DocumentType) domain.DocumentMetadata {
	return m.meta
}

func (m *mockExtractor) ChunkEntities(_ string) (domain.Entities, []domain.EntityMatch) {
	return domain.NewEntities(), nil
}

// mockPipeline records the document it was given and returns fixed chunks.
type mockPipeline struct {
	chunks []domain.Chunk
	err    error
	doc    *domain.Document
}

func (m *mockPipeline) Process(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	m.doc = doc
	return m.chunks, m.err
}

// mockIDs returns a fixed identifier and records the base it was given.
type mockIDs struct {
	id   string
	base time.Time
}

func (m *mockIDs) Next(base time.Time) string {
	m.base = base
	return m.id
}

type mockRunStore struct {
	mu      sync.Mutex
	runs    []domain.RunSummary
	pruned  []int
	saveErr error
	listErr error
}

var _ driven.RunStore = (*mockRunStore)(nil)

func (m *mockRunStore) SaveRun(_ context.Context, run *domain.RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append(m.runs, *run)
	return nil
}

func (m *mockRunStore) GetRun(_ context.Context, id string) (*domain.RunSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.runs {
		if r.ID == id {
			run := r
			return &run, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRunStore) ListRuns(_ context.Context, limit int) ([]domain.RunSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit > len(m.runs) {
		limit = len(m.runs)
	}
	return append([]domain.RunSummary(nil), m.runs[:limit]...), nil
}

func (m *mockRunStore) PruneRuns(_ context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned = append(m.pruned, keep)
	return nil
}

type mockCatalog struct{}

func (mockCatalog) DocumentTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.ReservationContract, domain.GeneralContract}
}

func (mockCatalog) Label(t domain.DocumentType) string {
	if t == domain.ReservationContract {
		return "Contrat de réservation VEFA"
	}
	return "Contrat"
}

func (mockCatalog) Params(t domain.DocumentType) domain.AdaptiveParams {
	if t == domain.ReservationContract {
		return domain.AdaptiveParams{
			Band:  domain.Band{Min: 30, Target: 45, Max: 60},
			Roles: []string{"reservant", "reservataire"},
		}
	}
	return domain.AdaptiveParams{Band: domain.Band{Min: 40, Target: 55, Max: 70}}
}
