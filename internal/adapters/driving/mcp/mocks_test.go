package mcp

import (
	"context"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
)

// mockChunkingService is a mock implementation of driving.ChunkingService.
type mockChunkingService struct {
	result         *domain.ChunkingResult
	classification *domain.Classification
	types          []driving.DocumentTypeInfo
	err            error
	lastRequest    domain.ChunkRequest
}

func (m *mockChunkingService) Chunk(_ context.Context, req domain.ChunkRequest) (*domain.ChunkingResult, error) {
	m.lastRequest = req
	return m.result, m.err
}

func (m *mockChunkingService) Classify(_ context.Context, _ string) (*domain.Classification, error) {
	return m.classification, m.err
}

func (m *mockChunkingService) DocumentTypes() []driving.DocumentTypeInfo {
	return m.types
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	enabled bool
	runs    []domain.RunSummary
	err     error
}

func (m *mockHistoryService) Enabled() bool {
	return m.enabled
}

func (m *mockHistoryService) Recent(_ context.Context, _ int) ([]domain.RunSummary, error) {
	return m.runs, m.err
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.RunSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
