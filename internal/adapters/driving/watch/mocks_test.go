package watch

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
)

// mockChunkingService records requests and returns one chunk per call.
type mockChunkingService struct {
	mu       sync.Mutex
	requests []domain.ChunkRequest
	err      error
}

func (m *mockChunkingService) Chunk(_ context.Context, req domain.ChunkRequest) (*domain.ChunkingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ChunkingResult{
		Success: true,
		Chunks: []domain.ChunkRecord{{
			Content:   domain.ChunkContent{Text: req.Text, ChunkID: "doc_chunk_001"},
			UserID:    req.UserID,
			ProjectID: req.ProjectID,
		}},
		DocumentStats: domain.DocumentStats{TotalChunks: 1},
	}, nil
}

func (m *mockChunkingService) Classify(_ context.Context, _ string) (*domain.Classification, error) {
	return &domain.Classification{Type: domain.GeneralContract}, nil
}

func (m *mockChunkingService) DocumentTypes() []driving.DocumentTypeInfo {
	return nil
}

func (m *mockChunkingService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// mockLoader reads files as plain text.
type mockLoader struct{}

func (mockLoader) Load(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
