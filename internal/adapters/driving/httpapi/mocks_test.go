package httpapi

import (
	"context"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
)

// mockChunkingService is a mock implementation of driving.ChunkingService.
type mockChunkingService struct {
	result      *domain.ChunkingResult
	err         error
	types       []driving.DocumentTypeInfo
	lastRequest *domain.ChunkRequest
}

func (m *mockChunkingService) Chunk(_ context.Context, req domain.ChunkRequest) (*domain.ChunkingResult, error) {
	m.lastRequest = &req
	return m.result, m.err
}

func (m *mockChunkingService) Classify(_ context.Context, _ string) (*domain.Classification, error) {
	return &domain.Classification{Type: domain.GeneralContract}, m.err
}

func (m *mockChunkingService) DocumentTypes() []driving.DocumentTypeInfo {
	return m.types
}

func sampleResult() *domain.ChunkingResult {
	info := domain.DocumentInfo{
		DocumentID: "20120915120000042",
		Title:      "CONTRAT DE RESERVATION VEFA",
		Date:       "15/09/2012",
		Parties:    map[string]string{"reservant": "SCCV LA VALLEE MONTEVRAIN HOTEL"},
		Project:    "LE NEST",
		Source:     "Contrat de réservation VEFA - LE NEST - 15/09/2012",
	}
	return &domain.ChunkingResult{
		Success: true,
		Chunks: []domain.ChunkRecord{{
			Content: domain.ChunkContent{Text: "Article 1 - Objet", ChunkID: "20120915120000042_chunk_001"},
			Metadata: domain.ChunkMetadata{
				WordCount:    4,
				QualityScore: 0.81,
				ContentType:  domain.ContentLegalClause,
				Entities:     domain.NewEntities(),
			},
			DocumentInfo: info,
			UserID:       "u-1",
			ProjectID:    "p-1",
		}},
		DocumentStats: domain.DocumentStats{
			TotalChunks:         1,
			AvgChunkQuality:     0.81,
			QualityDistribution: domain.QualityDistribution{High: 1},
			DocumentType:        domain.ReservationContract,
			DocumentInfo:        info,
		},
	}
}
