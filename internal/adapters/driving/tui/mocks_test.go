package tui

import (
	"context"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
)

// mockChunkingService returns a fixed result and records the last request.
type mockChunkingService struct {
	result  *domain.ChunkingResult
	err     error
	lastReq domain.ChunkRequest
}

func (m *mockChunkingService) Chunk(_ context.Context, req domain.ChunkRequest) (*domain.ChunkingResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return sampleResult(), nil
}

func (m *mockChunkingService) Classify(_ context.Context, _ string) (*domain.Classification, error) {
	return &domain.Classification{Type: domain.GeneralContract}, nil
}

func (m *mockChunkingService) DocumentTypes() []driving.DocumentTypeInfo {
	return nil
}

// mockLoader serves texts from a map keyed by path.
type mockLoader struct {
	files map[string]string
}

func (m *mockLoader) Load(_ context.Context, path string) (string, error) {
	text, ok := m.files[path]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

func sampleResult() *domain.ChunkingResult {
	info := domain.DocumentInfo{
		DocumentID: "doc_20150403_120000_0042",
		Title:      "CONTRAT DE BAIL D'HABITATION",
		Date:       "03/04/2015",
		Parties:    map[string]string{"bailleur": "Monsieur Jean DUPONT", "locataire": "Madame Claire MARTIN"},
		Source:     "Bail d'habitation - CONTRAT DE BAIL D'HABITATION - 03/04/2015",
	}
	entities := domain.NewEntities()
	entities.Add(domain.EntityAmounts, "850 €")
	return &domain.ChunkingResult{
		Success: true,
		Chunks: []domain.ChunkRecord{
			{
				Content:      domain.ChunkContent{Text: "Article 1 - Désignation. Le logement est situé à Lyon.", ChunkID: info.DocumentID + "_chunk_001"},
				Metadata:     domain.ChunkMetadata{WordCount: 10, QualityScore: 0.84, ContentType: domain.ContentLegalClause, Entities: domain.NewEntities()},
				DocumentInfo: info,
			},
			{
				Content:      domain.ChunkContent{Text: "Le loyer mensuel est fixé à 850 € charges comprises.", ChunkID: info.DocumentID + "_chunk_002"},
				Metadata:     domain.ChunkMetadata{WordCount: 9, QualityScore: 0.66, ContentType: domain.ContentFinancial, Entities: entities},
				DocumentInfo: info,
			},
		},
		DocumentStats: domain.DocumentStats{
			TotalChunks:     2,
			AvgChunkQuality: 0.75,
			DocumentType:    domain.ResidentialLease,
			DocumentInfo:    info,
		},
	}
}
