package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

func TestChunkID(t *testing.T) {
	assert.Equal(t, "20120915120000042_chunk_001", ChunkID("20120915120000042", 0))
	assert.Equal(t, "20120915120000042_chunk_010", ChunkID("20120915120000042", 9))
	assert.Equal(t, "20120915120000042_chunk_1000", ChunkID("20120915120000042", 999))
}

func TestSourceReference(t *testing.T) {
	tests := []struct {
		name  string
		label string
		meta  domain.DocumentMetadata
		want  string
	}{
		{"project preferred", "Bail commercial", domain.DocumentMetadata{Title: "BAIL", Project: "LES HALLES", Date: "01/02/2020"}, "Bail commercial - LES HALLES - 01/02/2020"},
		{"title fallback", "Devis", domain.DocumentMetadata{Title: "DEVIS N° 12"}, "Devis - DEVIS N° 12"},
		{"label only", "Contrat", domain.DocumentMetadata{}, "Contrat"},
		{"nothing", "", domain.DocumentMetadata{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sourceReference(tt.label, tt.meta))
		})
	}
}

func TestAssemble_PartiesCopied(t *testing.T) {
	parties := map[string]string{"bailleur": "Monsieur Jean DUPONT"}
	doc := &domain.Document{ID: "20200101120000001", Metadata: domain.DocumentMetadata{Parties: parties}}

	result := Assemble(doc, []domain.Chunk{{Content: "x", Score: 0.85}}, "u", "p", domain.DefaultAppSettings().Chunking)
	parties["locataire"] = "Madame Claire MARTIN"

	assert.Len(t, result.Chunks[0].DocumentInfo.Parties, 1)
	assert.Equal(t, 1, result.DocumentStats.QualityDistribution.High)
}

func TestAssemble_NilPartiesBecomeEmptyMap(t *testing.T) {
	doc := &domain.Document{ID: "20200101120000001"}

	result := Assemble(doc, nil, "u", "p", domain.DefaultAppSettings().Chunking)

	assert.NotNil(t, result.DocumentStats.DocumentInfo.Parties)
	assert.NotNil(t, result.Chunks)
}

func TestAssemble_AverageRounded(t *testing.T) {
	doc := &domain.Document{ID: "20200101120000001"}
	chunks := []domain.Chunk{{Score: 0.8}, {Score: 0.7}, {Score: 0.7}}

	result := Assemble(doc, chunks, "u", "p", domain.DefaultAppSettings().Chunking)

	assert.Equal(t, 0.733, result.DocumentStats.AvgChunkQuality)
	assert.Equal(t, domain.QualityDistribution{High: 1, Medium: 2}, result.DocumentStats.QualityDistribution)
}
