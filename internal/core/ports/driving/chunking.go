package driving

import (
	"context"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// ChunkingService is the single entry point of the chunking pipeline.
type ChunkingService interface {
	// Chunk validates the request, then classifies, segments, annotates and
	// scores the text. Validation failures wrap domain.ErrInvalidInput and
	// nothing is processed. Any valid request yields a best-effort result.
	Chunk(ctx context.Context, req domain.ChunkRequest) (*domain.ChunkingResult, error)

	// Classify detects the document type without chunking.
	Classify(ctx context.Context, text string) (*domain.Classification, error)

	// DocumentTypes describes every known document type.
	DocumentTypes() []DocumentTypeInfo
}

// DocumentTypeInfo describes a document type and its adaptive parameters.
type DocumentTypeInfo struct {
	// Type is the type identifier.
	Type domain.DocumentType `json:"type"`

	// Label is the human-readable name.
	Label string `json:"label"`

	// Band is the adaptive chunk size band in words.
	Band domain.Band `json:"band"`

	// Roles is the party-role vocabulary.
	Roles []string `json:"roles"`
}
