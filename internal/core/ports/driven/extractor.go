package driven

import "github.com/custodia-labs/legalchunk/internal/core/domain"

// MetadataExtractor extracts best-effort information from document text.
// Misses leave fields empty; extraction never fails and never mutates input.
type MetadataExtractor interface {
	// DocumentMetadata extracts title, date, parties, project and location
	// from the full text, using the role vocabulary of the given type.
	DocumentMetadata(text string, docType domain.DocumentType) domain.DocumentMetadata

	// ChunkEntities extracts entities from a chunk of text.
	// Every category is present in the result, possibly empty.
	ChunkEntities(text string) (domain.Entities, []domain.EntityMatch)
}
