// Package entities annotates chunks with the entities found in their text.
package entities

import (
	"context"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.PostProcessor = (*Processor)(nil)

// Processor fills Chunk.Entities and Chunk.Matches.
// It implements the PostProcessor interface.
type Processor struct {
	extractor driven.MetadataExtractor
}

// New creates an entity processor backed by the given extractor.
func New(extractor driven.MetadataExtractor) *Processor {
	return &Processor{extractor: extractor}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "entities"
}

// Process extracts entities from every chunk. The input slice is not modified.
func (p *Processor) Process(ctx context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	out := make([]domain.Chunk, len(chunks))
	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.Entities, c.Matches = p.extractor.ChunkEntities(c.Content)
		out[i] = c
	}
	return out, nil
}
