package quality

import (
	"context"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.PostProcessor = (*Processor)(nil)

// Processor scores chunks and tags their content type.
// It implements the PostProcessor interface.
type Processor struct {
	scorer *Scorer
}

// New creates a quality processor around a scorer.
func New(scorer *Scorer) *Processor {
	return &Processor{scorer: scorer}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "quality"
}

// Process fills Score, Quality and ContentType on every chunk.
// Chunks are never dropped, whatever their score.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	out := make([]domain.Chunk, len(chunks))
	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entities := c.Entities
		if entities == nil {
			entities = domain.NewEntities()
		}
		c.Score, c.Quality = p.scorer.Score(Input{
			Text:             c.Content,
			WordCount:        c.WordCount,
			Entities:         entities,
			DocType:          doc.Type(),
			Band:             doc.Params.Band,
			StartsAtBoundary: c.StartsAtBoundary,
			EndsAtBoundary:   c.EndsAtBoundary,
			First:            i == 0,
			Last:             i == len(chunks)-1,
		})
		c.ContentType = p.scorer.ContentType(c.Content, c.ContentType == domain.ContentTable)
		out[i] = c
	}
	return out, nil
}
