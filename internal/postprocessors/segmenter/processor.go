package segmenter

import (
	"context"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

// Verify interface compliance.
var _ driven.PostProcessor = (*Processor)(nil)

// DefaultOverlap is the default number of overlapping words.
const DefaultOverlap = 15

// DefaultBand is used when a document carries no adaptive band.
var DefaultBand = domain.Band{Min: 40, Target: 60, Max: 80}

// Processor creates chunks from document content.
// It implements the PostProcessor interface.
type Processor struct {
	segmenter *Segmenter
	band      domain.Band
	overlap   int
}

// Option configures the segmenter processor.
type Option func(*Processor)

// WithBand sets the fallback band for documents without adaptive parameters.
func WithBand(band domain.Band) Option {
	return func(p *Processor) {
		if band.Valid() {
			p.band = band
		}
	}
}

// WithOverlap sets the fallback overlap in words.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new segmenter processor with the given options.
func New(lex *lexicon.Lexicon, opts ...Option) *Processor {
	p := &Processor{
		segmenter: NewSegmenter(lex),
		band:      DefaultBand,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap leaves room for new content
	if p.overlap >= p.band.Target {
		p.overlap = p.band.Target / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "segmenter"
}

// Process splits the document content into chunks using the document's
// adaptive band and overlap. Input chunks are ignored.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	band := doc.Params.Band
	overlap := doc.Overlap
	if !band.Valid() {
		band = p.band
		overlap = p.overlap
	}

	segments := p.segmenter.Split(doc.Content, band, overlap)
	chunks := make([]domain.Chunk, 0, len(segments))
	for i, seg := range segments {
		chunk := domain.Chunk{
			DocumentID:       doc.ID,
			Position:         i,
			Content:          seg.Text,
			WordCount:        seg.WordCount,
			OverlapWords:     seg.OverlapWords,
			StartsAtBoundary: seg.StartsAtBoundary,
			EndsAtBoundary:   seg.EndsAtBoundary,
		}
		if seg.Table {
			chunk.ContentType = domain.ContentTable
		}
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}
