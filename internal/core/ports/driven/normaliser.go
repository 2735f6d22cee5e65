package driven

import (
	"context"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// Normaliser turns raw file bytes into plain text.
// Each normaliser handles specific MIME types (e.g., DOCX, Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the text of a raw document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Text is the extracted plain text, ready for chunking.
	Text string

	// Title is a title found by the format itself (e.g. DOCX core properties).
	// Empty when the format carries none.
	Title string
}
