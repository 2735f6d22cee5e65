package driven

import "github.com/custodia-labs/legalchunk/internal/core/domain"

// Classifier detects the type of a document from its full text.
// Implementations must be pure: the same text always yields the same result.
type Classifier interface {
	// Classify returns the detected type, its confidence and adaptive parameters.
	// It never fails; unrecognised text gets the generic type.
	Classify(text string) domain.Classification
}

// TypeCatalog describes the known document types.
type TypeCatalog interface {
	// DocumentTypes returns every known type, generic last.
	DocumentTypes() []domain.DocumentType

	// Label returns the human-readable name of a type.
	Label(t domain.DocumentType) string

	// Params returns the adaptive parameters of a type.
	Params(t domain.DocumentType) domain.AdaptiveParams
}
