package domain

import "time"

// Document is a classified legal document ready for chunking.
// It is immutable once classification and metadata extraction have run.
type Document struct {
	// ID is the 17-digit document identifier.
	ID string

	// Content is the full extracted text.
	Content string

	// Classification is the detected type and its parameters.
	Classification Classification

	// Params are the effective adaptive parameters. They equal
	// Classification.Params unless the caller overrode the chunk size.
	Params AdaptiveParams

	// Overlap is the requested overlap in words between consecutive chunks.
	Overlap int

	// Metadata is the document-level information extracted from the full text.
	Metadata DocumentMetadata

	// CreatedAt is when the document entered the pipeline.
	CreatedAt time.Time
}

// Type returns the detected document type.
func (d *Document) Type() DocumentType {
	return d.Classification.Type
}

// DocumentMetadata holds best-effort document-level information.
// Fields that could not be extracted are left empty.
type DocumentMetadata struct {
	// Title is the document heading.
	Title string

	// Date is the signature or reference date, formatted DD/MM/YYYY.
	Date string

	// Parties maps a role (e.g. "reservant") to the party name.
	Parties map[string]string

	// Project is the real-estate programme or operation name.
	Project string

	// Location is the site of the project.
	Location string

	// Source is the human-readable reference of the document.
	Source string
}

// Chunk is a retrieval unit within a document.
// It references its document by ID only.
type Chunk struct {
	// ID is "<document id>_chunk_<NNN>" once assembled.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Position is the zero-based ordinal position within the document.
	Position int

	// Content is the chunk text, overlap included.
	Content string

	// WordCount is the number of words in Content.
	WordCount int

	// OverlapWords is how many leading words repeat the previous chunk.
	OverlapWords int

	// StartsAtBoundary is true when the new content of the chunk begins a sentence or unit.
	StartsAtBoundary bool

	// EndsAtBoundary is true when the chunk ends on a sentence or unit boundary.
	EndsAtBoundary bool

	// ContentType is the dominant content category of the chunk.
	ContentType ContentType

	// Entities holds the entity values found in the chunk, per category.
	Entities Entities

	// Matches holds every raw entity match with its normalised form.
	Matches []EntityMatch

	// Quality is the factor breakdown of the score.
	Quality QualityFactors

	// Score is the overall quality score in [0, 1].
	Score float64
}

// QualityFactors is the per-factor breakdown of a chunk score.
// Every factor lies in [0, 1].
type QualityFactors struct {
	Completeness   float64 `json:"completeness"`
	Coherence      float64 `json:"coherence"`
	Density        float64 `json:"density"`
	LengthAdequacy float64 `json:"length_adequacy"`
	EntityRichness float64 `json:"entity_richness"`
}

// QualityLevel buckets a score.
type QualityLevel string

// Quality levels.
const (
	QualityHigh   QualityLevel = "high"
	QualityMedium QualityLevel = "medium"
	QualityLow    QualityLevel = "low"
)

// ContentType is the dominant content category of a chunk.
type ContentType string

// Content types, from the most specific to the fallback.
const (
	ContentTable                 ContentType = "table"
	ContentFinancial             ContentType = "financial"
	ContentTimeline              ContentType = "timeline"
	ContentObligations           ContentType = "obligations"
	ContentGuarantees            ContentType = "guarantees"
	ContentTechnicalRequirements ContentType = "technical_requirements"
	ContentConditions            ContentType = "conditions"
	ContentQualityControl        ContentType = "quality_control"
	ContentSafetySecurity        ContentType = "safety_security"
	ContentAdministrative        ContentType = "administrative"
	ContentDefinitions           ContentType = "definitions"
	ContentProcedures            ContentType = "procedures"
	ContentLegalClause           ContentType = "legal_clause"
	ContentNarrative             ContentType = "narrative"
)
