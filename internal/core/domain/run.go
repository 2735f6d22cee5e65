package domain

import "time"

// RunSummary records the statistics of one chunking call.
// It never holds document text, only counts and identifiers.
type RunSummary struct {
	// ID is the unique identifier of the run.
	ID string `json:"id"`

	// DocumentID is the generated document identifier.
	DocumentID string `json:"document_id"`

	// DocumentType is the detected type.
	DocumentType DocumentType `json:"document_type"`

	// Confidence is the classification confidence.
	Confidence float64 `json:"confidence"`

	// UserID and ProjectID are copied from the request.
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`

	// WordCount is the number of words in the input text.
	WordCount int `json:"word_count"`

	// TotalChunks is the number of chunks produced.
	TotalChunks int `json:"total_chunks"`

	// AvgQuality is the mean chunk score.
	AvgQuality float64 `json:"avg_quality"`

	// Distribution counts chunks per quality level.
	Distribution QualityDistribution `json:"quality_distribution"`

	// Duration is the wall time of the call.
	Duration time.Duration `json:"duration_ns"`

	// CreatedAt is when the run finished.
	CreatedAt time.Time `json:"created_at"`
}
