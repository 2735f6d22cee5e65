package domain

import "strings"

// ChunkRequest is the input of a chunking call.
type ChunkRequest struct {
	// Text is the raw extracted document text.
	Text string

	// UserID is stamped verbatim on every chunk.
	UserID string

	// ProjectID is stamped verbatim on every chunk.
	ProjectID string

	// TargetChunkSize overrides the classifier's band when set.
	TargetChunkSize *int

	// OverlapSize overrides the default overlap when set.
	OverlapSize *int
}

// Validate checks the request and returns a wrapped ErrInvalidInput on failure.
func (r ChunkRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	if strings.TrimSpace(r.UserID) == "" {
		return ErrMissingUserID
	}
	if strings.TrimSpace(r.ProjectID) == "" {
		return ErrMissingProjectID
	}
	if r.TargetChunkSize != nil && *r.TargetChunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	if r.OverlapSize != nil {
		if *r.OverlapSize < 0 {
			return ErrInvalidOverlap
		}
		if r.TargetChunkSize != nil && *r.OverlapSize >= *r.TargetChunkSize {
			return ErrInvalidOverlap
		}
	}
	return nil
}

// ChunkingResult is the result of a chunking call.
// Field names are part of the external contract.
type ChunkingResult struct {
	Success       bool          `json:"success"`
	Chunks        []ChunkRecord `json:"chunks"`
	DocumentStats DocumentStats `json:"document_stats"`
}

// ChunkRecord is one chunk as handed to downstream indexers.
type ChunkRecord struct {
	Content      ChunkContent  `json:"content"`
	Metadata     ChunkMetadata `json:"metadata"`
	DocumentInfo DocumentInfo  `json:"document_info"`
	UserID       string        `json:"userId"`
	ProjectID    string        `json:"projectId"`
}

// ChunkContent carries the chunk text and identifier.
type ChunkContent struct {
	Text    string `json:"text"`
	ChunkID string `json:"chunk_id"`
}

// ChunkMetadata carries the per-chunk annotations.
type ChunkMetadata struct {
	WordCount    int         `json:"word_count"`
	QualityScore float64     `json:"quality_score"`
	ContentType  ContentType `json:"content_type"`
	Entities     Entities    `json:"entities"`
}

// DocumentInfo carries the document-level metadata repeated on every chunk.
type DocumentInfo struct {
	DocumentID string            `json:"document_id"`
	Title      string            `json:"title"`
	Date       string            `json:"date"`
	Parties    map[string]string `json:"parties"`
	Project    string            `json:"project"`
	Source     string            `json:"source"`
	Location   string            `json:"location,omitempty"`
}

// DocumentStats summarises a chunking call.
type DocumentStats struct {
	TotalChunks         int                 `json:"total_chunks"`
	AvgChunkQuality     float64             `json:"avg_chunk_quality"`
	QualityDistribution QualityDistribution `json:"quality_distribution"`
	DocumentType        DocumentType        `json:"document_type"`
	Confidence          float64             `json:"confidence"`
	DocumentInfo        DocumentInfo        `json:"document_info"`
}

// QualityDistribution counts chunks per quality level.
type QualityDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Add counts one chunk at the given level.
func (d *QualityDistribution) Add(level QualityLevel) {
	switch level {
	case QualityHigh:
		d.High++
	case QualityMedium:
		d.Medium++
	default:
		d.Low++
	}
}
