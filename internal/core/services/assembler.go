package services

import (
	"fmt"
	"maps"
	"math"
	"strings"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// Assemble builds the external result from processed chunks. Every record
// carries the document info and the caller's identifiers verbatim.
func Assemble(
	doc *domain.Document,
	chunks []domain.Chunk,
	userID, projectID string,
	settings domain.ChunkingSettings,
) *domain.ChunkingResult {
	info := documentInfo(doc)

	records := make([]domain.ChunkRecord, 0, len(chunks))
	var (
		dist  domain.QualityDistribution
		total float64
	)
	for i, c := range chunks {
		entities := c.Entities
		if entities == nil {
			entities = domain.NewEntities()
		}
		records = append(records, domain.ChunkRecord{
			Content: domain.ChunkContent{
				Text:    c.Content,
				ChunkID: ChunkID(doc.ID, i),
			},
			Metadata: domain.ChunkMetadata{
				WordCount:    c.WordCount,
				QualityScore: c.Score,
				ContentType:  contentTypeOf(c),
				Entities:     entities,
			},
			DocumentInfo: info,
			UserID:       userID,
			ProjectID:    projectID,
		})
		dist.Add(settings.Level(c.Score))
		total += c.Score
	}

	avg := 0.0
	if len(chunks) > 0 {
		avg = math.Round(total/float64(len(chunks))*1000) / 1000
	}

	return &domain.ChunkingResult{
		Success: true,
		Chunks:  records,
		DocumentStats: domain.DocumentStats{
			TotalChunks:         len(records),
			AvgChunkQuality:     avg,
			QualityDistribution: dist,
			DocumentType:        doc.Type(),
			Confidence:          doc.Classification.Confidence,
			DocumentInfo:        info,
		},
	}
}

// ChunkID returns the identifier of the chunk at a zero-based position.
func ChunkID(documentID string, position int) string {
	return fmt.Sprintf("%s_chunk_%03d", documentID, position+1)
}

func contentTypeOf(c domain.Chunk) domain.ContentType {
	if c.ContentType == "" {
		return domain.ContentNarrative
	}
	return c.ContentType
}

func documentInfo(doc *domain.Document) domain.DocumentInfo {
	parties := make(map[string]string, len(doc.Metadata.Parties))
	maps.Copy(parties, doc.Metadata.Parties)
	return domain.DocumentInfo{
		DocumentID: doc.ID,
		Title:      doc.Metadata.Title,
		Date:       doc.Metadata.Date,
		Parties:    parties,
		Project:    doc.Metadata.Project,
		Source:     doc.Metadata.Source,
		Location:   doc.Metadata.Location,
	}
}

// sourceReference is "<type label> - <project or title> - <date>" with
// empty parts left out. It never names chunks, so citations survive re-chunking.
func sourceReference(label string, meta domain.DocumentMetadata) string {
	subject := meta.Project
	if subject == "" {
		subject = meta.Title
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{label, subject, meta.Date} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}
