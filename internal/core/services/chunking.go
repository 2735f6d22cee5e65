package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
	"github.com/custodia-labs/legalchunk/internal/logger"
)

// Ensure ChunkingService implements the interface.
var _ driving.ChunkingService = (*ChunkingService)(nil)

// dateLayout is the layout of extracted document dates.
const dateLayout = "02/01/2006"

// ChunkingService runs the chunking pipeline for one request at a time.
// It keeps no per-request state; only the ID generator is shared.
type ChunkingService struct {
	classifier driven.Classifier
	extractor  driven.MetadataExtractor
	pipeline   driven.PostProcessorPipeline
	ids        driven.IDGenerator
	catalog    driven.TypeCatalog

	settings domain.ChunkingSettings
	runs     driven.RunStore
	keepRuns int
	now      func() time.Time
}

// ChunkingOption configures a ChunkingService.
type ChunkingOption func(*ChunkingService)

// WithChunkingSettings sets the default overlap and quality thresholds.
func WithChunkingSettings(settings domain.ChunkingSettings) ChunkingOption {
	return func(s *ChunkingService) {
		s.settings = settings
	}
}

// WithRunStore records a statistics-only summary of every call.
// Runs beyond keep are pruned after each save; keep <= 0 disables pruning.
func WithRunStore(store driven.RunStore, keep int) ChunkingOption {
	return func(s *ChunkingService) {
		s.runs = store
		s.keepRuns = keep
	}
}

// WithNow sets the clock used for document IDs and run timestamps.
func WithNow(now func() time.Time) ChunkingOption {
	return func(s *ChunkingService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewChunkingService creates a new chunking service.
// The run store is optional; without it nothing is recorded.
func NewChunkingService(
	classifier driven.Classifier,
	extractor driven.MetadataExtractor,
	pipeline driven.PostProcessorPipeline,
	ids driven.IDGenerator,
	catalog driven.TypeCatalog,
	opts ...ChunkingOption,
) *ChunkingService {
	s := &ChunkingService{
		classifier: classifier,
		extractor:  extractor,
		pipeline:   pipeline,
		ids:        ids,
		catalog:    catalog,
		settings:   domain.DefaultAppSettings().Chunking,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chunk validates the request, then classifies, segments, annotates and
// scores the text.
func (s *ChunkingService) Chunk(ctx context.Context, req domain.ChunkRequest) (*domain.ChunkingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := s.now()
	logger.Section("Chunking")

	classification := s.classifier.Classify(req.Text)
	logger.Debug("classified document",
		"type", classification.Type,
		"confidence", classification.Confidence,
		"matched", len(classification.Matched))

	params, overlap, err := s.effectiveParams(classification.Params, req)
	if err != nil {
		return nil, err
	}

	metadata := s.extractor.DocumentMetadata(req.Text, classification.Type)
	metadata.Source = sourceReference(classification.Label, metadata)

	doc := &domain.Document{
		ID:             s.ids.Next(documentBase(metadata.Date)),
		Content:        req.Text,
		Classification: classification,
		Params:         params,
		Overlap:        overlap,
		Metadata:       metadata,
		CreatedAt:      started,
	}
	logger.Debug("extracted metadata",
		"document_id", doc.ID,
		"title", metadata.Title,
		"date", metadata.Date,
		"parties", len(metadata.Parties),
		"project", metadata.Project)

	chunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("process document %s: %w", doc.ID, err)
	}

	result := Assemble(doc, chunks, req.UserID, req.ProjectID, s.settings)
	elapsed := s.now().Sub(started)
	logger.Info("chunked document",
		"document_id", doc.ID,
		"type", classification.Type,
		"chunks", result.DocumentStats.TotalChunks,
		"avg_quality", result.DocumentStats.AvgChunkQuality,
		"elapsed", elapsed)

	s.recordRun(ctx, req, doc, result, elapsed)
	return result, nil
}

// effectiveParams applies the request overrides to the classifier's parameters.
// An explicit target replaces the band; without an explicit overlap the
// default is capped to a quarter of the target.
func (s *ChunkingService) effectiveParams(
	params domain.AdaptiveParams,
	req domain.ChunkRequest,
) (domain.AdaptiveParams, int, error) {
	if req.TargetChunkSize != nil {
		params.Band = domain.BandAround(*req.TargetChunkSize)
	}

	if req.OverlapSize != nil {
		if *req.OverlapSize >= params.Band.Target {
			return params, 0, fmt.Errorf("%w: %d words for a %d word target",
				domain.ErrInvalidOverlap, *req.OverlapSize, params.Band.Target)
		}
		return params, *req.OverlapSize, nil
	}

	overlap := max(s.settings.DefaultOverlap, 0)
	if overlap >= params.Band.Target {
		overlap = params.Band.Target / 4
	}
	return params, overlap, nil
}

// Classify detects the document type without chunking.
func (s *ChunkingService) Classify(ctx context.Context, text string) (*domain.Classification, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := s.classifier.Classify(text)
	return &c, nil
}

// DocumentTypes describes every known document type.
func (s *ChunkingService) DocumentTypes() []driving.DocumentTypeInfo {
	if s.catalog == nil {
		return nil
	}
	types := s.catalog.DocumentTypes()
	out := make([]driving.DocumentTypeInfo, 0, len(types))
	for _, t := range types {
		params := s.catalog.Params(t)
		out = append(out, driving.DocumentTypeInfo{
			Type:  t,
			Label: s.catalog.Label(t),
			Band:  params.Band,
			Roles: params.Roles,
		})
	}
	return out
}

// recordRun saves a statistics-only summary. Journal failures are logged
// and never fail the call.
func (s *ChunkingService) recordRun(
	ctx context.Context,
	req domain.ChunkRequest,
	doc *domain.Document,
	result *domain.ChunkingResult,
	elapsed time.Duration,
) {
	if s.runs == nil {
		return
	}

	run := &domain.RunSummary{
		ID:           uuid.New().String(),
		DocumentID:   doc.ID,
		DocumentType: doc.Type(),
		Confidence:   doc.Classification.Confidence,
		UserID:       req.UserID,
		ProjectID:    req.ProjectID,
		WordCount:    len(strings.Fields(req.Text)),
		TotalChunks:  result.DocumentStats.TotalChunks,
		AvgQuality:   result.DocumentStats.AvgChunkQuality,
		Distribution: result.DocumentStats.QualityDistribution,
		Duration:     elapsed,
		CreatedAt:    s.now(),
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		logger.Warn("failed to record run", "document_id", doc.ID, "error", err)
		return
	}
	if s.keepRuns > 0 {
		if err := s.runs.PruneRuns(ctx, s.keepRuns); err != nil {
			logger.Warn("failed to prune runs", "error", err)
		}
	}
}

// documentBase is the ID base time: the document date at noon, else zero
// so the generator uses the current time.
func documentBase(date string) time.Time {
	if date == "" {
		return time.Time{}
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}
	}
	return d.Add(12 * time.Hour)
}
