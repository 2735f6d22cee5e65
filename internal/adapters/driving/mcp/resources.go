package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for legalchunk resources.
	uriScheme = "legalchunk://"

	// recentRuns is how many runs the runs resource lists.
	recentRuns = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "document-types",
		Name:        "document-types",
		Description: "Known document types with their chunk size bands and party roles",
		MIMEType:    "application/json",
	}, s.handleDocumentTypesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Statistics of recent chunking runs",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{runId}",
		Name:        "run",
		Description: "Statistics of one chunking run",
		MIMEType:    "application/json",
	}, s.handleRunResource)
}

// handleDocumentTypesResource returns the document type catalog.
func (s *Server) handleDocumentTypesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Chunking.DocumentTypes())
}

// handleRunsResource returns recent runs, or an empty list when history is off.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil || !s.ports.History.Enabled() {
		return jsonResource(req.Params.URI, []runInfo{})
	}

	runs, err := s.ports.History.Recent(ctx, recentRuns)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		infos[i] = newRunInfo(&runs[i])
	}
	return jsonResource(req.Params.URI, infos)
}

// handleRunResource returns one run.
func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil || !s.ports.History.Enabled() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract runId from URI: legalchunk://runs/{runId}
	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	run, err := s.ports.History.Get(ctx, runID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}
	return jsonResource(req.Params.URI, newRunInfo(run))
}

// runInfo is the JSON shape of a run summary.
type runInfo struct {
	ID           string                     `json:"id"`
	DocumentID   string                     `json:"document_id"`
	DocumentType domain.DocumentType        `json:"document_type"`
	Confidence   float64                    `json:"confidence"`
	UserID       string                     `json:"user_id"`
	ProjectID    string                     `json:"project_id"`
	WordCount    int                        `json:"word_count"`
	TotalChunks  int                        `json:"total_chunks"`
	AvgQuality   float64                    `json:"avg_quality"`
	Distribution domain.QualityDistribution `json:"quality_distribution"`
	DurationMS   int64                      `json:"duration_ms"`
	CreatedAt    string                     `json:"created_at"`
}

func newRunInfo(run *domain.RunSummary) runInfo {
	return runInfo{
		ID:           run.ID,
		DocumentID:   run.DocumentID,
		DocumentType: run.DocumentType,
		Confidence:   run.Confidence,
		UserID:       run.UserID,
		ProjectID:    run.ProjectID,
		WordCount:    run.WordCount,
		TotalChunks:  run.TotalChunks,
		AvgQuality:   run.AvgQuality,
		Distribution: run.Distribution,
		DurationMS:   run.Duration.Milliseconds(),
		CreatedAt:    run.CreatedAt.Format(time.RFC3339),
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRunID extracts the run ID from a URI like legalchunk://runs/{runId}.
func extractRunID(uri string) string {
	const prefix = uriScheme + "runs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
