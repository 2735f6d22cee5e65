package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// ChunkInput is the input schema for the chunk_document tool.
type ChunkInput struct {
	Text            string `json:"text" jsonschema:"the extracted document text"`
	UserID          string `json:"user_id" jsonschema:"identifier stamped on every chunk"`
	ProjectID       string `json:"project_id" jsonschema:"project identifier stamped on every chunk"`
	TargetChunkSize *int   `json:"target_chunk_size,omitempty" jsonschema:"target chunk size in words, overrides the detected document type"`
	OverlapSize     *int   `json:"overlap_size,omitempty" jsonschema:"words repeated from the previous chunk (default 15)"`
}

// ClassifyInput is the input schema for the classify_document tool.
type ClassifyInput struct {
	Text string `json:"text" jsonschema:"the extracted document text"`
}

// ClassifyOutput is the output schema for the classify_document tool.
type ClassifyOutput struct {
	Type       domain.DocumentType `json:"type"`
	Label      string              `json:"label"`
	Confidence float64             `json:"confidence"`
	Band       domain.Band         `json:"band"`
	Roles      []string            `json:"roles"`
	Matched    []string            `json:"matched"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "chunk_document",
		Description: "Split a French legal or construction document into scored chunks " +
			"annotated with entities and document metadata",
	}, s.handleChunk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify_document",
		Description: "Detect the type of a French legal or construction document",
	}, s.handleClassify)
}

// handleChunk handles the chunk_document tool invocation.
func (s *Server) handleChunk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChunkInput,
) (*mcp.CallToolResult, domain.ChunkingResult, error) {
	result, err := s.ports.Chunking.Chunk(ctx, domain.ChunkRequest{
		Text:            input.Text,
		UserID:          input.UserID,
		ProjectID:       input.ProjectID,
		TargetChunkSize: input.TargetChunkSize,
		OverlapSize:     input.OverlapSize,
	})
	if err != nil {
		return nil, domain.ChunkingResult{}, err
	}
	return nil, *result, nil
}

// handleClassify handles the classify_document tool invocation.
func (s *Server) handleClassify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	c, err := s.ports.Chunking.Classify(ctx, input.Text)
	if err != nil {
		return nil, ClassifyOutput{}, err
	}

	matched := c.Matched
	if matched == nil {
		matched = []string{}
	}
	return nil, ClassifyOutput{
		Type:       c.Type,
		Label:      c.Label,
		Confidence: c.Confidence,
		Band:       c.Params.Band,
		Roles:      c.Params.Roles,
		Matched:    matched,
	}, nil
}
