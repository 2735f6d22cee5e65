package mcp

import (
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chunking runs the chunking pipeline.
	Chunking driving.ChunkingService

	// History exposes the run journal. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chunking == nil {
		return ErrMissingChunkingService
	}
	return nil
}
