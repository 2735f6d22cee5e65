// Package tui provides an interactive chunk browser for the terminal.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the TUI uses.
type Ports struct {
	// Chunking runs the chunking pipeline.
	Chunking driving.ChunkingService

	// Loader reads files into plain text.
	Loader driving.DocumentLoader
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Chunking == nil {
		return ErrMissingChunkingService
	}
	if p.Loader == nil {
		return ErrMissingLoader
	}
	return nil
}
