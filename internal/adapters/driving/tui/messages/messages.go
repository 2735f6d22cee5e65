// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// DocumentRequested is a command to load and chunk a file.
type DocumentRequested struct {
	Path string
}

// DocumentChunked carries the chunking result of a file back to the model.
type DocumentChunked struct {
	Path   string
	Result *domain.ChunkingResult
	Err    error
}

// ChunkSelected is sent when a chunk is opened.
type ChunkSelected struct {
	Index int
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewOpen prompts for the file to chunk.
	ViewOpen ViewType = iota
	// ViewChunks lists the chunks of the current document.
	ViewChunks
	// ViewDetail shows one chunk with its metadata and entities.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewOpen:
		return "open"
	case ViewChunks:
		return "chunks"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
