package tui

import "errors"

// ErrMissingChunkingService is returned when the chunking service is not provided.
var ErrMissingChunkingService = errors.New("tui: chunking service is required")

// ErrMissingLoader is returned when the document loader is not provided.
var ErrMissingLoader = errors.New("tui: document loader is required")
