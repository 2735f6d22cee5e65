// Package mcp provides an MCP (Model Context Protocol) server adapter for legalchunk.
// It lets AI assistants chunk and classify French legal documents.
package mcp

import "errors"

// ErrMissingChunkingService is returned when the chunking service is not provided.
var ErrMissingChunkingService = errors.New("mcp: chunking service is required")
