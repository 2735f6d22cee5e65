// Package httpapi exposes the chunking service over HTTP.
//
// Routes:
//
//	GET  /                 service information
//	GET  /health           liveness probe
//	POST /chunk            chunk a document
//	GET  /document-types   known document types and their bands
//	GET  /runs             recent run statistics (when history is enabled)
//	GET  /runs/{id}        one run
//	GET  /metrics          Prometheus metrics
//
// Errors are returned as {"detail": "..."} with 400 for invalid input,
// 404 for unknown runs, 413 for oversized bodies, 429 when rate limited
// and 500 otherwise. Every response carries an X-Request-ID header.
package httpapi
