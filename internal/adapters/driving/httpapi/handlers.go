package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/logger"
)

// ChunkRequest is the body of POST /chunk.
type ChunkRequest struct {
	ExtractedText string       `json:"extractedText" validate:"required"`
	UserID        string       `json:"userId" validate:"required"`
	ProjectID     string       `json:"projectId" validate:"required"`
	Options       ChunkOptions `json:"options"`
}

// ChunkOptions are the optional chunking overrides.
type ChunkOptions struct {
	TargetChunkSize *int `json:"target_chunk_size" validate:"omitempty,min=20,max=200"`
	OverlapSize     *int `json:"overlap_size" validate:"omitempty,min=0,max=50"`
}

// errorResponse is the body of every error.
type errorResponse struct {
	Detail string `json:"detail"`
}

// defaultRunLimit is the number of runs GET /runs lists without ?limit.
const defaultRunLimit = 20

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Legal Document Chunking API",
		"version": s.version,
		"endpoints": map[string]string{
			"chunk":          "/chunk - POST - chunk a document",
			"health":         "/health - GET - service status",
			"document_types": "/document-types - GET - known document types",
			"runs":           "/runs - GET - recent run statistics",
			"metrics":        "/metrics - GET - Prometheus metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.settings.MaxBodyBytes)

	var req ChunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationDetail(err))
		return
	}

	result, err := s.ports.Chunking.Chunk(r.Context(), domain.ChunkRequest{
		Text:            req.ExtractedText,
		UserID:          req.UserID,
		ProjectID:       req.ProjectID,
		TargetChunkSize: req.Options.TargetChunkSize,
		OverlapSize:     req.Options.OverlapSize,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.metrics.observeResult(result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDocumentTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ports.Chunking.DocumentTypes())
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if !s.historyEnabled() {
		writeError(w, http.StatusNotFound, domain.ErrHistoryDisabled.Error())
		return
	}

	limit := defaultRunLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.ports.History.Recent(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if runs == nil {
		runs = []domain.RunSummary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if !s.historyEnabled() {
		writeError(w, http.StatusNotFound, domain.ErrHistoryDisabled.Error())
		return
	}

	run, err := s.ports.History.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) historyEnabled() bool {
	return s.ports.History != nil && s.ports.History.Enabled()
}

// writeServiceError maps domain errors to status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		logger.Warn("request failed",
			"request_id", w.Header().Get(requestIDHeader),
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// validationDetail turns validator errors into one readable line.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe.Namespace())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// jsonFieldName maps a validator namespace to the JSON name callers sent.
func jsonFieldName(namespace string) string {
	switch namespace {
	case "ChunkRequest.ExtractedText":
		return "extractedText"
	case "ChunkRequest.UserID":
		return "userId"
	case "ChunkRequest.ProjectID":
		return "projectId"
	case "ChunkRequest.Options.TargetChunkSize":
		return "options.target_chunk_size"
	case "ChunkRequest.Options.OverlapSize":
		return "options.overlap_size"
	default:
		return namespace
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("writing response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
