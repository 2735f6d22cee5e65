package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
	"github.com/custodia-labs/legalchunk/internal/logger"
)

// Ensure LoaderService implements the interface.
var _ driving.DocumentLoader = (*LoaderService)(nil)

// MaxFileBytes caps the size of a loaded file.
const MaxFileBytes = 50 << 20

// LoaderService reads files and extracts their text through the normaliser registry.
type LoaderService struct {
	registry driven.NormaliserRegistry
}

// NewLoaderService creates a loader. A nil registry reads files as UTF-8 text.
func NewLoaderService(registry driven.NormaliserRegistry) *LoaderService {
	return &LoaderService{registry: registry}
}

// Load reads the file at path, detects its format and extracts the text.
func (s *LoaderService) Load(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: file path is required", domain.ErrInvalidInput)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(content) > MaxFileBytes {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", domain.ErrInvalidInput, path, MaxFileBytes)
	}

	if s.registry == nil {
		return string(content), nil
	}

	result, err := s.registry.Normalise(ctx, &domain.RawDocument{URI: path, Content: content})
	if err != nil {
		return "", err
	}
	logger.Debug("loaded file", "path", path, "bytes", len(content), "chars", len(result.Text))
	return result.Text, nil
}
