// Package plaintext provides the fallback Normaliser for plain text files.
// Text that is not valid UTF-8 is decoded from its detected legacy charset,
// since French documents often arrive as Windows-1252 or Latin-1.
package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/tab-separated-values",
		"text/rtf",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise decodes the raw bytes to UTF-8 and cleans line endings.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text, err := Decode(raw.Content, raw.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", raw.URI, err)
	}

	return &driven.NormaliseResult{
		Text: normalisers.CleanText(text),
	}, nil
}

// Decode returns content as UTF-8. Valid UTF-8 is returned unchanged;
// anything else is decoded with the charset named in the MIME type or
// sniffed from the bytes, Windows-1252 when nothing is found.
func Decode(content []byte, mimeType string) (string, error) {
	if utf8.Valid(content) {
		return string(content), nil
	}
	if mimeType == "" {
		mimeType = "text/plain"
	}
	r, err := charset.NewReader(bytes.NewReader(content), mimeType)
	if err != nil {
		return "", err
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
