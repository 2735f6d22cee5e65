package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// extensionTypes covers formats that content sniffing reports as plain text.
var extensionTypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
}

// Registry dispatches raw documents to the highest-priority normaliser
// supporting their MIME type.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates a registry holding the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, normaliser)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// SupportedMIMETypes returns all MIME types that can be normalised, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var types []string
	for _, n := range r.normalisers {
		for _, t := range n.SupportedMIMETypes() {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	sort.Strings(types)
	return types
}

// Normalise transforms a raw document using the best matching normaliser.
// An empty MIME type is detected from the URI extension and the content.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	doc := *raw
	if doc.MIMEType == "" {
		doc.MIMEType = DetectMIME(doc.URI, doc.Content)
	}

	n := r.lookup(doc.MIMEType, doc.Content)
	if n == nil {
		return nil, fmt.Errorf("%w: no normaliser for %s", domain.ErrUnsupportedType, BaseMIME(doc.MIMEType))
	}

	result, err := n.Normalise(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", doc.URI, err)
	}
	return result, nil
}

// lookup finds a normaliser for the MIME type, then for the ancestors of
// the sniffed content type ("text/x-php" falls back to "text/plain").
func (r *Registry) lookup(mimeType string, content []byte) driven.Normaliser {
	if n := r.find(BaseMIME(mimeType)); n != nil {
		return n
	}
	for m := mimetype.Detect(content); m != nil; m = m.Parent() {
		if n := r.find(BaseMIME(m.String())); n != nil {
			return n
		}
	}
	return nil
}

func (r *Registry) find(base string) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.normalisers {
		for _, t := range n.SupportedMIMETypes() {
			if t == base {
				return n
			}
		}
	}
	return nil
}

// DetectMIME returns the MIME type of a file from its extension when the
// extension is known, else from its content.
func DetectMIME(uri string, content []byte) string {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(uri))]; ok {
		return t
	}
	return mimetype.Detect(content).String()
}
