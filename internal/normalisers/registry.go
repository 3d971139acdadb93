package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
	"github.com/custodia-labs/vitae/internal/normalisers/docx"
	"github.com/custodia-labs/vitae/internal/normalisers/html"
	"github.com/custodia-labs/vitae/internal/normalisers/markdown"
	"github.com/custodia-labs/vitae/internal/normalisers/pdf"
	"github.com/custodia-labs/vitae/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// extensionTypes maps file extensions to the MIME types the normalisers know.
var extensionTypes = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".htm":      "text/html",
	".html":     "text/html",
	".xhtml":    "application/xhtml+xml",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":      "application/pdf",
	".json":     "application/json",
	".csv":      "text/csv",
	".yaml":     "text/yaml",
	".yml":      "text/yaml",
}

// Registry maps MIME types to the normalisers that handle them.
type Registry struct {
	mu     sync.RWMutex
	byType map[string][]driven.Normaliser
}

// NewRegistry creates an empty normaliser registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[string][]driven.Normaliser),
	}
}

// DefaultRegistry returns a registry with every built-in normaliser.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(docx.New())
	r.Register(pdf.New())
	return r
}

// Register adds a normaliser for each MIME type it supports.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mimeType := range n.SupportedMIMETypes() {
		list := append(r.byType[mimeType], n)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byType[mimeType] = list
	}
}

// Normalise extracts text with the highest priority normaliser for the
// document's MIME type. An empty MIME type is derived from the URI extension.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	mimeType := DetectMIMEType(raw)
	r.mu.RLock()
	candidates := r.byType[mimeType]
	r.mu.RUnlock()
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %q (%s)", domain.ErrUnsupportedType, mimeType, filepath.Base(raw.URI))
	}

	text, err := candidates[0].Normalise(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", mimeType, err)
	}
	return text, nil
}

// SupportedMIMETypes returns all MIME types that can be normalised, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.byType))
	for mimeType := range r.byType {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}

// DetectMIMEType returns the document's MIME type without parameters,
// falling back to the URI extension.
func DetectMIMEType(raw *domain.RawDocument) string {
	if raw.MIMEType != "" {
		mimeType, _, _ := strings.Cut(raw.MIMEType, ";")
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	if mimeType, ok := extensionTypes[strings.ToLower(filepath.Ext(raw.URI))]; ok {
		return mimeType
	}
	return "text/plain"
}
