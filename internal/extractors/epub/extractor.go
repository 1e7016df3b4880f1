// Package epub extracts EPUB documents through the external document
// converter.
package epub

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/booklore/librarian/internal/core/domain"
	"github.com/booklore/librarian/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles EPUB files by delegating to the converter collaborator.
// A missing or failing converter surfaces as ErrUnsupportedConversion —
// never an empty document.
type Extractor struct {
	converter driven.DocumentConverter
}

// New creates an EPUB extractor backed by the given converter.
func New(converter driven.DocumentConverter) *Extractor {
	return &Extractor{converter: converter}
}

// Format identifies the source format.
func (e *Extractor) Format() domain.Format {
	return domain.FormatEPUB
}

// Extensions returns the extensions this extractor accepts.
func (e *Extractor) Extensions() []string {
	return []string{".epub"}
}

// Extract converts the file to plain text via the external converter.
func (e *Extractor) Extract(ctx context.Context, path string) (*driven.ExtractResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, path, err)
	}

	if e.converter == nil || !e.converter.Available() {
		return nil, fmt.Errorf("%w: document converter not available", domain.ErrUnsupportedConversion)
	}

	text, err := e.converter.ConvertToText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnsupportedConversion, path, err)
	}

	text = strings.ToValidUTF8(text, "�")
	return &driven.ExtractResult{Segments: []domain.Segment{{Text: text}}}, nil
}
