// Package markdown extracts Markdown files.
package markdown

import (
	"context"

	"github.com/booklore/librarian/internal/core/domain"
	"github.com/booklore/librarian/internal/core/ports/driven"
	"github.com/booklore/librarian/internal/extractors/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles Markdown files. Syntax is kept as-is: the embedding
// model treats it as prose with light formatting noise.
type Extractor struct{}

// New creates a Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format identifies the source format.
func (e *Extractor) Format() domain.Format {
	return domain.FormatMarkdown
}

// Extensions returns the extensions this extractor accepts.
func (e *Extractor) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Extract reads the file with UTF-8 replacement decoding.
func (e *Extractor) Extract(_ context.Context, path string) (*driven.ExtractResult, error) {
	text, err := plaintext.ReadText(path)
	if err != nil {
		return nil, err
	}
	return &driven.ExtractResult{Segments: []domain.Segment{{Text: text}}}, nil
}
