// Package plaintext extracts UTF-8 text files.
package plaintext

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

// Extractor handles plain text files. Invalid UTF-8 sequences are
// replaced, never a hard failure.
type Extractor struct{}

// New creates a plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format identifies the source format.
func (e *Extractor) Format() domain.Format {
	return domain.FormatPlainText
}

// Extensions returns the extensions this extractor accepts.
func (e *Extractor) Extensions() []string {
	return []string{".txt"}
}

// Extract reads the file and passes its content through as one segment.
func (e *Extractor) Extract(_ context.Context, path string) (*driven.ExtractResult, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return &driven.ExtractResult{Segments: []domain.Segment{{Text: text}}}, nil
}

// ReadText reads a file as UTF-8, replacing invalid sequences with the
// replacement rune. Shared with the markdown extractor.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, path, err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
