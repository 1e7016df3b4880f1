// Package extractors provides per-format text extraction and the registry
// that dispatches files to the right extractor by extension and magic
// bytes.
package extractors

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/booklore/librarian/internal/core/domain"
	"github.com/booklore/librarian/internal/core/ports/driven"
	"github.com/booklore/librarian/internal/extractors/epub"
	"github.com/booklore/librarian/internal/extractors/markdown"
	"github.com/booklore/librarian/internal/extractors/pdf"
	"github.com/booklore/librarian/internal/extractors/plaintext"
)

// pdfMagic is the header every PDF starts with.
var pdfMagic = []byte("%PDF-")

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects an extractor for a path. Dispatch is by lowercased
// extension; a PDF magic header overrides a lying extension so a renamed
// PDF is still parsed as one.
type Registry struct {
	byExtension map[string]driven.Extractor
	pdf         driven.Extractor
}

// NewRegistry creates a registry over the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byExtension: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExtension[ext] = e
		}
		if e.Format() == domain.FormatPDF {
			r.pdf = e
		}
	}
	return r
}

// NewDefaultRegistry creates a registry with all supported formats.
// The converter serves the EPUB extractor.
func NewDefaultRegistry(converter driven.DocumentConverter) *Registry {
	return NewRegistry(
		plaintext.New(),
		markdown.New(),
		pdf.New(),
		epub.New(converter),
	)
}

// Resolve picks the extractor for the given path.
func (r *Registry) Resolve(path string) (driven.Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	extractor, ok := r.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: extension %q (%s)", domain.ErrUnsupportedFormat, ext, path)
	}

	// A PDF header wins over the extension.
	if r.pdf != nil && extractor.Format() != domain.FormatPDF && r.sniffPDF(path) {
		return r.pdf, nil
	}
	return extractor, nil
}

// Supported reports whether the path's extension is recognised.
func (r *Registry) Supported(path string) bool {
	_, ok := r.byExtension[strings.ToLower(filepath.Ext(path))]
	return ok
}

// sniffPDF checks the file header. Read errors are ignored here; they
// resurface from Extract with a proper diagnosis.
func (r *Registry) sniffPDF(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := f.Read(header); err != nil {
		return false
	}
	return bytes.Equal(header, pdfMagic)
}
