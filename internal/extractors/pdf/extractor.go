// Package pdf extracts text from PDF documents using pdfcpu.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/booklore/librarian/internal/core/domain"
	"github.com/booklore/librarian/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents. Text is recovered per page; pages are
// alignment hints for chunk grouping, not chunk boundaries.
type Extractor struct{}

// New creates a PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format identifies the source format.
func (e *Extractor) Format() domain.Format {
	return domain.FormatPDF
}

// Extensions returns the extensions this extractor accepts.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract parses the document and decodes the text-showing operators of
// each page's content stream. A malformed document surfaces as
// ErrCorruptDocument.
func (e *Extractor) Extract(ctx context.Context, path string) (*driven.ExtractResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, path, err)
	}

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptDocument, path, err)
	}
	pageCount := pdfCtx.PageCount

	outDir, err := os.MkdirTemp("", "librarian-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("%w: temp dir: %v", domain.ErrUnreadableFile, err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptDocument, path, err)
	}

	pageTexts, err := readPageContents(outDir)
	if err != nil {
		return nil, err
	}

	segments := make([]domain.Segment, 0, pageCount)
	for page := 1; page <= pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := strings.TrimSpace(DecodeContent(pageTexts[page]))
		if text == "" {
			continue
		}
		segments = append(segments, domain.Segment{Text: text, Page: page})
	}

	return &driven.ExtractResult{Segments: segments}, nil
}

// readPageContents maps page number to raw content stream. pdfcpu names
// extracted files by page number in one of two layouts.
func readPageContents(dir string) (map[int][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading extraction dir: %v", domain.ErrUnreadableFile, err)
	}

	pages := make(map[int][]byte, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		var page int
		name := entry.Name()
		if _, err := fmt.Sscanf(name, "Content_page_%d", &page); err != nil {
			if _, err := fmt.Sscanf(name, "page_%d", &page); err != nil {
				continue
			}
		}
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: reading page %d: %v", domain.ErrUnreadableFile, page, err)
		}
		pages[page] = append(pages[page], content...)
	}
	return pages, nil
}
