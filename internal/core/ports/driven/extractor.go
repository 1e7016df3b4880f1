package driven

import (
	"context"

	"github.com/booklore/librarian/internal/core/domain"
)

// Extractor converts a raw file of one format into normalised text.
// Each extractor handles a fixed set of file extensions.
type Extractor interface {
	// Format identifies the source format this extractor handles.
	Format() domain.Format

	// Extensions returns the lowercased file extensions (with leading dot)
	// this extractor accepts.
	Extensions() []string

	// Extract reads the file and produces a sequence of text segments.
	// Segment order follows source order; PDF extractors set the Page hint.
	// Failures map onto the domain taxonomy: ErrUnreadableFile,
	// ErrCorruptDocument, ErrUnsupportedConversion.
	Extract(ctx context.Context, path string) (*ExtractResult, error)
}

// ExtractResult contains the output of extraction.
type ExtractResult struct {
	// Segments is the normalised text in source order.
	Segments []domain.Segment
}

// Text joins all segments with blank lines, the form handed to the chunker.
func (r *ExtractResult) Text() string {
	switch len(r.Segments) {
	case 0:
		return ""
	case 1:
		return r.Segments[0].Text
	}
	n := 0
	for _, s := range r.Segments {
		n += len(s.Text) + 2
	}
	buf := make([]byte, 0, n)
	for i, s := range r.Segments {
		if i > 0 {
			buf = append(buf, '\n', '\n')
		}
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// ExtractorRegistry selects an extractor for a path.
type ExtractorRegistry interface {
	// Resolve picks the extractor for the given path by extension and,
	// where necessary, magic bytes. Returns ErrUnsupportedFormat when no
	// extractor claims the file.
	Resolve(path string) (Extractor, error)

	// Supported reports whether the path's extension is recognised.
	// Used by directory discovery to skip foreign files silently.
	Supported(path string) bool
}
