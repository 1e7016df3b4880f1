package driven

import "context"

// DocumentConverter is the boundary to the external document-to-text
// converter used for formats Go cannot parse natively (EPUB).
type DocumentConverter interface {
	// Available reports whether the converter can run (binary present).
	Available() bool

	// ConvertToText converts the file at path into plain text.
	// An unavailable or failing converter surfaces as
	// domain.ErrUnsupportedConversion at the extractor boundary.
	ConvertToText(ctx context.Context, path string) (string, error)
}
