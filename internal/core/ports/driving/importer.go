package driving

import (
	"context"

	"github.com/booklore/librarian/internal/core/domain"
)

// Importer is the ingestion pipeline entry point consumed by the CLI and
// MCP layers.
type Importer interface {
	// ImportPath imports a file, or recursively a directory, into the
	// current collection. Per-file failures are isolated and aggregated
	// into the summary; the call itself fails only on configuration-level
	// problems (unreachable backends, unopenable stores).
	ImportPath(ctx context.Context, path string) (*domain.BatchSummary, error)

	// ListImports returns the latest import records for the current
	// collection, most recent first.
	ListImports(ctx context.Context, limit int) ([]domain.ImportRecord, error)

	// Remove deletes one imported document, matched by hash prefix and/or
	// file-name substring, from both the vector store and the tracking
	// store. Returns domain.ErrNotFound when nothing matches and
	// domain.ErrInvalidInput when the match is ambiguous.
	Remove(ctx context.Context, hashPrefix, fileName string) (*domain.ImportRecord, error)

	// Drop removes the current collection from the vector store and clears
	// its tracking records.
	Drop(ctx context.Context) error
}
