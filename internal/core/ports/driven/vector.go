package driven

import (
	"context"

	"github.com/booklore/librarian/internal/core/domain"
)

// VectorStore is the call boundary to the external vector-store backend.
//
// Upsert is idempotent for a given point id: re-sending an already-stored
// point overwrites instead of duplicating, which makes retry after partial
// failure safe.
type VectorStore interface {
	// EnsureCollection creates the collection if missing, or verifies that
	// an existing collection has the given vector dimension. A dimension
	// mismatch returns domain.ErrDimensionMismatch.
	EnsureCollection(ctx context.Context, name string, dimensions int) error

	// Upsert stores or overwrites the given points in the collection.
	Upsert(ctx context.Context, collection string, points []domain.Point) error

	// DeleteByHash removes every point whose payload content_hash matches.
	DeleteByHash(ctx context.Context, collection, contentHash string) error

	// DeleteCollection drops the whole collection.
	DeleteCollection(ctx context.Context, name string) error

	// CollectionInfo returns stats for one collection.
	CollectionInfo(ctx context.Context, name string) (*CollectionInfo, error)

	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)

	// Close releases resources.
	Close() error
}

// CollectionInfo holds collection statistics.
type CollectionInfo struct {
	// Name is the collection name.
	Name string

	// PointCount is the number of stored points.
	PointCount int64

	// Dimensions is the configured vector size.
	Dimensions int
}
