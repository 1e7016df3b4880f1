package driven

import (
	"context"
	"time"

	"github.com/booklore/librarian/internal/core/domain"
)

// TrackingStore is the durable record of what has been imported, keyed by
// (collection, content hash). It is the source of deduplication truth and
// the sole mutual-exclusion mechanism across concurrent importers.
type TrackingStore interface {
	// Lookup returns the record for (collection, hash), or
	// domain.ErrNotFound.
	Lookup(ctx context.Context, collection, contentHash string) (*domain.ImportRecord, error)

	// BeginImport atomically claims (collection, hash) with a pending
	// record. The check-and-insert happens in one transaction so two
	// concurrent imports of the same file race safely:
	//   - completed record exists: domain.ErrAlreadyImported (dedup gate);
	//   - failed record exists: it is reset to pending and returned;
	//   - pending record younger than staleAfter: returned as-is — the
	//     caller proceeds redundantly but idempotently;
	//   - pending record older than staleAfter: treated as abandoned,
	//     refreshed and returned.
	BeginImport(ctx context.Context, rec domain.ImportRecord, staleAfter time.Duration) (*domain.ImportRecord, error)

	// CompleteImport transitions pending to completed and sets chunkCount.
	// Called only after every chunk is confirmed upserted.
	CompleteImport(ctx context.Context, id string, chunkCount int) error

	// MarkFailed transitions any pending record to failed with a reason.
	MarkFailed(ctx context.Context, id string, reason string) error

	// List returns records for a collection, most recent first.
	List(ctx context.Context, collection string, limit, offset int) ([]domain.ImportRecord, error)

	// CountCompleted returns the number of completed records per collection.
	CountCompleted(ctx context.Context, collection string) (int, error)

	// Find matches completed records by hash prefix and/or file-name
	// substring within a collection.
	Find(ctx context.Context, collection, hashPrefix, fileName string) ([]domain.ImportRecord, error)

	// DeleteByHash removes the record for (collection, hash).
	DeleteByHash(ctx context.Context, collection, contentHash string) error

	// DeleteCollection removes every record in the collection.
	DeleteCollection(ctx context.Context, collection string) error

	// Close releases the underlying database handle.
	Close() error
}
