package driving

import "context"

// CollectionService manages the process-wide current collection selector.
// The selector is read once at the start of each pipeline operation; an
// in-flight import is never affected by a concurrent checkout.
type CollectionService interface {
	// Current returns the checked-out collection name, falling back to the
	// well-known default when none was ever selected.
	Current(ctx context.Context) string

	// Checkout switches the current collection and persists the choice.
	Checkout(ctx context.Context, name string) error

	// Status aggregates collection statistics across both stores.
	Status(ctx context.Context) (*CollectionStatus, error)
}

// CollectionStatus describes the library state for display.
type CollectionStatus struct {
	// Current is the checked-out collection name.
	Current string

	// Collections maps collection name to vector point count.
	Collections map[string]int64

	// CompletedImports is the number of completed records in the current
	// collection.
	CompletedImports int
}
