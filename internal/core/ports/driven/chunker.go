package driven

import (
	"context"

	"github.com/booklore/librarian/internal/core/domain"
)

// Chunker splits normalised text into bounded, overlapping windows sized
// for the embedding model context limit.
//
// Invariant: concatenating the chunks' non-overlap spans (Text[Overlap:])
// reproduces the input text exactly. Indices are dense from 0 in emission
// order.
type Chunker interface {
	// Chunk splits text into chunks tagged with the given content hash.
	Chunk(ctx context.Context, contentHash, text string) ([]domain.Chunk, error)
}
