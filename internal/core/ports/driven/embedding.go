package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations are stateless request/response wrappers around an
// external provider. Transient failures (transport errors, 5xx) are
// retried with bounded exponential backoff inside the adapter; validation
// errors surface immediately.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// Must match the vector-store collection dimension; checked at startup.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
