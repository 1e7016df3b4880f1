// Command librarian imports documents into a local vector library.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/booklore/librarian/internal/adapters/driven/config/file"
	"github.com/booklore/librarian/internal/adapters/driven/converter/pandoc"
	"github.com/booklore/librarian/internal/adapters/driven/embedding/ollama"
	"github.com/booklore/librarian/internal/adapters/driven/embedding/openai"
	"github.com/booklore/librarian/internal/adapters/driven/storage/sqlite"
	"github.com/booklore/librarian/internal/adapters/driven/vectorstore/qdrant"
	"github.com/booklore/librarian/internal/adapters/driving/cli"
	"github.com/booklore/librarian/internal/core/ports/driven"
	"github.com/booklore/librarian/internal/core/services"
	"github.com/booklore/librarian/internal/extractors"
	"github.com/booklore/librarian/internal/logger"
	"github.com/booklore/librarian/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := file.NewConfigStore(os.Getenv("LIBRARIAN_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	tracking, err := sqlite.NewStore(os.Getenv("LIBRARIAN_DATA_DIR"))
	if err != nil {
		return fmt.Errorf("opening tracking store: %w", err)
	}
	defer func() {
		if err := tracking.Close(); err != nil {
			logger.Warn("Closing tracking store: %v", err)
		}
	}()

	vectors := qdrant.NewClient(qdrant.Config{
		BaseURL: config.GetString("qdrant.url"),
		APIKey:  config.GetString("qdrant.api_key"),
	})

	embedder, err := newEmbedder(config)
	if err != nil {
		return err
	}
	defer func() {
		if err := embedder.Close(); err != nil {
			logger.Warn("Closing embedding service: %v", err)
		}
	}()

	// Fail fast when the embedding backend is down; a mid-batch discovery
	// would waste extraction work and litter failed records.
	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := embedder.Ping(pingCtx); err != nil {
		return fmt.Errorf("embedding model %q unreachable: %w", embedder.ModelName(), err)
	}

	collections := services.NewCollectionService(config, tracking, vectors)

	registry := extractors.NewDefaultRegistry(pandoc.New(
		pandoc.WithBinary(config.GetString("pandoc.binary")),
	))

	importer := services.NewImporter(
		registry,
		newChunker(config),
		embedder,
		vectors,
		tracking,
		collections,
		importerOptions(config)...,
	)

	cli.Init(importer, collections, version)
	return cli.Execute()
}

// newEmbedder builds the embedding service selected by embedding.provider.
// Ollama is the default so the tool works locally with zero configuration.
func newEmbedder(config driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := config.GetString("embedding.provider")

	switch provider {
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:           config.GetString("embedding.base_url"),
			Model:             config.GetString("embedding.model"),
			Dimensions:        config.GetInt("embedding.dimensions"),
			RequestsPerSecond: float64(config.GetInt("embedding.requests_per_second")),
		}), nil

	case "openai":
		apiKey := config.GetString("embedding.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		return openai.NewEmbeddingService(openai.Config{
			APIKey:            apiKey,
			BaseURL:           config.GetString("embedding.base_url"),
			Model:             config.GetString("embedding.model"),
			Dimensions:        config.GetInt("embedding.dimensions"),
			RequestsPerSecond: float64(config.GetInt("embedding.requests_per_second")),
		})

	default:
		return nil, fmt.Errorf("unknown embedding provider %q (want ollama or openai)", provider)
	}
}

// newChunker builds the chunker with config overrides applied.
func newChunker(config driven.ConfigStore) *chunker.Processor {
	var opts []chunker.Option
	if n := config.GetInt("chunker.max_tokens"); n > 0 {
		opts = append(opts, chunker.WithMaxTokens(n))
	}
	if n := config.GetInt("chunker.overlap_tokens"); n > 0 {
		opts = append(opts, chunker.WithOverlapTokens(n))
	}
	return chunker.New(opts...)
}

// importerOptions maps config keys onto importer tuning options. Absent
// keys fall back to the service defaults.
func importerOptions(config driven.ConfigStore) []services.Option {
	var opts []services.Option
	if n := config.GetInt("import.file_workers"); n > 0 {
		opts = append(opts, services.WithFileWorkers(n))
	}
	if n := config.GetInt("import.chunk_workers"); n > 0 {
		opts = append(opts, services.WithChunkWorkers(n))
	}
	if n := config.GetInt("import.stale_pending_minutes"); n > 0 {
		opts = append(opts, services.WithStalePendingAfter(time.Duration(n)*time.Minute))
	}
	if n := config.GetInt("import.max_file_size_mb"); n > 0 {
		opts = append(opts, services.WithMaxFileSize(int64(n)<<20))
	}
	return opts
}
