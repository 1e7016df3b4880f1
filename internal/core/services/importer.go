package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/booklore/librarian/internal/core/domain"
	"github.com/booklore/librarian/internal/core/ports/driven"
	"github.com/booklore/librarian/internal/core/ports/driving"
	"github.com/booklore/librarian/internal/logger"
)

// Default tuning values. Embedding and upsert calls dominate latency, so
// both pools are sized for I/O-bound work.
const (
	DefaultFileWorkers  = 4
	DefaultChunkWorkers = 4

	// DefaultStalePendingAfter is the age past which a pending record is
	// treated as abandoned rather than duplicate-blocking.
	DefaultStalePendingAfter = 30 * time.Minute

	// DefaultMaxFileSize caps the size of a single source file.
	DefaultMaxFileSize = 512 << 20
)

// Ensure Importer implements the interface.
var _ driving.Importer = (*Importer)(nil)

// Importer orchestrates the per-file ingestion state machine:
// hash, dedup gate, extract, chunk, embed, upsert, complete.
//
// Cross-store consistency note: the tracking store is the source of truth
// for "is this done", guarded by the pending-to-completed barrier, while
// deterministic point ids make the vector-store side idempotent. A retry
// after partial failure replays the same points instead of duplicating
// them.
type Importer struct {
	registry    driven.ExtractorRegistry
	chunker     driven.Chunker
	embedder    driven.EmbeddingService
	vectors     driven.VectorStore
	tracking    driven.TrackingStore
	collections driving.CollectionService

	fileWorkers       int
	chunkWorkers      int
	stalePendingAfter time.Duration
	maxFileSize       int64
}

// Option configures the importer.
type Option func(*Importer)

// WithFileWorkers bounds the number of files processed concurrently.
func WithFileWorkers(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.fileWorkers = n
		}
	}
}

// WithChunkWorkers bounds concurrent embed/upsert calls within one file.
func WithChunkWorkers(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.chunkWorkers = n
		}
	}
}

// WithStalePendingAfter sets the abandoned-pending threshold.
func WithStalePendingAfter(d time.Duration) Option {
	return func(im *Importer) {
		if d > 0 {
			im.stalePendingAfter = d
		}
	}
}

// WithMaxFileSize caps the size of a single source file in bytes.
func WithMaxFileSize(n int64) Option {
	return func(im *Importer) {
		if n > 0 {
			im.maxFileSize = n
		}
	}
}

// NewImporter creates the ingestion pipeline service.
func NewImporter(
	registry driven.ExtractorRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	tracking driven.TrackingStore,
	collections driving.CollectionService,
	opts ...Option,
) *Importer {
	im := &Importer{
		registry:          registry,
		chunker:           chunker,
		embedder:          embedder,
		vectors:           vectors,
		tracking:          tracking,
		collections:       collections,
		fileWorkers:       DefaultFileWorkers,
		chunkWorkers:      DefaultChunkWorkers,
		stalePendingAfter: DefaultStalePendingAfter,
		maxFileSize:       DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImportPath imports a file or directory into the current collection.
//
// The collection is captured once here and used for every operation of
// this call, even if a checkout happens concurrently. Per-file failures
// are isolated; only configuration-level problems fail the whole call.
func (im *Importer) ImportPath(ctx context.Context, path string) (*domain.BatchSummary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, path, err)
	}

	collection := im.collections.Current(ctx)
	if err := im.vectors.EnsureCollection(ctx, collection, im.embedder.Dimensions()); err != nil {
		return nil, fmt.Errorf("ensure collection %q: %w", collection, err)
	}

	summary := &domain.BatchSummary{}

	if !info.IsDir() {
		summary.Add(im.importOne(ctx, collection, path))
		return summary, nil
	}

	files, unreadable := im.discover(path)
	logger.Info("Importing %d files from %s into %q", len(files), path, collection)

	var mu sync.Mutex
	outcomes := make([]domain.FileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.fileWorkers)
	for i, file := range files {
		g.Go(func() error {
			// One bad file never aborts its siblings; only cancellation
			// stops the batch.
			outcome := im.importOne(gctx, collection, file)
			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			if gctx.Err() != nil {
				return gctx.Err()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, o := range unreadable {
		summary.Add(o)
	}
	for _, o := range outcomes {
		summary.Add(o)
	}
	return summary, nil
}

// discover walks a directory and returns the supported files in lexical
// order, plus a failed outcome for every entry the walk could not read.
// Unsupported extensions are skipped silently.
func (im *Importer) discover(root string) ([]string, []domain.FileOutcome) {
	var files []string
	var unreadable []domain.FileOutcome
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// One unreadable entry never aborts the walk; siblings still
			// import.
			logger.Warn("Cannot read %s: %v", path, err)
			unreadable = append(unreadable, domain.FileOutcome{
				Path: path,
				Kind: domain.OutcomeFailed,
				Err:  fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, path, err),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if im.registry.Supported(path) {
			files = append(files, path)
		} else {
			logger.Debug("Skipping unsupported file: %s", path)
		}
		return nil
	})
	return files, unreadable
}

// importOne drives one file through the state machine and always returns
// a terminal outcome. Failures past the dedup gate mark the record failed
// so a later call may retry.
func (im *Importer) importOne(ctx context.Context, collection, path string) domain.FileOutcome {
	outcome := domain.FileOutcome{Path: path, Kind: domain.OutcomeFailed}

	// Discovered: resolve the format before doing any heavy work.
	extractor, err := im.registry.Resolve(path)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	info, err := os.Stat(path)
	if err != nil {
		outcome.Err = fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, path, err)
		return outcome
	}
	if info.Size() > im.maxFileSize {
		outcome.Err = fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrInvalidInput, path, im.maxFileSize)
		return outcome
	}

	// Hashed.
	hash, err := HashFile(path)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.ContentHash = hash
	logger.Debug("Hashed %s: %s", path, hash)

	// DedupChecked: claim (collection, hash) before extraction so already
	// imported content costs no embedding work.
	record, err := im.tracking.BeginImport(ctx, domain.ImportRecord{
		ContentHash: hash,
		FileName:    filepath.Base(path),
		Collection:  collection,
		Format:      extractor.Format(),
	}, im.stalePendingAfter)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyImported) {
			logger.Debug("Skipping %s: already imported", path)
			outcome.Kind = domain.OutcomeSkipped
			return outcome
		}
		outcome.Err = err
		return outcome
	}

	chunkCount, err := im.ingest(ctx, collection, record, extractor, path)
	if err != nil {
		if mfErr := im.tracking.MarkFailed(ctx, record.ID, err.Error()); mfErr != nil {
			logger.Warn("Mark failed for %s: %v", path, mfErr)
		}
		outcome.Err = err
		return outcome
	}

	outcome.Kind = domain.OutcomeCompleted
	outcome.ChunkCount = chunkCount
	return outcome
}

// ingest runs extraction through upsert for a claimed record and returns
// the chunk count on success.
func (im *Importer) ingest(
	ctx context.Context,
	collection string,
	record *domain.ImportRecord,
	extractor driven.Extractor,
	path string,
) (int, error) {
	// Extracting.
	result, err := extractor.Extract(ctx, path)
	if err != nil {
		return 0, err
	}

	// Chunking.
	chunks, err := im.chunker.Chunk(ctx, record.ContentHash, result.Text())
	if err != nil {
		return 0, err
	}
	logger.Debug("Split %s into %d chunks", path, len(chunks))

	// Embedding and Upserting, bounded concurrency. Chunk upserts may
	// finish out of order; deterministic point ids make order irrelevant.
	fileName := filepath.Base(path)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.chunkWorkers)
	for _, chunk := range chunks {
		g.Go(func() error {
			vector, err := im.embedder.Embed(gctx, chunk.Text)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", chunk.Index, err)
			}
			point := domain.Point{
				ID:     domain.PointID(chunk.ContentHash, chunk.Index),
				Vector: vector,
				Payload: domain.PointPayload{
					ContentHash: chunk.ContentHash,
					FileName:    fileName,
					Collection:  collection,
					ChunkIndex:  chunk.Index,
					Format:      string(record.Format),
				},
			}
			if err := im.vectors.Upsert(gctx, collection, []domain.Point{point}); err != nil {
				return fmt.Errorf("upsert chunk %d: %w", chunk.Index, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	// Completed: strict barrier — only after every chunk upsert confirmed.
	if err := im.tracking.CompleteImport(ctx, record.ID, len(chunks)); err != nil {
		return 0, err
	}
	logger.Info("Imported %s (%d chunks)", path, len(chunks))
	return len(chunks), nil
}

// ListImports returns the latest records for the current collection.
func (im *Importer) ListImports(ctx context.Context, limit int) ([]domain.ImportRecord, error) {
	collection := im.collections.Current(ctx)
	return im.tracking.List(ctx, collection, limit, 0)
}

// Remove deletes one imported document from both stores.
func (im *Importer) Remove(ctx context.Context, hashPrefix, fileName string) (*domain.ImportRecord, error) {
	if hashPrefix == "" && fileName == "" {
		return nil, fmt.Errorf("%w: need a hash prefix or a file name", domain.ErrInvalidInput)
	}

	collection := im.collections.Current(ctx)
	matches, err := im.tracking.Find(ctx, collection, hashPrefix, fileName)
	if err != nil {
		return nil, err
	}
	switch {
	case len(matches) == 0:
		return nil, domain.ErrNotFound
	case len(matches) > 1:
		return nil, fmt.Errorf("%w: %d matching documents, narrow the criteria", domain.ErrInvalidInput, len(matches))
	}

	record := matches[0]
	// Vector store first: if the delete fails the tracking record stays,
	// and a later remove can retry.
	if err := im.vectors.DeleteByHash(ctx, collection, record.ContentHash); err != nil {
		return nil, err
	}
	if err := im.tracking.DeleteByHash(ctx, collection, record.ContentHash); err != nil {
		return nil, err
	}
	logger.Info("Removed %s (%s)", record.FileName, record.ContentHash)
	return &record, nil
}

// Drop removes the current collection from the vector store and clears
// its tracking records.
func (im *Importer) Drop(ctx context.Context) error {
	collection := im.collections.Current(ctx)
	if err := im.vectors.DeleteCollection(ctx, collection); err != nil {
		return err
	}
	if err := im.tracking.DeleteCollection(ctx, collection); err != nil {
		return err
	}
	logger.Info("Dropped collection %q", collection)
	return nil
}
