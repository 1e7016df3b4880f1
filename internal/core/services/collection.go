package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/booklore/librarian/internal/core/domain"
	"github.com/booklore/librarian/internal/core/ports/driven"
	"github.com/booklore/librarian/internal/core/ports/driving"
)

// DefaultCollection is the well-known collection used when none has ever
// been checked out.
const DefaultCollection = "library"

// collectionKey is the config-store key holding the current collection.
const collectionKey = "collection"

// Ensure CollectionService implements the interface.
var _ driving.CollectionService = (*CollectionService)(nil)

// CollectionService manages the persistent current-collection selector.
// Pipeline operations read the selector once at their start; a checkout
// never affects an import already in flight.
type CollectionService struct {
	config   driven.ConfigStore
	tracking driven.TrackingStore
	vectors  driven.VectorStore
}

// NewCollectionService creates a collection service. The tracking and
// vector stores are only needed for Status and may be nil otherwise.
func NewCollectionService(
	config driven.ConfigStore,
	tracking driven.TrackingStore,
	vectors driven.VectorStore,
) *CollectionService {
	return &CollectionService{
		config:   config,
		tracking: tracking,
		vectors:  vectors,
	}
}

// Current returns the checked-out collection name or the default.
func (s *CollectionService) Current(_ context.Context) string {
	name := strings.TrimSpace(s.config.GetString(collectionKey))
	if name == "" {
		return DefaultCollection
	}
	return name
}

// Checkout switches the current collection and persists the choice.
func (s *CollectionService) Checkout(_ context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: collection name is empty", domain.ErrInvalidInput)
	}
	return s.config.Set(collectionKey, name)
}

// Status aggregates collection statistics across both stores.
func (s *CollectionService) Status(ctx context.Context) (*driving.CollectionStatus, error) {
	status := &driving.CollectionStatus{
		Current:     s.Current(ctx),
		Collections: make(map[string]int64),
	}

	names, err := s.vectors.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	for _, name := range names {
		info, err := s.vectors.CollectionInfo(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("collection info %s: %w", name, err)
		}
		status.Collections[name] = info.PointCount
	}

	completed, err := s.tracking.CountCompleted(ctx, status.Current)
	if err != nil {
		return nil, fmt.Errorf("count completed: %w", err)
	}
	status.CompletedImports = completed

	return status, nil
}
