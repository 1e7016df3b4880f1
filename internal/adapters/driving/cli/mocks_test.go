package cli

import (
	"context"
	"time"

	"github.com/booklore/librarian/internal/core/domain"
	"github.com/booklore/librarian/internal/core/ports/driving"
)

// mockImporter is a mock implementation of driving.Importer.
type mockImporter struct {
	summary  *domain.BatchSummary
	records  []domain.ImportRecord
	removed  *domain.ImportRecord
	err      error
	lastPath string
	dropped  bool
}

func (m *mockImporter) ImportPath(_ context.Context, path string) (*domain.BatchSummary, error) {
	m.lastPath = path
	return m.summary, m.err
}

func (m *mockImporter) ListImports(_ context.Context, _ int) ([]domain.ImportRecord, error) {
	return m.records, m.err
}

func (m *mockImporter) Remove(_ context.Context, _, _ string) (*domain.ImportRecord, error) {
	return m.removed, m.err
}

func (m *mockImporter) Drop(_ context.Context) error {
	if m.err == nil {
		m.dropped = true
	}
	return m.err
}

// mockCollections is a mock implementation of driving.CollectionService.
type mockCollections struct {
	current    string
	status     *driving.CollectionStatus
	err        error
	checkedOut string
}

func (m *mockCollections) Current(_ context.Context) string {
	if m.current == "" {
		return "library"
	}
	return m.current
}

func (m *mockCollections) Checkout(_ context.Context, name string) error {
	if m.err != nil {
		return m.err
	}
	m.checkedOut = name
	m.current = name
	return nil
}

func (m *mockCollections) Status(_ context.Context) (*driving.CollectionStatus, error) {
	return m.status, m.err
}

// setupTestServices installs default mocks and returns a cleanup func.
func setupTestServices() func() {
	oldImporter := importerService
	oldCollections := collectionService

	importerService = &mockImporter{
		summary: &domain.BatchSummary{
			Completed: 1,
			Outcomes: []domain.FileOutcome{
				{Path: "/docs/a.txt", Kind: domain.OutcomeCompleted, ContentHash: "abc123", ChunkCount: 3},
			},
		},
		records: []domain.ImportRecord{
			{
				ContentHash: "abc123def456abc123def456",
				FileName:    "a.txt",
				Format:      domain.FormatPlainText,
				Status:      domain.StatusCompleted,
				ChunkCount:  3,
				CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			},
		},
	}
	collectionService = &mockCollections{
		current: "library",
		status: &driving.CollectionStatus{
			Current:          "library",
			Collections:      map[string]int64{"library": 9},
			CompletedImports: 3,
		},
	}

	return func() {
		importerService = oldImporter
		collectionService = oldCollections
	}
}
