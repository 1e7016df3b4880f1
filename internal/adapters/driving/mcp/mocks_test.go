package mcp

import (
	"context"

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
