package mcp

import (
	"github.com/booklore/librarian/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Importer runs the ingestion pipeline.
	Importer driving.Importer

	// Collections manages the current-collection selector.
	Collections driving.CollectionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Importer == nil {
		return ErrMissingImporter
	}
	if p.Collections == nil {
		return ErrMissingCollections
	}
	return nil
}
