// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants import documents and inspect the library.
package mcp

import "errors"

// ErrMissingImporter is returned when the importer service is not provided.
var ErrMissingImporter = errors.New("mcp: importer service is required")

// ErrMissingCollections is returned when the collection service is not provided.
var ErrMissingCollections = errors.New("mcp: collection service is required")
