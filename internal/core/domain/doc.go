// Package domain contains the core business entities for the librarian
// ingestion pipeline: documents, import records, chunks, and the error
// taxonomy shared across ports and adapters.
package domain
