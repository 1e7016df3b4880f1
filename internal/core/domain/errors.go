package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Extraction-time errors. Each is non-fatal to a batch import: one bad
	// file never aborts import of its siblings.

	// ErrUnreadableFile indicates the file could not be read (permissions, IO).
	ErrUnreadableFile = errors.New("unreadable file")

	// ErrUnsupportedFormat indicates the file extension is not in the
	// recognised set.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrCorruptDocument indicates a format-specific parser error, such as
	// a malformed PDF.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrUnsupportedConversion indicates the external document converter is
	// unavailable or rejected the file. Never silently downgraded to an
	// empty document.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrAlreadyImported is the dedup gate: a completed record already
	// exists for this (collection, content hash). Not a true error; the
	// pipeline reports it as a Skipped outcome.
	ErrAlreadyImported = errors.New("already imported")

	// External-call failures, retried with bounded backoff before surfacing.

	// ErrEmbeddingService indicates the embedding provider failed.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrVectorStore indicates the vector-store backend failed.
	ErrVectorStore = errors.New("vector store error")

	// ErrTrackingStore indicates local persistence failed. Fatal for that
	// file's import; other files' records stay intact.
	ErrTrackingStore = errors.New("tracking store error")

	// ErrDimensionMismatch indicates the embedding model dimension does not
	// match the vector-store collection. Configuration problem, fatal at
	// startup.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
