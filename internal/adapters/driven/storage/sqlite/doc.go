// Package sqlite provides the SQLite-backed tracking store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The store holds one row
// per (collection, content hash) pair and is the source of deduplication
// truth for imports.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory and embedded at compile time.
//
// # Data Location
//
// By default, the database is stored at ~/.librarian/data/tracking.db
//
// # Thread Safety
//
// All operations are thread-safe. Claim semantics rely on SQLite-level
// locking in WAL mode: BeginImport runs its check-and-insert in one
// transaction, so concurrent importers of identical bytes race safely.
package sqlite
