package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/booklore/librarian/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/booklore/librarian/internal/core/domain"
	"github.com/booklore/librarian/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.TrackingStore = (*Store)(nil)

// recordColumns is the column list shared by every record query.
const recordColumns = `id, collection, content_hash, file_name, format, status, chunk_count, error, created_at, updated_at`

// Store is the SQLite-backed tracking store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a tracking store at the specified data directory.
// If dataDir is empty, defaults to ~/.librarian/data/tracking.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".librarian", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "tracking.db")

	// WAL mode for concurrent importers; busy_timeout lets writers queue
	// instead of failing fast. txlock=immediate makes claim transactions
	// take the write lock up front, so they serialize instead of hitting
	// snapshot conflicts on upgrade.
	db, err := sql.Open("sqlite", dbPath+"?_txlock=immediate&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Lookup returns the record for (collection, hash), or domain.ErrNotFound.
func (s *Store) Lookup(ctx context.Context, collection, contentHash string) (*domain.ImportRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM import_records WHERE collection = ? AND content_hash = ?
	`, collection, contentHash)

	return scanRecord(row)
}

// BeginImport atomically claims (collection, hash) with a pending record.
// The whole check-and-insert runs in one transaction so two concurrent
// imports of identical bytes resolve deterministically: one wins the claim,
// the other either proceeds redundantly (idempotent) or is turned away by
// a completed record.
func (s *Store) BeginImport(ctx context.Context, rec domain.ImportRecord, staleAfter time.Duration) (*domain.ImportRecord, error) {
	claimed, err := s.beginImport(ctx, rec, staleAfter)
	if isUniqueViolation(err) {
		// Lost the insert race: resolve against the winner's row.
		return s.beginImport(ctx, rec, staleAfter)
	}
	return claimed, err
}

func (s *Store) beginImport(ctx context.Context, rec domain.ImportRecord, staleAfter time.Duration) (*domain.ImportRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: beginning transaction: %v", domain.ErrTrackingStore, err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	row := tx.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM import_records WHERE collection = ? AND content_hash = ?
	`, rec.Collection, rec.ContentHash)

	existing, err := scanRecord(row)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Free slot: insert the pending claim.
		rec.ID = uuid.NewString()
		rec.Status = domain.StatusPending
		rec.ChunkCount = 0
		rec.Error = ""
		rec.CreatedAt = now
		rec.UpdatedAt = now

		_, err := tx.ExecContext(ctx, `
			INSERT INTO import_records (`+recordColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, rec.Collection, rec.ContentHash, rec.FileName, string(rec.Format),
			string(rec.Status), rec.ChunkCount, rec.Error, rec.CreatedAt, rec.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: claiming import: %v", domain.ErrTrackingStore, err)
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("%w: committing claim: %v", domain.ErrTrackingStore, err)
		}
		return &rec, nil

	case err != nil:
		return nil, err
	}

	switch existing.Status {
	case domain.StatusCompleted:
		return nil, fmt.Errorf("%w: %s already in collection %q",
			domain.ErrAlreadyImported, existing.ContentHash, existing.Collection)

	case domain.StatusFailed:
		// Failed records never block a retry: reset to pending.
		existing.Status = domain.StatusPending
		existing.Error = ""
		existing.ChunkCount = 0
		existing.FileName = rec.FileName
		existing.UpdatedAt = now

		_, err := tx.ExecContext(ctx, `
			UPDATE import_records
			SET status = ?, error = '', chunk_count = 0, file_name = ?, updated_at = ?
			WHERE id = ?
		`, string(domain.StatusPending), existing.FileName, now, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: resetting failed record: %v", domain.ErrTrackingStore, err)
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("%w: committing reset: %v", domain.ErrTrackingStore, err)
		}
		return existing, nil

	default: // pending
		if now.Sub(existing.UpdatedAt) > staleAfter {
			// Abandoned claim (crashed importer): take it over.
			existing.UpdatedAt = now
			_, err := tx.ExecContext(ctx, `
				UPDATE import_records SET updated_at = ? WHERE id = ?
			`, now, existing.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: refreshing stale claim: %v", domain.ErrTrackingStore, err)
			}
		}
		// A live pending claim is returned as-is: the caller proceeds in
		// parallel and both finishers write identical points.
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("%w: committing: %v", domain.ErrTrackingStore, err)
		}
		return existing, nil
	}
}

// CompleteImport transitions pending to completed and records the chunk
// count. Called only after every chunk is confirmed upserted.
func (s *Store) CompleteImport(ctx context.Context, id string, chunkCount int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE import_records
		SET status = ?, chunk_count = ?, error = '', updated_at = ?
		WHERE id = ?
	`, string(domain.StatusCompleted), chunkCount, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: completing import: %v", domain.ErrTrackingStore, err)
	}
	return requireRow(res, id)
}

// MarkFailed transitions a record to failed with a reason.
func (s *Store) MarkFailed(ctx context.Context, id string, reason string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE import_records
		SET status = ?, error = ?, updated_at = ?
		WHERE id = ?
	`, string(domain.StatusFailed), reason, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: marking failed: %v", domain.ErrTrackingStore, err)
	}
	return requireRow(res, id)
}

// List returns records for a collection, most recent first.
func (s *Store) List(ctx context.Context, collection string, limit, offset int) ([]domain.ImportRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM import_records
		WHERE collection = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, collection, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: querying records: %v", domain.ErrTrackingStore, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// CountCompleted returns the number of completed records in a collection.
func (s *Store) CountCompleted(ctx context.Context, collection string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM import_records WHERE collection = ? AND status = ?
	`, collection, string(domain.StatusCompleted)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting records: %v", domain.ErrTrackingStore, err)
	}
	return count, nil
}

// Find matches completed records by hash prefix and/or file-name substring.
func (s *Store) Find(ctx context.Context, collection, hashPrefix, fileName string) ([]domain.ImportRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM import_records
		WHERE collection = ? AND status = ?`
	args := []any{collection, string(domain.StatusCompleted)}

	if hashPrefix != "" {
		query += ` AND content_hash LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(hashPrefix)+"%")
	}
	if fileName != "" {
		query += ` AND file_name LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(fileName)+"%")
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: finding records: %v", domain.ErrTrackingStore, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// DeleteByHash removes the record for (collection, hash).
func (s *Store) DeleteByHash(ctx context.Context, collection, contentHash string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM import_records WHERE collection = ? AND content_hash = ?
	`, collection, contentHash)
	if err != nil {
		return fmt.Errorf("%w: deleting record: %v", domain.ErrTrackingStore, err)
	}
	return nil
}

// DeleteCollection removes every record in the collection.
func (s *Store) DeleteCollection(ctx context.Context, collection string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM import_records WHERE collection = ?
	`, collection)
	if err != nil {
		return fmt.Errorf("%w: deleting collection records: %v", domain.ErrTrackingStore, err)
	}
	return nil
}

// scanTarget is satisfied by both *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

// scanRecord scans a single record, mapping sql.ErrNoRows to ErrNotFound.
func scanRecord(row scanTarget) (*domain.ImportRecord, error) {
	var rec domain.ImportRecord
	var format, status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&rec.ID, &rec.Collection, &rec.ContentHash, &rec.FileName,
		&format, &status, &rec.ChunkCount, &rec.Error, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning record: %v", domain.ErrTrackingStore, err)
	}

	rec.Format = domain.Format(format)
	rec.Status = domain.ImportStatus(status)
	if createdAt.Valid {
		rec.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time
	}
	return &rec, nil
}

// scanRecords scans all rows of a record query.
func scanRecords(rows *sql.Rows) ([]domain.ImportRecord, error) {
	var records []domain.ImportRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating records: %v", domain.ErrTrackingStore, err)
	}
	return records, nil
}

// requireRow maps a zero-row update to domain.ErrNotFound.
func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking affected rows: %v", domain.ErrTrackingStore, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: record %s", domain.ErrNotFound, id)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// escapeLike escapes LIKE wildcards in user-supplied match terms.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
