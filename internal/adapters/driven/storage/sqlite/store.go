package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
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

	"github.com/custodia-labs/tdsprep/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

// Store is a SQLite database holding the chunks of the latest run.
type Store struct {
	db   *sql.DB
	path string
}

// Run describes one write of the pipeline output.
type Run struct {
	ID         string
	StartedAt  time.Time
	ChunkCount int
}

// NewStore opens or creates the database at path and applies migrations.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", domain.ErrInvalidInput)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	// Run migrations
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
	// Ensure schema_migrations table exists
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
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ReplaceChunks records a new run and replaces all stored chunks with
// chunks, in one transaction. Metadata is coerced before it is stored.
func (s *Store) ReplaceChunks(ctx context.Context, chunks []domain.Chunk) (*Run, error) {
	run := &Run{
		ID:         uuid.New().String(),
		StartedAt:  time.Now().UTC(),
		ChunkCount: len(chunks),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return nil, fmt.Errorf("clearing chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, chunk_count) VALUES (?, ?, ?)`,
		run.ID, run.StartedAt, run.ChunkCount); err != nil {
		return nil, fmt.Errorf("saving run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (ordinal, run_id, doc_id, document_id, source, content_type, quality_score, content, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range chunks {
		metadata := domain.CoerceMetadata(c.Metadata)
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("marshalling metadata: %w", err)
		}

		docID, _ := metadata[domain.MetaDocID].(string)
		if docID == "" {
			docID = c.ID
		}
		source, _ := metadata[domain.MetaSource].(string)
		contentType, _ := metadata[domain.MetaContentType].(string)

		if _, err := stmt.ExecContext(ctx, i+1, run.ID, docID, c.DocumentID, source, contentType,
			domain.QualityScore(metadata), c.Content, string(metadataJSON)); err != nil {
			return nil, fmt.Errorf("saving chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return run, nil
}

// LatestRun returns the most recent run, or domain.ErrNotFound.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, chunk_count FROM runs
		ORDER BY started_at DESC, rowid DESC LIMIT 1
	`)

	var run Run
	var startedAt sql.NullTime
	if err := row.Scan(&run.ID, &startedAt, &run.ChunkCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	return &run, nil
}

// Records returns the stored chunks in output order. Numbers in metadata
// are decoded as json.Number, as the JSON reader does.
func (s *Store) Records(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT content, metadata FROM chunks ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		var metadataJSON string
		if err := rows.Scan(&rec.PageContent, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		dec := json.NewDecoder(strings.NewReader(metadataJSON))
		dec.UseNumber()
		if err := dec.Decode(&rec.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
		if rec.Metadata == nil {
			rec.Metadata = map[string]any{}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountBy returns the number of stored chunks per value of column, which
// must be "source" or "content_type".
func (s *Store) CountBy(ctx context.Context, column string) (map[string]int, error) {
	if column != "source" && column != "content_type" {
		return nil, fmt.Errorf("%w: column %q", domain.ErrInvalidInput, column)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+column+`, COUNT(*) FROM chunks GROUP BY `+column)
	if err != nil {
		return nil, fmt.Errorf("counting chunks: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}
