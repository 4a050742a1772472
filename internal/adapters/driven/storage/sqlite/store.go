package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/snapfind/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
)

// searchSQL brackets matched terms, elides with " … " and keeps 16 tokens
// of context. The content head backs hits whose snippet comes out empty.
const searchSQL = `
	SELECT path,
	       snippet(docs, 1, '[', ']', ' … ', 16) AS snip,
	       substr(content, 1, 240) AS head
	FROM docs
	WHERE docs MATCH ?
	ORDER BY rank
	LIMIT ?
`

// hitsPrealloc caps the up-front capacity of a result slice; the limit
// itself is only a bound on rows.
const hitsPrealloc = 64

// fallbackSuffix marks a content-head snippet as truncated.
const fallbackSuffix = " …"

// Store is the SQLite-backed text store. It holds a read-write pool for
// indexing and a query_only pool for searching.
type Store struct {
	db   *sql.DB
	ro   *sql.DB
	path string
}

// NewStore opens (creating if needed) the store file at dbPath and runs
// pending migrations. If dbPath is empty, defaults to ./reports_fts.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = domain.DefaultDBPath
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	// Open database with WAL mode so a search can run while an index commits
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
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

	ro, err := sql.Open("sqlite", dbPath+"?_pragma=query_only(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening read-only database: %w", err)
	}
	s.ro = ro

	return s, nil
}

// Close closes both connection pools.
func (s *Store) Close() error {
	return errors.Join(s.ro.Close(), s.db.Close())
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// SearchEngine returns a read-only SearchEngine backed by this store.
func (s *Store) SearchEngine() driven.SearchEngine {
	return &searchEngine{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
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

	legacy := false
	if currentVersion == 0 {
		if legacy, err = s.hasLegacyDocs(); err != nil {
			return fmt.Errorf("inspecting docs table: %w", err)
		}
	}
	if legacy {
		if _, err := s.db.Exec("ALTER TABLE docs RENAME TO docs_legacy"); err != nil {
			return fmt.Errorf("renaming legacy docs table: %w", err)
		}
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
		// Extract version number (e.g., "001_documents.up.sql" -> 1)
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
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	if legacy {
		if _, err := s.db.Exec("INSERT INTO docs (path, content) SELECT path, content FROM docs_legacy"); err != nil {
			return fmt.Errorf("copying legacy documents: %w", err)
		}
		if _, err := s.db.Exec("DROP TABLE docs_legacy"); err != nil {
			return fmt.Errorf("dropping legacy docs table: %w", err)
		}
	}

	return nil
}

// hasLegacyDocs reports whether an unversioned file already holds a docs
// table without the indexed_at column (path and content only).
func (s *Store) hasLegacyDocs() (bool, error) {
	var name string
	err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'docs'").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	rows, err := s.db.Query("SELECT * FROM docs LIMIT 0")
	if err != nil {
		return false, err
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return false, err
	}
	return !slices.Contains(cols, "indexed_at"), nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// BeginWrite opens a transaction for a batch of upserts.
func (d *documentStore) BeginWrite(ctx context.Context) (driven.WriteSession, error) {
	tx, err := d.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning write session: %w", err)
	}

	del, err := tx.PrepareContext(ctx, "DELETE FROM docs WHERE path = ?")
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("preparing delete: %w", err)
	}
	ins, err := tx.PrepareContext(ctx, "INSERT INTO docs (path, content, indexed_at) VALUES (?, ?, ?)")
	if err != nil {
		del.Close()
		_ = tx.Rollback()
		return nil, fmt.Errorf("preparing insert: %w", err)
	}

	return &writeSession{tx: tx, del: del, ins: ins}, nil
}

// Get retrieves a document by path.
func (d *documentStore) Get(ctx context.Context, path string) (*domain.Document, error) {
	row := d.store.db.QueryRowContext(ctx,
		"SELECT path, content, indexed_at FROM docs WHERE path = ?", path)

	var doc domain.Document
	var indexedAt sql.NullString
	if err := row.Scan(&doc.Path, &doc.Content, &indexedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	if indexedAt.Valid {
		if t, err := time.Parse(time.RFC3339Nano, indexedAt.String); err == nil {
			doc.IndexedAt = t
		}
	}

	return &doc, nil
}

// Count returns the number of stored documents.
func (d *documentStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM docs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// RecordRun stores the summary of an indexing pass.
func (d *documentStore) RecordRun(ctx context.Context, report domain.IndexReport) error {
	if report.RunID == "" {
		return fmt.Errorf("recording run: %w", domain.ErrInvalidInput)
	}
	_, err := d.store.db.ExecContext(ctx, `
		INSERT INTO index_runs (id, root, indexed, skipped, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			indexed = excluded.indexed,
			skipped = excluded.skipped,
			failed = excluded.failed,
			finished_at = excluded.finished_at
	`, report.RunID, report.Root, report.Indexed, report.Skipped, report.Failed(),
		report.StartedAt.UTC(), report.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit recorded passes, newest first.
func (d *documentStore) RecentRuns(ctx context.Context, limit int) ([]driven.RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.store.db.QueryContext(ctx, `
		SELECT id, root, indexed, skipped, failed, started_at, finished_at
		FROM index_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []driven.RunSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r driven.RunSummary
		if err := rows.Scan(&r.RunID, &r.Root, &r.Indexed, &r.Skipped, &r.Failed,
			&r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// writeSession implements driven.WriteSession over one transaction.
type writeSession struct {
	tx   *sql.Tx
	del  *sql.Stmt
	ins  *sql.Stmt
	done bool
}

var _ driven.WriteSession = (*writeSession)(nil)

// Upsert deletes any row for the path, then inserts the new content.
func (w *writeSession) Upsert(ctx context.Context, doc domain.Document) error {
	if w.done {
		return sql.ErrTxDone
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("upserting %q: %w", doc.Path, err)
	}
	if doc.IndexedAt.IsZero() {
		doc.IndexedAt = time.Now()
	}

	if _, err := w.del.ExecContext(ctx, doc.Path); err != nil {
		return fmt.Errorf("deleting %q: %w", doc.Path, err)
	}
	if _, err := w.ins.ExecContext(ctx, doc.Path, doc.Content,
		doc.IndexedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("inserting %q: %w", doc.Path, err)
	}
	return nil
}

// Commit makes all upserts durable.
func (w *writeSession) Commit() error {
	if w.done {
		return sql.ErrTxDone
	}
	w.done = true
	w.closeStatements()
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("committing write session: %w", err)
	}
	return nil
}

// Rollback discards uncommitted upserts. It is a no-op after Commit.
func (w *writeSession) Rollback() error {
	if w.done {
		return nil
	}
	w.done = true
	w.closeStatements()
	if err := w.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back write session: %w", err)
	}
	return nil
}

func (w *writeSession) closeStatements() {
	w.del.Close()
	w.ins.Close()
}

// ==================== Search Engine ====================

// searchEngine implements driven.SearchEngine on the query_only pool.
type searchEngine struct {
	store *Store
}

var _ driven.SearchEngine = (*searchEngine)(nil)

// Search runs an FTS5 MATCH ordered by rank.
func (e *searchEngine) Search(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	rows, err := e.store.ro.QueryContext(ctx, searchSQL, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying docs: %w", err)
	}
	defer rows.Close()

	hits := make([]domain.SearchHit, 0, min(limit, hitsPrealloc))
	for rows.Next() {
		var path string
		var snip, head sql.NullString
		if err := rows.Scan(&path, &snip, &head); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, domain.SearchHit{
			Path:    path,
			Snippet: chooseSnippet(snip.String, head.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hits: %w", err)
	}

	return hits, nil
}

// chooseSnippet prefers the engine excerpt and falls back to the content head.
func chooseSnippet(snip, head string) string {
	if s := domain.NormaliseWhitespace(snip); s != "" {
		return s
	}
	return domain.NormaliseWhitespace(head) + fallbackSuffix
}
