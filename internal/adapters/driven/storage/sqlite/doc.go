// Package sqlite provides the SQLite-based full-text store for snapfind.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Documents live in an FTS5 virtual table
// tokenised with unicode61. One Store implements two ports:
//
//   - DocumentStore: Upserts in scoped write sessions, lookups, run history
//   - SearchEngine: Ranked MATCH queries with snippets
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// A file that predates the migrations and holds a two-column docs(path, content)
// table is upgraded in place: its rows are copied into the current layout with
// no indexed_at.
//
// # Read-only search
//
// Searches run on a separate connection pool opened with PRAGMA query_only,
// so the search path cannot write to the file even by mistake.
//
// # Data Location
//
// By default, the database is ./reports_fts.db in the working directory.
package sqlite
