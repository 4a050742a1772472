package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

// DocumentStore persists Documents keyed by path.
// Writes happen inside a WriteSession so a whole scan commits at once.
type DocumentStore interface {
	// BeginWrite opens a write session. The caller must Commit or Rollback.
	BeginWrite(ctx context.Context) (WriteSession, error)

	// Get retrieves a document by path.
	// Returns domain.ErrNotFound if no document exists for the path.
	Get(ctx context.Context, path string) (*domain.Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// RecordRun stores the summary of an indexing pass.
	RecordRun(ctx context.Context, report domain.IndexReport) error

	// RecentRuns returns up to limit recorded passes, newest first.
	// Failure details are not persisted; only counts survive.
	RecentRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

// RunSummary is the persisted form of an IndexReport.
type RunSummary struct {
	RunID      string
	Root       string
	Indexed    int
	Skipped    int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// WriteSession groups upserts into one transaction.
type WriteSession interface {
	// Upsert replaces any existing document with the same path.
	Upsert(ctx context.Context, doc domain.Document) error

	// Commit makes all upserts durable.
	Commit() error

	// Rollback discards uncommitted upserts. It is safe after Commit.
	Rollback() error
}
