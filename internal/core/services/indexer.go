package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
	"github.com/custodia-labs/snapfind/internal/core/ports/driving"
	"github.com/custodia-labs/snapfind/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.IndexService = (*Indexer)(nil)

// Indexer scans a directory and mirrors the text of its reports into the
// text store. Files are processed one at a time.
type Indexer struct {
	docStore   driven.DocumentStore
	extractors driven.ExtractorRegistry
	connectors driven.ConnectorFactory

	now   func() time.Time
	newID func() string
}

// NewIndexer creates a new indexer.
func NewIndexer(
	docStore driven.DocumentStore,
	registry driven.ExtractorRegistry,
	connectors driven.ConnectorFactory,
) *Indexer {
	return &Indexer{
		docStore:   docStore,
		extractors: registry,
		connectors: connectors,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Index walks root and upserts every supported file with non-empty text
// inside a single write session. Per-file failures are logged and skipped;
// only walk, session or commit errors abort the pass.
func (i *Indexer) Index(ctx context.Context, root string) (*domain.IndexReport, error) {
	report := &domain.IndexReport{
		RunID:     i.newID(),
		Root:      root,
		StartedAt: i.now(),
	}
	logger.Section("Indexing")
	logger.Debug("Run %s: scanning %s", report.RunID, root)

	conn := i.connectors(root, i.extractors.Supports)
	defer conn.Close()

	session, err := i.docStore.BeginWrite(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin write: %w", err)
	}

	walkErr := conn.Walk(ctx, func(path string) error {
		indexed, kind, err := i.indexOne(ctx, session, path)
		switch {
		case err != nil:
			logger.Warn("Indexing failed for %s (%s): %v", path, kind, err)
			report.Failures = append(report.Failures, domain.IndexFailure{Path: path, Kind: kind, Err: err})
		case indexed:
			report.Indexed++
		default:
			report.Skipped++
		}
		return ctx.Err()
	})
	if walkErr != nil {
		_ = session.Rollback()
		return nil, fmt.Errorf("index %s: %w", root, walkErr)
	}

	if err := session.Commit(); err != nil {
		return nil, fmt.Errorf("commit index: %w", err)
	}
	report.FinishedAt = i.now()

	if err := i.docStore.RecordRun(ctx, *report); err != nil {
		logger.Warn("Could not record index run %s: %v", report.RunID, err)
	}

	logger.Info("Indexed %d, skipped %d, failed %d in %s",
		report.Indexed, report.Skipped, report.Failed(), report.Duration())
	return report, nil
}

// IndexFile re-indexes a single file in its own session.
// Returns false with a nil error when the file has no text.
func (i *Indexer) IndexFile(ctx context.Context, path string) (bool, error) {
	if !i.extractors.Supports(path) {
		return false, fmt.Errorf("%s: %w", path, domain.ErrUnsupportedType)
	}

	session, err := i.docStore.BeginWrite(ctx)
	if err != nil {
		return false, fmt.Errorf("begin write: %w", err)
	}

	indexed, kind, err := i.indexOne(ctx, session, path)
	if err != nil {
		_ = session.Rollback()
		return false, fmt.Errorf("%s (%s): %w", path, kind, err)
	}
	if !indexed {
		_ = session.Rollback()
		return false, nil
	}
	if err := session.Commit(); err != nil {
		return false, fmt.Errorf("commit %s: %w", path, err)
	}
	return true, nil
}

// indexOne reads, extracts and stores path. Empty text is not an error.
func (i *Indexer) indexOne(
	ctx context.Context, session driven.WriteSession, path string,
) (bool, domain.FailureKind, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, domain.FailureRead, err
	}

	text, err := i.extractors.Extract(ctx, path, content)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			return false, domain.FailureUnsupported, err
		}
		return false, domain.FailureExtract, err
	}

	text = domain.NormaliseWhitespace(text)
	if text == "" {
		logger.Debug("Skipping %s: no text", path)
		return false, "", nil
	}

	doc := domain.Document{Path: path, Content: text, IndexedAt: i.now()}
	if err := session.Upsert(ctx, doc); err != nil {
		return false, domain.FailureStore, err
	}
	logger.Debug("Indexed %s (%d chars)", path, len(text))
	return true, "", nil
}
