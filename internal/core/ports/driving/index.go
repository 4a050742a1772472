package driving

import (
	"context"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

// IndexService builds and refreshes the full-text store from a directory.
type IndexService interface {
	// Index scans root recursively and upserts every supported file.
	// Per-file failures are reported in the result, not returned as errors.
	Index(ctx context.Context, root string) (*domain.IndexReport, error)

	// IndexFile re-indexes a single file and commits immediately.
	// Returns true if a document was stored.
	IndexFile(ctx context.Context, path string) (bool, error)
}
