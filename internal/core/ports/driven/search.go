package driven

import (
	"context"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

// SearchEngine provides ranked full-text search over stored documents.
// Backed by SQLite FTS5. Implementations must never mutate the store.
type SearchEngine interface {
	// Search runs query in the engine's native MATCH dialect and returns
	// at most limit hits, best match first. Every hit carries a snippet.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchHit, error)
}
