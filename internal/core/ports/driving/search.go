package driving

import (
	"context"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search runs a full-text query against the indexed reports.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchHit, error)
}
