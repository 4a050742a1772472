package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
	"github.com/custodia-labs/snapfind/internal/core/ports/driving"
	"github.com/custodia-labs/snapfind/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs ranked full-text queries against the text store.
type SearchService struct {
	searchEngine driven.SearchEngine
}

// NewSearchService creates a new search service.
func NewSearchService(searchEngine driven.SearchEngine) *SearchService {
	return &SearchService{searchEngine: searchEngine}
}

// Search returns up to opts.Limit hits for query, best first.
// A blank query returns no hits without consulting the engine.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchHit, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchHit{}, nil
	}
	if s.searchEngine == nil {
		return nil, domain.ErrSearchUnavailable
	}

	limit := opts.EffectiveLimit()
	logger.Debug("Limit: %d", limit)

	hits, err := s.searchEngine.Search(ctx, query, limit)
	if err != nil {
		logger.Debug("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	if hits == nil {
		hits = []domain.SearchHit{}
	}

	logger.Info("Final results: %d", len(hits))
	return hits, nil
}
