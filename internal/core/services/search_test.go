package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/snapfind/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/snapfind/internal/core/domain"
)

// --- Mock implementations ---

// mockSearchEngine implements driven.SearchEngine for testing.
type mockSearchEngine struct {
	hits      []domain.SearchHit
	searchErr error

	calls     int
	lastQuery string
	lastLimit int
}

func (m *mockSearchEngine) Search(_ context.Context, query string, limit int) ([]domain.SearchHit, error) {
	m.calls++
	m.lastQuery = query
	m.lastLimit = limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if limit > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:limit], nil
}

func TestSearchService_Search(t *testing.T) {
	engine := &mockSearchEngine{hits: []domain.SearchHit{
		{Path: "/r/a.txt", Snippet: "[TSMC] capex"},
		{Path: "/r/b.txt", Snippet: "[TSMC] dividend"},
	}}
	service := NewSearchService(engine)

	hits, err := service.Search(context.Background(), "  TSMC  ", domain.SearchOptions{Limit: 1})

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "/r/a.txt", hits[0].Path)
	assert.Equal(t, "TSMC", engine.lastQuery)
	assert.Equal(t, 1, engine.lastLimit)
}

func TestSearchService_Search_DefaultLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
	}{
		{name: "zero", limit: 0},
		{name: "negative", limit: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockSearchEngine{}
			service := NewSearchService(engine)

			_, err := service.Search(context.Background(), "q", domain.SearchOptions{Limit: tt.limit})

			require.NoError(t, err)
			assert.Equal(t, domain.DefaultSearchLimit, engine.lastLimit)
		})
	}
}

func TestSearchService_Search_BlankQuery(t *testing.T) {
	engine := &mockSearchEngine{}
	service := NewSearchService(engine)

	hits, err := service.Search(context.Background(), " \t\n", domain.SearchOptions{})

	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
	assert.Zero(t, engine.calls)
}

func TestSearchService_Search_NoMatchesIsEmptyList(t *testing.T) {
	service := NewSearchService(&mockSearchEngine{})

	hits, err := service.Search(context.Background(), "nothing", domain.SearchOptions{})

	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestSearchService_Search_EngineError(t *testing.T) {
	boom := errors.New("fts5: syntax error")
	service := NewSearchService(&mockSearchEngine{searchErr: boom})

	_, err := service.Search(context.Background(), `"open`, domain.SearchOptions{})

	assert.ErrorIs(t, err, boom)
}

func TestSearchService_Search_NoEngine(t *testing.T) {
	service := NewSearchService(nil)

	_, err := service.Search(context.Background(), "q", domain.SearchOptions{})

	assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
}

func TestSearchService_Search_MemoryStore(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()
	session, err := store.BeginWrite(ctx)
	require.NoError(t, err)
	require.NoError(t, session.Upsert(ctx, domain.Document{Path: "/r/robot.md", Content: "robotics arm"}))
	require.NoError(t, session.Commit())

	hits, err := NewSearchService(store).Search(ctx, "robotics", domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "/r/robot.md", hits[0].Path)
}
