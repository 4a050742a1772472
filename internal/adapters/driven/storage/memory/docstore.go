package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interfaces.
var (
	_ driven.DocumentStore = (*DocumentStore)(nil)
	_ driven.SearchEngine  = (*DocumentStore)(nil)
)

var errSessionDone = errors.New("write session already finished")

// DocumentStore is an in-memory text store.
// Search treats the query as an implicit AND of its terms, case-insensitive;
// boolean operators and quotes are ignored.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	runs      []domain.IndexReport
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// BeginWrite starts a session whose upserts become visible on Commit.
func (s *DocumentStore) BeginWrite(_ context.Context) (driven.WriteSession, error) {
	return &writeSession{store: s, pending: make(map[string]domain.Document)}, nil
}

// Get retrieves a document by path.
func (s *DocumentStore) Get(_ context.Context, path string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}

// RecordRun stores an index report.
func (s *DocumentStore) RecordRun(_ context.Context, report domain.IndexReport) error {
	if report.RunID == "" {
		return fmt.Errorf("recording run: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, report)
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *DocumentStore) RecentRuns(_ context.Context, limit int) ([]driven.RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []driven.RunSummary
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		r := s.runs[i]
		out = append(out, driven.RunSummary{
			RunID:      r.RunID,
			Root:       r.Root,
			Indexed:    r.Indexed,
			Skipped:    r.Skipped,
			Failed:     r.Failed(),
			StartedAt:  r.StartedAt,
			FinishedAt: r.FinishedAt,
		})
	}
	return out, nil
}

// Search returns documents containing every query term, most occurrences first.
func (s *DocumentStore) Search(_ context.Context, query string, limit int) ([]domain.SearchHit, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		hit   domain.SearchHit
		score int
	}
	var matches []scored
	for path, doc := range s.documents {
		lower := strings.ToLower(doc.Content)
		score := 0
		for _, term := range terms {
			n := strings.Count(lower, term)
			if n == 0 {
				score = 0
				break
			}
			score += n
		}
		if score == 0 {
			continue
		}
		matches = append(matches, scored{
			hit:   domain.SearchHit{Path: path, Snippet: bracket(doc.Content, terms)},
			score: score,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].hit.Path < matches[j].hit.Path
	})

	hits := make([]domain.SearchHit, 0, len(matches))
	for i := 0; i < len(matches) && (limit <= 0 || i < limit); i++ {
		hits = append(hits, matches[i].hit)
	}
	return hits, nil
}

func queryTerms(query string) []string {
	var terms []string
	for _, f := range strings.Fields(query) {
		switch f {
		case "AND", "OR", "NOT", "NEAR":
			continue
		}
		f = strings.Trim(strings.ToLower(f), `"()*`)
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

// bracket wraps the first occurrence of each term in content.
func bracket(content string, terms []string) string {
	out := content
	for _, term := range terms {
		lower := strings.ToLower(out)
		if len(lower) != len(out) {
			break
		}
		i := strings.Index(lower, term)
		if i < 0 {
			continue
		}
		out = out[:i] + "[" + out[i:i+len(term)] + "]" + out[i+len(term):]
	}
	return out
}

type writeSession struct {
	store   *DocumentStore
	pending map[string]domain.Document
	done    bool
}

func (w *writeSession) Upsert(_ context.Context, doc domain.Document) error {
	if w.done {
		return errSessionDone
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("upsert %s: %w", doc.Path, err)
	}
	w.pending[doc.Path] = doc
	return nil
}

func (w *writeSession) Commit() error {
	if w.done {
		return errSessionDone
	}
	w.done = true
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	for path, doc := range w.pending {
		w.store.documents[path] = doc
	}
	return nil
}

func (w *writeSession) Rollback() error {
	w.done = true
	w.pending = nil
	return nil
}
