package domain

// Result count bounds.
const (
	// DefaultSearchLimit is used when a caller asks for zero or fewer results.
	DefaultSearchLimit = 5

	// MaxSearchLimit is the largest number of results a search returns.
	MaxSearchLimit = 1000
)

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int
}

// EffectiveLimit returns the limit to apply, falling back to DefaultSearchLimit
// and capped at MaxSearchLimit.
func (o SearchOptions) EffectiveLimit() int {
	if o.Limit <= 0 {
		return DefaultSearchLimit
	}
	return min(o.Limit, MaxSearchLimit)
}

// SearchHit represents a single ranked match. It is never persisted.
type SearchHit struct {
	// Path identifies the matched document.
	Path string `json:"path"`

	// Snippet is an excerpt with matched terms bracketed, or a content
	// prefix when the engine produced no excerpt. Never empty.
	Snippet string `json:"snippet"`
}
