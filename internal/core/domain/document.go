package domain

import (
	"strings"
	"time"
)

// Document is the unit of the text store.
// At most one Document exists per Path; re-indexing replaces it.
type Document struct {
	// Path is the absolute path of the source file and the primary key.
	Path string

	// Content is the whitespace-normalised text of the file.
	Content string

	// IndexedAt is when the document was last (re)indexed.
	IndexedAt time.Time
}

// Validate checks that the document can be stored.
func (d Document) Validate() error {
	if d.Path == "" {
		return ErrInvalidInput
	}
	if d.Content == "" {
		return ErrEmptyContent
	}
	return nil
}

// NormaliseWhitespace collapses every run of whitespace (spaces, tabs,
// newlines and other Unicode spaces) to a single space and trims the ends.
// Stored content and displayed snippets both go through it.
func NormaliseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
