package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptyContent indicates extraction produced no text.
	// Empty documents are skipped, never stored.
	ErrEmptyContent = errors.New("empty content")

	// ErrSearchUnavailable indicates the text store is not configured.
	ErrSearchUnavailable = errors.New("search engine unavailable")

	// ErrMissingCredential indicates the vision service API key is not set.
	// It is reported before any network call or index mutation.
	ErrMissingCredential = errors.New("missing credential")

	// ErrEmptyQuery indicates the vision model returned no usable query.
	ErrEmptyQuery = errors.New("model returned empty query")

	// ErrUnknownProvider indicates a vision provider name is not recognised.
	ErrUnknownProvider = errors.New("unknown vision provider")
)
