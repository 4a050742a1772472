package domain

import "time"

// FailureKind classifies why a single file could not be indexed.
type FailureKind string

// Failure kinds recorded during an indexing pass.
const (
	// FailureRead means the file could not be opened or read.
	FailureRead FailureKind = "read"

	// FailureExtract means the extractor rejected the file (e.g. corrupt PDF).
	FailureExtract FailureKind = "extract"

	// FailureUnsupported means no extractor handles the file type.
	FailureUnsupported FailureKind = "unsupported"

	// FailureStore means the text store refused the document.
	FailureStore FailureKind = "store"
)

// IndexFailure records one file that was skipped because of an error.
type IndexFailure struct {
	Path string
	Kind FailureKind
	Err  error
}

// IndexReport summarises one indexing pass.
type IndexReport struct {
	// RunID identifies the pass in logs and in the run history.
	RunID string

	// Root is the directory that was scanned.
	Root string

	// Indexed counts documents inserted or replaced.
	Indexed int

	// Skipped counts files whose text was empty after normalisation.
	Skipped int

	// Failures lists files that could not be indexed.
	Failures []IndexFailure

	// StartedAt is when the pass began.
	StartedAt time.Time

	// FinishedAt is when the pass committed.
	FinishedAt time.Time
}

// Failed returns the number of files that could not be indexed.
func (r IndexReport) Failed() int {
	return len(r.Failures)
}

// Duration returns how long the pass took.
func (r IndexReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
