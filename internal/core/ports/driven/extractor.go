package driven

import "context"

// Extractor pulls plain text out of one family of file types.
// Each extractor handles specific extensions (e.g. ".pdf").
type Extractor interface {
	// SupportedExtensions returns lower-case extensions including the dot.
	SupportedExtensions() []string

	// Extract returns the text of a file. The result is not normalised.
	// Returning "" with a nil error means the file has no text layer.
	Extract(ctx context.Context, path string, content []byte) (string, error)
}

// ExtractorRegistry selects the extractor for a path by its extension.
type ExtractorRegistry interface {
	// Extract dispatches to the registered extractor for path.
	// Returns domain.ErrUnsupportedType when no extractor matches.
	Extract(ctx context.Context, path string, content []byte) (string, error)

	// Register adds an extractor, replacing earlier ones for the same extensions.
	Register(extractor Extractor)

	// Supports reports whether path has a registered extension.
	Supports(path string) bool

	// SupportedExtensions returns all registered extensions, sorted.
	SupportedExtensions() []string
}
