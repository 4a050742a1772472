package driven

// PromptStore provides access to model prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptComposeQuery instructs a vision model to turn an image into a
	// single-line FTS5 query. The template has no format placeholders.
	PromptComposeQuery = "compose_query"
)

// DefaultComposeQueryPrompt is the built-in PromptComposeQuery template.
const DefaultComposeQueryPrompt = `You are a search-query composer. Look at the image and extract key topics, ` +
	`proper nouns, identifiers (e.g., tickers, part numbers), and produce a concise ` +
	`boolean/keyword query suitable for an SQLite FTS5 MATCH.
Prefer nouns and key phrases; avoid filler words. Return ONLY the query on one line.`
