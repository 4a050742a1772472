package driving

import "context"

// QueryComposer turns an image into a one-line search query.
type QueryComposer interface {
	// Compose reads the image at imagePath and asks a vision model for a query.
	// hint is optional domain context appended to the instruction.
	// Returns domain.ErrEmptyQuery if the model produced no text.
	Compose(ctx context.Context, imagePath, hint string) (string, error)
}
