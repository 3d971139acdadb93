package driven

import "context"

// TextGenerator writes a document body (e.g. a tailored cover letter) for a
// job description. This is an optional service - when nil, tailoring is disabled.
//
// Prompt construction belongs to the implementation; the core only supplies
// the job description and the requirement text (the chosen résumé).
type TextGenerator interface {
	// Generate returns the generated document body.
	Generate(ctx context.Context, jobDescription, requirements string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
