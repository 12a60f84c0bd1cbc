package service

import "context"

// AIService is the generation capability behind the ingestion pipeline and
// the query operations. Implementations talk to a hosted model; tests
// substitute fakes.
type AIService interface {
	// GenerateVisionJSON sends a text instruction followed by the ordered page
	// images and asks for a response constrained to a single JSON object,
	// sampled deterministically.
	GenerateVisionJSON(ctx context.Context, prompt string, pages [][]byte) (string, error)

	// GenerateText sends a plain text instruction at the given temperature and
	// returns the raw completion.
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)

	// GenerateJSON sends a plain text instruction with deterministic sampling
	// and a JSON-object constrained response.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}
