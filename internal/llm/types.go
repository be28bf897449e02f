package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks repoqa/internal/llm Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedding_provider.go -package=mocks repoqa/internal/llm EmbeddingProvider

import (
	"context"
	"fmt"
)

// Generator produces text from a system instruction and a user prompt.
type Generator interface {
	// Generate returns the complete reply.
	Generate(ctx context.Context, system, prompt string) (string, error)
	// StreamGenerate calls callback for every chunk of the reply, in order.
	StreamGenerate(ctx context.Context, system, prompt string, callback func(chunk string) error) error
}

// EmbeddingProvider turns text into a vector.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// StatusError is returned when a model endpoint answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status %d: %s", e.StatusCode, e.Body)
}
