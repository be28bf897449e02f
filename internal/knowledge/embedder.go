package knowledge

import (
	"context"
	"fmt"

	"repoqa/internal/errs"
	"repoqa/internal/llm"
)

// Embedder turns summaries and questions into vectors of a fixed dimension.
type Embedder struct {
	provider   llm.EmbeddingProvider
	limiter    *llm.Limiter
	retry      llm.RetryPolicy
	dimensions int
}

// NewEmbedder creates an Embedder. dimensions > 0 enables size validation.
func NewEmbedder(provider llm.EmbeddingProvider, limiter *llm.Limiter, dimensions int, retry llm.RetryPolicy) *Embedder {
	return &Embedder{
		provider:   provider,
		limiter:    limiter,
		retry:      retry,
		dimensions: dimensions,
	}
}

// Embed returns the embedding of text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := llm.Retry(ctx, e.retry, e.limiter, func(ctx context.Context) ([]float32, error) {
		return e.provider.Embed(ctx, text)
	})
	if err != nil {
		return nil, errs.Kind(errs.ErrEmbeddingFailed, err)
	}
	if e.dimensions > 0 && len(vec) != e.dimensions {
		return nil, fmt.Errorf("%w: vector has %d dimensions, expected %d", errs.ErrEmbeddingFailed, len(vec), e.dimensions)
	}
	return vec, nil
}
