package rag

import (
	"context"
	"fmt"

	"repoqa/internal/contextutil"
)

// VectorRetriever embeds the question and searches the project's file summaries.
type VectorRetriever struct {
	embedder QueryEmbedder
	searcher Searcher
}

// NewRetriever creates a VectorRetriever.
func NewRetriever(embedder QueryEmbedder, searcher Searcher) *VectorRetriever {
	return &VectorRetriever{embedder: embedder, searcher: searcher}
}

// Retrieve returns at most MaxResults files with similarity above SimilarityThreshold,
// most similar first. No match is not an error.
func (r *VectorRetriever) Retrieve(ctx context.Context, projectID, question string) ([]Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	vec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	matches, err := r.searcher.Search(ctx, projectID, vec, MaxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to search project files: %w", err)
	}

	results := rank(matches, question)
	logger.InfoContext(ctx, "retrieval completed", "project_id", projectID, "candidates", len(matches), "results", len(results))
	if len(results) > 0 {
		logger.DebugContext(ctx, "top result", "file", results[0].FileName, "similarity", results[0].Similarity)
	}
	return results, nil
}
