package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks repoqa/internal/rag Retriever

import (
	"context"

	"repoqa/internal/knowledge"
)

// Result is a retrieved file used as answer context.
type Result struct {
	FileName   string  `json:"fileName"`
	SourceCode string  `json:"sourceCode"`
	Summary    string  `json:"summary"`
	Similarity float64 `json:"similarity"`
}

// Status classifies how an answer was produced.
type Status string

const (
	// StatusOK means the answer is grounded in retrieved files.
	StatusOK Status = "OK"
	// StatusNoRelevantFiles means no file passed the similarity threshold.
	StatusNoRelevantFiles Status = "NO_RELEVANT_FILES"
	// StatusServerError means the answer is an apology for a failure.
	StatusServerError Status = "SERVER_ERROR"
)

// Answer is a streamed answer with the files it was grounded on.
type Answer struct {
	Stream     *Stream
	References []Result
	Status     Status
}

// Retriever finds the files of a project relevant to a question.
type Retriever interface {
	Retrieve(ctx context.Context, projectID, question string) ([]Result, error)
}

// QueryEmbedder embeds a question.
type QueryEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher runs a project-scoped nearest-neighbour search.
type Searcher interface {
	Search(ctx context.Context, projectID string, vec []float32, limit int) ([]knowledge.Match, error)
}
