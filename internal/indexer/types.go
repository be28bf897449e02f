package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_summarizer.go -package=mocks repoqa/internal/indexer Summarizer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks repoqa/internal/indexer Embedder
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_record_store.go -package=mocks repoqa/internal/indexer RecordStore

import (
	"context"

	"repoqa/internal/storage"
)

// Summarizer produces a natural-language summary of one file.
type Summarizer interface {
	SummarizeFile(ctx context.Context, filePath, content string) (string, error)
}

// Embedder turns a summary into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// RecordStore persists one indexed file, row and vector together.
type RecordStore interface {
	Save(ctx context.Context, f *storage.FileEmbedding) error
}

// Heartbeat is told after every document that a project's run is still alive.
type Heartbeat interface {
	Touch(ctx context.Context, projectID string) error
}

// SkipReason explains why a document was not indexed.
type SkipReason string

const (
	SkipTooLarge      SkipReason = "too_large"
	SkipBinary        SkipReason = "binary"
	SkipFailed        SkipReason = "failed"
	SkipPersistFailed SkipReason = "persist_failed"
)

// Outcome is the result of processing one document: a record or a skip reason.
type Outcome struct {
	Path   string
	Record *storage.FileEmbedding
	Skip   SkipReason
	Err    error
}

// Result folds the outcomes of a run.
type Result struct {
	Total        int                `json:"total"`
	IndexedFiles int                `json:"indexed_files"`
	Skipped      map[SkipReason]int `json:"skipped,omitempty"`

	summaryTokens []int
}

// add folds one outcome into the result.
func (r *Result) add(o Outcome) {
	r.Total++
	if o.Record != nil {
		r.IndexedFiles++
		r.summaryTokens = append(r.summaryTokens, estimateTokens(o.Record.Summary))
		return
	}
	if r.Skipped == nil {
		r.Skipped = make(map[SkipReason]int)
	}
	r.Skipped[o.Skip]++
}
