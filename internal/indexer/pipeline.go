package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"repoqa/internal/contextutil"
	"repoqa/internal/errs"
	"repoqa/internal/github"
	"repoqa/internal/llm"
	"repoqa/internal/storage"
)

// Defaults for Options.
const (
	DefaultMaxFileChars = 10000
	DefaultMaxAttempts  = 3
	DefaultRetryBase    = 2 * time.Second
	DefaultPause        = 500 * time.Millisecond
	DefaultBatchPause   = time.Second
	DefaultBatchSize    = 5
)

// Pacer waits between documents. Tests replace it to avoid sleeping.
type Pacer interface {
	Pause(ctx context.Context, d time.Duration) error
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func(ctx context.Context, d time.Duration) error

// Pause calls f.
func (f PacerFunc) Pause(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// Options tunes a Pipeline. Zero values select the defaults.
type Options struct {
	MaxFileChars int
	MaxAttempts  int
	RetryBase    time.Duration
	Pacer        Pacer
	// Heartbeat, when set, is touched after each document so long runs
	// are not mistaken for crashed ones.
	Heartbeat Heartbeat
	// EmbeddingModel is recorded in the run's index version.
	EmbeddingModel string
}

// Pipeline turns fetched files into persisted summaries and embeddings.
// Documents are processed one at a time in fetch order.
type Pipeline struct {
	summarizer Summarizer
	embedder   Embedder
	store      RecordStore
	opts       Options
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(summarizer Summarizer, embedder Embedder, store RecordStore, opts Options) *Pipeline {
	if opts.MaxFileChars <= 0 {
		opts.MaxFileChars = DefaultMaxFileChars
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = DefaultRetryBase
	}
	if opts.Pacer == nil {
		opts.Pacer = PacerFunc(llm.Sleep)
	}
	return &Pipeline{
		summarizer: summarizer,
		embedder:   embedder,
		store:      store,
		opts:       opts,
	}
}

// Run indexes docs for a project. Per-document failures become skips; the run
// fails only when the context ends or nothing was indexed.
func (p *Pipeline) Run(ctx context.Context, projectID string, docs []github.FileDocument) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx).With("project_id", projectID)
	logger.InfoContext(ctx, "starting ingestion", "total_files", len(docs))

	var result Result
	processed := 0
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome := p.process(ctx, projectID, doc)
		if outcome.Record == nil {
			switch outcome.Skip {
			case SkipTooLarge, SkipBinary:
				logger.InfoContext(ctx, "skipping file", "path", doc.Path, "reason", outcome.Skip, "chars", utf8.RuneCountInString(doc.Content))
			default:
				logger.ErrorContext(ctx, "failed to index file", "path", doc.Path, "reason", outcome.Skip, "error", outcome.Err)
			}
		} else {
			logger.DebugContext(ctx, "indexed file", "path", doc.Path, "progress", fmt.Sprintf("%d/%d", i+1, len(docs)))
		}
		result.add(outcome)
		if p.opts.Heartbeat != nil {
			if err := p.opts.Heartbeat.Touch(ctx, projectID); err != nil {
				logger.WarnContext(ctx, "failed to refresh project heartbeat", "error", err)
			}
		}

		if errors.Is(outcome.Err, context.Canceled) || errors.Is(outcome.Err, context.DeadlineExceeded) {
			return result, outcome.Err
		}
		if outcome.Skip == SkipTooLarge || outcome.Skip == SkipBinary {
			continue
		}

		processed++
		if err := p.opts.Pacer.Pause(ctx, DefaultPause); err != nil {
			return result, err
		}
		if processed%DefaultBatchSize == 0 {
			if err := p.opts.Pacer.Pause(ctx, DefaultBatchPause); err != nil {
				return result, err
			}
		}
	}

	stats := result.Stats(p.opts.EmbeddingModel)
	logger.InfoContext(ctx, "ingestion completed",
		"total_files", result.Total,
		"indexed", result.IndexedFiles,
		"skipped", result.Skipped,
		"summary_tokens_mean", stats.SummaryTokens.Mean,
		"index_version", stats.IndexVersion,
	)

	if result.IndexedFiles == 0 {
		return result, errs.ErrNoFilesIndexed
	}
	return result, nil
}

// process indexes one document, retrying unexpected failures with exponential backoff.
func (p *Pipeline) process(ctx context.Context, projectID string, doc github.FileDocument) Outcome {
	if utf8.RuneCountInString(doc.Content) > p.opts.MaxFileChars {
		return Outcome{Path: doc.Path, Skip: SkipTooLarge}
	}
	if github.IsBinaryPath(doc.Path) {
		return Outcome{Path: doc.Path, Skip: SkipBinary}
	}

	logger := contextutil.LoggerFromContext(ctx)

	var err error
	for attempt := 0; ; attempt++ {
		var record *storage.FileEmbedding
		record, err = p.index(ctx, projectID, doc)
		if err == nil {
			return Outcome{Path: doc.Path, Record: record}
		}
		if !retryable(err) || attempt >= p.opts.MaxAttempts {
			break
		}

		delay := p.opts.RetryBase << (attempt + 1)
		logger.WarnContext(ctx, "retrying file", "path", doc.Path, "attempt", attempt+1, "max_attempts", p.opts.MaxAttempts, "delay", delay, "error", err)
		if perr := p.opts.Pacer.Pause(ctx, delay); perr != nil {
			err = perr
			break
		}
	}

	if errors.Is(err, errs.ErrPersistenceFailed) {
		return Outcome{Path: doc.Path, Skip: SkipPersistFailed, Err: err}
	}
	return Outcome{Path: doc.Path, Skip: SkipFailed, Err: err}
}

func (p *Pipeline) index(ctx context.Context, projectID string, doc github.FileDocument) (*storage.FileEmbedding, error) {
	summary, err := p.summarizer.SummarizeFile(ctx, doc.Path, doc.Content)
	if err != nil {
		return nil, err
	}
	vec, err := p.embedder.Embed(ctx, summary)
	if err != nil {
		return nil, err
	}

	record := &storage.FileEmbedding{
		ProjectID:  projectID,
		FileName:   doc.Path,
		SourceCode: doc.Content,
		Summary:    summary,
		Embedding:  vec,
	}
	if err := p.store.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// retryable reports whether a document failure is worth another attempt.
// Rate limits were already retried by the model client.
func retryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, errs.ErrRateLimited), errors.Is(err, errs.ErrPersistenceFailed):
		return false
	}
	return true
}
