// Package commits keeps a project's commit log summarized.
package commits

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source.go -package=mocks repoqa/internal/commits Source
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_diff_summarizer.go -package=mocks repoqa/internal/commits DiffSummarizer

import (
	"context"
	"fmt"

	"repoqa/internal/contextutil"
	"repoqa/internal/github"
	"repoqa/internal/storage"
)

// PageSize is the number of commits fetched per poll.
const PageSize = 10

// Placeholder summaries stored when no model summary is available.
const (
	SummaryUnavailable = "Summary unavailable"
	NoChanges          = "No changes found in this commit"
)

// Source lists commits and their diffs.
type Source interface {
	ListCommits(ctx context.Context, ref github.RepoRef, token string, page, perPage int) ([]github.CommitInfo, error)
	CommitDiff(ctx context.Context, ref github.RepoRef, token, sha string) (string, error)
}

// DiffSummarizer summarizes a commit diff.
type DiffSummarizer interface {
	SummarizeDiff(ctx context.Context, diff string) (string, error)
}

// Poller summarizes new commits and stores them.
type Poller struct {
	source     Source
	summarizer DiffSummarizer
	store      storage.CommitStore
}

// NewPoller creates a Poller.
func NewPoller(source Source, summarizer DiffSummarizer, store storage.CommitStore) *Poller {
	return &Poller{source: source, summarizer: summarizer, store: store}
}

// Poll fetches one page of commits (page 1 is the newest), summarizes those not
// stored yet and inserts them. It returns the number of commits inserted.
// A commit whose diff or summary fails is stored with SummaryUnavailable.
func (p *Poller) Poll(ctx context.Context, projectID string, ref github.RepoRef, page int, token string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx).With("project_id", projectID, "page", page)
	if page < 1 {
		page = 1
	}

	listed, err := p.source.ListCommits(ctx, ref, token, page, PageSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list commits: %w", err)
	}
	if len(listed) == 0 {
		return 0, nil
	}

	hashes := make([]string, 0, len(listed))
	for _, c := range listed {
		hashes = append(hashes, c.SHA)
	}
	existing, err := p.store.ExistingHashes(ctx, projectID, hashes)
	if err != nil {
		return 0, fmt.Errorf("failed to check stored commits: %w", err)
	}

	fresh := make([]storage.Commit, 0, len(listed))
	for _, c := range listed {
		if existing[c.SHA] {
			continue
		}
		fresh = append(fresh, storage.Commit{
			ProjectID:       projectID,
			CommitHash:      c.SHA,
			CommitMessage:   c.Message,
			AuthorName:      c.AuthorName,
			AuthorAvatarURL: c.AuthorAvatarURL,
			CommitDate:      c.Date,
			Summary:         p.summarize(ctx, ref, token, c.SHA),
		})
	}
	if len(fresh) == 0 {
		logger.DebugContext(ctx, "no new commits")
		return 0, nil
	}

	inserted, err := p.store.InsertMany(ctx, fresh)
	if err != nil {
		return 0, fmt.Errorf("failed to store commits: %w", err)
	}
	logger.InfoContext(ctx, "commits polled", "listed", len(listed), "new", len(fresh), "inserted", inserted)
	return inserted, nil
}

func (p *Poller) summarize(ctx context.Context, ref github.RepoRef, token, sha string) string {
	logger := contextutil.LoggerFromContext(ctx)

	diff, err := p.source.CommitDiff(ctx, ref, token, sha)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch commit diff", "sha", sha, "error", err)
		return SummaryUnavailable
	}
	if diff == "" {
		return NoChanges
	}

	summary, err := p.summarizer.SummarizeDiff(ctx, diff)
	if err != nil {
		logger.WarnContext(ctx, "failed to summarize commit", "sha", sha, "error", err)
		return SummaryUnavailable
	}
	return summary
}
