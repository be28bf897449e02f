package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"

	"repoqa/internal/errs"
)

// CommitInfo describes a commit as listed by GitHub.
type CommitInfo struct {
	SHA             string
	Message         string
	AuthorName      string
	AuthorAvatarURL string
	Date            time.Time
}

// ListCommits returns one page of commits on ref.Branch, newest first. Pages start at 1.
func (c *Client) ListCommits(ctx context.Context, ref RepoRef, token string, page, perPage int) ([]CommitInfo, error) {
	opts := &gh.CommitsListOptions{
		SHA: ref.Branch,
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}
	commits, _, err := c.api(token).Repositories.ListCommits(ctx, ref.Owner, ref.Name, opts)
	if err != nil {
		return nil, classify(err, errs.ErrRepositoryNotFound)
	}

	out := make([]CommitInfo, 0, len(commits))
	for _, rc := range commits {
		author := rc.GetCommit().GetAuthor()
		out = append(out, CommitInfo{
			SHA:             rc.GetSHA(),
			Message:         rc.GetCommit().GetMessage(),
			AuthorName:      author.GetName(),
			AuthorAvatarURL: rc.GetAuthor().GetAvatarURL(),
			Date:            author.GetDate().Time,
		})
	}
	return out, nil
}

// CommitDiff returns the per-file patches of a commit as "File: <name>\n<patch>"
// blocks separated by blank lines. It returns "" when the commit touches no files.
func (c *Client) CommitDiff(ctx context.Context, ref RepoRef, token, sha string) (string, error) {
	rc, _, err := c.api(token).Repositories.GetCommit(ctx, ref.Owner, ref.Name, sha, nil)
	if err != nil {
		return "", classify(err, errs.ErrNotFound)
	}

	blocks := make([]string, 0, len(rc.Files))
	for _, f := range rc.Files {
		blocks = append(blocks, fmt.Sprintf("File: %s\n%s", f.GetFilename(), f.GetPatch()))
	}
	return strings.Join(blocks, "\n\n"), nil
}
