package github

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/sync/errgroup"

	"repoqa/internal/contextutil"
	"repoqa/internal/errs"
)

// FileDocument is a downloaded file.
type FileDocument struct {
	Path    string
	Content string
	Size    int
}

// Resolve fills in the default branch when ref.Branch is empty,
// otherwise verifies that the branch exists.
func (c *Client) Resolve(ctx context.Context, ref RepoRef, token string) (RepoRef, error) {
	return c.resolve(ctx, c.api(token), ref)
}

func (c *Client) resolve(ctx context.Context, api *gh.Client, ref RepoRef) (RepoRef, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if ref.Branch == "" {
		repo, _, err := api.Repositories.Get(ctx, ref.Owner, ref.Name)
		if err != nil {
			return RepoRef{}, classify(err, errs.ErrRepositoryNotFound)
		}
		ref.Branch = repo.GetDefaultBranch()
		if ref.Branch == "" {
			ref.Branch = "main"
		}
		logger.DebugContext(ctx, "resolved default branch", "repo", ref.FullName(), "branch", ref.Branch)
		return ref, nil
	}

	if _, err := c.headSHA(ctx, api, ref); err != nil {
		return RepoRef{}, err
	}
	return ref, nil
}

// headSHA returns the commit SHA at the tip of ref.Branch.
func (c *Client) headSHA(ctx context.Context, api *gh.Client, ref RepoRef) (string, error) {
	branch, _, err := api.Repositories.GetBranch(ctx, ref.Owner, ref.Name, ref.Branch, 1)
	if err == nil {
		return branch.GetCommit().GetSHA(), nil
	}
	if !isNotFound(err) {
		return "", classify(err, errs.ErrBranchNotFound)
	}

	// GitHub answers 404 for both a missing repository and a missing branch.
	if _, _, repoErr := api.Repositories.Get(ctx, ref.Owner, ref.Name); repoErr != nil {
		return "", classify(repoErr, errs.ErrRepositoryNotFound)
	}
	return "", fmt.Errorf("%w: %q in %s", errs.ErrBranchNotFound, ref.Branch, ref.FullName())
}

// tree lists the recursive tree at the head of the branch.
func (c *Client) tree(ctx context.Context, api *gh.Client, ref RepoRef) (*gh.Tree, error) {
	if ref.Branch == "" {
		resolved, err := c.resolve(ctx, api, ref)
		if err != nil {
			return nil, err
		}
		ref = resolved
	}
	sha, err := c.headSHA(ctx, api, ref)
	if err != nil {
		return nil, err
	}
	tree, _, err := api.Git.GetTree(ctx, ref.Owner, ref.Name, sha, true)
	if err != nil {
		return nil, classify(err, errs.ErrRepositoryNotFound)
	}
	if tree.GetTruncated() {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "repository tree listing truncated", "repo", ref.FullName())
	}
	return tree, nil
}

// CheckSize counts the files at the head of the branch and fails with
// *errs.TooLargeError when the count exceeds max. It returns the count.
func (c *Client) CheckSize(ctx context.Context, ref RepoRef, token string, max int) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	tree, err := c.tree(ctx, c.api(token), ref)
	if err != nil {
		if errors.Is(err, errs.ErrRepositoryNotFound) || errors.Is(err, errs.ErrBranchNotFound) ||
			errors.Is(err, errs.ErrAccessDenied) || errors.Is(err, errs.ErrRateLimited) {
			return 0, err
		}
		return 0, errs.Kind(errs.ErrSizeCheckFailed, err)
	}

	count := 0
	for _, entry := range tree.Entries {
		if entry.GetType() == "blob" {
			count++
		}
	}

	logger.InfoContext(ctx, "repository size checked", "repo", ref.String(), "files", count, "max", max)
	if count > max {
		return count, &errs.TooLargeError{Count: count, Max: max}
	}
	return count, nil
}

// FetchFiles downloads every file at the head of the branch that passes the filter.
// Documents are returned in tree order. Files that are not valid UTF-8 are dropped.
func (c *Client) FetchFiles(ctx context.Context, ref RepoRef, token string) ([]FileDocument, error) {
	logger := contextutil.LoggerFromContext(ctx)
	api := c.api(token)

	tree, err := c.tree(ctx, api, ref)
	if err != nil {
		return nil, err
	}

	var entries []*gh.TreeEntry
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" || !c.filter.Allow(entry.GetPath()) {
			continue
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrNoFilesFound, ref.String())
	}

	docs := make([]*FileDocument, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, entry := range entries {
		g.Go(func() error {
			raw, _, err := api.Git.GetBlobRaw(gctx, ref.Owner, ref.Name, entry.GetSHA())
			if err != nil {
				classified := classify(err, errs.ErrNotFound)
				if errors.Is(classified, errs.ErrRateLimited) || errors.Is(classified, errs.ErrAccessDenied) || gctx.Err() != nil {
					return fmt.Errorf("failed to fetch %s: %w", entry.GetPath(), classified)
				}
				logger.WarnContext(gctx, "skipping file that could not be downloaded", "path", entry.GetPath(), "error", err)
				return nil
			}
			if !utf8.Valid(raw) {
				logger.DebugContext(gctx, "skipping non-UTF-8 file", "path", entry.GetPath())
				return nil
			}
			docs[i] = &FileDocument{
				Path:    entry.GetPath(),
				Content: string(raw),
				Size:    len(raw),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]FileDocument, 0, len(docs))
	for _, doc := range docs {
		if doc != nil {
			out = append(out, *doc)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrNoFilesFound, ref.String())
	}

	logger.InfoContext(ctx, "fetched repository files", "repo", ref.String(), "files", len(out), "listed", len(tree.Entries))
	return out, nil
}
