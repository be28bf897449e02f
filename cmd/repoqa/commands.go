package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"repoqa/internal/github"
	"repoqa/internal/service"
)

// repoChecker is the part of the GitHub client the validate command needs.
type repoChecker interface {
	Resolve(ctx context.Context, ref github.RepoRef, token string) (github.RepoRef, error)
	CheckSize(ctx context.Context, ref github.RepoRef, token string, max int) (int, error)
}

type deps struct {
	out      io.Writer
	maxFiles int
	// projects builds the project service and returns its cleanup.
	projects func(ctx context.Context) (service.ProjectService, func() error, error)
	repos    func() (repoChecker, error)
}

func newRootCmd(d *deps) *cobra.Command {
	root := &cobra.Command{
		Use:          "repoqa",
		Short:        "Ask questions about GitHub repositories",
		SilenceUsage: true,
	}
	root.AddCommand(
		newValidateCmd(d),
		newIngestCmd(d),
		newAskCmd(d),
		newCommitsCmd(d),
	)
	return root
}

// withProjects runs fn with a project service and releases it afterwards.
func (d *deps) withProjects(ctx context.Context, fn func(service.ProjectService) error) error {
	svc, cleanup, err := d.projects(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = cleanup()
	}()
	return fn(svc)
}

func newValidateCmd(d *deps) *cobra.Command {
	var branch, token string
	cmd := &cobra.Command{
		Use:   "validate <repo-url>",
		Short: "check that a repository exists and is small enough to ingest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref, err := github.ParseURL(args[0], branch)
			if err != nil {
				return err
			}
			repos, err := d.repos()
			if err != nil {
				return err
			}
			if ref, err = repos.Resolve(ctx, ref, token); err != nil {
				return err
			}
			count, err := repos.CheckSize(ctx, ref, token, d.maxFiles)
			if err != nil {
				return err
			}
			fmt.Fprintf(d.out, "%s: %d files (maximum %d)\n", ref, count, d.maxFiles)
			return nil
		},
	}
	cmd.Flags().StringVar(&branch, "branch", "", "branch to check (default: the repository's default branch)")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (default: GITHUB_TOKEN)")
	return cmd
}

func newIngestCmd(d *deps) *cobra.Command {
	var branch, token string
	cmd := &cobra.Command{
		Use:   "ingest <project-name> <repo-url>",
		Short: "register a repository and index it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.withProjects(cmd.Context(), func(svc service.ProjectService) error {
				p, err := svc.Create(cmd.Context(), service.CreateProjectRequest{
					Name:    args[0],
					RepoURL: args[1],
					Branch:  branch,
					Token:   token,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(d.out, "project %s (%s): %s, %d files indexed\n", p.Name, p.ID, p.Status, p.FileCount)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&branch, "branch", "", "branch to ingest (default: the repository's default branch)")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (default: GITHUB_TOKEN)")
	return cmd
}

func newAskCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <project-id> <question...>",
		Short: "ask a question about an ingested repository",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.withProjects(cmd.Context(), func(svc service.ProjectService) error {
				answer, err := svc.Ask(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				for chunk := range answer.Stream.Chunks() {
					fmt.Fprint(d.out, chunk)
				}
				fmt.Fprintln(d.out)

				if len(answer.References) > 0 {
					fmt.Fprintln(d.out, "\nReferences:")
					for _, r := range answer.References {
						fmt.Fprintf(d.out, "  %s (%.2f)\n", r.FileName, r.Similarity)
					}
				}
				return nil
			})
		},
	}
}

func newCommitsCmd(d *deps) *cobra.Command {
	var page int
	var poll bool
	cmd := &cobra.Command{
		Use:   "commits <project-id>",
		Short: "list summarized commits, optionally polling for new ones first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return d.withProjects(ctx, func(svc service.ProjectService) error {
				if poll {
					n, err := svc.PollCommits(ctx, args[0], page)
					if err != nil {
						return err
					}
					fmt.Fprintf(d.out, "%d new commits summarized\n", n)
				}

				commits, err := svc.ListCommits(ctx, args[0], page)
				if err != nil {
					return err
				}
				for _, c := range commits {
					hash := c.CommitHash
					if len(hash) > 7 {
						hash = hash[:7]
					}
					subject, _, _ := strings.Cut(c.CommitMessage, "\n")
					fmt.Fprintf(d.out, "%s %s %s\n%s\n\n", hash, c.CommitDate.Format("2006-01-02"), subject, c.Summary)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page of 10 commits, 1 is the newest")
	cmd.Flags().BoolVar(&poll, "poll", false, "summarize new commits on this page before listing")
	return cmd
}
