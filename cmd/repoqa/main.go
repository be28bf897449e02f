// Command repoqa ingests GitHub repositories and answers questions about them
// from the terminal, using the same services as the API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"repoqa/internal/app"
	"repoqa/internal/config"
	"repoqa/internal/github"
	"repoqa/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so answers on stdout stay clean
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
	}

	d := &deps{
		out:      os.Stdout,
		maxFiles: cfg.MaxRepoFiles,
		projects: func(ctx context.Context) (service.ProjectService, func() error, error) {
			a, err := app.New(ctx, cfg)
			if err != nil {
				return nil, nil, err
			}
			return a.Projects, a.Close, nil
		},
		repos: func() (repoChecker, error) {
			c, err := github.NewClient(github.Options{BaseURL: cfg.GitHubAPIURL, Token: cfg.GitHubToken})
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}

	err = newRootCmd(d).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
