// Package app assembles the application from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"repoqa/internal/commits"
	"repoqa/internal/config"
	"repoqa/internal/contextutil"
	"repoqa/internal/github"
	"repoqa/internal/handlers"
	repohttp "repoqa/internal/http"
	"repoqa/internal/indexer"
	"repoqa/internal/knowledge"
	"repoqa/internal/llm"
	"repoqa/internal/rag"
	"repoqa/internal/service"
	"repoqa/internal/storage"
	"repoqa/internal/vectorstore"
)

// vectorIndex is what the app needs from a vector backend.
type vectorIndex interface {
	vectorstore.VectorStore
	handlers.IndexInspector
}

// App holds the wired components.
type App struct {
	Config   *config.Config
	DB       *sqlx.DB
	GitHub   *github.Client
	Projects service.ProjectService
	Watchdog *service.Watchdog

	index   vectorIndex
	closers []func() error
}

// New opens the database and the vector index, builds the model providers and
// wires the services. Close releases everything New opened.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := contextutil.LoggerFromContext(ctx)
	a := &App{Config: cfg}

	db, err := storage.New(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, db.Close)

	migrateOpts := storage.MigrateOptions{}
	if cfg.VectorBackend == config.BackendPgvector {
		migrateOpts.VectorDimensions = cfg.EmbeddingDimensions
	}
	if err := storage.Migrate(ctx, db, migrateOpts); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.InfoContext(ctx, "database initialized", "driver", cfg.DBDriver)

	if err := a.openIndex(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	gen, summaryGen, embedProvider, err := a.providers(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	gh, err := github.NewClient(github.Options{
		BaseURL:     cfg.GitHubAPIURL,
		Token:       cfg.GitHubToken,
		Concurrency: cfg.FetchConcurrency,
		Filter:      github.NewFilter(cfg.ExtraIgnorePatterns...),
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.GitHub = gh

	limiter := llm.NewLimiter(cfg.LLMRequestsPerMinute, 1)
	retry := llm.DefaultRetryPolicy()

	summarizer := knowledge.NewSummarizer(summaryGen, limiter, cfg.SummaryCharBudget, retry)
	embedder := knowledge.NewEmbedder(embedProvider, limiter, cfg.EmbeddingDimensions, retry)

	projectRepo := storage.NewProjectRepo(db)
	store := knowledge.NewStore(storage.NewFileEmbeddingRepo(db), a.index, cfg.QdrantCollection)

	pipeline := indexer.NewPipeline(summarizer, embedder, store, indexer.Options{
		MaxFileChars:   cfg.MaxFileChars,
		EmbeddingModel: a.embeddingModel(),
		Heartbeat:      projectRepo,
	})
	answerer := rag.NewAnswerer(rag.NewRetriever(embedder, store), gen, limiter, retry)
	poller := commits.NewPoller(gh, summarizer, storage.NewCommitRepo(db))

	a.Projects = service.NewProjectService(service.Deps{
		Projects:  projectRepo,
		Commits:   storage.NewCommitRepo(db),
		Questions: storage.NewQuestionRepo(db),
		Repos:     gh,
		Ingester:  pipeline,
		Poller:    poller,
		Answerer:  answerer,
		Vectors:   store,
	}, service.Options{
		MaxRepoFiles: cfg.MaxRepoFiles,
		GitHubToken:  cfg.GitHubToken,
	})
	a.Watchdog = service.NewWatchdog(projectRepo, cfg.LoadingTTL)

	return a, nil
}

func (a *App) openIndex(ctx context.Context) error {
	cfg := a.Config
	logger := contextutil.LoggerFromContext(ctx)

	switch cfg.VectorBackend {
	case config.BackendPgvector:
		a.index = vectorstore.NewPgvectorStore(a.DB)
		logger.InfoContext(ctx, "pgvector index ready", "dimensions", cfg.EmbeddingDimensions)
	default:
		qs, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			return fmt.Errorf("failed to create Qdrant client: %w", err)
		}
		a.closers = append(a.closers, qs.Close)
		if err := qs.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingDimensions, "project_id"); err != nil {
			return fmt.Errorf("failed to ensure Qdrant collection: %w", err)
		}
		a.index = qs
		logger.InfoContext(ctx, "Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingDimensions)
	}
	return nil
}

// providers returns the answer generator, the summary generator and the embedding provider.
func (a *App) providers(ctx context.Context) (llm.Generator, llm.Generator, llm.EmbeddingProvider, error) {
	cfg := a.Config
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		chat := llm.NewChatClient(llm.OpenAIOptions{
			BaseURL: cfg.LLMBaseURL,
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModelName,
		})
		summaries := llm.NewChatClient(llm.OpenAIOptions{
			BaseURL:     cfg.LLMBaseURL,
			APIKey:      cfg.LLMAPIKey,
			Model:       cfg.LLMModelName,
			Temperature: 0.2,
		})
		embeddings := llm.NewEmbeddingClient(llm.OpenAIOptions{
			BaseURL: cfg.EmbeddingBaseURL,
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.EmbeddingModelName,
		}, cfg.EmbeddingDimensions)
		return chat, summaries, embeddings, nil
	default:
		gc, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		a.closers = append(a.closers, gc.Close)
		return gc.Generator(cfg.GeminiChatModel),
			gc.Generator(cfg.GeminiSummaryModel),
			gc.Embedder(cfg.GeminiEmbeddingModel, cfg.EmbeddingDimensions),
			nil
	}
}

func (a *App) embeddingModel() string {
	if a.Config.LLMProvider == config.ProviderOpenAI {
		return a.Config.EmbeddingModelName
	}
	return a.Config.GeminiEmbeddingModel
}

// Router returns the HTTP API.
func (a *App) Router() http.Handler {
	return repohttp.NewRouter(&repohttp.Deps{
		Projects:            a.Projects,
		DB:                  a.DB,
		Index:               a.index,
		CollectionName:      a.Config.QdrantCollection,
		CreateRatePerMinute: a.Config.CreateRatePerMinute,
	})
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errList []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	a.closers = nil
	return errors.Join(errList...)
}
