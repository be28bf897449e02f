package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_repo_client.go -package=mocks repoqa/internal/service RepoClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ingester.go -package=mocks repoqa/internal/service Ingester
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_commit_poller.go -package=mocks repoqa/internal/service CommitPoller
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_question_answerer.go -package=mocks repoqa/internal/service QuestionAnswerer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_cleaner.go -package=mocks repoqa/internal/service VectorCleaner
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_project_service.go -package=mocks repoqa/internal/service ProjectService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"repoqa/internal/contextutil"
	"repoqa/internal/errs"
	"repoqa/internal/github"
	"repoqa/internal/indexer"
	"repoqa/internal/rag"
	"repoqa/internal/storage"
)

const (
	// MaxQuestionLength is the longest accepted question, in characters, after trimming.
	MaxQuestionLength = 1000
	// CommitPageSize is the number of stored commits returned per page.
	CommitPageSize = 10
)

// RepoClient talks to the hosting service.
// This interface is defined from the service layer's perspective (consumer-first).
type RepoClient interface {
	Resolve(ctx context.Context, ref github.RepoRef, token string) (github.RepoRef, error)
	CheckSize(ctx context.Context, ref github.RepoRef, token string, max int) (int, error)
	FetchFiles(ctx context.Context, ref github.RepoRef, token string) ([]github.FileDocument, error)
}

// Ingester turns fetched documents into indexed records.
type Ingester interface {
	Run(ctx context.Context, projectID string, docs []github.FileDocument) (indexer.Result, error)
}

// CommitPoller summarizes one page of commits.
type CommitPoller interface {
	Poll(ctx context.Context, projectID string, ref github.RepoRef, page int, token string) (int, error)
}

// QuestionAnswerer answers a question about a project.
type QuestionAnswerer interface {
	Ask(ctx context.Context, projectID, question string) *rag.Answer
}

// VectorCleaner drops a project's vectors from the index.
type VectorCleaner interface {
	DeleteProject(ctx context.Context, projectID string) error
}

// CreateProjectRequest registers a repository.
type CreateProjectRequest struct {
	Name    string
	RepoURL string
	Branch  string
	// Token overrides the configured GitHub token when set.
	Token string
}

// SaveAnswerRequest persists an answer the user wants to keep.
type SaveAnswerRequest struct {
	ProjectID  string
	Question   string
	Answer     string
	References []storage.FileReference
}

// ProjectService manages projects and everything hanging off them.
type ProjectService interface {
	// Create validates the repository, creates the project and ingests it.
	// Repository errors are returned before any row is written.
	Create(ctx context.Context, req CreateProjectRequest) (*storage.Project, error)
	// Delete removes the project, its records and its vectors.
	Delete(ctx context.Context, projectID string) error
	// Ask validates the question and starts a streamed answer.
	Ask(ctx context.Context, projectID, question string) (*rag.Answer, error)
	// PollCommits summarizes one page of the project's commits and returns how many were new.
	PollCommits(ctx context.Context, projectID string, page int) (int, error)
	// ListCommits returns one page of stored commits, newest first.
	ListCommits(ctx context.Context, projectID string, page int) ([]storage.Commit, error)
	SaveAnswer(ctx context.Context, req SaveAnswerRequest) (*storage.Question, error)
	ListQuestions(ctx context.Context, projectID string) ([]storage.Question, error)
	DeleteQuestion(ctx context.Context, projectID, questionID string) error
}

// Deps are the collaborators of ProjectService.
type Deps struct {
	Projects  storage.ProjectStore
	Commits   storage.CommitStore
	Questions storage.QuestionStore
	Repos     RepoClient
	Ingester  Ingester
	Poller    CommitPoller
	Answerer  QuestionAnswerer
	Vectors   VectorCleaner
}

// Options tune ProjectService.
type Options struct {
	// MaxRepoFiles is the size guard ceiling.
	MaxRepoFiles int
	// GitHubToken is used when a request carries no token.
	GitHubToken string
}

type projectService struct {
	Deps
	opts Options
}

// NewProjectService creates a new ProjectService.
func NewProjectService(deps Deps, opts Options) ProjectService {
	if opts.MaxRepoFiles <= 0 {
		opts.MaxRepoFiles = 60
	}
	return &projectService{Deps: deps, opts: opts}
}

func (s *projectService) token(requested string) string {
	if t := strings.TrimSpace(requested); t != "" {
		return t
	}
	return strings.TrimSpace(s.opts.GitHubToken)
}

// Create implements ProjectService.
func (s *projectService) Create(ctx context.Context, req CreateProjectRequest) (*storage.Project, error) {
	logger := contextutil.LoggerFromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &errs.ValidationError{Field: "projectName", Message: "cannot be empty"}
	}

	ref, err := github.ParseURL(req.RepoURL, req.Branch)
	if err != nil {
		return nil, err
	}
	token := s.token(req.Token)

	ref, err = s.Repos.Resolve(ctx, ref, token)
	if err != nil {
		return nil, err
	}
	if _, err := s.Repos.CheckSize(ctx, ref, token, s.opts.MaxRepoFiles); err != nil {
		logger.WarnContext(ctx, "repository rejected", "repo", ref.String(), "error", err)
		return nil, err
	}

	if _, err := s.Projects.GetByName(ctx, name); err == nil {
		return nil, errs.Kind(errs.ErrConflict, fmt.Errorf("project %q already exists", name))
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, errs.WrapError(err, "failed to look up project")
	}

	p := &storage.Project{
		Name:      name,
		GithubURL: ref.URL(),
		Branch:    ref.Branch,
		Status:    storage.StatusLoading,
	}
	if err := s.Projects.Create(ctx, p); err != nil {
		return nil, errs.WrapError(err, "failed to create project")
	}
	logger = logger.With("project_id", p.ID, "repo", ref.String())
	logger.InfoContext(ctx, "project created")

	// Ingestion outlives the request; the watchdog catches runs that never finish.
	ictx := contextutil.WithLogger(context.WithoutCancel(ctx), logger)
	if err := s.ingest(ictx, p, ref, token); err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "error", err)
		if uerr := s.Projects.UpdateStatus(ictx, p.ID, storage.StatusFailed, 0); uerr != nil {
			logger.ErrorContext(ctx, "failed to mark project failed", "error", uerr)
		}
		p.Status = storage.StatusFailed
		return p, errs.WrapError(err, "failed to ingest repository")
	}
	return p, nil
}

func (s *projectService) ingest(ctx context.Context, p *storage.Project, ref github.RepoRef, token string) error {
	logger := contextutil.LoggerFromContext(ctx)

	docs, err := s.Repos.FetchFiles(ctx, ref, token)
	if err != nil {
		return err
	}

	result, err := s.Ingester.Run(ctx, p.ID, docs)
	if err != nil {
		return err
	}

	if n, err := s.Poller.Poll(ctx, p.ID, ref, 1, token); err != nil {
		logger.WarnContext(ctx, "initial commit poll failed", "error", err)
	} else {
		logger.InfoContext(ctx, "initial commits summarized", "inserted", n)
	}

	if err := s.Projects.UpdateStatus(ctx, p.ID, storage.StatusReady, result.IndexedFiles); err != nil {
		return errs.WrapError(err, "failed to mark project ready")
	}
	p.Status = storage.StatusReady
	p.FileCount = result.IndexedFiles
	logger.InfoContext(ctx, "project ready", "indexed_files", result.IndexedFiles, "total_files", result.Total)
	return nil
}

// Delete implements ProjectService.
func (s *projectService) Delete(ctx context.Context, projectID string) error {
	if _, err := s.Projects.GetByID(ctx, projectID); err != nil {
		return err
	}
	if err := s.Vectors.DeleteProject(ctx, projectID); err != nil {
		return errs.WrapError(err, "failed to delete project vectors")
	}
	if err := s.Projects.Delete(ctx, projectID); err != nil {
		return errs.WrapError(err, "failed to delete project")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "project deleted", "project_id", projectID)
	return nil
}

// Ask implements ProjectService.
func (s *projectService) Ask(ctx context.Context, projectID, question string) (*rag.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, &errs.ValidationError{Field: "question", Message: "cannot be empty"}
	}
	if utf8.RuneCountInString(question) > MaxQuestionLength {
		return nil, &errs.ValidationError{
			Field:   "question",
			Message: fmt.Sprintf("must be at most %d characters", MaxQuestionLength),
		}
	}
	if _, err := s.Projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Answerer.Ask(ctx, projectID, question), nil
}

// PollCommits implements ProjectService.
func (s *projectService) PollCommits(ctx context.Context, projectID string, page int) (int, error) {
	p, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		return 0, err
	}
	ref, err := github.ParseURL(p.GithubURL, p.Branch)
	if err != nil {
		return 0, err
	}
	return s.Poller.Poll(ctx, p.ID, ref, page, s.token(""))
}

// ListCommits implements ProjectService.
func (s *projectService) ListCommits(ctx context.Context, projectID string, page int) ([]storage.Commit, error) {
	if _, err := s.Projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	return s.Commits.ListByProject(ctx, projectID, CommitPageSize, (page-1)*CommitPageSize)
}

// SaveAnswer implements ProjectService.
func (s *projectService) SaveAnswer(ctx context.Context, req SaveAnswerRequest) (*storage.Question, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, &errs.ValidationError{Field: "question", Message: "cannot be empty"}
	}
	if strings.TrimSpace(req.Answer) == "" {
		return nil, &errs.ValidationError{Field: "answer", Message: "cannot be empty"}
	}
	if _, err := s.Projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	q := &storage.Question{
		ProjectID:      req.ProjectID,
		Question:       strings.TrimSpace(req.Question),
		Answer:         req.Answer,
		FileReferences: storage.References(req.References),
	}
	if err := s.Questions.Create(ctx, q); err != nil {
		return nil, errs.WrapError(err, "failed to save answer")
	}
	return q, nil
}

// ListQuestions implements ProjectService.
func (s *projectService) ListQuestions(ctx context.Context, projectID string) ([]storage.Question, error) {
	if _, err := s.Projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Questions.ListByProject(ctx, projectID)
}

// DeleteQuestion implements ProjectService.
func (s *projectService) DeleteQuestion(ctx context.Context, projectID, questionID string) error {
	return s.Questions.Delete(ctx, projectID, questionID)
}
