package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"repoqa/internal/contextutil"
	"repoqa/internal/service"
	"repoqa/internal/storage"
)

// ProjectHandler handles project creation and deletion.
type ProjectHandler struct {
	svc service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// CreateProjectRequest is the payload of POST /api/v1/projects.
type CreateProjectRequest struct {
	ProjectName string `json:"projectName"`
	RepoURL     string `json:"repoUrl"`
	GithubToken string `json:"githubToken,omitempty"`
	BranchName  string `json:"branchName,omitempty"`
}

// ProjectResponse is a project as returned by the API.
type ProjectResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"projectName"`
	GithubURL string    `json:"githubUrl"`
	Branch    string    `json:"branchName"`
	Status    string    `json:"status"`
	FileCount int       `json:"fileCount"`
	CreatedAt time.Time `json:"createdAt"`
}

func toProjectResponse(p *storage.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		GithubURL: p.GithubURL,
		Branch:    p.Branch,
		Status:    string(p.Status),
		FileCount: p.FileCount,
		CreatedAt: p.CreatedAt,
	}
}

// Create registers and ingests a repository. It answers once ingestion is done.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.svc.Create(ctx, service.CreateProjectRequest{
		Name:    req.ProjectName,
		RepoURL: req.RepoURL,
		Branch:  req.BranchName,
		Token:   req.GithubToken,
	})
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to process repository. Please check the URL and try again.")
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(p))
}

// Delete removes a project and everything indexed for it.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.svc.Delete(ctx, chi.URLParam(r, "projectID")); err != nil {
		writeServiceError(w, ctx, err, "Failed to delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
