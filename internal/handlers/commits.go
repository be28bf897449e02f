package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"repoqa/internal/service"
	"repoqa/internal/storage"
)

// CommitHandler handles commit polling and listing.
type CommitHandler struct {
	svc service.ProjectService
}

// NewCommitHandler creates a new CommitHandler.
func NewCommitHandler(svc service.ProjectService) *CommitHandler {
	return &CommitHandler{svc: svc}
}

// PollResponse reports how many commits a poll stored.
type PollResponse struct {
	Inserted int `json:"inserted"`
}

// CommitResponse is a stored commit.
type CommitResponse struct {
	Hash            string    `json:"commitHash"`
	Message         string    `json:"commitMessage"`
	AuthorName      string    `json:"commitAuthorName"`
	AuthorAvatarURL string    `json:"commitAuthorAvatar"`
	Date            time.Time `json:"commitDate"`
	Summary         string    `json:"summary"`
}

// Poll summarizes one page of commits.
func (h *CommitHandler) Poll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := pageParam(r)
	if err != nil {
		writeServiceError(w, ctx, err, "Invalid page")
		return
	}

	n, err := h.svc.PollCommits(ctx, chi.URLParam(r, "projectID"), page)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to poll commits")
		return
	}
	writeJSON(w, http.StatusOK, PollResponse{Inserted: n})
}

// List returns one page of stored commits, newest first.
func (h *CommitHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := pageParam(r)
	if err != nil {
		writeServiceError(w, ctx, err, "Invalid page")
		return
	}

	commits, err := h.svc.ListCommits(ctx, chi.URLParam(r, "projectID"), page)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to list commits")
		return
	}

	resp := make([]CommitResponse, 0, len(commits))
	for _, c := range commits {
		resp = append(resp, toCommitResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toCommitResponse(c storage.Commit) CommitResponse {
	return CommitResponse{
		Hash:            c.CommitHash,
		Message:         c.CommitMessage,
		AuthorName:      c.AuthorName,
		AuthorAvatarURL: c.AuthorAvatarURL,
		Date:            c.CommitDate,
		Summary:         c.Summary,
	}
}
