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

// QuestionHandler handles saved answers.
type QuestionHandler struct {
	svc service.ProjectService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(svc service.ProjectService) *QuestionHandler {
	return &QuestionHandler{svc: svc}
}

// SaveAnswerRequest is the payload of POST /api/v1/projects/{projectID}/questions.
type SaveAnswerRequest struct {
	Question        string                  `json:"question"`
	Answer          string                  `json:"answer"`
	FilesReferences []storage.FileReference `json:"filesReferences"`
}

// QuestionResponse is a saved question.
type QuestionResponse struct {
	ID              string                  `json:"id"`
	Question        string                  `json:"question"`
	Answer          string                  `json:"answer"`
	FilesReferences []storage.FileReference `json:"filesReferences"`
	CreatedAt       time.Time               `json:"createdAt"`
}

func toQuestionResponse(q *storage.Question) QuestionResponse {
	refs := []storage.FileReference(q.FileReferences)
	if refs == nil {
		refs = []storage.FileReference{}
	}
	return QuestionResponse{
		ID:              q.ID,
		Question:        q.Question,
		Answer:          q.Answer,
		FilesReferences: refs,
		CreatedAt:       q.CreatedAt,
	}
}

// Save stores a question with its answer.
func (h *QuestionHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SaveAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	q, err := h.svc.SaveAnswer(ctx, service.SaveAnswerRequest{
		ProjectID:  chi.URLParam(r, "projectID"),
		Question:   req.Question,
		Answer:     req.Answer,
		References: req.FilesReferences,
	})
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to save answer")
		return
	}
	writeJSON(w, http.StatusCreated, toQuestionResponse(q))
}

// List returns the saved questions of a project, newest first.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	questions, err := h.svc.ListQuestions(ctx, chi.URLParam(r, "projectID"))
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to list questions")
		return
	}

	resp := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, toQuestionResponse(&questions[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete removes a saved question.
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := h.svc.DeleteQuestion(ctx, chi.URLParam(r, "projectID"), chi.URLParam(r, "questionID"))
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to delete question")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
