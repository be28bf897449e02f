package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"repoqa/internal/contextutil"
	"repoqa/internal/rag"
	"repoqa/internal/service"
)

// AskHandler streams answers to questions about a project as Server-Sent Events.
//
// The stream starts with a "meta" event carrying the status and the files the
// answer is grounded on, continues with one data event per chunk and ends
// with "data: [DONE]".
type AskHandler struct {
	svc service.ProjectService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(svc service.ProjectService) *AskHandler {
	return &AskHandler{svc: svc}
}

// AskRequest is the payload of POST /api/v1/projects/{projectID}/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskMeta is the payload of the meta event.
type AskMeta struct {
	Status     rag.Status   `json:"status"`
	References []rag.Result `json:"references"`
}

// ServeHTTP handles HTTP requests for questions.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	answer, err := h.svc.Ask(ctx, chi.URLParam(r, "projectID"), req.Question)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to answer question")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	refs := answer.References
	if refs == nil {
		refs = []rag.Result{}
	}
	meta, err := json.Marshal(AskMeta{Status: answer.Status, References: refs})
	if err != nil {
		logger.ErrorContext(ctx, "failed to encode answer metadata", "error", err)
		answer.Stream.Abandon()
		return
	}
	if err := writeEvent(w, "meta", string(meta)); err != nil {
		answer.Stream.Abandon()
		return
	}
	flusher.Flush()

	chunks := answer.Stream.Chunks()
	for {
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "client went away mid-answer")
			answer.Stream.Abandon()
			return
		case chunk, open := <-chunks:
			if !open {
				_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
				flusher.Flush()
				logger.InfoContext(ctx, "answer streamed", "status", answer.Status, "references", len(refs))
				return
			}
			if err := writeEvent(w, "", chunk); err != nil {
				logger.WarnContext(ctx, "failed to write chunk", "error", err)
				answer.Stream.Abandon()
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent writes one SSE event. Each line of data gets its own data field
// so chunks containing newlines survive the framing.
func writeEvent(w io.Writer, event, data string) error {
	var b strings.Builder
	if event != "" {
		b.WriteString("event: " + event + "\n")
	}
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
