package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"repoqa/internal/errs"
	"repoqa/internal/rag"
	"repoqa/internal/service/mocks"
)

func closedStream(chunks ...string) *rag.Stream {
	s := rag.NewStream(len(chunks))
	for _, c := range chunks {
		s.Send(c)
	}
	s.Close()
	return s
}

func TestAskHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		mockSetup  func(*mocks.MockProjectService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "grounded answer",
			body: AskRequest{Question: "Where is routing?"},
			mockSetup: func(m *mocks.MockProjectService) {
				m.EXPECT().Ask(gomock.Any(), "p1", "Where is routing?").Return(&rag.Answer{
					Stream:     closedStream("Routing lives in ", "`router.go`.\nSee below."),
					References: []rag.Result{{FileName: "router.go", Summary: "routes", Similarity: 0.9}},
					Status:     rag.StatusOK,
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody: "event: meta\n" +
				`data: {"status":"OK","references":[{"fileName":"router.go","sourceCode":"","summary":"routes","similarity":0.9}]}` + "\n\n" +
				"data: Routing lives in \n\n" +
				"data: `router.go`.\ndata: See below.\n\n" +
				"data: [DONE]\n\n",
		},
		{
			name: "no relevant files",
			body: AskRequest{Question: "Which file handles routing?"},
			mockSetup: func(m *mocks.MockProjectService) {
				m.EXPECT().Ask(gomock.Any(), "p1", gomock.Any()).Return(&rag.Answer{
					Stream: closedStream("General advice."),
					Status: rag.StatusNoRelevantFiles,
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody: "event: meta\n" +
				`data: {"status":"NO_RELEVANT_FILES","references":[]}` + "\n\n" +
				"data: General advice.\n\n" +
				"data: [DONE]\n\n",
		},
		{
			name: "validation error",
			body: AskRequest{Question: ""},
			mockSetup: func(m *mocks.MockProjectService) {
				m.EXPECT().Ask(gomock.Any(), "p1", "").
					Return(nil, &errs.ValidationError{Field: "question", Message: "cannot be empty"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown project",
			body: AskRequest{Question: "hi"},
			mockSetup: func(m *mocks.MockProjectService) {
				m.EXPECT().Ask(gomock.Any(), "p1", "hi").Return(nil, errs.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid JSON body",
			body:       "{",
			mockSetup:  func(*mocks.MockProjectService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockProjectService(ctrl)
			tt.mockSetup(svc)

			w := httptest.NewRecorder()
			NewAskHandler(svc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/projects/p1/ask", tt.body, "projectID", "p1"))

			if w.Code != tt.wantStatus {
				t.Fatalf("ServeHTTP() status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" {
				if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
					t.Errorf("ServeHTTP() Content-Type = %q, want text/event-stream", ct)
				}
				if w.Body.String() != tt.wantBody {
					t.Errorf("ServeHTTP() body =\n%q\nwant\n%q", w.Body.String(), tt.wantBody)
				}
			}
		})
	}
}

func TestAskHandler_ClientGoneAbandonsStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockProjectService(ctrl)

	stream := rag.NewStream(0)
	svc.EXPECT().Ask(gomock.Any(), "p1", "hi").Return(&rag.Answer{Stream: stream, Status: rag.StatusOK}, nil)

	r := newRequest(t, http.MethodPost, "/api/v1/projects/p1/ask", AskRequest{Question: "hi"}, "projectID", "p1")
	ctx, cancel := context.WithCancel(r.Context())
	cancel()

	w := httptest.NewRecorder()
	NewAskHandler(svc).ServeHTTP(w, r.WithContext(ctx))

	if stream.Send("late chunk") {
		t.Error("Send() = true after the client left, want false")
	}
	if strings.Contains(w.Body.String(), "[DONE]") {
		t.Error("ServeHTTP() wrote [DONE] for an abandoned stream")
	}
}
