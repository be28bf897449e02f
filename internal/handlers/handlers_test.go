package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"repoqa/internal/errs"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newRequest builds a request with chi URL params set as the router would.
func newRequest(t *testing.T, method, target string, body any, params ...string) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	r := httptest.NewRequest(method, target, reader)
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        &errs.ValidationError{Field: "question", Message: "cannot be empty"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Validation error: validation error on field question: cannot be empty",
		},
		{
			name:       "invalid reference",
			err:        fmt.Errorf("%w: %q is not a GitHub repository URL", errs.ErrInvalidReference, "x"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "too large",
			err:        fmt.Errorf("wrapped: %w", &errs.TooLargeError{Count: 75, Max: 60}),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   "repository is too large (75 files found, maximum 60 allowed)",
		},
		{name: "repository not found", err: errs.ErrRepositoryNotFound, wantStatus: http.StatusNotFound},
		{name: "branch not found", err: errs.ErrBranchNotFound, wantStatus: http.StatusNotFound},
		{name: "not found", err: errs.ErrNotFound, wantStatus: http.StatusNotFound, wantBody: "Resource not found"},
		{name: "access denied", err: errs.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "conflict", err: errs.Kind(errs.ErrConflict, errors.New("taken")), wantStatus: http.StatusConflict},
		{name: "rate limited", err: errs.ErrRateLimited, wantStatus: http.StatusTooManyRequests},
		{name: "external", err: errs.ErrExternalService, wantStatus: http.StatusBadGateway},
		{name: "size check", err: errs.ErrSizeCheckFailed, wantStatus: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantBody: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeServiceError(w, context.Background(), tt.err, "fallback")

			if w.Code != tt.wantStatus {
				t.Errorf("writeServiceError() status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if tt.wantBody != "" && resp.Error != tt.wantBody {
				t.Errorf("writeServiceError() body = %q, want %q", resp.Error, tt.wantBody)
			}
		})
	}
}

func TestPageParam(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{query: "", want: 1},
		{query: "?page=3", want: 3},
		{query: "?page=0", wantErr: true},
		{query: "?page=-2", wantErr: true},
		{query: "?page=abc", wantErr: true},
	}

	for _, tt := range tests {
		got, err := pageParam(httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil))
		if (err != nil) != tt.wantErr {
			t.Errorf("pageParam(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("pageParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestWriteEvent(t *testing.T) {
	tests := []struct {
		name  string
		event string
		data  string
		want  string
	}{
		{name: "plain", data: "hello", want: "data: hello\n\n"},
		{name: "named", event: "meta", data: "{}", want: "event: meta\ndata: {}\n\n"},
		{name: "multiline", data: "a\n\nb", want: "data: a\ndata: \ndata: b\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			if err := writeEvent(&b, tt.event, tt.data); err != nil {
				t.Fatalf("writeEvent() error = %v", err)
			}
			if b.String() != tt.want {
				t.Errorf("writeEvent() = %q, want %q", b.String(), tt.want)
			}
		})
	}
}
