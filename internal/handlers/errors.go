package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"repoqa/internal/contextutil"
	"repoqa/internal/errs"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeServiceError maps service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	status, msg := http.StatusInternalServerError, defaultMsg
	var (
		validationErr *errs.ValidationError
		tooLargeErr   *errs.TooLargeError
	)
	switch {
	case errors.As(err, &validationErr):
		status, msg = http.StatusBadRequest, "Validation error: "+validationErr.Error()
	case errors.Is(err, errs.ErrInvalidReference), errors.Is(err, errs.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.As(err, &tooLargeErr):
		status, msg = http.StatusRequestEntityTooLarge, tooLargeErr.Error()
	case errors.Is(err, errs.ErrRepositoryNotFound), errors.Is(err, errs.ErrBranchNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrNotFound):
		status, msg = http.StatusNotFound, "Resource not found"
	case errors.Is(err, errs.ErrAccessDenied):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, errs.ErrConflict):
		status, msg = http.StatusConflict, "A project with this name already exists. Please choose a different name."
	case errors.Is(err, errs.ErrRateLimited):
		status, msg = http.StatusTooManyRequests, "Rate limited by an upstream service. Please try again later."
	case errors.Is(err, errs.ErrExternalService), errors.Is(err, errs.ErrSizeCheckFailed):
		status, msg = http.StatusBadGateway, err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "service error", "error", err, "status", status)
	} else {
		logger.WarnContext(ctx, "request rejected", "error", err, "status", status)
	}
	writeError(w, status, msg)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// pageParam reads the 1-based page query parameter. Missing means 1.
func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, &errs.ValidationError{Field: "page", Message: "must be a positive integer"}
	}
	return page, nil
}
