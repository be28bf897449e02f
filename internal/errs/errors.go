// Package errs defines the error kinds shared by ingestion, retrieval and the
// HTTP layer. Callers match them with errors.Is and errors.As.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")

	// ErrInvalidReference is returned for a malformed repository URL.
	ErrInvalidReference = errors.New("invalid repository reference")
	// ErrRepositoryNotFound is returned when the repository does not exist or is not visible to the token.
	ErrRepositoryNotFound = errors.New("repository not found")
	// ErrBranchNotFound is returned when the requested branch does not exist.
	ErrBranchNotFound = errors.New("branch not found")
	// ErrAccessDenied is returned when the hosting service refuses the credentials.
	ErrAccessDenied = errors.New("access denied")
	// ErrRepositoryTooLarge is matched by *TooLargeError.
	ErrRepositoryTooLarge = errors.New("repository too large")
	// ErrSizeCheckFailed is returned when the file listing could not be obtained.
	ErrSizeCheckFailed = errors.New("failed to check repository size")
	// ErrNoFilesFound is returned when no file survives filtering.
	ErrNoFilesFound = errors.New("no files found in repository")

	// ErrSummarizationFailed is returned when a summary could not be produced.
	ErrSummarizationFailed = errors.New("summarization failed")
	// ErrEmbeddingFailed is returned when an embedding could not be produced.
	ErrEmbeddingFailed = errors.New("embedding failed")
	// ErrRateLimited marks failures caused by provider quotas after retries ran out.
	ErrRateLimited = errors.New("rate limited")
	// ErrNoFilesIndexed is returned when an ingestion run persisted nothing.
	ErrNoFilesIndexed = errors.New("no files could be indexed")
	// ErrPersistenceFailed is returned when a record could not be written.
	ErrPersistenceFailed = errors.New("persistence failed")
	// ErrConflict is returned when a resource is not in a state that allows the operation.
	ErrConflict = errors.New("conflict")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is reports ValidationError as an ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// TooLargeError reports a repository that exceeds the file-count ceiling.
type TooLargeError struct {
	Count int
	Max   int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("repository is too large (%d files found, maximum %d allowed)", e.Count, e.Max)
}

// Is reports TooLargeError as an ErrRepositoryTooLarge.
func (e *TooLargeError) Is(target error) bool {
	return target == ErrRepositoryTooLarge
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Kind wraps cause so that it matches both kind and cause.
func Kind(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}
