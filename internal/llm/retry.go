package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"repoqa/internal/contextutil"
	"repoqa/internal/errs"
)

var transientMarkers = []string{
	"rate limit",
	"service unavailable",
	"resource exhausted",
	"503",
	"429",
}

// IsTransient reports whether err comes from a provider quota or a temporary outage.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode == http.StatusServiceUnavailable
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code == http.StatusServiceUnavailable
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.ResourceExhausted, codes.Unavailable:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// RetryPolicy retries transient failures with a linearly growing delay:
// the k-th retry waits k*Step.
type RetryPolicy struct {
	MaxRetries int
	Step       time.Duration
	// Sleep waits for d or until ctx is done. Defaults to Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy retries three times after 2s, 4s and 6s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, Step: 2 * time.Second}
}

// Retry runs op until it succeeds, fails with a non-transient error or the
// retries run out. Every attempt is admitted by limiter first.
// Exhausted transient failures are marked with errs.ErrRateLimited.
func Retry[T any](ctx context.Context, policy RetryPolicy, limiter *Limiter, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	sleep := policy.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	for attempt := 0; ; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return zero, err
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if !IsTransient(err) {
			return zero, err
		}
		if attempt >= policy.MaxRetries {
			return zero, errs.Kind(errs.ErrRateLimited, err)
		}

		delay := time.Duration(attempt+1) * policy.Step
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "transient model error, retrying",
			"attempt", attempt+1, "max_retries", policy.MaxRetries, "delay", delay, "error", err)
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
