package service

import (
	"context"
	"time"

	"repoqa/internal/contextutil"
	"repoqa/internal/storage"
)

// Watchdog fails projects left in loading longer than a TTL, such as
// ingestion runs cut short by a restart.
type Watchdog struct {
	projects storage.ProjectStore
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewWatchdog creates a Watchdog that sweeps every ttl/4, but at least once a minute.
func NewWatchdog(projects storage.ProjectStore, ttl time.Duration) *Watchdog {
	interval := ttl / 4
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	return &Watchdog{projects: projects, ttl: ttl, interval: interval, now: time.Now}
}

// Sweep marks stale projects failed and returns how many it changed.
func (w *Watchdog) Sweep(ctx context.Context) (int64, error) {
	n, err := w.projects.FailStale(ctx, w.now().Add(-w.ttl))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "stale projects marked failed", "count", n, "ttl", w.ttl)
	}
	return n, nil
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (w *Watchdog) Run(ctx context.Context) {
	logger := contextutil.LoggerFromContext(ctx)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.Sweep(ctx); err != nil && ctx.Err() == nil {
			logger.ErrorContext(ctx, "watchdog sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
