package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"repoqa/internal/contextutil"
	"repoqa/internal/vectorstore"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// IndexInspector describes the vector index.
type IndexInspector interface {
	GetCollectionInfo(ctx context.Context, collection string) (*vectorstore.CollectionInfo, error)
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 Pinger
	index              IndexInspector
	collectionName     string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, index IndexInspector, collectionName string) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		index:              index,
		collectionName:     collectionName,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	// Number of stored vectors, when the index could be inspected
	VectorPoints *int     `json:"vector_points,omitempty"`
	Issues       []string `json:"issues,omitempty"`
}

// ServeHTTP returns 200 when the database and the vector index are reachable
// and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
	}

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		resp.Checks["database"] = "error"
		resp.Issues = append(resp.Issues, "database_unavailable")
	} else {
		resp.Checks["database"] = "ok"
	}

	if info, err := h.index.GetCollectionInfo(checkCtx, h.collectionName); err != nil {
		logger.WarnContext(ctx, "vector index health check failed", "error", err)
		resp.Checks["vector_index"] = "error"
		resp.Issues = append(resp.Issues, "vector_index_unavailable")
	} else {
		resp.Checks["vector_index"] = "ok"
		resp.VectorPoints = &info.PointsCount
	}

	httpStatus := http.StatusOK
	if len(resp.Issues) > 0 {
		resp.Status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}
