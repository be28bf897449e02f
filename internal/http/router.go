package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"repoqa/internal/handlers"
	"repoqa/internal/service"
)

const healthPath = "/api/health"

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Projects service.ProjectService
	// DB and Index back the health check.
	DB             handlers.Pinger
	Index          handlers.IndexInspector
	CollectionName string
	// CreateRatePerMinute limits project creation per client IP.
	CreateRatePerMinute int
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	projects := handlers.NewProjectHandler(deps.Projects)
	ask := handlers.NewAskHandler(deps.Projects)
	commits := handlers.NewCommitHandler(deps.Projects)
	questions := handlers.NewQuestionHandler(deps.Projects)
	createLimit := NewIPRateLimiter(deps.CreateRatePerMinute)

	r.Method(http.MethodGet, healthPath, handlers.NewHealthHandler(deps.DB, deps.Index, deps.CollectionName))

	r.Route("/api/v1/projects", func(r chi.Router) {
		r.With(createLimit.Middleware).Post("/", projects.Create)

		r.Route("/{projectID}", func(r chi.Router) {
			r.Delete("/", projects.Delete)
			r.Method(http.MethodPost, "/ask", ask)

			r.Post("/commits", commits.Poll)
			r.Get("/commits", commits.List)

			r.Post("/questions", questions.Save)
			r.Get("/questions", questions.List)
			r.Delete("/questions/{questionID}", questions.Delete)
		})
	})

	return r
}
