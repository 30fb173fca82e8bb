package handler

import (
	"net/http"

	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/web"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterOptions toggles the optional surfaces of the router.
type RouterOptions struct {
	StaticDir     string
	EnableMetrics bool
}

// NewRouter builds the chi router with the global middleware stack and all routes.
func NewRouter(h *ActivityHandler, log *zap.Logger, opts RouterOptions) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(log))
	r.Use(CORS)
	r.Use(Metrics)

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/", RedirectToIndex)
	r.Get("/health", HealthCheck)

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.ListActivities)
		r.Post("/{activity_name}/signup", h.Signup)
		r.Delete("/{activity_name}/unregister", h.Unregister)
	})

	r.Handle("/static/*", web.Handler(opts.StaticDir))

	if opts.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}
