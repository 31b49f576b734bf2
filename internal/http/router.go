package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sportkalender-service/internal/http/handlers"
	"sportkalender-service/internal/http/middleware"
	"sportkalender-service/internal/metrics"
)

// RouterConfig carries the collaborators of the HTTP surface.
type RouterConfig struct {
	Handler        *handlers.Handler
	Stream         nethttp.Handler
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers the schedule API, probes and the snapshot stream on a chi router.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodPut, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	h := cfg.Handler
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/options", h.Options)
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", h.Schedule)
			r.Put("/selection", h.UpdateSelection)
			r.Post("/week/{direction}", h.Week)
			r.Post("/reload", h.Reload)
		})
	})

	if cfg.Stream != nil {
		r.Get("/ws/schedule", cfg.Stream.ServeHTTP)
	}
	return r
}
