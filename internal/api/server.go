package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docoutline.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	metrics      *pipeline.Metrics
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. metrics may be nil, in
// which case /metrics is not mounted.
func NewServer(orch *pipeline.Orchestrator, metrics *pipeline.Metrics, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		metrics:      metrics,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/outline", s.handleOutline)
		r.Post("/api/outline/jobs", s.handleSubmitJobs)
		r.Get("/api/outline/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
