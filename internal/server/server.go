package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lazypower/tastequest/internal/engine"
	"github.com/lazypower/tastequest/internal/logging"
	"github.com/lazypower/tastequest/internal/metrics"
	"go.uber.org/zap"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

// Server is the tastequest HTTP API server.
type Server struct {
	eng     *engine.Engine
	health  HealthChecker
	metrics *metrics.Metrics
	log     *zap.Logger
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server over eng.
func New(eng *engine.Engine, version string, log *zap.Logger) *Server {
	s := &Server{
		eng:     eng,
		log:     logging.OrNop(log),
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// SetHealth attaches the storage health check reported by /api/health.
func (s *Server) SetHealth(h HealthChecker) {
	s.health = h
}

// SetMetrics enables the /metrics endpoint.
func (s *Server) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(s.requestLog)

	r.Get("/metrics", s.handleMetrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/deck", s.handleDeck)
		r.Get("/map", s.handleMap)

		r.Post("/decisions", s.handleDecide)
		r.Get("/decisions", s.handleHistory)

		r.Post("/items/{itemID}/unlock", s.handleUnlock)
		r.Post("/items/{itemID}/favorite", s.handleFavorite)

		r.Get("/profile", s.handleProfile)
		r.Post("/profile/reset", s.handleResetProfile)
		r.Get("/stats", s.handleStats)
		r.Post("/stats/reset", s.handleResetStats)
	})

	s.router = r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	storeOK := true
	if s.health != nil {
		if err := s.health.Healthy(r.Context()); err != nil {
			storeOK = false
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"store":   storeOK,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		writeError(w, http.StatusNotFound, "metrics disabled")
		return
	}
	s.metrics.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
