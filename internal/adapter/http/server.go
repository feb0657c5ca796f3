package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-scenario-etl/internal/repository"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ScenarioCatalog is the read side of the scenario store.
type ScenarioCatalog interface {
	GetByID(ctx context.Context, id string) (*repository.Record, error)
	List(ctx context.Context, opts repository.Filter) ([]repository.Record, error)
}

// Server exposes health, readiness, metrics, and catalog HTTP endpoints.
type Server struct {
	httpServer *http.Server
	catalog    ScenarioCatalog
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, and /metrics
// routes. When catalog is non-nil, /scenarios and /scenarios/{id} serve the
// stored scenario rows.
func NewServer(addr string, ready ReadinessChecker, catalog ScenarioCatalog, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		catalog: catalog,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	if catalog != nil {
		mux.HandleFunc("GET /scenarios", s.handleList)
		mux.HandleFunc("GET /scenarios/{id}", s.handleGet)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// scenarioView is the JSON shape of a stored scenario.
type scenarioView struct {
	ID              string    `json:"id"`
	EventSourceCode string    `json:"event_source_code"`
	Description     string    `json:"description"`
	LocString       string    `json:"locstring"`
	Magnitude       float64   `json:"magnitude"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	Depth           float64   `json:"depth"`
	Rake            *float64  `json:"rake,omitempty"`
	Mechanism       string    `json:"mechanism"`
	Directivity     bool      `json:"directivity"`
	Reference       string    `json:"reference,omitempty"`
	Dialect         string    `json:"dialect"`
	RunID           string    `json:"run_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func toView(r repository.Record) scenarioView {
	return scenarioView(r)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.catalog.GetByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("get scenario failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, toView(*rec))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	recs, err := s.catalog.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("list scenarios failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	views := make([]scenarioView, len(recs))
	for i, rec := range recs {
		views[i] = toView(rec)
	}
	writeJSON(w, http.StatusOK, views)
}

func parseFilter(r *http.Request) (repository.Filter, error) {
	q := r.URL.Query()
	var f repository.Filter
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("limit must be a non-negative integer")
		}
		f.Limit = n
	}
	if v := q.Get("min_magnitude"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.New("min_magnitude must be a number")
		}
		f.MinMagnitude = &m
	}
	if v := q.Get("directivity"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("directivity must be a boolean")
		}
		f.Directivity = &b
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
