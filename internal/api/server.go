// Package api serves generated chunk layouts over HTTP so other tools can
// instantiate the same track a run would see.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/export"
	"github.com/vovakirdan/tui-runner/internal/layout"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// Request limits.
const (
	MaxChunkIndex = 1_000_000
	MaxLevel      = 1_000
	maxRunsLimit  = 100
)

// Error types reported in error responses.
const (
	ErrTypeValidation = "validation_error"
	ErrTypeNotFound   = "not_found"
	ErrTypeInternal   = "internal_error"
	ErrTypeNoStorage  = "storage_unavailable"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Storage bool   `json:"storage"`
}

// CatalogResponse is returned by GET /api/v1/catalog.
type CatalogResponse struct {
	Params  layout.Params  `json:"params"`
	Catalog layout.Catalog `json:"catalog"`
}

// RunResponse is one stored run.
type RunResponse struct {
	ID        string `json:"id"`
	Seed      int64  `json:"seed"`
	Preset    string `json:"preset,omitempty"`
	Score     int    `json:"score"`
	Coins     int    `json:"coins"`
	Distance  int    `json:"distance"`
	Chunks    int    `json:"chunks"`
	CreatedAt string `json:"created_at"`
}

// Server handles HTTP requests for chunk layouts and run history.
type Server struct {
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager
	store      *storage.Store
	logger     *log.Logger
	startTime  time.Time
}

// NewServer creates a server. store may be nil, in which case the run
// endpoints report the storage as unavailable.
func NewServer(cfg config.RunnerConfig, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		store:      store,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/chunks/{index}", s.handleChunk)
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{id}", s.handleRun)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs each request with the charm logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
		Storage: s.store != nil,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, CatalogResponse{
		Params:  s.cfg.Layout,
		Catalog: s.cfg.Catalog,
	})
}

// handleChunk generates one chunk. seed defaults to 0 and level to the level
// the track would give the chunk.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 || index > MaxChunkIndex {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "index must be an integer in [0, 1000000]")
		return
	}

	q := r.URL.Query()
	var seed int64
	if v := q.Get("seed"); v != "" {
		seed, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "seed must be a 64-bit integer")
			return
		}
	}

	level := s.difficulty.ChunkLevel(index)
	if v := q.Get("level"); v != "" {
		level, err = strconv.Atoi(v)
		if err != nil || level < 0 || level > MaxLevel {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "level must be an integer in [0, 1000]")
			return
		}
	}

	s.writeJSON(w, http.StatusOK, export.Build(s.cfg.Layout, s.cfg.Catalog, seed, index, level))
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, ErrTypeNoStorage, "run history is not available")
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRunsLimit {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "limit must be an integer in [1, 100]")
			return
		}
		limit = n
	}

	runs, err := s.store.TopRuns(r.URL.Query().Get("preset"), limit)
	if err != nil {
		s.logger.Error("cannot list runs", "error", err)
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "cannot list runs")
		return
	}

	out := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunResponse(run))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, ErrTypeNoStorage, "run history is not available")
		return
	}

	id := chi.URLParam(r, "id")
	run, err := s.store.RunByID(id)
	if errors.Is(err, storage.ErrInvalidRunID) {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "run id must be a UUID")
		return
	}
	if err != nil {
		s.logger.Error("cannot load run", "id", id, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "cannot load run")
		return
	}
	if run == nil {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, "run not found")
		return
	}
	s.writeJSON(w, http.StatusOK, toRunResponse(*run))
}

func toRunResponse(r storage.Run) RunResponse {
	return RunResponse{
		ID:        r.ID,
		Seed:      r.Seed,
		Preset:    r.Preset,
		Score:     r.Score,
		Coins:     r.Coins,
		Distance:  r.Distance,
		Chunks:    r.Chunks,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("cannot encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	s.writeJSON(w, status, ErrorResponse{
		Type:      errType,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}
