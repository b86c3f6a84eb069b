package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/statuscheck/internal/domain"
	"github.com/hamed0406/statuscheck/internal/repo"
	"github.com/hamed0406/statuscheck/internal/scheduler"
)

type Server struct {
	Logger  *zap.Logger
	Results repo.ResultStore
	Runner  *scheduler.Runner
	Targets []domain.Endpoint
	Schema  domain.Schema

	runMu sync.Mutex
}

func NewServer(l *zap.Logger, rs repo.ResultStore, runner *scheduler.Runner, targets []domain.Endpoint, schema domain.Schema) *Server {
	return &Server{Logger: l, Results: rs, Runner: runner, Targets: targets, Schema: schema}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/targets", s.handleListTargets)
	r.Get("/api/results", s.handleLatest)
	r.Post("/api/runs", s.handleRun)

	return r
}

func (s *Server) handleListTargets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Targets)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	rs, err := s.Results.Latest(r.Context())
	if errors.Is(err, repo.ErrNoResults) {
		http.Error(w, "no results yet", http.StatusNotFound)
		return
	}
	if err != nil {
		s.Logger.Warn("latest_error", zap.Error(err))
		http.Error(w, "could not load results", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rs.Document(s.Schema))
}

// handleRun checks every target once, persists the result set and returns
// it. Only one run may be in progress at a time. A run always completes and
// is saved even if the client goes away before the response is written.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if !s.runMu.TryLock() {
		http.Error(w, "run already in progress", http.StatusConflict)
		return
	}
	defer s.runMu.Unlock()

	ctx := context.WithoutCancel(r.Context())
	rs := s.Runner.Run(ctx, s.Targets)
	if err := s.Results.Save(ctx, rs); err != nil {
		s.Logger.Error("save_error", zap.Error(err))
		http.Error(w, "could not save results", http.StatusInternalServerError)
		return
	}
	s.Logger.Info("run_saved", zap.Int("results", len(rs)))
	writeJSON(w, http.StatusOK, rs.Document(s.Schema))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
