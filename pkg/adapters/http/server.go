// Package http exposes sessions and programs over a JSON HTTP API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/command"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/program"
	"github.com/aretw0/turing/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultRateLimit is the number of command requests a client IP may send per minute.
const DefaultRateLimit = 120

// MaxBodyBytes caps the size of request bodies.
const MaxBodyBytes = 1 << 20

// CommandRequest is the body of POST /sessions/{id}/commands.
type CommandRequest struct {
	Command string `json:"command"`
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server serves the HTTP API.
type Server struct {
	Sessions   *session.Manager
	Dispatcher *command.Dispatcher
	Store      ports.ProgramStore
	Gatherer   prometheus.Gatherer
	Logger     *slog.Logger

	rateLimit  int
	rateWindow time.Duration
}

// Option configures the Server.
type Option func(*Server)

// WithStore mounts the /programs endpoints.
func WithStore(store ports.ProgramStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithGatherer mounts GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithRateLimit limits command requests per client IP. A limit below 1 disables it.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimit = limit
		s.rateWindow = window
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(sessions *session.Manager, dispatcher *command.Dispatcher, opts ...Option) http.Handler {
	s := &Server{
		Sessions:   sessions,
		Dispatcher: dispatcher,
		Logger:     logging.NewNop(),
		rateLimit:  DefaultRateLimit,
		rateWindow: time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s.Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.With(s.limiter()).Post("/commands", s.RunCommand)
		})
	})

	if s.Store != nil {
		r.Route("/programs", func(r chi.Router) {
			r.Get("/", s.ListPrograms)
			r.Get("/{name}", s.GetProgram)
			r.Put("/{name}", s.PutProgram)
			r.Delete("/{name}", s.DeleteProgram)
		})
	}

	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) limiter() func(http.Handler) http.Handler {
	if s.rateLimit < 1 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		s.rateLimit,
		s.rateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(s.rateWindow.Seconds())))
			writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})
		}),
	)
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	err := s.Sessions.Do(r.Context(), id, func(context.Context, *machine.Deterministic) error { return nil })
	if err != nil {
		s.fail(w, "create session", err)
		return
	}
	s.Logger.Info("session created", "session_id", id)
	writeJSON(w, http.StatusCreated, SessionResponse{ID: id})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sessions.List())
}

// GetSession handles GET /sessions/{id} with a snapshot of the machine.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var snap machine.Snapshot
	err := s.Sessions.DoExisting(r.Context(), id, func(_ context.Context, m *machine.Deterministic) error {
		snap = m.Snapshot()
		return nil
	})
	if err != nil {
		s.fail(w, "get session", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Drop(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunCommand handles POST /sessions/{id}/commands.
func (s *Server) RunCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body CommandRequest
	if !s.decode(w, r, &body) {
		return
	}

	var reply command.Reply
	err := s.Sessions.DoExisting(r.Context(), id, func(ctx context.Context, m *machine.Deterministic) error {
		var err error
		reply, err = s.Dispatcher.Dispatch(ctx, m, body.Command)
		return err
	})
	if err != nil {
		s.fail(w, "command", err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// ListPrograms handles GET /programs.
func (s *Server) ListPrograms(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, "list programs", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// GetProgram handles GET /programs/{name}.
func (s *Server) GetProgram(w http.ResponseWriter, r *http.Request) {
	prog, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "get program", err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

// PutProgram handles PUT /programs/{name}. The body is a loosely typed JSON program.
func (s *Server) PutProgram(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var raw map[string]any
	if !s.decode(w, r, &raw) {
		return
	}
	if body, ok := raw["name"]; !ok || body == "" {
		raw["name"] = name
	}

	prog, err := program.Decode(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if prog.Name != name {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "program name does not match the URL"})
		return
	}

	if err := s.Store.Save(r.Context(), prog); err != nil {
		s.fail(w, "save program", err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

// DeleteProgram handles DELETE /programs/{name}.
func (s *Server) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, "delete program", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body of at most MaxBodyBytes into v, answering 400 or 413 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
		return false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	return false
}

// fail maps err to a status code: user mistakes are 4xx, everything else is logged.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	var usage *command.UsageError
	switch {
	case errors.As(err, &usage), errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProgramNotFound), errors.Is(err, session.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		s.Logger.Error("request failed", "op", op, "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
