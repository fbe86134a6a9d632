package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/slidekit/internal/logging"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/player"
	"github.com/aretw0/slidekit/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Server exposes a running deck as a JSON remote control.
type Server struct {
	Deck    ports.Deck
	Streams *StreamManager
	Version string

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetricsHandler serves h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a server for deck.
func NewServer(deck ports.Deck, opts ...Option) *Server {
	s := &Server{
		Deck:    deck,
		Version: "dev",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/state", s.GetState)
	r.Get("/events", s.SubscribeEvents)

	r.Post("/next", s.navigate("next", s.Deck.Next))
	r.Post("/previous", s.navigate("previous", s.Deck.Previous))
	r.Post("/back", s.navigate("back", s.Deck.Back))
	r.Post("/force", s.navigate("force", s.Deck.Force))
	r.Post("/goto/{index}", s.Goto)
	r.Post("/complete/{slideID}", s.Complete)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// Publish pushes a state to every event subscriber. Use it as a player observer.
func (s *Server) Publish(state domain.DeckState) {
	data, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("state encode failed", "err", err)
		return
	}
	s.Streams.Broadcast(string(data))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "slidekit-http",
		"version": s.Version,
	})
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := s.Deck.State(r.Context())
	if err != nil {
		s.fail(w, "state", err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// Goto handles POST /goto/{index}.
func (s *Server) Goto(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return
	}
	s.navigate("goto", func(ctx context.Context) error {
		return s.Deck.Goto(ctx, index)
	})(w, r)
}

// Complete handles POST /complete/{slideID}, the completion signal of an external renderer.
func (s *Server) Complete(w http.ResponseWriter, r *http.Request) {
	slideID := chi.URLParam(r, "slideID")
	s.navigate("complete", func(ctx context.Context) error {
		return s.Deck.Complete(ctx, slideID)
	})(w, r)
}

func (s *Server) navigate(name string, fn func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(r.Context()); err != nil {
			s.fail(w, name, err)
			return
		}
		s.GetState(w, r)
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "op", op, "err", err)
	} else {
		s.logger.Warn("request rejected", "op", op, "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": fmt.Sprintf("%s: %v", op, err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownSlide):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransitionInFlight):
		return http.StatusConflict
	case errors.Is(err, player.ErrStopped):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
