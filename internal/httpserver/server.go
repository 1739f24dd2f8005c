// internal/httpserver/server.go
//
// HTTP server wiring for the guessing game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Page + diagnostics: "/", "/health".
//   - Round endpoints: GET /api/round, POST /api/round/guess, POST /api/round/next.
//   - Live updates: GET /ws (see events.go).
//
// Notes:
//   - There is exactly one round per process; handlers only translate HTTP
//     to game.Controller calls.
//   - CORS allows a single configured origin.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/youpv/whosthatpokemon/assets"
	"github.com/youpv/whosthatpokemon/internal/game"
)

// Controller is the subset of *game.Controller the handlers use.
type Controller interface {
	Snapshot() game.Snapshot
	Guess(ctx context.Context, guess string) (game.Outcome, error)
	NextRound(ctx context.Context) error
}

// Server bundles router, round controller and websocket hub.
type Server struct {
	r      *chi.Mux
	ctrl   Controller
	hub    *Hub
	origin string
	http   *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(ctrl Controller, hub *Hub, origin string) *Server {
	s := &Server{r: chi.NewRouter(), ctrl: ctrl, hub: hub, origin: origin}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(s.cors)                          // single-origin CORS

	// --- page + diagnostics ---
	s.r.Get("/", s.handleIndex)
	s.r.Get("/ws", s.handleWS) // long-lived; outside the handler timeout

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(15 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		r.Route("/api/round", func(r chi.Router) {
			r.Get("/", s.handleRound)
			r.Post("/guess", s.handleGuess)
			r.Post("/next", s.handleNext)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		writeError(w, http.StatusNotFound, "not_found")
	})

	s.http = &http.Server{
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start begins serving HTTP on addr. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start(addr string) error {
	s.http.Addr = addr
	return s.http.ListenAndServe()
}

// Shutdown stops accepting connections and closes live websockets.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- PAGE --------------------------------------

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := assets.IndexHTML()
	if err != nil {
		log.Error().Err(err).Msg("read index.html")
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(page)
}

// ------------------------------ ROUND --------------------------------------

// guessReq is the payload for POST /api/round/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

// handleRound returns the current snapshot.
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.ctrl.Snapshot())
}

// handleGuess submits one guess to the active round.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	out, err := s.ctrl.Guess(r.Context(), req.Guess)
	switch {
	case errors.Is(err, game.ErrEmptyGuess):
		writeError(w, http.StatusBadRequest, "empty_guess")
		return
	case errors.Is(err, game.ErrNotAccepting):
		writeError(w, http.StatusConflict, "not_accepting")
		return
	case err != nil:
		log.Error().Err(err).Msg("guess")
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleNext starts the next round immediately, cancelling any pending
// automatic transition. The fetch completes before the response is written.
// A round still being played cannot be skipped.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	err := s.ctrl.NextRound(r.Context())
	switch {
	case errors.Is(err, game.ErrNotAccepting):
		writeError(w, http.StatusConflict, "not_accepting")
		return
	case err != nil:
		// Already logged by the controller; the round stays in loading.
		writeError(w, http.StatusBadGateway, "catalog_unavailable")
		return
	}
	_ = json.NewEncoder(w).Encode(s.ctrl.Snapshot())
}

// ------------------------------- small util --------------------------------

// writeError writes a {"error":code} body with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
