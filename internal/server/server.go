// Package server exposes the gesture state, camera preview and tuning over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/glimmer/internal/capture"
	"github.com/ayusman/glimmer/internal/gesture"
	"github.com/ayusman/glimmer/internal/hook"
	"github.com/ayusman/glimmer/internal/server/api"
	"github.com/ayusman/glimmer/internal/store"
	"github.com/ayusman/glimmer/internal/visual"
)

// StateSource is the running App as seen by the state endpoint.
type StateSource interface {
	Latest() gesture.State
	Params() visual.Params
}

// Config holds the server configuration. Routes whose dependency is nil are
// not registered.
type Config struct {
	StaticDir string
	Store     *store.Store
	State     StateSource
	Preview   *capture.Preview
	Hub       *Hub
	Hooks     *hook.Manager
}

// Server is the HTTP front of the App.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a Server with routes for the configured dependencies.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.State != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
	}

	if s.config.Hub != nil {
		s.mux.Handle("/api/hand", s.config.Hub)
	}

	if s.config.Preview != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Preview))
	}

	if s.config.Store != nil {
		settings := api.NewSettingsHandler(s.config.Store)
		s.mux.Handle("/api/settings", settings)
		s.mux.Handle("/api/settings/", settings)
		s.mux.Handle("/api/sessions", api.NewSessionsHandler(s.config.Store))
	}

	if s.config.Hooks != nil {
		s.mux.Handle("/api/hooks", api.NewHooksHandler(s.config.Hooks))
	}

	if s.config.StaticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(s.config.StaticDir)))
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

type stateResponse struct {
	Gesture     gesture.State `json:"gesture"`
	Params      visual.Params `json:"params"`
	Mode        gesture.Mode  `json:"mode"`
	Description string        `json:"description"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	st := s.config.State.Latest()
	writeJSON(w, stateResponse{
		Gesture:     st,
		Params:      s.config.State.Params(),
		Mode:        st.Mode(),
		Description: gesture.Describe(st),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// HTTPServer returns an http.Server for addr so callers can Shutdown it.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
