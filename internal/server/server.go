// Package server provides the HTTP server for the Orbital globe controller.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/asheem/orbital/internal/capture"
	"github.com/asheem/orbital/internal/control"
	"github.com/asheem/orbital/internal/scene"
	"github.com/asheem/orbital/internal/server/api"
	"github.com/asheem/orbital/internal/store"
)

// Config holds the server configuration. Nil collaborators disable their
// routes, which keeps the server usable in partial setups and in tests.
type Config struct {
	StaticDir   string
	Store       *store.Store
	Camera      capture.Camera
	Source      control.Source
	Scene       *scene.RemoteScene
	ApplyTuning func(control.Tuning)
}

// Server represents the HTTP server for the Orbital application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Store, s.config.ApplyTuning))
		s.mux.Handle("/api/sessions", api.NewSessionsHandler(s.config.Store))
	}

	// Raw camera feed for the debug view
	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	// Confirmed gesture states for overlays and debugging
	if s.config.Source != nil {
		s.mux.Handle("/api/gestures", NewGestureFeedHandler(s.config.Source))
	}

	// Scene state push for the browser renderer
	if s.config.Scene != nil {
		s.mux.Handle("/ws/scene", s.config.Scene)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
