// Package server provides the HTTP and WebSocket surface for the Mudra presentation control daemon.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// Controller is the slice of the application the server needs to report
// and toggle detection state.
type Controller interface {
	IsEnabled() bool
	SetEnabled(enabled bool)
	LastCommand() (gesture.Command, time.Time, bool)
}

// Config holds the server configuration.
type Config struct {
	StaticDir  string
	Store      *store.Store
	Camera     capture.Camera
	Detector   detector.Detector
	Controller Controller
}

// Server represents the HTTP server for the Mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	hub    *CommandHub
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		hub:    NewCommandHub(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Hub returns the command broadcast hub, so confirmed commands can be
// pushed to connected WebSocket clients.
func (s *Server) Hub() *CommandHub {
	return s.hub
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/ws", s.hub)
	s.mux.Handle("/api/gestures", api.NewGesturesHandler())

	// Register control endpoints if a Controller is configured
	if s.config.Controller != nil {
		s.mux.HandleFunc("/api/status", s.handleStatus)
		s.mux.HandleFunc("/api/control", s.handleControl)
	}

	// Register persistence-backed endpoints if Store is configured
	if s.config.Store != nil {
		commandsHandler := api.NewCommandsHandler(s.config.Store)
		s.mux.Handle("/api/commands", commandsHandler)
		s.mux.Handle("/api/commands/", commandsHandler)

		bindingHandler := api.NewBindingHandler(s.config.Store)
		s.mux.Handle("/api/bindings", bindingHandler)
		s.mux.Handle("/api/bindings/", bindingHandler)
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Register landmarks WebSocket endpoint if Camera and Detector are configured
	if s.config.Camera != nil && s.config.Detector != nil {
		landmarksHandler := NewLandmarksHandler(s.config.Detector, s.config.Camera)
		s.mux.Handle("/api/landmarks", landmarksHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface. All responses carry
// permissive CORS headers so browser frontends on other origins can
// reach the API.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

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

// handleStatus handles GET requests to /api/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"enabled": s.config.Controller.IsEnabled(),
		"clients": s.hub.ClientCount(),
	}

	if cmd, at, ok := s.config.Controller.LastCommand(); ok {
		response["last_command"] = string(cmd)
		response["last_command_description"] = cmd.Description()
		response["last_command_at"] = at.Format("2006-01-02T15:04:05Z07:00")
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleControl handles POST requests to /api/control, toggling detection.
// The new state is persisted so it survives a restart.
func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	s.config.Controller.SetEnabled(req.Enabled)

	if s.config.Store != nil {
		if err := s.config.Store.Settings().Set(store.SettingDetectionEnabled, strconv.FormatBool(req.Enabled)); err != nil {
			http.Error(w, "Failed to persist state", http.StatusInternalServerError)
			return
		}
	}

	response := map[string]interface{}{
		"enabled": s.config.Controller.IsEnabled(),
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
