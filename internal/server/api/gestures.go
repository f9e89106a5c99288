// Package api provides HTTP API handlers for the Mudra presentation control daemon.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/gesture"
)

// GesturesHandler serves the fixed gesture vocabulary. The recognizable
// poses are compiled in, so this endpoint is read-only.
type GesturesHandler struct{}

// NewGesturesHandler creates a new GesturesHandler.
func NewGesturesHandler() *GesturesHandler {
	return &GesturesHandler{}
}

type gestureInfo struct {
	Command     string `json:"command"`
	Description string `json:"description"`
	Hands       int    `json:"hands"`
}

type listGesturesResponse struct {
	Gestures []gestureInfo `json:"gestures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ServeHTTP handles GET /api/gestures and returns every recognizable
// command with its description and required hand count.
func (h *GesturesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	commands := gesture.Commands()
	response := listGesturesResponse{
		Gestures: make([]gestureInfo, 0, len(commands)),
	}

	for _, cmd := range commands {
		response.Gestures = append(response.Gestures, gestureInfo{
			Command:     string(cmd),
			Description: cmd.Description(),
			Hands:       cmd.Hands(),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
