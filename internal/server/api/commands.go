package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// CommandsHandler handles HTTP requests for the command event log.
type CommandsHandler struct {
	store *store.Store
}

// NewCommandsHandler creates a new CommandsHandler with the given store.
func NewCommandsHandler(s *store.Store) *CommandsHandler {
	return &CommandsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *CommandsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/commands or /api/commands/summary
	path := strings.TrimPrefix(r.URL.Path, "/api/commands")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodDelete:
			h.clear(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case "summary":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.summary(w, r)
	default:
		http.NotFound(w, r)
	}
}

// Response types

type commandEventResponse struct {
	ID        int64  `json:"id"`
	Command   string `json:"command"`
	CreatedAt string `json:"created_at"`
}

type listCommandsResponse struct {
	Commands []commandEventResponse `json:"commands"`
}

type commandSummaryResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// list handles GET /api/commands and returns recent command events,
// newest first. The optional limit query parameter caps the result size.
func (h *CommandsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	events, err := h.store.Events().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list commands")
		return
	}

	response := listCommandsResponse{
		Commands: make([]commandEventResponse, 0, len(events)),
	}

	for _, e := range events {
		response.Commands = append(response.Commands, commandEventResponse{
			ID:        e.ID,
			Command:   e.Command,
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// summary handles GET /api/commands/summary and returns per-command counts.
func (h *CommandsHandler) summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Events().CountByCommand()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to summarize commands")
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	writeJSON(w, http.StatusOK, commandSummaryResponse{
		Counts: counts,
		Total:  total,
	})
}

// clear handles DELETE /api/commands and removes all command events.
func (h *CommandsHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Events().Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear commands")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
