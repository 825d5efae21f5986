package api

import (
	"net/http"
	"strconv"

	"github.com/asheem/orbital/internal/store"
)

// defaultSessionLimit bounds how many sessions a listing returns when the
// client does not ask for a specific count.
const defaultSessionLimit = 20

// SessionsHandler handles HTTP requests for session history.
type SessionsHandler struct {
	store *store.Store
}

// NewSessionsHandler creates a new SessionsHandler with the given store.
func NewSessionsHandler(s *store.Store) *SessionsHandler {
	return &SessionsHandler{store: s}
}

type listSessionsResponse struct {
	Sessions []store.SessionSummary `json:"sessions"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultSessionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	sessions, err := h.store.Sessions().Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]store.SessionSummary, 0, len(sessions)),
	}
	response.Sessions = append(response.Sessions, sessions...)

	writeJSON(w, http.StatusOK, response)
}
