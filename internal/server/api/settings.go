// Package api provides HTTP API handlers for the Orbital globe controller.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/asheem/orbital/internal/control"
	"github.com/asheem/orbital/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// SettingsHandler handles HTTP requests for the motion tuning settings.
// Updates are persisted and pushed into the running control loop through
// the apply callback.
type SettingsHandler struct {
	store *store.Store
	apply func(control.Tuning)
}

// NewSettingsHandler creates a new SettingsHandler. The apply callback may
// be nil when there is no live control loop to update.
func NewSettingsHandler(s *store.Store, apply func(control.Tuning)) *SettingsHandler {
	return &SettingsHandler{store: s, apply: apply}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get handles GET /api/settings and returns the current tuning.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	tuning, err := h.store.Settings().LoadTuning()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, tuning)
}

// update handles PUT /api/settings. The stored tuning is replaced wholesale,
// so clients should send the full document.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var tuning control.Tuning
	if err := json.NewDecoder(r.Body).Decode(&tuning); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tuning = tuning.Sanitize()

	if err := h.store.Settings().SaveTuning(tuning); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	if h.apply != nil {
		h.apply(tuning)
	}

	writeJSON(w, http.StatusOK, tuning)
}
