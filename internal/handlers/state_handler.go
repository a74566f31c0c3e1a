package handlers

import (
	"fmt"
	"net/http"

	"mindcoach/internal/service"
	"mindcoach/internal/state"
)

// StateHandler serves the signed-in user's stored state
type StateHandler struct {
	states *service.StateService
}

// NewStateHandler creates a new state handler
func NewStateHandler(states *service.StateService) *StateHandler {
	return &StateHandler{states: states}
}

// GetState returns the current state
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	current, err := h.states.Get(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading state", err)
		return
	}
	respondWithJSON(w, http.StatusOK, current)
}

// ResetState clears everything back to the initial state
func (h *StateHandler) ResetState(w http.ResponseWriter, r *http.Request) {
	next, err := h.states.Apply(r.Context(), GetUserIDFromContext(r.Context()), state.Reset{})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error resetting state", err)
		return
	}
	respondWithJSON(w, http.StatusOK, next)
}

// ExportState downloads the state as a JSON attachment
func (h *StateHandler) ExportState(w http.ResponseWriter, r *http.Request) {
	exp, err := h.states.Export(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error exporting state", err)
		return
	}

	filename := fmt.Sprintf("mindcoach-export-%s.json", exp.ExportedAt.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	respondWithJSON(w, http.StatusOK, exp)
}
