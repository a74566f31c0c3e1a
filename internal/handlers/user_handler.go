package handlers

import (
	"net/http"
	"time"

	"mindcoach/internal/security"
	"mindcoach/internal/service"
)

// UserHandler issues anonymous device identities
type UserHandler struct {
	states *service.StateService
	tokens *security.TokenIssuer
}

// NewUserHandler creates a new user handler
func NewUserHandler(states *service.StateService, tokens *security.TokenIssuer) *UserHandler {
	return &UserHandler{states: states, tokens: tokens}
}

type registerResponse struct {
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Register creates a user with a fresh state and returns its bearer token
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, err := h.states.Register(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error registering user", err)
		return
	}

	token, expires, err := h.tokens.Issue(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error issuing token", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, registerResponse{UserID: userID, Token: token, ExpiresAt: expires})
}
