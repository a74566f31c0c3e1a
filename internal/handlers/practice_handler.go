package handlers

import (
	"net/http"

	"mindcoach/internal/service"
)

// PracticeHandler handles mind gym, check-in, feedback and progress requests
type PracticeHandler struct {
	practice *service.PracticeService
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practice *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practice: practice}
}

type sessionRequest struct {
	ExerciseID string  `json:"exerciseId"`
	Reflection *string `json:"reflection"`
	Rating     *int    `json:"rating"`
}

// RecordSession stores a completed mind gym exercise
func (h *PracticeHandler) RecordSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	next, err := h.practice.RecordSession(r.Context(), GetUserIDFromContext(r.Context()), service.SessionInput{
		ExerciseID: req.ExerciseID,
		Reflection: req.Reflection,
		Rating:     req.Rating,
	})
	if err != nil {
		respondWithServiceError(w, "Error recording session", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, next)
}

type checkInRequest struct {
	Score            float64  `json:"score"`
	Mood             float64  `json:"mood"`
	MindGymCompleted bool     `json:"mindGymCompleted"`
	CoachFeedback    *float64 `json:"coachFeedback"`
}

// RecordCheckIn stores today's happiness check-in
func (h *PracticeHandler) RecordCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	next, err := h.practice.RecordCheckIn(r.Context(), GetUserIDFromContext(r.Context()), service.CheckInInput{
		Score:            req.Score,
		Mood:             req.Mood,
		MindGymCompleted: req.MindGymCompleted,
		CoachFeedback:    req.CoachFeedback,
	})
	if err != nil {
		respondWithServiceError(w, "Error recording check-in", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, next)
}

type feedbackRequest struct {
	MessageID string `json:"messageId"`
	Positive  bool   `json:"positive"`
}

// RecordFeedback stores a thumbs up or down for a coach message
func (h *PracticeHandler) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	next, err := h.practice.RecordFeedback(r.Context(), GetUserIDFromContext(r.Context()), req.MessageID, req.Positive)
	if err != nil {
		respondWithServiceError(w, "Error recording feedback", err)
		return
	}

	respondWithJSON(w, http.StatusOK, next)
}

// ToggleNotifications flips the weekly digest opt-in
func (h *PracticeHandler) ToggleNotifications(w http.ResponseWriter, r *http.Request) {
	next, err := h.practice.ToggleNotifications(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, "Error toggling notifications", err)
		return
	}
	respondWithJSON(w, http.StatusOK, next)
}

type emailRequest struct {
	Email string `json:"email"`
}

// SetContactEmail stores or clears the digest address
func (h *PracticeHandler) SetContactEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	next, err := h.practice.SetContactEmail(r.Context(), GetUserIDFromContext(r.Context()), req.Email)
	if err != nil {
		respondWithServiceError(w, "Error saving email", err)
		return
	}
	respondWithJSON(w, http.StatusOK, next)
}

// Progress returns KPIs and the progress narrative
func (h *PracticeHandler) Progress(w http.ResponseWriter, r *http.Request) {
	report, err := h.practice.Report(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, "Error computing progress", err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}
