package handlers

import (
	"net/http"

	"mindcoach/internal/matching"
	"mindcoach/internal/models"
	"mindcoach/internal/service"
)

// AssessmentHandler handles quiz scoring and coach matching requests
type AssessmentHandler struct {
	assessment *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessment *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessment: assessment}
}

type scoreRequest struct {
	Answers []models.Answer `json:"answers"`
	Persona string          `json:"persona"`
}

type scoreResponse struct {
	*service.ScoreResult
	Success bool `json:"success"`
}

// ScoreQuiz converts quiz answers into construct scores and insights
func (h *AssessmentHandler) ScoreQuiz(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "answers must be a list", "", nil)
		return
	}
	if req.Answers == nil {
		respondWithError(w, http.StatusBadRequest, "answers are required", "", nil)
		return
	}

	result, err := h.assessment.Score(r.Context(), GetUserIDFromContext(r.Context()), req.Answers, req.Persona)
	if err != nil {
		respondWithServiceError(w, "Error scoring quiz", err)
		return
	}

	respondWithJSON(w, http.StatusOK, scoreResponse{ScoreResult: result, Success: true})
}

type matchRequest struct {
	Persona    string          `json:"persona"`
	Scores     models.ScoreSet `json:"scores"`
	Goals      []string        `json:"goals"`
	Preference string          `json:"preference"`
}

type matchResponse struct {
	*models.MatchResult
	Success bool `json:"success"`
}

// MatchCoach ranks coach archetypes for a persona and score set
func (h *AssessmentHandler) MatchCoach(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	result, err := h.assessment.Match(r.Context(), GetUserIDFromContext(r.Context()), matching.Request{
		PersonaID:  req.Persona,
		Scores:     req.Scores,
		Goals:      req.Goals,
		Preference: req.Preference,
	})
	if err != nil {
		respondWithServiceError(w, "Error matching coach", err)
		return
	}

	respondWithJSON(w, http.StatusOK, matchResponse{MatchResult: result, Success: true})
}

type completeQuizRequest struct {
	Answers    []models.Answer `json:"answers"`
	Preference string          `json:"preference"`
}

// CompleteQuiz scores, matches and stores the signed-in user's quiz
func (h *AssessmentHandler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	var req completeQuizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "answers must be a list", "", nil)
		return
	}
	if req.Answers == nil {
		respondWithError(w, http.StatusBadRequest, "answers are required", "", nil)
		return
	}

	outcome, err := h.assessment.CompleteQuiz(r.Context(), GetUserIDFromContext(r.Context()), req.Answers, req.Preference)
	if err != nil {
		respondWithServiceError(w, "Error completing quiz", err)
		return
	}

	respondWithJSON(w, http.StatusOK, outcome)
}

type onboardingRequest struct {
	Persona string   `json:"persona"`
	Goals   []string `json:"goals"`
}

// Onboard stores the persona and goals picked during onboarding
func (h *AssessmentHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	var req onboardingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	next, err := h.assessment.Onboard(r.Context(), GetUserIDFromContext(r.Context()), req.Persona, req.Goals)
	if err != nil {
		respondWithServiceError(w, "Error saving onboarding", err)
		return
	}

	respondWithJSON(w, http.StatusOK, next)
}
