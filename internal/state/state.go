// Package state holds the per-user app record and the pure transitions applied to it.
package state

import (
	"encoding/json"
	"fmt"
	"time"

	"mindcoach/internal/models"
)

const (
	// StorageKey names the persisted record
	StorageKey = "happiness.v1"
	// SchemaVersion is written into every export
	SchemaVersion = "1.0"
)

// ArchetypeAssignment is the stored summary of a matched coach
type ArchetypeAssignment struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Confidence int    `json:"confidence"`
}

// AssignmentOf summarises a scored archetype for storage
func AssignmentOf(s models.ScoredArchetype) *ArchetypeAssignment {
	if s.Archetype == nil {
		return nil
	}
	return &ArchetypeAssignment{ID: s.Archetype.ID, Name: s.Archetype.Name, Confidence: s.Confidence}
}

// AppState is one user's record. Values are treated as immutable; use Reduce to derive a new one.
type AppState struct {
	OnboardingComplete   bool                    `json:"onboardingComplete"`
	SelectedPersona      string                  `json:"selectedPersona,omitempty"`
	SelectedGoals        []string                `json:"selectedGoals"`
	QuizComplete         bool                    `json:"quizComplete"`
	QuizScores           models.ScoreSet         `json:"quizScores,omitempty"`
	PrimaryArchetype     *ArchetypeAssignment    `json:"primaryArchetype,omitempty"`
	SecondaryArchetype   *ArchetypeAssignment    `json:"secondaryArchetype,omitempty"`
	MindGymSessions      []models.MindGymSession `json:"mindGymSessions"`
	CurrentStreak        int                     `json:"currentStreak"`
	HappinessHistory     []models.HappinessScore `json:"happinessHistory"`
	CoachSatisfaction    map[string]bool         `json:"coachSatisfaction"`
	NotificationsEnabled bool                    `json:"notificationsEnabled"`
	ContactEmail         string                  `json:"contactEmail,omitempty"`
}

// Initial returns the state of a user who has not done anything yet
func Initial() AppState {
	return AppState{
		SelectedGoals:        []string{},
		MindGymSessions:      []models.MindGymSession{},
		HappinessHistory:     []models.HappinessScore{},
		CoachSatisfaction:    map[string]bool{},
		NotificationsEnabled: true,
	}
}

// clone copies every slice and map so the result can be changed freely
func (s AppState) clone() AppState {
	out := s
	out.SelectedGoals = append([]string{}, s.SelectedGoals...)
	out.MindGymSessions = append([]models.MindGymSession{}, s.MindGymSessions...)
	out.HappinessHistory = append([]models.HappinessScore{}, s.HappinessHistory...)
	if s.QuizScores != nil {
		out.QuizScores = s.QuizScores.Clone()
	}
	out.CoachSatisfaction = make(map[string]bool, len(s.CoachSatisfaction))
	for k, v := range s.CoachSatisfaction {
		out.CoachSatisfaction[k] = v
	}
	if s.PrimaryArchetype != nil {
		p := *s.PrimaryArchetype
		out.PrimaryArchetype = &p
	}
	if s.SecondaryArchetype != nil {
		p := *s.SecondaryArchetype
		out.SecondaryArchetype = &p
	}
	return out
}

// Export is the downloadable form of a record
type Export struct {
	AppState
	ExportedAt time.Time `json:"exportedAt"`
	Version    string    `json:"version"`
}

// NewExport stamps the state with the export time and schema version
func NewExport(s AppState, now time.Time) Export {
	return Export{AppState: s.clone(), ExportedAt: now.UTC(), Version: SchemaVersion}
}

// Marshal encodes a state for storage
func Marshal(s AppState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a stored state, filling defaults for collections the record omits
func Unmarshal(data []byte) (AppState, error) {
	s := Initial()
	if err := json.Unmarshal(data, &s); err != nil {
		return AppState{}, fmt.Errorf("failed to decode state: %w", err)
	}
	if s.SelectedGoals == nil {
		s.SelectedGoals = []string{}
	}
	if s.MindGymSessions == nil {
		s.MindGymSessions = []models.MindGymSession{}
	}
	if s.HappinessHistory == nil {
		s.HappinessHistory = []models.HappinessScore{}
	}
	if s.CoachSatisfaction == nil {
		s.CoachSatisfaction = map[string]bool{}
	}
	return s, nil
}
